package handler

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAvailability downloads a window as .xlsx.
// POST /api/v1/export/availability
func (h *ExportHandler) ExportAvailability(c *gin.Context) {
	var req dto.ExportAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	buf, filename, err := h.exportSvc.ExportWindow(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	sendFile(c, buf, filename, xlsxContentType)
}

// sendFile writes buf as a download named filename.
func sendFile(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
