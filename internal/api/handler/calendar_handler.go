package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/service"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/response"
)

const icsContentType = "text/calendar; charset=utf-8"

// CalendarHandler serves iCalendar export and import.
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// ExportCalendar downloads windows as .ics.
// POST /api/v1/calendars/export
func (h *CalendarHandler) ExportCalendar(c *gin.Context) {
	var req dto.ExportCalendarRequest
	if !bindJSON(c, &req) {
		return
	}

	buf, filename, err := h.calendarSvc.ExportICS(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	sendFile(c, buf, filename, icsContentType)
}

// ImportCalendar converts an external calendar into OCCUPIED slots.
// POST /api/v1/calendars/import
//   - multipart/form-data with a "file" field
//   - JSON {"url": "..."} for a remote calendar (http, https, webcal)
func (h *CalendarHandler) ImportCalendar(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.importUpload(c)
		return
	}

	var req dto.ImportCalendarRequest
	if !bindJSON(c, &req) {
		return
	}

	body, err := h.calendarSvc.FetchICSContent(c.Request.Context(), req.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	defer body.Close()

	resp, err := h.calendarSvc.ImportICS(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *CalendarHandler) importUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeBindError(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.calendarSvc.ImportICS(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}
