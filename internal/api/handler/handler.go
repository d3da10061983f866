package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Voisin-comme-cochon/Web-sub001/internal/service"
	apperrors "github.com/Voisin-comme-cochon/Web-sub001/pkg/errors"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/response"
)

// Handler groups every HTTP handler.
type Handler struct {
	Availability *AvailabilityHandler
	LoanRequest  *LoanRequestHandler
	Export       *ExportHandler
	Calendar     *CalendarHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(svc.Availability),
		LoanRequest:  NewLoanRequestHandler(svc.LoanRequest),
		Export:       NewExportHandler(svc.Export),
		Calendar:     NewCalendarHandler(svc.Calendar),
	}
}

// bindJSON binds the body into req and writes the error response on failure.
// Callers return when it reports false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Corps de requête trop volumineux")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "Paramètres invalides", err.Error())
}

// writeError maps service errors to the response envelope.
func writeError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20001, "Données invalides", ve.Error())
	case errors.Is(err, apperrors.ErrValidation):
		response.BadRequest(c, 20001, "Données invalides")
	case errors.Is(err, service.ErrExportRangeTooLarge):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20201, "Période d'export trop longue", err.Error())
	case errors.Is(err, service.ErrCalendarParse):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20301, "Fichier iCalendar invalide", err.Error())
	case errors.Is(err, service.ErrCalendarFetch):
		response.Error(c, http.StatusBadGateway, 20302, "Impossible de récupérer le calendrier distant")
	default:
		c.Error(err)
		response.InternalError(c)
	}
}
