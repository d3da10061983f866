package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/service"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/response"
)

// AvailabilityHandler serves the availability engine.
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// FreeSlots lists free intervals.
// POST /api/v1/availability/free-slots
func (h *AvailabilityHandler) FreeSlots(c *gin.Context) {
	var req dto.FreeSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.availabilitySvc.FreeSlots(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}

// Conflicts lists the slots overlapping a requested range.
// POST /api/v1/availability/conflicts
func (h *AvailabilityHandler) Conflicts(c *gin.Context) {
	var req dto.ConflictsRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.availabilitySvc.Conflicts(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}

// Status aggregates availability over a range.
// POST /api/v1/availability/status
func (h *AvailabilityHandler) Status(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.availabilitySvc.Status(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}

// Suggestions proposes alternative free intervals.
// POST /api/v1/availability/suggestions
func (h *AvailabilityHandler) Suggestions(c *gin.Context) {
	var req dto.SuggestionsRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.availabilitySvc.Suggestions(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}

// CheckDate reports whether one day is free.
// POST /api/v1/availability/date-check
func (h *AvailabilityHandler) CheckDate(c *gin.Context) {
	var req dto.DateCheckRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.availabilitySvc.CheckDate(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}

// FormatRange renders a range for display.
// GET /api/v1/availability/format-range?start=2024-03-05&end=2024-03-07&locale=fr
func (h *AvailabilityHandler) FormatRange(c *gin.Context) {
	var req dto.FormatRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if req.Locale == "" {
		req.Locale = c.GetHeader("Accept-Language")
	}

	resp, err := h.availabilitySvc.FormatRange(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}
