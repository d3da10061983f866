package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/service"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/response"
)

// LoanRequestHandler checks borrow requests before submission.
type LoanRequestHandler struct {
	loanRequestSvc service.LoanRequestService
}

// NewLoanRequestHandler creates a LoanRequestHandler.
func NewLoanRequestHandler(loanRequestSvc service.LoanRequestService) *LoanRequestHandler {
	return &LoanRequestHandler{loanRequestSvc: loanRequestSvc}
}

// Validate answers 200 for both verdicts; data.valid carries the outcome.
// POST /api/v1/loan-requests/validate
func (h *LoanRequestHandler) Validate(c *gin.Context) {
	var req dto.ValidateLoanRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.loanRequestSvc.Validate(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, resp)
}
