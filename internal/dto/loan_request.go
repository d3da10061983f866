package dto

// ValidateLoanRequest POST /loan-requests/validate
// Windows are the availability windows of the item being borrowed.
type ValidateLoanRequest struct {
	Windows   []WindowPayload `json:"windows" binding:"required,min=1,dive"`
	StartDate string          `json:"start_date" binding:"required"`
	EndDate   string          `json:"end_date" binding:"required"`
	Locale    string          `json:"locale"`
}

// LoanValidationResponse verdict on a loan request.
// Errors is empty when Valid; Suggestions is only filled when not Valid.
type LoanValidationResponse struct {
	Valid       bool                    `json:"valid"`
	Errors      []string                `json:"errors"`
	WindowID    *int64                  `json:"window_id,omitempty"`
	Status      *StatusResponse         `json:"status,omitempty"`
	Suggestions []AvailableSlotResponse `json:"suggestions"`
}
