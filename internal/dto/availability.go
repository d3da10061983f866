package dto

// Dates are exchanged as "YYYY-MM-DD"; RFC 3339 timestamps are accepted on input.

// ── Shared payloads ──

// SlotPayload a slot as sent by the calendar UI.
type SlotPayload struct {
	ID        int64  `json:"id"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// WindowPayload an availability window with its slots.
type WindowPayload struct {
	ID        int64         `json:"id"`
	StartDate string        `json:"start_date" binding:"required"`
	EndDate   string        `json:"end_date" binding:"required"`
	Slots     []SlotPayload `json:"slots" binding:"omitempty,dive"`
}

// ── Requests ──

// FreeSlotsRequest POST /availability/free-slots
type FreeSlotsRequest struct {
	Window WindowPayload `json:"window" binding:"required"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Locale string        `json:"locale"`
}

// ConflictsRequest POST /availability/conflicts
type ConflictsRequest struct {
	Window    WindowPayload `json:"window" binding:"required"`
	StartDate string        `json:"start_date" binding:"required"`
	EndDate   string        `json:"end_date" binding:"required"`
	Locale    string        `json:"locale"`
}

// StatusRequest POST /availability/status
type StatusRequest struct {
	Window WindowPayload `json:"window" binding:"required"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Locale string        `json:"locale"`
}

// SuggestionsRequest POST /availability/suggestions
type SuggestionsRequest struct {
	Windows        []WindowPayload `json:"windows" binding:"dive"`
	StartDate      string          `json:"start_date" binding:"required"`
	EndDate        string          `json:"end_date" binding:"required"`
	MaxSuggestions int             `json:"max_suggestions" binding:"omitempty,min=1,max=50"`
	Locale         string          `json:"locale"`
}

// DateCheckRequest POST /availability/date-check
type DateCheckRequest struct {
	Windows []WindowPayload `json:"windows" binding:"dive"`
	Date    string          `json:"date" binding:"required"`
}

// FormatRangeRequest GET /availability/format-range
type FormatRangeRequest struct {
	Start  string `form:"start" binding:"required"`
	End    string `form:"end" binding:"required"`
	Locale string `form:"locale"`
}

// ── Responses ──

// AvailableSlotResponse a free interval.
type AvailableSlotResponse struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
	Label        string `json:"label"`
}

// SlotResponse a slot echoed back with its display label.
type SlotResponse struct {
	ID        int64  `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Label     string `json:"label"`
}

// ConflictResponse overlap between the requested range and a slot.
type ConflictResponse struct {
	Slot           SlotResponse `json:"slot"`
	RequestedStart string       `json:"requested_start"`
	RequestedEnd   string       `json:"requested_end"`
	OverlapStart   string       `json:"overlap_start"`
	OverlapEnd     string       `json:"overlap_end"`
}

// FreeSlotsResponse free intervals in chronological order.
type FreeSlotsResponse struct {
	List []AvailableSlotResponse `json:"list"`
}

// ConflictsResponse conflicts plus the user-facing message ("" when none).
type ConflictsResponse struct {
	List    []ConflictResponse `json:"list"`
	Message string             `json:"message"`
}

// StatusResponse aggregate availability.
// conflicts_checked=false means the range was incomplete and conflicts were not computed.
type StatusResponse struct {
	IsAvailable          bool                    `json:"is_available"`
	IsPartiallyAvailable bool                    `json:"is_partially_available"`
	AvailableDays        int                     `json:"available_days"`
	TotalDays            int                     `json:"total_days"`
	ConflictsChecked     bool                    `json:"conflicts_checked"`
	Conflicts            []ConflictResponse      `json:"conflicts"`
	AvailableSlots       []AvailableSlotResponse `json:"available_slots"`
	Message              string                  `json:"message"`
}

// SuggestionsResponse alternative free intervals, closest first.
type SuggestionsResponse struct {
	List []AvailableSlotResponse `json:"list"`
}

// DateCheckResponse point-in-time availability.
type DateCheckResponse struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Covered   bool   `json:"covered"`
	WindowID  *int64 `json:"window_id,omitempty"`
	Ambiguous bool   `json:"ambiguous"`
}

// FormatRangeResponse formatted range.
type FormatRangeResponse struct {
	Text string `json:"text"`
}
