package dto

// ── Spreadsheet export ──

// ExportAvailabilityRequest POST /export/availability
type ExportAvailabilityRequest struct {
	Window WindowPayload `json:"window" binding:"required"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Locale string        `json:"locale"`
}

// ── iCalendar ──

// ExportCalendarRequest POST /calendars/export
type ExportCalendarRequest struct {
	Windows []WindowPayload `json:"windows" binding:"required,min=1,dive"`
	Name    string          `json:"name" binding:"omitempty,max=100"`
	Locale  string          `json:"locale"`
}

// ImportCalendarRequest POST /calendars/import (URL form)
type ImportCalendarRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ImportCalendarResponse events converted to OCCUPIED slots, ready to be
// merged into a window by the caller.
type ImportCalendarResponse struct {
	ImportedCount int           `json:"imported_count"`
	SkippedCount  int           `json:"skipped_count"`
	Slots         []SlotPayload `json:"slots"`
}
