package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/availability"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
	apperrors "github.com/Voisin-comme-cochon/Web-sub001/pkg/errors"
)

const dateLayout = "2006-01-02"

// ── Payload → engine ──

// parseDate accepts "2006-01-02" (read in loc) or an RFC 3339 timestamp
// (converted to loc, then truncated to its day).
func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return availability.StartOfDay(t.In(loc)), nil
	}
	return time.Time{}, apperrors.NewValidationError(field, "date invalide %q, format attendu AAAA-MM-JJ", value)
}

// parseOptionalDate returns the zero time for an empty value.
func parseOptionalDate(field, value string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return parseDate(field, value, loc)
}

func toBounds(from, to string, loc *time.Location) (availability.Bounds, error) {
	f, err := parseOptionalDate("from", from, loc)
	if err != nil {
		return availability.Bounds{}, err
	}
	t, err := parseOptionalDate("to", to, loc)
	if err != nil {
		return availability.Bounds{}, err
	}
	return availability.Bounds{From: f, To: t}, nil
}

func toRange(start, end string, loc *time.Location) (availability.DateRange, error) {
	s, err := parseDate("start_date", start, loc)
	if err != nil {
		return availability.DateRange{}, err
	}
	e, err := parseDate("end_date", end, loc)
	if err != nil {
		return availability.DateRange{}, err
	}
	return availability.DateRange{Start: s, End: e}, nil
}

func toWindow(prefix string, p dto.WindowPayload, loc *time.Location) (availability.Window, error) {
	start, err := parseDate(prefix+".start_date", p.StartDate, loc)
	if err != nil {
		return availability.Window{}, err
	}
	end, err := parseDate(prefix+".end_date", p.EndDate, loc)
	if err != nil {
		return availability.Window{}, err
	}

	w := availability.Window{
		ID:        p.ID,
		StartDate: start,
		EndDate:   end,
		Slots:     make([]availability.Slot, 0, len(p.Slots)),
	}
	for i, sp := range p.Slots {
		field := fmt.Sprintf("%s.slots[%d]", prefix, i)
		s, err := toSlot(field, sp, loc)
		if err != nil {
			return availability.Window{}, err
		}
		w.Slots = append(w.Slots, s)
	}
	return w, nil
}

func toWindows(payloads []dto.WindowPayload, loc *time.Location) ([]availability.Window, error) {
	windows := make([]availability.Window, 0, len(payloads))
	for i, p := range payloads {
		w, err := toWindow(fmt.Sprintf("windows[%d]", i), p, loc)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func toSlot(field string, p dto.SlotPayload, loc *time.Location) (availability.Slot, error) {
	start, err := parseDate(field+".start_date", p.StartDate, loc)
	if err != nil {
		return availability.Slot{}, err
	}
	end, err := parseDate(field+".end_date", p.EndDate, loc)
	if err != nil {
		return availability.Slot{}, err
	}
	status, err := availability.ParseSlotStatus(p.Status)
	if err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			ve.Field = field + ".status"
		}
		return availability.Slot{}, err
	}
	return availability.Slot{ID: p.ID, StartDate: start, EndDate: end, Status: status}, nil
}

// ── Engine → response ──

// presenter renders engine results in one locale.
type presenter struct {
	dates  availability.DateFormatter
	locale string
}

// newPresenter picks locale when supported, else the configured default.
func newPresenter(cfg *config.AvailabilityConfig, dates availability.DateFormatter, locale string) presenter {
	if !datefmt.Supported(locale) {
		locale = cfg.Locale
	}
	return presenter{dates: dates, locale: datefmt.Normalize(locale)}
}

func (p presenter) rangeLabel(start, end time.Time) string {
	label, err := availability.FormatDateRange(start, end, p.dates, p.locale)
	if err != nil {
		return start.Format(dateLayout) + " / " + end.Format(dateLayout)
	}
	return label
}

func (p presenter) availableSlots(slots []availability.AvailableSlot) []dto.AvailableSlotResponse {
	out := make([]dto.AvailableSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.AvailableSlotResponse{
			StartDate:    s.StartDate.Format(dateLayout),
			EndDate:      s.EndDate.Format(dateLayout),
			DurationDays: s.DurationDays,
			Label:        p.rangeLabel(s.StartDate, s.EndDate),
		})
	}
	return out
}

func (p presenter) slot(s availability.Slot) dto.SlotResponse {
	return dto.SlotResponse{
		ID:        s.ID,
		StartDate: s.StartDate.Format(dateLayout),
		EndDate:   s.EndDate.Format(dateLayout),
		Status:    string(s.Status),
		Label:     s.Status.Label(p.locale),
	}
}

func (p presenter) conflicts(conflicts []availability.SlotConflict) []dto.ConflictResponse {
	out := make([]dto.ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, dto.ConflictResponse{
			Slot:           p.slot(c.Slot),
			RequestedStart: c.RequestedStart.Format(dateLayout),
			RequestedEnd:   c.RequestedEnd.Format(dateLayout),
			OverlapStart:   c.OverlapStart.Format(dateLayout),
			OverlapEnd:     c.OverlapEnd.Format(dateLayout),
		})
	}
	return out
}

func (p presenter) status(st availability.Status) *dto.StatusResponse {
	return &dto.StatusResponse{
		IsAvailable:          st.IsAvailable,
		IsPartiallyAvailable: st.IsPartiallyAvailable,
		AvailableDays:        st.AvailableDays,
		TotalDays:            st.TotalDays,
		ConflictsChecked:     st.ConflictsChecked,
		Conflicts:            p.conflicts(st.Conflicts),
		AvailableSlots:       p.availableSlots(st.AvailableSlots),
		Message:              availability.ConflictMessage(st.Conflicts, p.dates, p.locale),
	}
}
