package availability

import (
	"fmt"
	"time"

	apperrors "github.com/Voisin-comme-cochon/Web-sub001/pkg/errors"
)

const dateLayout = "2006-01-02"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}

// DaysBetween counts calendar days from a to b (negative when b is earlier).
// DST transitions do not affect the result.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / 86400)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

func addDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// ── Validation ──

func validateRange(field string, start, end time.Time) error {
	if DaysBetween(start, end) < 0 {
		return apperrors.NewValidationError(field, "start %s is after end %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return nil
}

// Validate rejects reversed ranges and unknown statuses on w and its slots.
func (w Window) Validate() error {
	if err := validateRange(fmt.Sprintf("window %d", w.ID), w.StartDate, w.EndDate); err != nil {
		return err
	}
	for _, s := range w.Slots {
		field := fmt.Sprintf("window %d slot %d", w.ID, s.ID)
		if err := validateRange(field, s.StartDate, s.EndDate); err != nil {
			return err
		}
		if !s.Status.Valid() {
			return apperrors.NewValidationError(field, "unknown slot status %q", string(s.Status))
		}
	}
	return nil
}

// Validate rejects a reversed range.
func (r DateRange) Validate() error {
	return validateRange("requested range", r.Start, r.End)
}

// Validate rejects reversed bounds when both sides are set.
func (b Bounds) Validate() error {
	if !b.complete() {
		return nil
	}
	return validateRange("requested range", b.From, b.To)
}

func validateWindows(windows []Window) error {
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}
