// Package availability computes free intervals, conflicts and availability
// status over date-bounded availability windows.
//
// Every function is pure: windows and slots are read, never modified, and
// results are freshly allocated. Dates are calendar dates; time of day is
// dropped by normalizing to the start of the day in the value's location.
package availability

import (
	"strings"
	"time"

	apperrors "github.com/Voisin-comme-cochon/Web-sub001/pkg/errors"
)

// DefaultMaxSuggestions is used by SuggestAlternativeSlots when the caller passes 0.
const DefaultMaxSuggestions = 3

// ── Slot status ──

// SlotStatus is the state of a slot inside a window.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "AVAILABLE"
	StatusReserved  SlotStatus = "RESERVED"
	StatusOccupied  SlotStatus = "OCCUPIED"
)

// ParseSlotStatus accepts the three known statuses, case-insensitively.
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch st := SlotStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusAvailable, StatusReserved, StatusOccupied:
		return st, nil
	}
	return "", apperrors.NewValidationError("status", "unknown slot status %q", s)
}

// Valid reports whether s is one of the known statuses.
func (s SlotStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusOccupied:
		return true
	}
	return false
}

// Blocking reports whether the slot makes its dates unavailable.
// RESERVED and OCCUPIED block; AVAILABLE behaves as if the slot were absent.
func (s SlotStatus) Blocking() bool {
	switch s {
	case StatusReserved, StatusOccupied:
		return true
	case StatusAvailable:
		return false
	}
	return false
}

// Label returns the display label of the status in locale.
func (s SlotStatus) Label(locale string) string {
	c := catalogFor(locale)
	switch s {
	case StatusAvailable:
		return c.labelAvailable
	case StatusReserved:
		return c.labelReserved
	case StatusOccupied:
		return c.labelOccupied
	}
	return string(s)
}

// Color returns the calendar fill color of the status.
func (s SlotStatus) Color() string {
	switch s {
	case StatusAvailable:
		return "#C6EFCE"
	case StatusReserved:
		return "#FFEB9C"
	case StatusOccupied:
		return "#FFC7CE"
	}
	return "#FFFFFF"
}

// ── Inputs ──

// Window is a period during which an item can nominally be borrowed.
type Window struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	Slots     []Slot
}

// Slot marks a sub-range of a window with a status.
type Slot struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	Status    SlotStatus
}

// DateRange is a mandatory closed range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bounds optionally clips a computation. A zero From or To leaves that side open.
type Bounds struct {
	From time.Time
	To   time.Time
}

func (b Bounds) complete() bool {
	return !b.From.IsZero() && !b.To.IsZero()
}

// ── Results ──

// AvailableSlot is a free interval. DurationDays counts both ends.
type AvailableSlot struct {
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int
}

// SlotConflict is the overlap between a requested range and a blocking slot.
type SlotConflict struct {
	Slot           Slot
	RequestedStart time.Time
	RequestedEnd   time.Time
	OverlapStart   time.Time
	OverlapEnd     time.Time
}

// Status aggregates availability of a window over an optional range.
//
// ConflictsChecked is false when the range was incomplete and conflicts were
// not computed; an empty Conflicts list then means "not checked", not "none".
type Status struct {
	IsAvailable          bool
	IsPartiallyAvailable bool
	AvailableDays        int
	TotalDays            int
	Conflicts            []SlotConflict
	ConflictsChecked     bool
	AvailableSlots       []AvailableSlot
}

// DateCheck is the outcome of a point-in-time lookup.
//
// Only the first window containing Date decides Available. Ambiguous is set
// when another window also contains Date; callers that keep windows
// non-overlapping per item never see it.
type DateCheck struct {
	Date      time.Time
	Available bool
	Covered   bool
	WindowID  int64
	Ambiguous bool
}
