package availability

import (
	"fmt"
	"time"

	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
)

// DateFormatter renders a date with a Go reference layout in a locale.
type DateFormatter interface {
	Format(t time.Time, layout, locale string) string
}

// catalog holds the copy of one locale.
type catalog struct {
	dayLayout      string
	rangeLayout    string
	rangeTemplate  string
	conflictOne    string
	conflictMany   string
	labelAvailable string
	labelReserved  string
	labelOccupied  string
}

var catalogs = map[string]catalog{
	datefmt.LocaleFR: {
		dayLayout:      "02 Jan 2006",
		rangeLayout:    "02 Jan",
		rangeTemplate:  "Du %s au %s",
		conflictOne:    "Conflit avec un créneau %s : %s",
		conflictMany:   "%d conflits détectés avec des créneaux existants",
		labelAvailable: "disponible",
		labelReserved:  "réservé",
		labelOccupied:  "occupé",
	},
	datefmt.LocaleEN: {
		dayLayout:      "02 Jan 2006",
		rangeLayout:    "02 Jan",
		rangeTemplate:  "From %s to %s",
		conflictOne:    "Conflicts with a %s slot: %s",
		conflictMany:   "%d conflicts with existing slots",
		labelAvailable: "available",
		labelReserved:  "reserved",
		labelOccupied:  "occupied",
	},
}

func catalogFor(locale string) catalog {
	if c, ok := catalogs[datefmt.Normalize(locale)]; ok {
		return c
	}
	return catalogs[datefmt.LocaleFR]
}

// FormatDateRange renders [start, end] for display: "05 mars 2024" when both
// fall on the same calendar day, "Du 05 mars au 07 mars 2024" otherwise.
func FormatDateRange(start, end time.Time, f DateFormatter, locale string) (string, error) {
	if err := validateRange("range", start, end); err != nil {
		return "", err
	}
	return formatRange(start, end, f, locale), nil
}

func formatRange(start, end time.Time, f DateFormatter, locale string) string {
	c := catalogFor(locale)
	if SameDay(start, end) {
		return f.Format(start, c.dayLayout, locale)
	}
	return fmt.Sprintf(c.rangeTemplate,
		f.Format(start, c.rangeLayout, locale),
		f.Format(end, c.dayLayout, locale))
}

// ConflictMessage turns conflicts into user-facing validation text.
// It returns "" when there is nothing to report.
func ConflictMessage(conflicts []SlotConflict, f DateFormatter, locale string) string {
	c := catalogFor(locale)
	switch len(conflicts) {
	case 0:
		return ""
	case 1:
		s := conflicts[0].Slot
		return fmt.Sprintf(c.conflictOne,
			s.Status.Label(locale),
			formatRange(s.StartDate, s.EndDate, f, locale))
	default:
		return fmt.Sprintf(c.conflictMany, len(conflicts))
	}
}
