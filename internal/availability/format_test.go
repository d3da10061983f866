package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
	apperrors "github.com/Voisin-comme-cochon/Web-sub001/pkg/errors"
)

func TestFormatDateRange_French(t *testing.T) {
	f := datefmt.New()

	got, err := FormatDateRange(d("2024-03-05"), d("2024-03-05"), f, "fr")
	if err != nil {
		t.Fatalf("FormatDateRange: %v", err)
	}
	if got != "05 mars 2024" {
		t.Errorf("expected %q, got %q", "05 mars 2024", got)
	}

	got, err = FormatDateRange(d("2024-03-05"), d("2024-03-07"), f, "fr")
	if err != nil {
		t.Fatalf("FormatDateRange: %v", err)
	}
	if got != "Du 05 mars au 07 mars 2024" {
		t.Errorf("expected %q, got %q", "Du 05 mars au 07 mars 2024", got)
	}
}

func TestFormatDateRange_FrenchAbbreviatedMonths(t *testing.T) {
	got, err := FormatDateRange(d("2024-01-30"), d("2024-02-02"), datefmt.New(), "fr")
	if err != nil {
		t.Fatalf("FormatDateRange: %v", err)
	}
	if got != "Du 30 janv. au 02 févr. 2024" {
		t.Errorf("unexpected range %q", got)
	}
}

func TestFormatDateRange_SameDayDifferentTimes(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)

	got, err := FormatDateRange(start, end, datefmt.New(), "fr")
	if err != nil {
		t.Fatalf("FormatDateRange: %v", err)
	}
	if got != "05 mars 2024" {
		t.Errorf("same-day values must format as a single date, got %q", got)
	}
}

func TestFormatDateRange_English(t *testing.T) {
	got, err := FormatDateRange(d("2024-03-05"), d("2024-03-07"), datefmt.New(), "en")
	if err != nil {
		t.Fatalf("FormatDateRange: %v", err)
	}
	if got != "From 05 Mar to 07 Mar 2024" {
		t.Errorf("unexpected English range %q", got)
	}
}

func TestFormatDateRange_Reversed(t *testing.T) {
	_, err := FormatDateRange(d("2024-03-07"), d("2024-03-05"), datefmt.New(), "fr")
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestConflictMessage(t *testing.T) {
	f := datefmt.New()

	if msg := ConflictMessage(nil, f, "fr"); msg != "" {
		t.Errorf("expected empty message, got %q", msg)
	}

	one := []SlotConflict{{Slot: reserved(1, "2024-03-05", "2024-03-06")}}
	if msg := ConflictMessage(one, f, "fr"); msg != "Conflit avec un créneau réservé : Du 05 mars au 06 mars 2024" {
		t.Errorf("unexpected single conflict message %q", msg)
	}

	occ := []SlotConflict{{Slot: occupied(2, "2024-03-08", "2024-03-08")}}
	if msg := ConflictMessage(occ, f, "fr"); msg != "Conflit avec un créneau occupé : 08 mars 2024" {
		t.Errorf("unexpected occupied conflict message %q", msg)
	}

	many := append(one, occ...)
	if msg := ConflictMessage(many, f, "fr"); msg != "2 conflits détectés avec des créneaux existants" {
		t.Errorf("unexpected multi conflict message %q", msg)
	}
}

func TestSlotStatus_Helpers(t *testing.T) {
	if StatusAvailable.Blocking() || !StatusReserved.Blocking() || !StatusOccupied.Blocking() {
		t.Error("only RESERVED and OCCUPIED block")
	}
	if StatusReserved.Label("fr") != "réservé" || StatusOccupied.Label("en") != "occupied" {
		t.Error("unexpected status labels")
	}
	if StatusReserved.Color() == StatusOccupied.Color() {
		t.Error("reserved and occupied need distinct colors")
	}

	st, err := ParseSlotStatus(" reserved ")
	if err != nil || st != StatusReserved {
		t.Errorf("ParseSlotStatus: got %q, %v", st, err)
	}
	if _, err := ParseSlotStatus("LOST"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown status, got %v", err)
	}
}
