package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
	apperrors "github.com/Voisin-comme-cochon/Web-sub001/pkg/errors"
)

func setupTestExportService(maxDays int) ExportService {
	return NewExportService(testAvailabilityConfig(), &config.ExportConfig{MaxDays: maxDays}, datefmt.New(), zap.NewNop())
}

func TestExportService_ExportWindow(t *testing.T) {
	svc := setupTestExportService(366)

	buf, filename, err := svc.ExportWindow(context.Background(), &dto.ExportAvailabilityRequest{
		Window: marchPayload(
			slotPayload(1, "2024-03-05", "2024-03-06", "RESERVED"),
			slotPayload(2, "2024-03-09", "2024-03-09", "OCCUPIED"),
		),
	})
	if err != nil {
		t.Fatalf("ExportWindow: %v", err)
	}
	if filename != "disponibilites_1_20240301.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != sheetDays || sheets[1] != sheetFreeSlots {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(sheetDays)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// title + header + 10 days
	if len(rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(rows))
	}
	checks := map[string]string{
		"A3":  "2024-03-01",
		"C3":  "disponible",
		"A7":  "2024-03-05",
		"C7":  "réservé",
		"C8":  "réservé",
		"C11": "occupé",
		"C12": "disponible",
	}
	for axis, want := range checks {
		got, _ := f.GetCellValue(sheetDays, axis)
		if got != want {
			t.Errorf("%s = %q, want %q", axis, got, want)
		}
	}

	free, err := f.GetRows(sheetFreeSlots)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header + 3 free intervals
	if len(free) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(free))
	}
	if free[1][0] != "2024-03-01" || free[1][1] != "2024-03-04" || free[1][2] != "4" {
		t.Errorf("unexpected first interval row %v", free[1])
	}
	if free[3][0] != "2024-03-10" || free[3][3] != "10 mars 2024" {
		t.Errorf("unexpected last interval row %v", free[3])
	}
}

func TestExportService_ExportWindow_Bounded(t *testing.T) {
	svc := setupTestExportService(366)

	buf, _, err := svc.ExportWindow(context.Background(), &dto.ExportAvailabilityRequest{
		Window: marchPayload(),
		From:   "2024-03-04",
		To:     "2024-03-06",
	})
	if err != nil {
		t.Fatalf("ExportWindow: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(sheetDays)
	if len(rows) != 5 {
		t.Fatalf("expected 3 day rows, got %d rows", len(rows))
	}
	if got, _ := f.GetCellValue(sheetDays, "A3"); got != "2024-03-04" {
		t.Errorf("first exported day = %q", got)
	}
}

func TestExportService_ExportWindow_TooLarge(t *testing.T) {
	svc := setupTestExportService(5)

	_, _, err := svc.ExportWindow(context.Background(), &dto.ExportAvailabilityRequest{Window: marchPayload()})
	if !errors.Is(err, ErrExportRangeTooLarge) {
		t.Errorf("expected ErrExportRangeTooLarge, got %v", err)
	}
}

func TestExportService_ExportWindow_Invalid(t *testing.T) {
	svc := setupTestExportService(366)

	_, _, err := svc.ExportWindow(context.Background(), &dto.ExportAvailabilityRequest{
		Window: dto.WindowPayload{StartDate: "2024-03-10", EndDate: "2024-03-01"},
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
