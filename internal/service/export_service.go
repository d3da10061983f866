package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/availability"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
)

// ── Export errors ──

var (
	ErrExportRangeTooLarge = errors.New("période d'export trop longue")
	ErrExportGenerateFail  = errors.New("échec de la génération du fichier Excel")
)

const (
	sheetDays      = "Disponibilités"
	sheetFreeSlots = "Créneaux libres"
)

// ExportService renders a window as an Excel workbook (.xlsx).
//
// The workbook is returned as a bytes.Buffer; the handler sets the
// download headers.
type ExportService interface {
	// ExportWindow returns the workbook and a suggested file name.
	ExportWindow(ctx context.Context, req *dto.ExportAvailabilityRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.AvailabilityConfig
	limits *config.ExportConfig
	loc    *time.Location
	dates  availability.DateFormatter
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(cfg *config.AvailabilityConfig, limits *config.ExportConfig, dates availability.DateFormatter, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, limits: limits, loc: cfg.Location(), dates: dates, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWindow
// ═══════════════════════════════════════════════════════════
//
// Sheets:
//   - "Disponibilités": one row per day of the exported range with its
//     status, filled with the status color
//   - "Créneaux libres": the free intervals of the range
//
// The range is the window clipped by the optional bounds.

func (s *exportService) ExportWindow(_ context.Context, req *dto.ExportAvailabilityRequest) (*bytes.Buffer, string, error) {
	w, err := toWindow("window", req.Window, s.loc)
	if err != nil {
		return nil, "", err
	}
	b, err := toBounds(req.From, req.To, s.loc)
	if err != nil {
		return nil, "", err
	}

	free, err := availability.GetAvailableSlots(w, b)
	if err != nil {
		return nil, "", err
	}

	from, to := w.StartDate, w.EndDate
	if !b.From.IsZero() {
		from = b.From
	}
	if !b.To.IsZero() {
		to = b.To
	}
	days := availability.DaysBetween(from, to) + 1
	if days > s.limits.MaxDays {
		return nil, "", fmt.Errorf("%w: %d jours (maximum %d)", ErrExportRangeTooLarge, days, s.limits.MaxDays)
	}

	p := newPresenter(s.cfg, s.dates, req.Locale)

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(sheetDays)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.NewSheet(sheetFreeSlots)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	statusStyles := make(map[availability.SlotStatus]int, 3)
	for _, st := range []availability.SlotStatus{availability.StatusAvailable, availability.StatusReserved, availability.StatusOccupied} {
		statusStyles[st], _ = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{st.Color()}, Pattern: 1},
		})
	}

	// ── Day grid ──
	f.SetColWidth(sheetDays, "A", "A", 14)
	f.SetColWidth(sheetDays, "B", "B", 18)
	f.SetColWidth(sheetDays, "C", "C", 14)

	f.SetCellValue(sheetDays, "A1", fmt.Sprintf("Fenêtre %d : %s", w.ID, p.rangeLabel(from, to)))
	f.MergeCell(sheetDays, "A1", "C1")
	f.SetCellStyle(sheetDays, "A1", "A1", headerStyle)

	f.SetCellValue(sheetDays, "A2", "Date")
	f.SetCellValue(sheetDays, "B2", "Jour")
	f.SetCellValue(sheetDays, "C2", "Statut")
	f.SetCellStyle(sheetDays, "A2", "C2", headerStyle)

	row := 3
	for day := availability.StartOfDay(from); !day.After(to); day = day.AddDate(0, 0, 1) {
		st, ok := availability.StatusOn(w, day)
		if !ok {
			continue
		}
		f.SetCellValue(sheetDays, cell("A", row), day.Format(dateLayout))
		f.SetCellValue(sheetDays, cell("B", row), s.dates.Format(day, "Monday 02 Jan", p.locale))
		f.SetCellValue(sheetDays, cell("C", row), st.Label(p.locale))
		f.SetCellStyle(sheetDays, cell("A", row), cell("C", row), statusStyles[st])
		row++
	}

	// ── Free intervals ──
	f.SetColWidth(sheetFreeSlots, "A", "B", 14)
	f.SetColWidth(sheetFreeSlots, "C", "C", 14)
	f.SetColWidth(sheetFreeSlots, "D", "D", 32)

	f.SetCellValue(sheetFreeSlots, "A1", "Début")
	f.SetCellValue(sheetFreeSlots, "B1", "Fin")
	f.SetCellValue(sheetFreeSlots, "C1", "Durée (jours)")
	f.SetCellValue(sheetFreeSlots, "D1", "Période")
	f.SetCellStyle(sheetFreeSlots, "A1", "D1", headerStyle)

	for i, sl := range p.availableSlots(free) {
		r := i + 2
		f.SetCellValue(sheetFreeSlots, cell("A", r), sl.StartDate)
		f.SetCellValue(sheetFreeSlots, cell("B", r), sl.EndDate)
		f.SetCellValue(sheetFreeSlots, cell("C", r), sl.DurationDays)
		f.SetCellValue(sheetFreeSlots, cell("D", r), sl.Label)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Int64("window_id", w.ID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("disponibilites_%d_%s.xlsx", w.ID, from.Format("20060102"))
	return buf, filename, nil
}

// ── Helpers ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
