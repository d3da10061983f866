package service

import (
	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/availability"
)

// Service groups every service behind the HTTP handlers.
type Service struct {
	Availability AvailabilityService
	LoanRequest  LoanRequestService
	Export       ExportService
	Calendar     CalendarService
}

// NewService wires the services. dates renders localized labels.
func NewService(
	cfg *config.Config,
	dates availability.DateFormatter,
	logger *zap.Logger,
) *Service {
	return &Service{
		Availability: NewAvailabilityService(&cfg.Availability, dates, logger),
		LoanRequest:  NewLoanRequestService(&cfg.Availability, dates, logger),
		Export:       NewExportService(&cfg.Availability, &cfg.Export, dates, logger),
		Calendar:     NewCalendarService(&cfg.Availability, &cfg.ICS, dates, logger),
	}
}
