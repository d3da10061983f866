package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/availability"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
)

// LoanRequestService checks a borrow request against the item's windows
// before the request is submitted to the owner.
type LoanRequestService interface {
	Validate(ctx context.Context, req *dto.ValidateLoanRequest) (*dto.LoanValidationResponse, error)
}

type loanMessages struct {
	pastStart   string
	tooLong     string
	notCovered  string
	partialOnly string
}

var loanCatalog = map[string]loanMessages{
	datefmt.LocaleFR: {
		pastStart:   "La date de début ne peut pas être dans le passé",
		tooLong:     "La durée d'emprunt ne peut pas dépasser %d jours",
		notCovered:  "La période demandée n'est pas couverte par les disponibilités de l'objet",
		partialOnly: "L'objet n'est que partiellement disponible sur la période demandée",
	},
	datefmt.LocaleEN: {
		pastStart:   "The start date cannot be in the past",
		tooLong:     "A loan cannot last more than %d days",
		notCovered:  "The requested period is outside the item's availability",
		partialOnly: "The item is only partially available over the requested period",
	},
}

type loanRequestService struct {
	cfg    *config.AvailabilityConfig
	loc    *time.Location
	dates  availability.DateFormatter
	logger *zap.Logger
	now    func() time.Time
}

// NewLoanRequestService creates a LoanRequestService.
func NewLoanRequestService(cfg *config.AvailabilityConfig, dates availability.DateFormatter, logger *zap.Logger) LoanRequestService {
	return &loanRequestService{
		cfg:    cfg,
		loc:    cfg.Location(),
		dates:  dates,
		logger: logger,
		now:    time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// Validate
// ═══════════════════════════════════════════════════════════
//
// Malformed input (bad dates, start after end, invalid windows) is an error.
// Business rule violations are reported in the response:
//   - the start date must not be before today
//   - the loan must not exceed max_loan_days (0 = unlimited)
//   - one window must contain the whole range
//   - that window must be free over the whole range
//
// Suggestions are attached whenever the request is refused; those ending
// before today are left out.

func (s *loanRequestService) Validate(_ context.Context, req *dto.ValidateLoanRequest) (*dto.LoanValidationResponse, error) {
	windows, err := toWindows(req.Windows, s.loc)
	if err != nil {
		return nil, err
	}
	r, err := toRange(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	p := newPresenter(s.cfg, s.dates, req.Locale)
	msgs := loanCatalog[p.locale]
	today := availability.StartOfDay(s.now().In(s.loc))

	resp := &dto.LoanValidationResponse{
		Errors:      []string{},
		Suggestions: []dto.AvailableSlotResponse{},
	}

	if r.Start.Before(today) {
		resp.Errors = append(resp.Errors, msgs.pastStart)
	}
	if days := availability.DaysBetween(r.Start, r.End) + 1; s.cfg.MaxLoanDays > 0 && days > s.cfg.MaxLoanDays {
		resp.Errors = append(resp.Errors, fmt.Sprintf(msgs.tooLong, s.cfg.MaxLoanDays))
	}

	if w, ok := coveringWindow(windows, r); !ok {
		resp.Errors = append(resp.Errors, msgs.notCovered)
	} else {
		id := w.ID
		resp.WindowID = &id

		st, err := availability.CalculateAvailabilityStatus(w, availability.Bounds{From: r.Start, To: r.End})
		if err != nil {
			return nil, err
		}
		resp.Status = p.status(st)
		if !st.IsAvailable {
			if msg := resp.Status.Message; msg != "" {
				resp.Errors = append(resp.Errors, msg)
			} else {
				resp.Errors = append(resp.Errors, msgs.partialOnly)
			}
		}
	}

	resp.Valid = len(resp.Errors) == 0
	if resp.Valid {
		return resp, nil
	}

	upcoming, err := s.upcomingSuggestions(windows, r, today)
	if err != nil {
		return nil, err
	}
	resp.Suggestions = p.availableSlots(upcoming)

	s.logger.Debug("loan request refused",
		zap.String("start", r.Start.Format(dateLayout)),
		zap.String("end", r.End.Format(dateLayout)),
		zap.Int("errors", len(resp.Errors)),
		zap.Int("suggestions", len(resp.Suggestions)),
	)
	return resp, nil
}

// upcomingSuggestions ranks every qualifying free interval, drops those
// ending before today, then keeps the first max_suggestions.
func (s *loanRequestService) upcomingSuggestions(windows []availability.Window, r availability.DateRange, today time.Time) ([]availability.AvailableSlot, error) {
	limit := s.cfg.MaxSuggestions
	if limit <= 0 {
		limit = availability.DefaultMaxSuggestions
	}

	total := 0
	for _, w := range windows {
		free, err := availability.GetAvailableSlots(w, availability.Bounds{})
		if err != nil {
			return nil, err
		}
		total += len(free)
	}
	if total == 0 {
		return nil, nil
	}

	ranked, err := availability.SuggestAlternativeSlots(windows, r, total)
	if err != nil {
		return nil, err
	}
	upcoming := make([]availability.AvailableSlot, 0, limit)
	for _, sg := range ranked {
		if sg.EndDate.Before(today) {
			continue
		}
		upcoming = append(upcoming, sg)
		if len(upcoming) == limit {
			break
		}
	}
	return upcoming, nil
}

// coveringWindow returns the first window containing the whole range.
func coveringWindow(windows []availability.Window, r availability.DateRange) (availability.Window, bool) {
	for _, w := range windows {
		if !r.Start.Before(availability.StartOfDay(w.StartDate)) && !availability.StartOfDay(r.End).After(availability.StartOfDay(w.EndDate)) {
			return w, true
		}
	}
	return availability.Window{}, false
}
