package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/availability"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
)

// AvailabilityService exposes the availability engine over request DTOs.
//
// Every operation is a pure computation on the windows carried by the
// request; failures are *errors.ValidationError values.
type AvailabilityService interface {
	// FreeSlots lists the free intervals of a window, optionally bounded.
	FreeSlots(ctx context.Context, req *dto.FreeSlotsRequest) (*dto.FreeSlotsResponse, error)
	// Conflicts lists the blocking slots overlapping the requested range.
	Conflicts(ctx context.Context, req *dto.ConflictsRequest) (*dto.ConflictsResponse, error)
	// Status aggregates free days, conflicts and free intervals.
	Status(ctx context.Context, req *dto.StatusRequest) (*dto.StatusResponse, error)
	// Suggestions proposes free intervals close to the requested range.
	Suggestions(ctx context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, error)
	// CheckDate reports whether a single day is free.
	CheckDate(ctx context.Context, req *dto.DateCheckRequest) (*dto.DateCheckResponse, error)
	// FormatRange renders a range for display.
	FormatRange(ctx context.Context, req *dto.FormatRangeRequest) (*dto.FormatRangeResponse, error)
}

type availabilityService struct {
	cfg    *config.AvailabilityConfig
	loc    *time.Location
	dates  availability.DateFormatter
	logger *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService.
func NewAvailabilityService(cfg *config.AvailabilityConfig, dates availability.DateFormatter, logger *zap.Logger) AvailabilityService {
	return &availabilityService{cfg: cfg, loc: cfg.Location(), dates: dates, logger: logger}
}

func (s *availabilityService) FreeSlots(_ context.Context, req *dto.FreeSlotsRequest) (*dto.FreeSlotsResponse, error) {
	w, err := toWindow("window", req.Window, s.loc)
	if err != nil {
		return nil, err
	}
	b, err := toBounds(req.From, req.To, s.loc)
	if err != nil {
		return nil, err
	}

	slots, err := availability.GetAvailableSlots(w, b)
	if err != nil {
		s.logger.Debug("free slots rejected", zap.Int64("window_id", w.ID), zap.Error(err))
		return nil, err
	}

	p := newPresenter(s.cfg, s.dates, req.Locale)
	return &dto.FreeSlotsResponse{List: p.availableSlots(slots)}, nil
}

func (s *availabilityService) Conflicts(_ context.Context, req *dto.ConflictsRequest) (*dto.ConflictsResponse, error) {
	w, err := toWindow("window", req.Window, s.loc)
	if err != nil {
		return nil, err
	}
	r, err := toRange(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return nil, err
	}

	conflicts, err := availability.GetSlotConflicts(w, r)
	if err != nil {
		s.logger.Debug("conflict check rejected", zap.Int64("window_id", w.ID), zap.Error(err))
		return nil, err
	}

	p := newPresenter(s.cfg, s.dates, req.Locale)
	return &dto.ConflictsResponse{
		List:    p.conflicts(conflicts),
		Message: availability.ConflictMessage(conflicts, s.dates, p.locale),
	}, nil
}

func (s *availabilityService) Status(_ context.Context, req *dto.StatusRequest) (*dto.StatusResponse, error) {
	w, err := toWindow("window", req.Window, s.loc)
	if err != nil {
		return nil, err
	}
	b, err := toBounds(req.From, req.To, s.loc)
	if err != nil {
		return nil, err
	}

	st, err := availability.CalculateAvailabilityStatus(w, b)
	if err != nil {
		s.logger.Debug("status rejected", zap.Int64("window_id", w.ID), zap.Error(err))
		return nil, err
	}

	return newPresenter(s.cfg, s.dates, req.Locale).status(st), nil
}

func (s *availabilityService) Suggestions(_ context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, error) {
	windows, err := toWindows(req.Windows, s.loc)
	if err != nil {
		return nil, err
	}
	r, err := toRange(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return nil, err
	}

	limit := req.MaxSuggestions
	if limit <= 0 {
		limit = s.cfg.MaxSuggestions
	}
	slots, err := availability.SuggestAlternativeSlots(windows, r, limit)
	if err != nil {
		return nil, err
	}

	p := newPresenter(s.cfg, s.dates, req.Locale)
	return &dto.SuggestionsResponse{List: p.availableSlots(slots)}, nil
}

func (s *availabilityService) CheckDate(_ context.Context, req *dto.DateCheckRequest) (*dto.DateCheckResponse, error) {
	windows, err := toWindows(req.Windows, s.loc)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	check, err := availability.CheckDate(windows, date)
	if err != nil {
		return nil, err
	}
	if check.Ambiguous {
		s.logger.Warn("date covered by overlapping windows",
			zap.String("date", date.Format(dateLayout)),
			zap.Int64("window_id", check.WindowID),
		)
	}

	resp := &dto.DateCheckResponse{
		Date:      check.Date.Format(dateLayout),
		Available: check.Available,
		Covered:   check.Covered,
		Ambiguous: check.Ambiguous,
	}
	if check.Covered {
		id := check.WindowID
		resp.WindowID = &id
	}
	return resp, nil
}

func (s *availabilityService) FormatRange(_ context.Context, req *dto.FormatRangeRequest) (*dto.FormatRangeResponse, error) {
	r, err := toRange(req.Start, req.End, s.loc)
	if err != nil {
		return nil, err
	}
	p := newPresenter(s.cfg, s.dates, req.Locale)
	text, err := availability.FormatDateRange(r.Start, r.End, s.dates, p.locale)
	if err != nil {
		return nil, err
	}
	return &dto.FormatRangeResponse{Text: text}, nil
}
