package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/availability"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/dto"
)

// ── Calendar errors ──

var (
	ErrCalendarParse = errors.New("fichier iCalendar invalide")
	ErrCalendarFetch = errors.New("impossible de récupérer le calendrier distant")

	errCalendarHostBlocked = errors.New("calendar host resolves to a non-public address")
)

const calendarProductID = "-//Voisin comme cochon//Disponibilites//FR"

// CalendarService converts between windows and iCalendar (RFC 5545).
//
//   - export: free intervals and blocking slots become all-day VEVENTs
//   - import: every VEVENT becomes an OCCUPIED slot, so an owner can block
//     the days already booked in another calendar
type CalendarService interface {
	// ExportICS returns the calendar and a suggested file name.
	ExportICS(ctx context.Context, req *dto.ExportCalendarRequest) (*bytes.Buffer, string, error)
	// ImportICS converts the events read from r into slots.
	ImportICS(ctx context.Context, r io.Reader) (*dto.ImportCalendarResponse, error)
	// FetchICSContent downloads a remote calendar (http, https or webcal).
	// Bodies above ics.max_size and hosts resolving to loopback, private or
	// link-local addresses are refused. The caller closes the result.
	FetchICSContent(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

type calendarService struct {
	cfg    *config.AvailabilityConfig
	limits *config.ICSConfig
	loc    *time.Location
	dates  availability.DateFormatter
	logger *zap.Logger
	client *http.Client
	now    func() time.Time
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(cfg *config.AvailabilityConfig, limits *config.ICSConfig, dates availability.DateFormatter, logger *zap.Logger) CalendarService {
	return &calendarService{
		cfg:    cfg,
		limits: limits,
		loc:    cfg.Location(),
		dates:  dates,
		logger: logger,
		client: newCalendarHTTPClient(limits),
		now:    time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// ExportICS
// ═══════════════════════════════════════════════════════════

func (s *calendarService) ExportICS(_ context.Context, req *dto.ExportCalendarRequest) (*bytes.Buffer, string, error) {
	windows, err := toWindows(req.Windows, s.loc)
	if err != nil {
		return nil, "", err
	}

	p := newPresenter(s.cfg, s.dates, req.Locale)
	stamp := s.now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Disponibilités"
	}
	cal.SetXWRCalName(name)

	for _, w := range windows {
		free, err := availability.GetAvailableSlots(w, availability.Bounds{})
		if err != nil {
			return nil, "", err
		}
		for _, f := range free {
			ev := cal.AddEvent(fmt.Sprintf("free-%d-%s@voisin-comme-cochon", w.ID, f.StartDate.Format("20060102")))
			ev.SetDtStampTime(stamp)
			ev.SetAllDayStartAt(f.StartDate)
			ev.SetAllDayEndAt(f.EndDate.AddDate(0, 0, 1))
			ev.SetSummary(availability.StatusAvailable.Label(p.locale))
			ev.SetDescription(p.rangeLabel(f.StartDate, f.EndDate))
			ev.AddProperty(ics.ComponentPropertyCategories, string(availability.StatusAvailable))
		}
		for i, sl := range w.Slots {
			if !sl.Status.Blocking() {
				continue
			}
			ev := cal.AddEvent(fmt.Sprintf("slot-%d-%d-%d@voisin-comme-cochon", w.ID, sl.ID, i))
			ev.SetDtStampTime(stamp)
			ev.SetAllDayStartAt(availability.StartOfDay(sl.StartDate))
			ev.SetAllDayEndAt(availability.StartOfDay(sl.EndDate).AddDate(0, 0, 1))
			ev.SetSummary(sl.Status.Label(p.locale))
			ev.SetDescription(p.rangeLabel(sl.StartDate, sl.EndDate))
			ev.AddProperty(ics.ComponentPropertyCategories, string(sl.Status))
		}
	}

	filename := fmt.Sprintf("disponibilites_%s.ics", stamp.Format("20060102"))
	return bytes.NewBufferString(cal.Serialize()), filename, nil
}

// ═══════════════════════════════════════════════════════════
// ImportICS
// ═══════════════════════════════════════════════════════════
//
// Rules:
//   - DTSTART is required; events without it are skipped
//   - a missing DTEND means a single day
//   - a date-only DTEND, or a DTEND at midnight, is exclusive
//   - STATUS:CANCELLED events are skipped
//   - RRULE is not expanded: only the first occurrence is imported

func (s *calendarService) ImportICS(_ context.Context, r io.Reader) (*dto.ImportCalendarResponse, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarParse, err)
	}

	resp := &dto.ImportCalendarResponse{Slots: []dto.SlotPayload{}}
	for _, ev := range cal.Events() {
		start, end, ok := s.eventDays(ev)
		if !ok {
			resp.SkippedCount++
			continue
		}
		resp.Slots = append(resp.Slots, dto.SlotPayload{
			ID:        int64(len(resp.Slots) + 1),
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
			Status:    string(availability.StatusOccupied),
		})
	}
	resp.ImportedCount = len(resp.Slots)

	s.logger.Info("calendar imported",
		zap.Int("imported", resp.ImportedCount),
		zap.Int("skipped", resp.SkippedCount),
	)
	return resp, nil
}

// eventDays returns the inclusive day range covered by ev.
func (s *calendarService) eventDays(ev *ics.VEvent) (time.Time, time.Time, bool) {
	if st := ev.GetProperty(ics.ComponentPropertyStatus); st != nil && strings.EqualFold(st.Value, string(ics.ObjectStatusCancelled)) {
		return time.Time{}, time.Time{}, false
	}

	start, _, err := parseICSDateTime(ev, ics.ComponentPropertyDtStart, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, dateOnly, err := parseICSDateTime(ev, ics.ComponentPropertyDtEnd, s.loc)
	if err != nil {
		end, dateOnly = start, false
	}

	if end.After(start) && (dateOnly || end.Equal(availability.StartOfDay(end))) {
		end = end.AddDate(0, 0, -1)
	}
	start, end = availability.StartOfDay(start), availability.StartOfDay(end)
	if end.Before(start) {
		end = start
	}
	return start, end, true
}

// parseICSDateTime reads a DATE or DATE-TIME property of ev in loc.
// dateOnly reports a DATE value ("20240305").
func parseICSDateTime(ev *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	prop := ev.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", propName)
	}
	val := strings.TrimSpace(prop.Value)

	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}
	for _, layout := range formats {
		parsed, err := time.Parse(layout, val)
		if err != nil {
			continue
		}
		switch {
		case strings.HasSuffix(layout, "Z"):
			return parsed.In(loc), false, nil
		case layout == "20060102":
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), true, nil
		case tzid != "":
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, tzLoc).In(loc), false, nil
			}
		}
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), false, nil
	}
	return time.Time{}, false, fmt.Errorf("unparseable date %q", val)
}

// ═══════════════════════════════════════════════════════════
// FetchICSContent
// ═══════════════════════════════════════════════════════════

func (s *calendarService) FetchICSContent(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := calendarURL(rawURL)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ErrCalendarFetch
	}
	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Warn("calendar fetch failed", zap.String("host", u.Host), zap.Error(err))
		return nil, ErrCalendarFetch
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("calendar fetch failed", zap.String("host", u.Host), zap.Int("status", resp.StatusCode))
		return nil, ErrCalendarFetch
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.limits.MaxSize+1))
	if err != nil {
		s.logger.Warn("calendar read failed", zap.String("host", u.Host), zap.Error(err))
		return nil, ErrCalendarFetch
	}
	if int64(len(data)) > s.limits.MaxSize {
		s.logger.Warn("calendar too large", zap.String("host", u.Host), zap.Int64("max_size", s.limits.MaxSize))
		return nil, fmt.Errorf("%w: plus de %d octets", ErrCalendarFetch, s.limits.MaxSize)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// calendarURL rewrites webcal:// to https:// and accepts http and https only.
func calendarURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, ErrCalendarFetch
	}
	if strings.EqualFold(u.Scheme, "webcal") {
		u.Scheme = "https"
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: schéma %q non pris en charge", ErrCalendarFetch, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, ErrCalendarFetch
	}
	return u, nil
}

// newCalendarHTTPClient builds the client used for remote calendars. Unless
// limits.AllowPrivateHosts is set, every dialed address (redirects included)
// must be public. Environment proxies are ignored so the check sees the
// real target.
func newCalendarHTTPClient(limits *config.ICSConfig) *http.Client {
	dialer := &net.Dialer{Timeout: limits.FetchTimeout}
	if !limits.AllowPrivateHosts {
		dialer.Control = publicAddressOnly
	}
	return &http.Client{
		Timeout: limits.FetchTimeout,
		Transport: &http.Transport{
			Proxy:               nil,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: limits.FetchTimeout,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// publicAddressOnly runs after DNS resolution, on the address actually dialed.
func publicAddressOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return fmt.Errorf("%w: %s", errCalendarHostBlocked, host)
	}
	return nil
}

var sharedAddressSpace = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

func isPublicIP(ip net.IP) bool {
	switch {
	case ip.IsLoopback(), ip.IsPrivate(), ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast():
		return false
	case sharedAddressSpace.Contains(ip):
		return false
	}
	return true
}
