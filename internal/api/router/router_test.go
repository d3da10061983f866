package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/api/handler"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/service"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/response"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: 8080, BodyLimit: 1 << 20},
		RateLimit: config.RateLimitConfig{Enabled: true, Requests: 100, Window: time.Minute},
		Availability: config.AvailabilityConfig{
			Locale:         datefmt.LocaleFR,
			Timezone:       "Europe/Paris",
			MaxSuggestions: 3,
			MaxLoanDays:    30,
		},
		Export: config.ExportConfig{MaxDays: 366},
		ICS:    config.ICSConfig{FetchTimeout: time.Second, MaxSize: 1 << 20},
	}
}

func setupRouter() http.Handler {
	cfg := testConfig()
	logger := zap.NewNop()
	svc := service.NewService(cfg, datefmt.New(), logger)
	return Setup(cfg, handler.NewHandler(svc), nil, logger)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"redis":"disabled"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestFreeSlotsEndToEnd(t *testing.T) {
	body := `{"window":{"id":1,"start_date":"2024-03-01","end_date":"2024-03-10",
		"slots":[{"id":1,"start_date":"2024-03-05","end_date":"2024-03-06","status":"RESERVED"}]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/free-slots", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Code int `json:"code"`
		Data struct {
			List []struct {
				StartDate string `json:"start_date"`
				EndDate   string `json:"end_date"`
				Label     string `json:"label"`
			} `json:"list"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.List) != 2 || resp.Data.List[1].Label != "Du 07 mars au 10 mars 2024" {
		t.Errorf("unexpected free slots %+v", resp.Data.List)
	}
}

func TestReversedRangeEndToEnd(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/format-range?start=2024-03-07&end=2024-03-05", nil)
	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != 20001 {
		t.Errorf("expected code 20001, got %d", resp.Code)
	}
}
