package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Availability.Locale != "fr" || cfg.Availability.MaxSuggestions != 3 {
		t.Errorf("unexpected availability defaults: %+v", cfg.Availability)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected 1m rate limit window, got %s", cfg.RateLimit.Window)
	}
	if cfg.ICS.FetchTimeout != 30*time.Second {
		t.Errorf("expected 30s ICS fetch timeout, got %s", cfg.ICS.FetchTimeout)
	}
	if cfg.ICS.AllowPrivateHosts || len(cfg.Server.TrustedProxies) != 0 {
		t.Errorf("expected private hosts and proxies off by default, got %+v %+v", cfg.ICS, cfg.Server)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9090\navailability:\n  locale: en\n  max_loan_days: 14\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VOISIN_AVAILABILITY_MAX_SUGGESTIONS", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090 from file, got %d", cfg.Server.Port)
	}
	if cfg.Availability.Locale != "en" || cfg.Availability.MaxLoanDays != 14 {
		t.Errorf("file values not applied: %+v", cfg.Availability)
	}
	if cfg.Availability.MaxSuggestions != 5 {
		t.Errorf("expected env override 5, got %d", cfg.Availability.MaxSuggestions)
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return cfg
	}

	cases := map[string]func(c *Config){
		"port":        func(c *Config) { c.Server.Port = 0 },
		"locale":      func(c *Config) { c.Availability.Locale = "de" },
		"timezone":    func(c *Config) { c.Availability.Timezone = "Mars/Olympus" },
		"suggestions": func(c *Config) { c.Availability.MaxSuggestions = 0 },
		"export":      func(c *Config) { c.Export.MaxDays = 0 },
		"rate limit":  func(c *Config) { c.RateLimit.Requests = 0 },
		"proxies":     func(c *Config) { c.Server.TrustedProxies = []string{"not-an-ip"} },
		"ics size":    func(c *Config) { c.ICS.MaxSize = 0 },
		"ics timeout": func(c *Config) { c.ICS.FetchTimeout = 0 },
	}
	for name, mutate := range cases {
		cfg := base()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
