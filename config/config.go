package config

import (
	"fmt"
	"net"
	"strings"
	"time"
	_ "time/tzdata" // embedded zoneinfo for availability.timezone

	"github.com/spf13/viper"

	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
)

// Config is the global application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Log          LogConfig          `mapstructure:"log"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Availability AvailabilityConfig `mapstructure:"availability"`
	Export       ExportConfig       `mapstructure:"export"`
	ICS          ICSConfig          `mapstructure:"ics"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	BaseURL        string     `mapstructure:"base_url"`
	BodyLimit      int64      `mapstructure:"body_limit"`      // bytes
	TrustedProxies []string   `mapstructure:"trusted_proxies"` // empty: X-Forwarded-For is ignored
	CORS           CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RedisConfig Redis connection, used as the rate limit store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig per-client request budget.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// AvailabilityConfig engine defaults.
type AvailabilityConfig struct {
	Locale         string `mapstructure:"locale"`
	Timezone       string `mapstructure:"timezone"`
	MaxSuggestions int    `mapstructure:"max_suggestions"`
	MaxLoanDays    int    `mapstructure:"max_loan_days"` // 0 = unlimited
}

// Location resolves Timezone, falling back to UTC.
func (c *AvailabilityConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ExportConfig spreadsheet export limits.
type ExportConfig struct {
	MaxDays int `mapstructure:"max_days"`
}

// ICSConfig remote calendar import limits.
type ICSConfig struct {
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	MaxSize           int64         `mapstructure:"max_size"`            // bytes
	AllowPrivateHosts bool          `mapstructure:"allow_private_hosts"` // loopback/private targets, local setups only
}

// Load reads configuration from the file at path (or ./config/config.yaml,
// ./config.yaml when empty) and the environment.
// Precedence: environment > file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── Defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 120)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("availability.locale", datefmt.LocaleFR)
	v.SetDefault("availability.timezone", "Europe/Paris")
	v.SetDefault("availability.max_suggestions", 3)
	v.SetDefault("availability.max_loan_days", 30)

	v.SetDefault("export.max_days", 366)

	v.SetDefault("ics.fetch_timeout", "30s")
	v.SetDefault("ics.max_size", 5<<20)
	v.SetDefault("ics.allow_private_hosts", false)

	// ── Config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── Environment ──
	v.SetEnvPrefix("VOISIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// no file: defaults and environment only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot run without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be within 1-65535")
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("invalid config: server.body_limit must be positive")
	}
	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("invalid config: server.trusted_proxies entry %q is neither an IP nor a CIDR", p)
			}
		}
	}
	if !datefmt.Supported(c.Availability.Locale) {
		return fmt.Errorf("invalid config: availability.locale %q is not supported", c.Availability.Locale)
	}
	if _, err := time.LoadLocation(c.Availability.Timezone); err != nil {
		return fmt.Errorf("invalid config: availability.timezone: %w", err)
	}
	if c.Availability.MaxSuggestions <= 0 {
		return fmt.Errorf("invalid config: availability.max_suggestions must be positive")
	}
	if c.Availability.MaxLoanDays < 0 {
		return fmt.Errorf("invalid config: availability.max_loan_days must not be negative")
	}
	if c.Export.MaxDays <= 0 {
		return fmt.Errorf("invalid config: export.max_days must be positive")
	}
	if c.ICS.FetchTimeout <= 0 || c.ICS.MaxSize <= 0 {
		return fmt.Errorf("invalid config: ics.fetch_timeout and ics.max_size must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid config: rate_limit.requests and rate_limit.window must be positive")
	}
	return nil
}
