package logger

import (
	"testing"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("%s: NewLogger: %v", format, err)
		}
		if !l.Core().Enabled(-1) {
			t.Errorf("%s: expected debug level to be enabled", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
