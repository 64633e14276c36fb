package logger

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewDefaultLevel(t *testing.T) {
	_ = os.Unsetenv("ALERTS_LOG_LEVEL")
	if got := New("test").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("default level = %s, want info", got)
	}
}

func TestNewLevelFromEnv(t *testing.T) {
	_ = os.Setenv("ALERTS_LOG_LEVEL", "debug")
	defer func() { _ = os.Unsetenv("ALERTS_LOG_LEVEL") }()
	if got := New("test").GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("level = %s, want debug", got)
	}
}

func TestNewBadLevelFallsBack(t *testing.T) {
	_ = os.Setenv("ALERTS_LOG_LEVEL", "loud")
	defer func() { _ = os.Unsetenv("ALERTS_LOG_LEVEL") }()
	if got := New("test").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info fallback", got)
	}
}
