// Package logger provides a configured zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON stdout logger tagged with the emitting service.
// ALERTS_LOG_LEVEL (trace, debug, info, warn, error) adjusts verbosity;
// unset or unparsable values fall back to info.
func New(serviceName string) zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("ALERTS_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}
	return zerolog.New(os.Stdout).Level(level).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
