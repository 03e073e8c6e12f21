package helpers

import (
	"time"

	"github.com/hogwarts/school/internal/pkg/logger"
)

// ParseDuration parses a duration string, returns default duration on error or when empty.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		logger.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Invalid duration string, using default")
		return defaultDuration
	}
	return duration
}
