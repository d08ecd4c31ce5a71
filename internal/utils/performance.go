package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// slowOperation is the threshold above which a recompute is logged as a warning.
// Resolvers work on a handful of panels; anything near this means a catalog problem.
const slowOperation = 250 * time.Millisecond

// OperationTimer provides a defer-friendly way to measure operation duration
//
// Usage:
//
//	func (s *Session) recompute() {
//	    defer utils.OperationTimer("recompute", s.log)()
//	}
func OperationTimer(operation string, log zerolog.Logger) func() {
	start := time.Now()

	return func() {
		duration := time.Since(start)

		log.Debug().
			Str("operation", operation).
			Dur("duration_ms", duration).
			Msg("Operation completed")

		if duration > slowOperation {
			log.Warn().
				Str("operation", operation).
				Dur("duration", duration).
				Msg("Slow operation detected")
		}
	}
}
