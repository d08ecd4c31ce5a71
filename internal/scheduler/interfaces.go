package scheduler

import (
	"github.com/teletec/intercom-configurator/internal/events"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// NoticePruner drops expired notices
type NoticePruner interface {
	Prune() int
}

// SessionRefresher recomputes the session against the current catalog
type SessionRefresher interface {
	Refresh() error
}

// EventManagerInterface defines the contract for event emission
type EventManagerInterface interface {
	EmitTyped(module string, data events.EventData)
	EmitError(module string, err error, context map[string]interface{})
}
