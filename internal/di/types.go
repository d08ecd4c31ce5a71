// Package di wires the configurator's dependencies.
//
// The Container is the single source of truth for service instances; it is
// created by Wire and handed to the HTTP server and the scheduler.
package di

import (
	"github.com/teletec/intercom-configurator/internal/database"
	"github.com/teletec/intercom-configurator/internal/events"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
	"github.com/teletec/intercom-configurator/internal/modules/quotes"
	"github.com/teletec/intercom-configurator/internal/modules/session"
	"github.com/teletec/intercom-configurator/internal/modules/settings"
	"github.com/teletec/intercom-configurator/internal/scheduler"
)

// Container holds all dependencies for the application
type Container struct {
	// Databases
	ConfigDB *database.DB // settings and seen-instructions flags

	// Events
	EventBus     *events.Bus
	EventManager *events.Manager

	// Repositories
	SettingsRepo *settings.Repository

	// Services
	CatalogStore    *catalog.Store
	NoticeLog       *session.NoticeLog
	Session         *session.Session
	SettingsService *settings.Service
	QuoteUploader   quotes.Uploader
	QuoteService    *quotes.Service

	// Background jobs
	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered jobs for manual triggering
type JobInstances struct {
	PruneNotices   scheduler.Job
	CheckDatabase  scheduler.Job
	VacuumDatabase scheduler.Job
	ReloadCatalog  scheduler.Job // nil when the bundled catalog is used
}

// Close releases the container's resources
func (c *Container) Close() error {
	if c == nil || c.ConfigDB == nil {
		return nil
	}
	return c.ConfigDB.Close()
}
