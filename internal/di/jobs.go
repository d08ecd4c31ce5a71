package di

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/config"
	"github.com/teletec/intercom-configurator/internal/scheduler"
)

// Job schedules
const (
	pruneNoticesSchedule   = "@every 1s"
	checkDatabaseSchedule  = "@every 6h"
	vacuumDatabaseSchedule = "0 0 3 * * 0" // Sunday 03:00
)

// RegisterJobs creates the scheduler and registers the background jobs.
// Returns JobInstances for manual triggering.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	sched := scheduler.New(log)
	instances := &JobInstances{}

	pruneNotices := scheduler.NewPruneNoticesJob(container.NoticeLog)
	pruneNotices.SetLogger(log)
	if err := sched.AddJob(pruneNoticesSchedule, pruneNotices); err != nil {
		return nil, err
	}
	instances.PruneNotices = pruneNotices

	checkDatabase := scheduler.NewCheckDatabaseJob(container.ConfigDB)
	checkDatabase.SetLogger(log)
	if err := sched.AddJob(checkDatabaseSchedule, checkDatabase); err != nil {
		return nil, err
	}
	instances.CheckDatabase = checkDatabase

	vacuumDatabase := scheduler.NewVacuumDatabaseJob(container.ConfigDB)
	vacuumDatabase.SetLogger(log)
	if err := sched.AddJob(vacuumDatabaseSchedule, vacuumDatabase); err != nil {
		return nil, err
	}
	instances.VacuumDatabase = vacuumDatabase

	// The bundled catalog cannot change at runtime
	if cfg.CatalogPath != "" {
		reloadCatalog := scheduler.NewReloadCatalogJob(scheduler.ReloadCatalogConfig{
			Path:         cfg.CatalogPath,
			Store:        container.CatalogStore,
			Session:      container.Session,
			EventManager: container.EventManager,
		})
		reloadCatalog.SetLogger(log)
		if err := sched.AddJob(cfg.CatalogReloadSchedule, reloadCatalog); err != nil {
			return nil, err
		}
		instances.ReloadCatalog = reloadCatalog
	}

	container.Scheduler = sched
	log.Info().Int("jobs", sched.Jobs()).Msg("Jobs registered")
	return instances, nil
}
