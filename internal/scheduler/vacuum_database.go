package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/database"
)

// VacuumDatabaseJob rebuilds the settings database to reclaim free pages
type VacuumDatabaseJob struct {
	JobBase
	db *database.DB
}

// NewVacuumDatabaseJob creates a new VacuumDatabaseJob
func NewVacuumDatabaseJob(db *database.DB) *VacuumDatabaseJob {
	return &VacuumDatabaseJob{
		JobBase: JobBase{log: zerolog.Nop()},
		db:      db,
	}
}

// Name returns the job name
func (j *VacuumDatabaseJob) Name() string {
	return "database:vacuum"
}

// Run executes the vacuum job
func (j *VacuumDatabaseJob) Run() error {
	if j.db == nil {
		j.log.Warn().Msg("Database not initialized, skipping")
		return nil
	}

	start := time.Now()
	sizeBefore, err := j.sizeBytes()
	if err != nil {
		return err
	}

	if _, err := j.db.Conn().Exec("VACUUM"); err != nil {
		return fmt.Errorf("VACUUM failed: %w", err)
	}

	sizeAfter, err := j.sizeBytes()
	if err != nil {
		return err
	}

	j.log.Info().
		Str("database", j.db.Name()).
		Int64("size_before_bytes", sizeBefore).
		Int64("size_after_bytes", sizeAfter).
		Int64("reclaimed_bytes", sizeBefore-sizeAfter).
		Dur("duration_ms", time.Since(start)).
		Msg("VACUUM completed")
	return nil
}

func (j *VacuumDatabaseJob) sizeBytes() (int64, error) {
	stats, err := j.db.GetStats()
	if err != nil {
		return 0, fmt.Errorf("failed to read database size: %w", err)
	}
	return stats.PageCount * stats.PageSize, nil
}
