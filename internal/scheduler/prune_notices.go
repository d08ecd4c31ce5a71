package scheduler

import "github.com/rs/zerolog"

// PruneNoticesJob drops notices older than their display time
type PruneNoticesJob struct {
	JobBase
	notices NoticePruner
}

// NewPruneNoticesJob creates a new PruneNoticesJob
func NewPruneNoticesJob(notices NoticePruner) *PruneNoticesJob {
	return &PruneNoticesJob{
		JobBase: JobBase{log: zerolog.Nop()},
		notices: notices,
	}
}

// Name returns the job name
func (j *PruneNoticesJob) Name() string {
	return "notices:prune"
}

// Run executes the prune notices job
func (j *PruneNoticesJob) Run() error {
	if removed := j.notices.Prune(); removed > 0 {
		j.log.Trace().Int("removed", removed).Msg("Expired notices pruned")
	}
	return nil
}
