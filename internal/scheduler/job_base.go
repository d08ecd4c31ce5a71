package scheduler

import "github.com/rs/zerolog"

// JobBase gives jobs a logger that defaults to a no-op
type JobBase struct {
	log zerolog.Logger
}

// SetLogger sets the logger for the job
func (j *JobBase) SetLogger(log zerolog.Logger) {
	j.log = log
}

// Logger returns the job logger
func (j *JobBase) Logger() zerolog.Logger {
	return j.log
}
