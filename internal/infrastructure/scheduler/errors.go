package scheduler

import "errors"

// Errors for the sync scheduler
var (
	ErrSchedulerNotRunning = errors.New("scheduler: not running")
	ErrUnknownJobType      = errors.New("scheduler: unknown job type")
)
