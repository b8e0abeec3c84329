package model

import "time"

// Job run statuses
const (
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
	JobStatusSkipped   = "skipped" // lock was already held
)

// JobRun records one execution of a scheduled background job.
type JobRun struct {
	ID         string
	JobName    string
	Status     string
	Detail     string // Error text on failure, summary on success
	StartedAt  time.Time
	FinishedAt *time.Time // Nil while the run is in progress
}

// JobLock is the database-backed mutual exclusion record for a job name.
// A row's presence means the lock is held; acquisition is an insert that
// fails when the row already exists.
type JobLock struct {
	Name     string
	LockedAt time.Time
	LockedBy string // Run ID of the holder
}
