// Package scheduler wires the background jobs onto a cron runner. The jobs
// themselves live in the service layer; this package only owns the schedule
// and the overlap policy (skip, via the database job lock).
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/config"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// Job names registered on the scheduler.
const (
	JobDailySnapshot = "daily-snapshot"
	JobRunCleanup    = "job-run-cleanup"
)

// snapshotTimeout bounds one materialization pass across all funds.
const snapshotTimeout = 10 * time.Minute

// Scheduler runs the periodic background jobs.
type Scheduler struct {
	cron            *cron.Cron
	cfg             config.SchedulerConfig
	jobService      *service.JobService
	snapshotService *service.SnapshotService
}

// New creates a Scheduler with the configured cron expressions.
func New(
	cfg config.SchedulerConfig,
	jobService *service.JobService,
	snapshotService *service.SnapshotService,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		cfg:             cfg,
		jobService:      jobService,
		snapshotService: snapshotService,
	}
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.SnapshotSchedule, s.runDailySnapshot); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.CleanupSchedule, s.runCleanup); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started: snapshots %q, cleanup %q", s.cfg.SnapshotSchedule, s.cfg.CleanupSchedule)
	return nil
}

// Stop stops the cron runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// RunDailySnapshotNow triggers the snapshot job outside its schedule, for
// the manual trigger endpoint.
func (s *Scheduler) RunDailySnapshotNow() error {
	return s.materializeToday()
}

func (s *Scheduler) runDailySnapshot() {
	if err := s.materializeToday(); err != nil {
		if errors.Is(err, apperrors.ErrJobAlreadyRunning) {
			log.Printf("Skipping %s: previous run still in progress", JobDailySnapshot)
			return
		}
		log.Printf("Job %s failed: %v", JobDailySnapshot, err)
	}
}

func (s *Scheduler) materializeToday() error {
	return s.jobService.RunExclusive(JobDailySnapshot, func() (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		count, err := s.snapshotService.MaterializeDate(ctx, time.Now().UTC())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("materialized %d funds", count), nil
	})
}

func (s *Scheduler) runCleanup() {
	err := s.jobService.RunExclusive(JobRunCleanup, func() (string, error) {
		deleted, err := s.jobService.PruneRuns(s.cfg.RetainJobRuns)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("pruned %d job runs", deleted), nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrJobAlreadyRunning) {
		log.Printf("Job %s failed: %v", JobRunCleanup, err)
	}
}
