package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
)

// JobService runs background jobs under a database lock and records their
// run history. The lock lives in the database rather than in memory so two
// processes pointed at the same database cannot run the same job twice.
type JobService struct {
	jobRepo *repository.JobRepository
}

// NewJobService creates a new JobService with the provided dependencies.
func NewJobService(jobRepo *repository.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// RunExclusive executes fn under the named job lock, recording a job_run row
// for the attempt. When the lock is already held the run is recorded as
// skipped and ErrJobAlreadyRunning is returned; the caller decides whether
// that is a problem (a cron overlap is not, a manual trigger may want to
// report it).
func (s *JobService) RunExclusive(jobName string, fn func() (detail string, err error)) error {
	runID, err := s.jobRepo.InsertRun(jobName)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRecordJobRun, err)
	}

	if err := s.jobRepo.AcquireLock(jobName, runID); err != nil {
		if errors.Is(err, apperrors.ErrJobAlreadyRunning) {
			if finishErr := s.jobRepo.FinishRun(runID, model.JobStatusSkipped, "lock already held"); finishErr != nil {
				log.Printf("Failed to record skipped run for %s: %v", jobName, finishErr)
			}
			return apperrors.ErrJobAlreadyRunning
		}
		return err
	}
	defer func() {
		if err := s.jobRepo.ReleaseLock(jobName); err != nil {
			log.Printf("Failed to release lock for %s: %v", jobName, err)
		}
	}()

	detail, runErr := fn()
	if runErr != nil {
		if finishErr := s.jobRepo.FinishRun(runID, model.JobStatusFailed, runErr.Error()); finishErr != nil {
			log.Printf("Failed to record failed run for %s: %v", jobName, finishErr)
		}
		return runErr
	}

	if err := s.jobRepo.FinishRun(runID, model.JobStatusSucceeded, detail); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRecordJobRun, err)
	}

	return nil
}

// GetRuns returns job run history, most recent first.
func (s *JobService) GetRuns(jobName string, limit int) ([]model.JobRun, error) {
	return s.jobRepo.GetRuns(jobName, limit)
}

// PruneRuns trims run history to the most recent keep rows per job name and
// returns the number of deleted rows.
func (s *JobService) PruneRuns(keep int) (int64, error) {
	return s.jobRepo.PruneRuns(keep)
}
