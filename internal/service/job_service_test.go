package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/testutil"
)

// TestJobService_RunExclusive tests the database-backed job lock.
//
// WHY: The lock is what keeps an overlapping cron run or a second process
// from materializing the same snapshot twice. Acquisition, release, and the
// skip path must all be observable in the run history.
func TestJobService_RunExclusive(t *testing.T) {
	t.Run("records a successful run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestJobService(t, db)

		err := svc.RunExclusive("test-job", func() (string, error) {
			return "did the work", nil
		})
		if err != nil {
			t.Fatalf("RunExclusive() returned unexpected error: %v", err)
		}

		runs, err := svc.GetRuns("test-job", 10)
		if err != nil {
			t.Fatalf("GetRuns() returned unexpected error: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("Expected 1 run, got %d", len(runs))
		}
		if runs[0].Status != model.JobStatusSucceeded {
			t.Errorf("Expected status succeeded, got %s", runs[0].Status)
		}
		if runs[0].Detail != "did the work" {
			t.Errorf("Expected detail from the job, got %q", runs[0].Detail)
		}
		if runs[0].FinishedAt == nil {
			t.Error("Expected a finished timestamp")
		}
	})

	t.Run("records a failed run and releases the lock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestJobService(t, db)

		err := svc.RunExclusive("test-job", func() (string, error) {
			return "", fmt.Errorf("boom")
		})
		if err == nil || err.Error() != "boom" {
			t.Fatalf("Expected the job error back, got %v", err)
		}

		runs, _ := svc.GetRuns("test-job", 10)
		if len(runs) != 1 || runs[0].Status != model.JobStatusFailed {
			t.Fatalf("Expected one failed run, got %+v", runs)
		}

		// Lock must be free again.
		err = svc.RunExclusive("test-job", func() (string, error) { return "", nil })
		if err != nil {
			t.Errorf("Expected lock to be released after failure, got %v", err)
		}
	})

	t.Run("skips when the lock is already held", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestJobService(t, db)

		err := svc.RunExclusive("test-job", func() (string, error) {
			// Re-enter while the lock is held.
			inner := svc.RunExclusive("test-job", func() (string, error) { return "", nil })
			if !errors.Is(inner, apperrors.ErrJobAlreadyRunning) {
				t.Errorf("Expected ErrJobAlreadyRunning, got %v", inner)
			}
			return "outer done", nil
		})
		if err != nil {
			t.Fatalf("RunExclusive() returned unexpected error: %v", err)
		}

		runs, _ := svc.GetRuns("test-job", 10)
		if len(runs) != 2 {
			t.Fatalf("Expected 2 runs (outer + skipped), got %d", len(runs))
		}

		statuses := map[string]bool{}
		for _, run := range runs {
			statuses[run.Status] = true
		}
		if !statuses[model.JobStatusSucceeded] || !statuses[model.JobStatusSkipped] {
			t.Errorf("Expected one succeeded and one skipped run, got %+v", runs)
		}
	})

	t.Run("independent job names do not contend", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestJobService(t, db)

		err := svc.RunExclusive("job-a", func() (string, error) {
			return "", svc.RunExclusive("job-b", func() (string, error) { return "", nil })
		})
		if err != nil {
			t.Errorf("Expected different job names to run concurrently, got %v", err)
		}
	})
}

// TestJobService_PruneRuns tests run history retention.
func TestJobService_PruneRuns(t *testing.T) {
	t.Run("keeps the most recent runs per job", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestJobService(t, db)

		for i := 0; i < 5; i++ {
			if err := svc.RunExclusive("test-job", func() (string, error) { return "", nil }); err != nil {
				t.Fatalf("RunExclusive() failed: %v", err)
			}
		}

		deleted, err := svc.PruneRuns(2)
		if err != nil {
			t.Fatalf("PruneRuns() returned unexpected error: %v", err)
		}
		if deleted != 3 {
			t.Errorf("Expected 3 deleted rows, got %d", deleted)
		}

		runs, _ := svc.GetRuns("test-job", 10)
		if len(runs) != 2 {
			t.Errorf("Expected 2 retained runs, got %d", len(runs))
		}
	})
}
