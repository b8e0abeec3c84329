package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
)

// JobRepository provides data access methods for the job_run history table
// and the job_lock mutual-exclusion table.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new repository instance.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// AcquireLock attempts to take the named job lock for the given run. The
// insert fails on the primary key when another run holds the lock, which maps
// to ErrJobAlreadyRunning.
func (r *JobRepository) AcquireLock(name, runID string) error {
	_, err := r.db.Exec(
		`INSERT INTO job_lock (name, locked_at, locked_by) VALUES (?, ?, ?)`,
		name, time.Now().UTC().Format(time.RFC3339), runID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "PRIMARY KEY constraint") {
			return apperrors.ErrJobAlreadyRunning
		}
		return fmt.Errorf("failed to acquire job lock: %w", err)
	}
	return nil
}

// ReleaseLock drops the named job lock. Releasing a lock that is not held is
// not an error; the job may have been unlocked by an operator.
func (r *JobRepository) ReleaseLock(name string) error {
	if _, err := r.db.Exec(`DELETE FROM job_lock WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to release job lock: %w", err)
	}
	return nil
}

// InsertRun records the start of a job execution and returns the run ID.
func (r *JobRepository) InsertRun(jobName string) (string, error) {
	runID := uuid.NewString()

	_, err := r.db.Exec(
		`INSERT INTO job_run (id, job_name, status, started_at) VALUES (?, ?, ?, ?)`,
		runID, jobName, model.JobStatusRunning, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert job_run: %w", err)
	}

	return runID, nil
}

// FinishRun records the terminal status and detail of a run.
func (r *JobRepository) FinishRun(runID, status, detail string) error {
	_, err := r.db.Exec(
		`UPDATE job_run SET status = ?, detail = ?, finished_at = ? WHERE id = ?`,
		status, detail, time.Now().UTC().Format(time.RFC3339), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job_run: %w", err)
	}
	return nil
}

// GetRuns retrieves run history, most recent first, optionally filtered by
// job name.
func (r *JobRepository) GetRuns(jobName string, limit int) ([]model.JobRun, error) {
	query := `
		SELECT id, job_name, status, COALESCE(detail, ''), started_at, finished_at
		FROM job_run
	`
	args := []any{}
	if jobName != "" {
		query += ` WHERE job_name = ?`
		args = append(args, jobName)
	}
	query += ` ORDER BY started_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query job_run table: %w", err)
	}
	defer rows.Close()

	runs := []model.JobRun{}
	for rows.Next() {
		var run model.JobRun
		var startedStr string
		var finishedStr sql.NullString

		if err := rows.Scan(&run.ID, &run.JobName, &run.Status, &run.Detail, &startedStr, &finishedStr); err != nil {
			return nil, fmt.Errorf("failed to scan job_run results: %w", err)
		}

		if run.StartedAt, err = ParseTime(startedStr); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if finishedStr.Valid {
			finished, err := ParseTime(finishedStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse finished_at: %w", err)
			}
			run.FinishedAt = &finished
		}

		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job_run table: %w", err)
	}

	return runs, nil
}

// PruneRuns deletes all but the most recent keep rows per job name.
func (r *JobRepository) PruneRuns(keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	query := `
		DELETE FROM job_run
		WHERE id NOT IN (
			SELECT id FROM job_run jr
			WHERE jr.job_name = job_run.job_name
			ORDER BY jr.started_at DESC
			LIMIT ?
		)
	`

	result, err := r.db.Exec(query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune job_run table: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}

	return deleted, nil
}
