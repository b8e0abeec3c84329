package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundscope/fundscope-backend/internal/api/request"
	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/scheduler"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// JobHandler handles HTTP requests for background job endpoints.
type JobHandler struct {
	jobService *service.JobService
	scheduler  *scheduler.Scheduler
}

// NewJobHandler creates a new JobHandler. The scheduler may be nil when
// background jobs are disabled; triggering then returns 503.
func NewJobHandler(jobService *service.JobService, sched *scheduler.Scheduler) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		scheduler:  sched,
	}
}

// JobRunResponse is one job execution record.
type JobRunResponse struct {
	ID         string `json:"id"`
	JobName    string `json:"jobName"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// Runs handles GET requests for a job's execution history.
//
// Endpoint: GET /api/job/{jobName}/runs
// Query: limit (optional, defaults to 20)
// Response: 200 OK with array of JobRunResponse, most recent first
func (h *JobHandler) Runs(w http.ResponseWriter, r *http.Request) {
	jobName := chi.URLParam(r, "jobName")

	limit, err := request.ParseLimit(r.URL.Query().Get("limit"), 20, 200)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid limit", err)
		return
	}

	runs, err := h.jobService.GetRuns(jobName, limit)
	if err != nil {
		respondServiceError(w, "failed to retrieve job runs", err)
		return
	}

	response := make([]JobRunResponse, len(runs))
	for i, run := range runs {
		response[i] = JobRunResponse{
			ID:        run.ID,
			JobName:   run.JobName,
			Status:    run.Status,
			Detail:    run.Detail,
			StartedAt: run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if run.FinishedAt != nil {
			response[i].FinishedAt = run.FinishedAt.Format("2006-01-02T15:04:05Z07:00")
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// TriggerSnapshot handles POST requests to run the daily snapshot
// materialization immediately.
//
// Endpoint: POST /api/job/snapshot/trigger
// Response: 202 Accepted on success, 409 Conflict when the job is already
// running, 503 Service Unavailable when the scheduler is disabled
func (h *JobHandler) TriggerSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		respondError(w, http.StatusServiceUnavailable, "scheduler is disabled", nil)
		return
	}

	if err := h.scheduler.RunDailySnapshotNow(); err != nil {
		if errors.Is(err, apperrors.ErrJobAlreadyRunning) {
			respondError(w, http.StatusConflict, "snapshot job is already running", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "snapshot job failed", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "completed"})
}
