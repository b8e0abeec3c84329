package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundscope/fundscope-backend/internal/api/request"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// ContributorHandler handles HTTP requests for contributor capital endpoints.
type ContributorHandler struct {
	contributorService *service.ContributorService
}

// NewContributorHandler creates a new ContributorHandler
func NewContributorHandler(contributorService *service.ContributorService) *ContributorHandler {
	return &ContributorHandler{
		contributorService: contributorService,
	}
}

// Contributors handles GET requests to retrieve all contributors.
//
// Endpoint: GET /api/contributor
func (h *ContributorHandler) Contributors(w http.ResponseWriter, r *http.Request) {
	contributors, err := h.contributorService.GetAllContributors()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve contributors", err)
		return
	}

	respondJSON(w, http.StatusOK, contributors)
}

// CreateContributor handles POST requests to register a contributor.
//
// Endpoint: POST /api/contributor
// Response: 201 Created with the stored model.Contributor
func (h *ContributorHandler) CreateContributor(w http.ResponseWriter, r *http.Request) {
	var req request.CreateContributorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	contributor, err := h.contributorService.CreateContributor(model.Contributor{
		Name:     req.Name,
		JoinedAt: req.JoinedAt,
	})
	if err != nil {
		respondServiceError(w, "failed to create contributor", err)
		return
	}

	respondJSON(w, http.StatusCreated, contributor)
}

// RecordCapitalEvent handles POST requests to record a capital contribution
// or withdrawal.
//
// Endpoint: POST /api/contributor/capital
func (h *ContributorHandler) RecordCapitalEvent(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCapitalEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	date, err := repository.ParseTime(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	event, err := h.contributorService.RecordCapitalEvent(model.CapitalEvent{
		ContributorID: req.ContributorID,
		FundID:        req.FundID,
		Date:          date,
		Amount:        req.Amount,
	})
	if err != nil {
		respondServiceError(w, "failed to record capital event", err)
		return
	}

	respondJSON(w, http.StatusCreated, CapitalEventResponse{
		ID:            event.ID,
		ContributorID: event.ContributorID,
		FundID:        event.FundID,
		Date:          event.Date.Format("2006-01-02"),
		Amount:        event.Amount,
	})
}

// CapitalEventResponse is one stored capital event.
type CapitalEventResponse struct {
	ID            string  `json:"id"`
	ContributorID string  `json:"contributorId"`
	FundID        string  `json:"fundId"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
}

// CapitalSummary handles GET requests for a fund's contributor capital table.
//
// Endpoint: GET /api/fund/{fundId}/capital
// Response: 200 OK with array of model.ContributorCapital, largest stake first
func (h *ContributorHandler) CapitalSummary(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")

	summary, err := h.contributorService.GetCapitalSummary(fundID)
	if err != nil {
		respondServiceError(w, "failed to retrieve capital summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
