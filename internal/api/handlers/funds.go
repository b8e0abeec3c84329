package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundscope/fundscope-backend/internal/api/request"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// FundHandler handles HTTP requests for fund endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the services.
type FundHandler struct {
	fundService     *service.FundService
	positionService *service.PositionService
	snapshotService *service.SnapshotService
	ingestService   *service.IngestService
}

// NewFundHandler creates a new FundHandler with the provided service dependencies.
func NewFundHandler(
	fundService *service.FundService,
	positionService *service.PositionService,
	snapshotService *service.SnapshotService,
	ingestService *service.IngestService,
) *FundHandler {
	return &FundHandler{
		fundService:     fundService,
		positionService: positionService,
		snapshotService: snapshotService,
		ingestService:   ingestService,
	}
}

// Funds handles GET requests to retrieve all funds.
//
// Endpoint: GET /api/fund
// Query: include_archived (optional, "true" to include archived funds)
// Response: 200 OK with array of model.Fund
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	funds, err := h.fundService.GetFunds(includeArchived)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve funds", err)
		return
	}

	respondJSON(w, http.StatusOK, funds)
}

// Fund handles GET requests for a single fund.
//
// Endpoint: GET /api/fund/{fundId}
func (h *FundHandler) Fund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")

	fund, err := h.fundService.GetFund(fundID)
	if err != nil {
		respondServiceError(w, "failed to retrieve fund", err)
		return
	}

	respondJSON(w, http.StatusOK, fund)
}

// CreateFund handles POST requests to register a new fund.
//
// Endpoint: POST /api/fund
// Response: 201 Created with the stored model.Fund
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	fund, err := h.fundService.CreateFund(model.Fund{
		Name:        req.Name,
		Description: req.Description,
		Currency:    req.Currency,
	})
	if err != nil {
		respondServiceError(w, "failed to create fund", err)
		return
	}

	respondJSON(w, http.StatusCreated, fund)
}

// Positions handles GET requests for a fund's current positions.
//
// Endpoint: GET /api/fund/{fundId}/positions
// Query: reference_date (optional, YYYY-MM-DD; defaults to now)
// Response: 200 OK with array of service.PositionView
func (h *FundHandler) Positions(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")

	reference, err := request.ParseReferenceDate(r.URL.Query().Get("reference_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reference_date", err)
		return
	}

	positions, err := h.positionService.GetCurrentPositions(fundID, reference)
	if err != nil {
		respondServiceError(w, "failed to resolve positions", err)
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// PositionHistory handles GET requests for the raw snapshot rows of one
// ticker in one fund.
//
// Endpoint: GET /api/fund/{fundId}/positions/{ticker}/history
// Query: start_date, end_date (optional)
func (h *FundHandler) PositionHistory(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")
	ticker := chi.URLParam(r, "ticker")

	start, end, err := request.ParseDateRange(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range", err)
		return
	}

	history, err := h.positionService.GetPositionHistory(fundID, ticker, start, end)
	if err != nil {
		respondServiceError(w, "failed to retrieve position history", err)
		return
	}

	response := make([]PositionRowResponse, len(history))
	for i, p := range history {
		response[i] = PositionRowResponse{
			Ticker:     p.Ticker,
			Date:       p.Date.Format("2006-01-02"),
			Shares:     p.Shares,
			Price:      p.Price,
			CostBasis:  p.CostBasis,
			IngestedAt: p.IngestedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// PositionRowResponse is one raw observation-log row in a history response.
type PositionRowResponse struct {
	Ticker     string  `json:"ticker"`
	Date       string  `json:"date"`
	Shares     float64 `json:"shares"`
	Price      float64 `json:"price"`
	CostBasis  float64 `json:"costBasis"`
	IngestedAt string  `json:"ingestedAt"`
}

// Snapshots handles GET requests for a fund's daily portfolio snapshots.
//
// Endpoint: GET /api/fund/{fundId}/snapshots
// Query: start_date, end_date (optional)
// Response: 200 OK with array of service.SnapshotView, most recent first
func (h *FundHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")
	h.snapshotHistory(w, r, fundID)
}

// AllSnapshots handles GET requests for snapshot history across all funds.
//
// Endpoint: GET /api/snapshot/history
func (h *FundHandler) AllSnapshots(w http.ResponseWriter, r *http.Request) {
	h.snapshotHistory(w, r, "")
}

func (h *FundHandler) snapshotHistory(w http.ResponseWriter, r *http.Request, fundID string) {
	start, end, err := request.ParseDateRange(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range", err)
		return
	}

	history, err := h.snapshotService.GetHistory(fundID, start, end)
	if err != nil {
		respondServiceError(w, "failed to retrieve snapshot history", err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// ImportResponse reports how many rows an import wrote.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportPositions handles POST requests to append a batch of position
// snapshots for a fund.
//
// Endpoint: POST /api/fund/{fundId}/positions/import
// Response: 201 Created with ImportResponse
func (h *FundHandler) ImportPositions(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")

	var req request.ImportPositionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	batch := make([]service.PositionImport, len(req.Positions))
	for i, p := range req.Positions {
		batch[i] = service.PositionImport{
			Ticker:    p.Ticker,
			Date:      p.Date,
			Shares:    p.Shares,
			Price:     p.Price,
			CostBasis: p.CostBasis,
		}
	}

	imported, err := h.ingestService.ImportPositions(fundID, batch)
	if err != nil {
		respondServiceError(w, "failed to import positions", err)
		return
	}

	respondJSON(w, http.StatusCreated, ImportResponse{Imported: imported})
}
