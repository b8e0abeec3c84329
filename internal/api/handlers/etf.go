package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundscope/fundscope-backend/internal/api/request"
	"github.com/fundscope/fundscope-backend/internal/config"
	"github.com/fundscope/fundscope-backend/internal/reconcile"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// ETFHandler handles HTTP requests for ETF holdings endpoints.
type ETFHandler struct {
	holdingsService *service.HoldingsService
	ingestService   *service.IngestService
	cfg             config.ReconcileConfig
}

// NewETFHandler creates a new ETFHandler with the provided service dependencies.
func NewETFHandler(
	holdingsService *service.HoldingsService,
	ingestService *service.IngestService,
	cfg config.ReconcileConfig,
) *ETFHandler {
	return &ETFHandler{
		holdingsService: holdingsService,
		ingestService:   ingestService,
		cfg:             cfg,
	}
}

// ETFs handles GET requests to list the tracked ETF tickers.
//
// Endpoint: GET /api/etf
// Response: 200 OK with array of ticker strings
func (h *ETFHandler) ETFs(w http.ResponseWriter, r *http.Request) {
	etfs, err := h.holdingsService.ListETFs()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve ETFs", err)
		return
	}

	respondJSON(w, http.StatusOK, etfs)
}

// Holdings handles GET requests for an ETF's current constituents.
//
// Endpoint: GET /api/etf/{ticker}/holdings
// Query: reference_date (optional)
// Response: 200 OK with array of service.HoldingView
func (h *ETFHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	reference, err := request.ParseReferenceDate(r.URL.Query().Get("reference_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reference_date", err)
		return
	}

	holdings, err := h.holdingsService.GetCurrentHoldings(ticker, reference)
	if err != nil {
		respondServiceError(w, "failed to resolve holdings", err)
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// Changes handles GET requests for an ETF's significant holding changes.
//
// Endpoint: GET /api/etf/{ticker}/changes
// Query: reference_date, abs_threshold, pct_threshold, include_new (optional)
// Response: 200 OK with array of service.ChangeView, most recent first
func (h *ETFHandler) Changes(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	query := r.URL.Query()

	reference, err := request.ParseReferenceDate(query.Get("reference_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reference_date", err)
		return
	}

	thresholds, err := request.ParseThresholds(
		query.Get("abs_threshold"),
		query.Get("pct_threshold"),
		reconcile.Thresholds{
			AbsThreshold: h.cfg.AbsThreshold,
			PctThreshold: h.cfg.PctThreshold,
		},
	)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid thresholds", err)
		return
	}

	includeNew := query.Get("include_new") == "true"

	changes, err := h.holdingsService.GetHoldingChanges(ticker, reference, thresholds, includeNew)
	if err != nil {
		respondServiceError(w, "failed to resolve holding changes", err)
		return
	}

	respondJSON(w, http.StatusOK, changes)
}

// ImportHoldings handles POST requests to append a batch of holdings
// snapshots for an ETF.
//
// Endpoint: POST /api/etf/{ticker}/holdings/import
// Response: 201 Created with ImportResponse
func (h *ETFHandler) ImportHoldings(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	var req request.ImportHoldingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	batch := make([]service.HoldingImport, len(req.Holdings))
	for i, row := range req.Holdings {
		batch[i] = service.HoldingImport{
			HoldingTicker: row.HoldingTicker,
			HoldingName:   row.HoldingName,
			Date:          row.Date,
			Shares:        row.Shares,
			MarketValue:   row.MarketValue,
			Weight:        row.Weight,
		}
	}

	imported, err := h.ingestService.ImportHoldings(ticker, batch)
	if err != nil {
		respondServiceError(w, "failed to import holdings", err)
		return
	}

	respondJSON(w, http.StatusCreated, ImportResponse{Imported: imported})
}
