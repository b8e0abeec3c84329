package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fundscope/fundscope-backend/internal/api/request"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// DisclosureHandler handles HTTP requests for congressional trade disclosures.
type DisclosureHandler struct {
	disclosureService *service.DisclosureService
}

// NewDisclosureHandler creates a new DisclosureHandler
func NewDisclosureHandler(disclosureService *service.DisclosureService) *DisclosureHandler {
	return &DisclosureHandler{
		disclosureService: disclosureService,
	}
}

// DisclosureResponse is one congressional trade in a feed response.
type DisclosureResponse struct {
	ID              string `json:"id"`
	Politician      string `json:"politician"`
	Chamber         string `json:"chamber"`
	Ticker          string `json:"ticker"`
	TransactionType string `json:"transactionType"`
	AmountRange     string `json:"amountRange"`
	TransactionDate string `json:"transactionDate"`
	DisclosureDate  string `json:"disclosureDate"`
}

// Disclosures handles GET requests for the congressional trade feed.
//
// Endpoint: GET /api/disclosure
// Query: ticker, politician, start_date, end_date, limit (all optional)
// Response: 200 OK with array of DisclosureResponse, most recent first
func (h *DisclosureHandler) Disclosures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter model.DisclosureFilter
	filter.Ticker = query.Get("ticker")
	filter.Politician = query.Get("politician")

	if query.Get("start_date") != "" || query.Get("end_date") != "" {
		start, end, err := request.ParseDateRange(query.Get("start_date"), query.Get("end_date"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date range", err)
			return
		}
		filter.StartDate = start
		filter.EndDate = end
	}

	limit, err := request.ParseLimit(query.Get("limit"), 0, 500)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid limit", err)
		return
	}
	filter.Limit = limit

	trades, err := h.disclosureService.GetDisclosures(filter)
	if err != nil {
		respondServiceError(w, "failed to retrieve disclosures", err)
		return
	}

	response := make([]DisclosureResponse, len(trades))
	for i, t := range trades {
		response[i] = DisclosureResponse{
			ID:              t.ID,
			Politician:      t.Politician,
			Chamber:         t.Chamber,
			Ticker:          t.Ticker,
			TransactionType: t.TransactionType,
			AmountRange:     t.AmountRange,
			TransactionDate: t.TransactionDate.Format("2006-01-02"),
			DisclosureDate:  t.DisclosureDate.Format("2006-01-02"),
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// ImportDisclosures handles POST requests to store a batch of trade
// disclosures.
//
// Endpoint: POST /api/disclosure/import
// Response: 201 Created with ImportResponse
func (h *DisclosureHandler) ImportDisclosures(w http.ResponseWriter, r *http.Request) {
	var req request.ImportDisclosuresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	trades := make([]model.CongressTrade, len(req.Trades))
	for i, t := range req.Trades {
		transactionDate, err := repository.ParseTime(t.TransactionDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid transactionDate", err)
			return
		}
		disclosureDate, err := repository.ParseTime(t.DisclosureDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid disclosureDate", err)
			return
		}
		trades[i] = model.CongressTrade{
			Politician:      t.Politician,
			Chamber:         t.Chamber,
			Ticker:          t.Ticker,
			TransactionType: t.TransactionType,
			AmountRange:     t.AmountRange,
			TransactionDate: transactionDate,
			DisclosureDate:  disclosureDate,
		}
	}

	imported, err := h.disclosureService.ImportDisclosures(trades)
	if err != nil {
		respondServiceError(w, "failed to import disclosures", err)
		return
	}

	respondJSON(w, http.StatusCreated, ImportResponse{Imported: imported})
}
