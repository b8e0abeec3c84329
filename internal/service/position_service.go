package service

import (
	"fmt"
	"time"

	"github.com/fundscope/fundscope-backend/internal/config"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/reconcile"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/validation"
)

// PositionService handles fund position reporting. It reads the append-only
// snapshot log and derives latest positions and lookback deltas through the
// reconciliation engine.
type PositionService struct {
	positionRepo *repository.PositionRepository
	fundRepo     *repository.FundRepository
	cfg          config.ReconcileConfig
}

// NewPositionService creates a new PositionService with the provided dependencies.
func NewPositionService(
	positionRepo *repository.PositionRepository,
	fundRepo *repository.FundRepository,
	cfg config.ReconcileConfig,
) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		fundRepo:     fundRepo,
		cfg:          cfg,
	}
}

// LookbackView is one resolved lookback delta in a position view.
type LookbackView struct {
	PriorDate    string   `json:"priorDate"`
	PriorPrice   float64  `json:"priorPrice"`
	DeltaValue   float64  `json:"deltaValue"`
	DeltaPercent *float64 `json:"deltaPercent"` // nil when the prior price was not positive
}

// PositionView is one current-position reporting row for a fund holding.
type PositionView struct {
	FundID         string                  `json:"fundId"`
	FundName       string                  `json:"fundName"`
	Ticker         string                  `json:"ticker"`
	AsOfDate       string                  `json:"asOfDate"`
	Shares         float64                 `json:"shares"`
	Price          float64                 `json:"price"`
	CostBasis      float64                 `json:"costBasis"`
	MarketValue    float64                 `json:"marketValue"`
	UnrealizedGain float64                 `json:"unrealizedGain"`
	Lookbacks      map[string]LookbackView `json:"lookbacks"`
}

// EngineOptions builds the reconciliation engine options from the configured
// defaults and a reference date. A zero reference date means now.
func (s *PositionService) EngineOptions(reference time.Time) reconcile.Options {
	return reconcile.Options{
		ReferenceDate: reference,
		Lags: []reconcile.LookbackLag{
			{Label: "1d", TargetDays: 1, WindowMin: s.cfg.DailyWindowMin, WindowMax: s.cfg.DailyWindowMax},
			{Label: "5d", TargetDays: 5, WindowMin: s.cfg.WeeklyWindowMin, WindowMax: s.cfg.WeeklyWindowMax},
		},
		Thresholds: reconcile.Thresholds{
			AbsThreshold: s.cfg.AbsThreshold,
			PctThreshold: s.cfg.PctThreshold,
		},
	}
}

// GetCurrentPositions returns the latest open position per ticker for a fund
// at the reference date, each joined with its 1-day and 5-day deltas.
// A fund with no open positions returns an empty slice, not an error.
func (s *PositionService) GetCurrentPositions(fundID string, reference time.Time) ([]PositionView, error) {
	fund, err := s.fundRepo.GetFund(fundID)
	if err != nil {
		return nil, err
	}

	if reference.IsZero() {
		reference = time.Now().UTC()
	}

	positions, err := s.positionRepo.GetPositionsForFund(fundID, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load position log: %w", err)
	}

	rows := reconcile.CurrentPositions(positionsToObservations(positions), s.EngineOptions(reference))

	views := make([]PositionView, len(rows))
	for i, row := range rows {
		views[i] = positionView(fund, row)
	}

	return views, nil
}

// GetPositionHistory returns the raw snapshot rows for one (fund, ticker)
// pair between two dates, ascending.
func (s *PositionService) GetPositionHistory(fundID, ticker string, startDate, endDate time.Time) ([]model.FundPosition, error) {
	if err := validation.ValidateTicker(ticker); err != nil {
		return nil, err
	}
	if _, err := s.fundRepo.GetFund(fundID); err != nil {
		return nil, err
	}
	return s.positionRepo.GetPositionsForTicker(fundID, ticker, startDate, endDate)
}

func positionView(fund model.Fund, row reconcile.PositionRow) PositionView {
	view := PositionView{
		FundID:         fund.ID,
		FundName:       fund.Name,
		Ticker:         row.Latest.SubEntityID,
		AsOfDate:       row.Latest.AsOfDate.Format("2006-01-02"),
		Shares:         row.Latest.Quantity,
		Price:          row.Latest.ValueMetric,
		CostBasis:      round(row.Latest.BasisMetric),
		MarketValue:    round(row.MarketValue),
		UnrealizedGain: round(row.Unrealized),
		Lookbacks:      make(map[string]LookbackView, len(row.Lookbacks)),
	}

	for label, lb := range row.Lookbacks {
		lbView := LookbackView{
			PriorDate:  lb.Prior.AsOfDate.Format("2006-01-02"),
			PriorPrice: lb.Prior.ValueMetric,
			DeltaValue: round(lb.DeltaValue),
		}
		if lb.DeltaPercent != nil {
			pct := round(*lb.DeltaPercent)
			lbView.DeltaPercent = &pct
		}
		view.Lookbacks[label] = lbView
	}

	return view
}

// positionsToObservations maps snapshot log rows into the engine's
// observation shape: the fund is the entity, the ticker the sub-entity.
func positionsToObservations(positions []model.FundPosition) []reconcile.Observation {
	observations := make([]reconcile.Observation, len(positions))
	for i, p := range positions {
		observations[i] = reconcile.Observation{
			EntityID:    p.FundID,
			SubEntityID: p.Ticker,
			AsOfDate:    p.Date,
			Quantity:    p.Shares,
			ValueMetric: p.Price,
			BasisMetric: p.CostBasis,
			IngestedAt:  p.IngestedAt,
			RowID:       p.RowID,
		}
	}
	return observations
}
