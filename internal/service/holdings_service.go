package service

import (
	"fmt"
	"time"

	"github.com/fundscope/fundscope-backend/internal/reconcile"
	"github.com/fundscope/fundscope-backend/internal/repository"

	"github.com/fundscope/fundscope-backend/internal/model"
)

// HoldingsService handles ETF holdings reporting: current constituents and
// the significant-change activity feed derived from the holdings log.
type HoldingsService struct {
	etfRepo *repository.ETFRepository
}

// NewHoldingsService creates a new HoldingsService with the provided dependencies.
func NewHoldingsService(etfRepo *repository.ETFRepository) *HoldingsService {
	return &HoldingsService{etfRepo: etfRepo}
}

// ListETFs returns the distinct ETF tickers present in the holdings log.
func (s *HoldingsService) ListETFs() ([]string, error) {
	return s.etfRepo.ListETFs()
}

// HoldingView is one current ETF constituent row.
type HoldingView struct {
	ETFTicker     string  `json:"etfTicker"`
	HoldingTicker string  `json:"holdingTicker"`
	HoldingName   string  `json:"holdingName"`
	AsOfDate      string  `json:"asOfDate"`
	Shares        float64 `json:"shares"`
	MarketValue   float64 `json:"marketValue"`
	Weight        float64 `json:"weight"`
}

// GetCurrentHoldings returns the latest holdings of an ETF at the reference
// date, ordered by holding ticker.
func (s *HoldingsService) GetCurrentHoldings(etfTicker string, reference time.Time) ([]HoldingView, error) {
	if reference.IsZero() {
		reference = time.Now().UTC()
	}

	holdings, err := s.etfRepo.GetHoldings(etfTicker, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings log: %w", err)
	}

	names := holdingNames(holdings)
	latest := reconcile.ResolveLatest(holdingsToObservations(holdings), reference)

	views := make([]HoldingView, len(latest))
	for i, o := range latest {
		views[i] = HoldingView{
			ETFTicker:     o.EntityID,
			HoldingTicker: o.SubEntityID,
			HoldingName:   names[o.SubEntityID],
			AsOfDate:      o.AsOfDate.Format("2006-01-02"),
			Shares:        o.Quantity,
			MarketValue:   round(o.MarketValue()),
			Weight:        o.BasisMetric,
		}
	}

	return views, nil
}

// ChangeView is one row of the ETF holdings activity feed. Directions are
// presented in trading terms: an increase in shares is a buy, a decrease a
// sell.
type ChangeView struct {
	ETFTicker     string  `json:"etfTicker"`
	HoldingTicker string  `json:"holdingTicker"`
	Date          string  `json:"date"`
	PriorDate     string  `json:"priorDate,omitempty"` // empty for a new position
	SharesBefore  float64 `json:"sharesBefore"`
	SharesAfter   float64 `json:"sharesAfter"`
	SharesChange  float64 `json:"sharesChange"`
	PctChange     float64 `json:"pctChange"`
	Action        string  `json:"action"` // "buy", "sell", or "new"
}

// GetHoldingChanges returns the significant holding changes for an ETF up to
// the reference date.
//
// Events that establish a brand-new position are excluded unless includeNew
// is set: the feed mirrors a trade blotter, and the first-ever snapshot of a
// constituent is an artifact of when tracking started, not a trade.
func (s *HoldingsService) GetHoldingChanges(etfTicker string, reference time.Time, thresholds reconcile.Thresholds, includeNew bool) ([]ChangeView, error) {
	holdings, err := s.etfRepo.GetHoldings(etfTicker, referenceOrNow(reference))
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings log: %w", err)
	}

	opts := reconcile.Options{
		ReferenceDate: referenceOrNow(reference),
		Thresholds:    thresholds,
	}

	events := reconcile.ActivityFeed(holdingsToObservations(holdings), opts)

	views := []ChangeView{}
	for _, e := range events {
		isNew := e.PriorDate.IsZero()
		if isNew && !includeNew {
			continue
		}

		view := ChangeView{
			ETFTicker:     e.EntityID,
			HoldingTicker: e.SubEntityID,
			Date:          e.AsOfDate.Format("2006-01-02"),
			SharesBefore:  e.QuantityBefore,
			SharesAfter:   e.QuantityAfter,
			SharesChange:  e.DeltaQuantity,
			PctChange:     round(e.DeltaPercent),
		}
		switch {
		case isNew:
			view.Action = "new"
		case e.Direction == reconcile.DirectionIncrease:
			view.Action = "buy"
		default:
			view.Action = "sell"
		}
		if !isNew {
			view.PriorDate = e.PriorDate.Format("2006-01-02")
		}

		views = append(views, view)
	}

	return views, nil
}

func referenceOrNow(reference time.Time) time.Time {
	if reference.IsZero() {
		return time.Now().UTC()
	}
	return reference
}

// holdingsToObservations maps ETF holdings rows into the engine shape: the
// ETF is the entity, the constituent the sub-entity. The per-share value is
// derived from the reported market value; the weight rides along in the
// basis slot, which the ETF domain does not otherwise use.
func holdingsToObservations(holdings []model.ETFHolding) []reconcile.Observation {
	observations := make([]reconcile.Observation, len(holdings))
	for i, h := range holdings {
		var perShare float64
		if h.Shares > 0 {
			perShare = h.MarketValue / h.Shares
		}
		observations[i] = reconcile.Observation{
			EntityID:    h.ETFTicker,
			SubEntityID: h.HoldingTicker,
			AsOfDate:    h.Date,
			Quantity:    h.Shares,
			ValueMetric: perShare,
			BasisMetric: h.Weight,
			IngestedAt:  h.IngestedAt,
			RowID:       h.RowID,
		}
	}
	return observations
}

func holdingNames(holdings []model.ETFHolding) map[string]string {
	names := map[string]string{}
	for _, h := range holdings {
		if h.HoldingName != "" {
			names[h.HoldingTicker] = h.HoldingName
		}
	}
	return names
}
