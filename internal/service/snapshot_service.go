package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/reconcile"
	"github.com/fundscope/fundscope-backend/internal/repository"
)

// materializeConcurrency bounds how many funds are summarized in parallel
// during snapshot materialization.
const materializeConcurrency = 4

// SnapshotService materializes and serves daily per-fund valuations.
// Materialized rows are a pure derivation of the observation log, so they can
// be recomputed for any date at any time; the table exists for fast reads,
// not as a system of record.
type SnapshotService struct {
	snapshotRepo    *repository.SnapshotRepository
	fundRepo        *repository.FundRepository
	positionService *PositionService
	positionRepo    *repository.PositionRepository
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	fundRepo *repository.FundRepository,
	positionService *PositionService,
	positionRepo *repository.PositionRepository,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:    snapshotRepo,
		fundRepo:        fundRepo,
		positionService: positionService,
		positionRepo:    positionRepo,
	}
}

// MaterializeDate computes and stores the daily snapshot of every active fund
// for the given date. Funds are processed concurrently; the first failure
// cancels the remaining work. Returns the number of funds materialized.
func (s *SnapshotService) MaterializeDate(ctx context.Context, date time.Time) (int, error) {
	funds, err := s.fundRepo.GetFunds(model.FundFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list funds for materialization: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(materializeConcurrency)

	for _, fund := range funds {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return s.materializeFund(fund, date)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return len(funds), nil
}

// materializeFund derives one fund's summary at the given date from the
// observation log and upserts it into the materialized table.
func (s *SnapshotService) materializeFund(fund model.Fund, date time.Time) error {
	positions, err := s.positionRepo.GetPositionsForFund(fund.ID, date)
	if err != nil {
		return fmt.Errorf("failed to load positions for fund %s: %w", fund.ID, err)
	}

	observations := positionsToObservations(positions)
	latest := reconcile.ResolveLatest(observations, date)
	summaries := reconcile.Summarize(latest, date)

	if len(summaries) == 0 {
		// Fund has no open positions at this date. Nothing to record: an
		// absent snapshot means "no data", which reporting handles.
		return nil
	}

	summary := summaries[0]
	return s.snapshotRepo.UpsertSnapshot(model.DailyPortfolioSnapshot{
		FundID:           fund.ID,
		Date:             reconcile.Day(date),
		PositionCount:    summary.PositionCount,
		TotalMarketValue: summary.TotalMarketValue,
		TotalBasis:       summary.TotalBasis,
		TotalUnrealized:  summary.TotalUnrealized,
		TotalReturnPct:   summary.TotalReturnPct,
	})
}

// SnapshotView is one snapshot-history reporting row.
type SnapshotView struct {
	FundID           string  `json:"fundId"`
	FundName         string  `json:"fundName"`
	Date             string  `json:"date"`
	PositionCount    int     `json:"positionCount"`
	TotalMarketValue float64 `json:"totalMarketValue"`
	TotalBasis       float64 `json:"totalBasis"`
	TotalUnrealized  float64 `json:"totalUnrealized"`
	TotalReturnPct   float64 `json:"totalReturnPct"`
}

// GetHistory returns snapshot history for one fund (or all funds when fundID
// is empty) between two dates, most recent first.
//
// Materialized rows are preferred. When the table has no rows for the range
// (e.g., a fresh database whose materialization job has not run yet), the
// history is computed on demand from the observation log instead.
func (s *SnapshotService) GetHistory(fundID string, startDate, endDate time.Time) ([]SnapshotView, error) {
	funds, err := s.fundsForRequest(fundID)
	if err != nil {
		return nil, err
	}

	fundIDs := make([]string, len(funds))
	fundNames := make(map[string]string, len(funds))
	for i, f := range funds {
		fundIDs[i] = f.ID
		fundNames[f.ID] = f.Name
	}

	views := []SnapshotView{}
	err = s.snapshotRepo.GetHistory(fundIDs, startDate, endDate, func(record model.DailyPortfolioSnapshot) error {
		views = append(views, SnapshotView{
			FundID:           record.FundID,
			FundName:         fundNames[record.FundID],
			Date:             record.Date.Format("2006-01-02"),
			PositionCount:    record.PositionCount,
			TotalMarketValue: round(record.TotalMarketValue),
			TotalBasis:       round(record.TotalBasis),
			TotalUnrealized:  round(record.TotalUnrealized),
			TotalReturnPct:   round(record.TotalReturnPct),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(views) > 0 {
		return views, nil
	}

	log.Printf("No materialized snapshots for range %s..%s, computing on demand",
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	return s.computeHistory(funds, fundNames, startDate, endDate)
}

// computeHistory derives snapshot history directly from the observation log.
func (s *SnapshotService) computeHistory(funds []model.Fund, fundNames map[string]string, startDate, endDate time.Time) ([]SnapshotView, error) {
	views := []SnapshotView{}

	for _, fund := range funds {
		positions, err := s.positionRepo.GetPositionsForFund(fund.ID, endDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load positions for fund %s: %w", fund.ID, err)
		}

		summaries := reconcile.SummarizeHistory(positionsToObservations(positions), endDate)
		for _, summary := range summaries {
			if summary.AsOfDate.Before(reconcile.Day(startDate)) {
				continue
			}
			views = append(views, SnapshotView{
				FundID:           fund.ID,
				FundName:         fundNames[fund.ID],
				Date:             summary.AsOfDate.Format("2006-01-02"),
				PositionCount:    summary.PositionCount,
				TotalMarketValue: round(summary.TotalMarketValue),
				TotalBasis:       round(summary.TotalBasis),
				TotalUnrealized:  round(summary.TotalUnrealized),
				TotalReturnPct:   round(summary.TotalReturnPct),
			})
		}
	}

	return views, nil
}

// fundsForRequest resolves a fund ID parameter: empty means all active funds.
func (s *SnapshotService) fundsForRequest(fundID string) ([]model.Fund, error) {
	if fundID == "" {
		return s.fundRepo.GetFunds(model.FundFilter{})
	}

	fund, err := s.fundRepo.GetFund(fundID)
	if err != nil {
		return nil, err
	}
	return []model.Fund{fund}, nil
}
