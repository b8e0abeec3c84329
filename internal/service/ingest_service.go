package service

import (
	"database/sql"
	"fmt"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/validation"
)

// Job names used for ingestion locking.
const (
	JobPositionIngest = "position-ingest"
	JobHoldingsIngest = "holdings-ingest"
)

// IngestService applies provider snapshot batches to the append-only
// observation logs. Each batch runs under the matching ingestion job lock,
// so a scheduled ingestion and a manual import cannot interleave writes, and
// inside a transaction, so a batch lands completely or not at all.
//
// Rows are only ever appended. A re-imported (fund, ticker, date) key gets a
// fresh ingestion timestamp and a higher rowid, which is exactly what the
// reconciliation engine's duplicate tie-break keys on.
type IngestService struct {
	db           *sql.DB
	positionRepo *repository.PositionRepository
	etfRepo      *repository.ETFRepository
	fundRepo     *repository.FundRepository
	jobService   *JobService
}

// NewIngestService creates a new IngestService with the provided dependencies.
func NewIngestService(
	db *sql.DB,
	positionRepo *repository.PositionRepository,
	etfRepo *repository.ETFRepository,
	fundRepo *repository.FundRepository,
	jobService *JobService,
) *IngestService {
	return &IngestService{
		db:           db,
		positionRepo: positionRepo,
		etfRepo:      etfRepo,
		fundRepo:     fundRepo,
		jobService:   jobService,
	}
}

// PositionImport is one position snapshot row as submitted by an ingestion
// client.
type PositionImport struct {
	Ticker    string  `json:"ticker"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Shares    float64 `json:"shares"`
	Price     float64 `json:"price"`
	CostBasis float64 `json:"costBasis"`
}

// ImportPositions appends a batch of position snapshots for one fund.
// Returns the number of rows written.
func (s *IngestService) ImportPositions(fundID string, batch []PositionImport) (int, error) {
	if len(batch) == 0 {
		return 0, apperrors.ErrEmptyBatch
	}
	if _, err := s.fundRepo.GetFund(fundID); err != nil {
		return 0, err
	}

	positions := make([]model.FundPosition, len(batch))
	for i, row := range batch {
		if err := validation.ValidateTicker(row.Ticker); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		date, err := repository.ParseTime(row.Date)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		positions[i] = model.FundPosition{
			FundID:    fundID,
			Ticker:    row.Ticker,
			Date:      date,
			Shares:    row.Shares,
			Price:     row.Price,
			CostBasis: row.CostBasis,
		}
	}

	err := s.jobService.RunExclusive(JobPositionIngest, func() (string, error) {
		return fmt.Sprintf("imported %d position rows for fund %s", len(positions), fundID),
			s.insertPositionsTx(positions)
	})
	if err != nil {
		return 0, err
	}

	return len(positions), nil
}

func (s *IngestService) insertPositionsTx(positions []model.FundPosition) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.positionRepo.WithTx(tx).InsertPositions(positions); err != nil {
		return err
	}

	return tx.Commit()
}

// HoldingImport is one ETF holding snapshot row as submitted by an ingestion
// client.
type HoldingImport struct {
	HoldingTicker string  `json:"holdingTicker"`
	HoldingName   string  `json:"holdingName"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Shares        float64 `json:"shares"`
	MarketValue   float64 `json:"marketValue"`
	Weight        float64 `json:"weight"`
}

// ImportHoldings appends a batch of holdings snapshots for one ETF.
// Returns the number of rows written.
func (s *IngestService) ImportHoldings(etfTicker string, batch []HoldingImport) (int, error) {
	if len(batch) == 0 {
		return 0, apperrors.ErrEmptyBatch
	}
	if err := validation.ValidateTicker(etfTicker); err != nil {
		return 0, err
	}

	holdings := make([]model.ETFHolding, len(batch))
	for i, row := range batch {
		if err := validation.ValidateTicker(row.HoldingTicker); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		date, err := repository.ParseTime(row.Date)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		holdings[i] = model.ETFHolding{
			ETFTicker:     etfTicker,
			HoldingTicker: row.HoldingTicker,
			HoldingName:   row.HoldingName,
			Date:          date,
			Shares:        row.Shares,
			MarketValue:   row.MarketValue,
			Weight:        row.Weight,
		}
	}

	err := s.jobService.RunExclusive(JobHoldingsIngest, func() (string, error) {
		return fmt.Sprintf("imported %d holding rows for %s", len(holdings), etfTicker),
			s.insertHoldingsTx(holdings)
	})
	if err != nil {
		return 0, err
	}

	return len(holdings), nil
}

func (s *IngestService) insertHoldingsTx(holdings []model.ETFHolding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.etfRepo.WithTx(tx).InsertHoldings(holdings); err != nil {
		return err
	}

	return tx.Commit()
}
