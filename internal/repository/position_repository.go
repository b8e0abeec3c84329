package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/model"
)

// PositionRepository provides data access methods for the append-only
// fund_position snapshot log. Reads always return rows in ascending date
// order, which is what the reconciliation engine expects.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{db: r.db, tx: tx}
}

func (r *PositionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const positionColumns = `
	id, fund_id, ticker, date, shares, price, cost_basis, ingested_at, rowid
`

// GetPositionsForFund retrieves all position snapshot rows for a fund up to
// and including the given date, in ascending date order.
func (r *PositionRepository) GetPositionsForFund(fundID string, upTo time.Time) ([]model.FundPosition, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM fund_position
		WHERE fund_id = ? AND date <= ?
		ORDER BY date ASC, ingested_at ASC, rowid ASC
	`

	rows, err := r.getQuerier().Query(query, fundID, upTo.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query fund_position table: %w", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// GetPositionsForTicker retrieves the snapshot rows for one (fund, ticker)
// pair between two dates inclusive, in ascending date order.
func (r *PositionRepository) GetPositionsForTicker(fundID, ticker string, startDate, endDate time.Time) ([]model.FundPosition, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("startDate (%s) must be before or equal to endDate (%s)",
			startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	query := `
		SELECT ` + positionColumns + `
		FROM fund_position
		WHERE fund_id = ? AND ticker = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, ingested_at ASC, rowid ASC
	`

	rows, err := r.getQuerier().Query(query, fundID, ticker,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query fund_position table: %w", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// InsertPositions appends a batch of snapshot rows to the log. IDs and
// ingestion timestamps are assigned here; rows are never updated afterwards.
func (r *PositionRepository) InsertPositions(positions []model.FundPosition) error {
	query := `
		INSERT INTO fund_position (id, fund_id, ticker, date, shares, price, cost_basis, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	q := r.getQuerier()
	now := time.Now().UTC()

	for _, p := range positions {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		ingestedAt := p.IngestedAt
		if ingestedAt.IsZero() {
			ingestedAt = now
		}

		_, err := q.Exec(query,
			p.ID,
			p.FundID,
			p.Ticker,
			p.Date.Format("2006-01-02"),
			p.Shares,
			p.Price,
			p.CostBasis,
			ingestedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert fund_position row: %w", err)
		}
	}

	return nil
}

func scanPositions(rows *sql.Rows) ([]model.FundPosition, error) {
	positions := []model.FundPosition{}

	for rows.Next() {
		var p model.FundPosition
		var dateStr, ingestedStr string

		err := rows.Scan(
			&p.ID,
			&p.FundID,
			&p.Ticker,
			&dateStr,
			&p.Shares,
			&p.Price,
			&p.CostBasis,
			&ingestedStr,
			&p.RowID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund_position results: %w", err)
		}

		if p.Date, err = ParseTime(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse position date: %w", err)
		}
		if p.IngestedAt, err = ParseTime(ingestedStr); err != nil {
			return nil, fmt.Errorf("failed to parse ingested_at: %w", err)
		}

		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund_position table: %w", err)
	}

	return positions, nil
}
