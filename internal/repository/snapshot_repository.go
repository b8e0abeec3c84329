package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/model"
)

// SnapshotRepository provides data access methods for the
// daily_portfolio_snapshot materialized table.
type SnapshotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) WithTx(tx *sql.Tx) *SnapshotRepository {
	return &SnapshotRepository{db: r.db, tx: tx}
}

func (r *SnapshotRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// UpsertSnapshot writes one materialized per-fund daily valuation. Re-running
// materialization for a date replaces the previous record for that fund/date.
func (r *SnapshotRepository) UpsertSnapshot(s model.DailyPortfolioSnapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	calculatedAt := s.CalculatedAt
	if calculatedAt.IsZero() {
		calculatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO daily_portfolio_snapshot
			(id, fund_id, date, position_count, total_market_value, total_basis,
			 total_unrealized, total_return_pct, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fund_id, date) DO UPDATE SET
			position_count = excluded.position_count,
			total_market_value = excluded.total_market_value,
			total_basis = excluded.total_basis,
			total_unrealized = excluded.total_unrealized,
			total_return_pct = excluded.total_return_pct,
			calculated_at = excluded.calculated_at
	`

	_, err := r.getQuerier().Exec(query,
		s.ID,
		s.FundID,
		s.Date.Format("2006-01-02"),
		s.PositionCount,
		s.TotalMarketValue,
		s.TotalBasis,
		s.TotalUnrealized,
		s.TotalReturnPct,
		calculatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily_portfolio_snapshot: %w", err)
	}

	return nil
}

// GetHistory streams materialized snapshots for the given funds between two
// dates inclusive, most recent first, using a callback to avoid loading large
// ranges into memory at once.
func (r *SnapshotRepository) GetHistory(
	fundIDs []string,
	startDate, endDate time.Time,
	callback func(record model.DailyPortfolioSnapshot) error,
) error {
	if len(fundIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(fundIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, fund_id, date, position_count, total_market_value, total_basis,
		       total_unrealized, total_return_pct, calculated_at
		FROM daily_portfolio_snapshot
		WHERE fund_id IN (` + strings.Join(placeholders, ",") + `)
		AND date >= ?
		AND date <= ?
		ORDER BY fund_id ASC, date DESC
	`

	args := make([]any, 0, len(fundIDs)+2)
	for _, id := range fundIDs {
		args = append(args, id)
	}
	args = append(args, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query daily_portfolio_snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.DailyPortfolioSnapshot
		var dateStr, calculatedAtStr string

		err := rows.Scan(
			&record.ID,
			&record.FundID,
			&dateStr,
			&record.PositionCount,
			&record.TotalMarketValue,
			&record.TotalBasis,
			&record.TotalUnrealized,
			&record.TotalReturnPct,
			&calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		if record.Date, err = ParseTime(dateStr); err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}
		if record.CalculatedAt, err = ParseTime(calculatedAtStr); err != nil {
			return fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}
