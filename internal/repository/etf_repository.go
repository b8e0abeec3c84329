package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/model"
)

// ETFRepository provides data access methods for the append-only etf_holding
// snapshot log.
type ETFRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewETFRepository creates a new ETFRepository with the provided database connection.
func NewETFRepository(db *sql.DB) *ETFRepository {
	return &ETFRepository{db: db}
}

func (r *ETFRepository) WithTx(tx *sql.Tx) *ETFRepository {
	return &ETFRepository{db: r.db, tx: tx}
}

func (r *ETFRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ListETFs returns the distinct ETF tickers present in the holdings log.
func (r *ETFRepository) ListETFs() ([]string, error) {
	rows, err := r.getQuerier().Query(`SELECT DISTINCT etf_ticker FROM etf_holding ORDER BY etf_ticker ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query etf_holding table: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan etf ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating etf_holding table: %w", err)
	}

	return tickers, nil
}

// GetHoldings retrieves all holdings snapshot rows for an ETF up to and
// including the given date, in ascending date order.
func (r *ETFRepository) GetHoldings(etfTicker string, upTo time.Time) ([]model.ETFHolding, error) {
	query := `
		SELECT id, etf_ticker, holding_ticker, COALESCE(holding_name, ''), date,
		       shares, market_value, weight, ingested_at, rowid
		FROM etf_holding
		WHERE etf_ticker = ? AND date <= ?
		ORDER BY date ASC, ingested_at ASC, rowid ASC
	`

	rows, err := r.getQuerier().Query(query, etfTicker, upTo.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query etf_holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.ETFHolding{}
	for rows.Next() {
		var h model.ETFHolding
		var dateStr, ingestedStr string

		err := rows.Scan(
			&h.ID,
			&h.ETFTicker,
			&h.HoldingTicker,
			&h.HoldingName,
			&dateStr,
			&h.Shares,
			&h.MarketValue,
			&h.Weight,
			&ingestedStr,
			&h.RowID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan etf_holding results: %w", err)
		}

		if h.Date, err = ParseTime(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse holding date: %w", err)
		}
		if h.IngestedAt, err = ParseTime(ingestedStr); err != nil {
			return nil, fmt.Errorf("failed to parse ingested_at: %w", err)
		}

		holdings = append(holdings, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating etf_holding table: %w", err)
	}

	return holdings, nil
}

// InsertHoldings appends a batch of holdings snapshot rows to the log.
func (r *ETFRepository) InsertHoldings(holdings []model.ETFHolding) error {
	query := `
		INSERT INTO etf_holding (id, etf_ticker, holding_ticker, holding_name, date, shares, market_value, weight, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	q := r.getQuerier()
	now := time.Now().UTC()

	for _, h := range holdings {
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		ingestedAt := h.IngestedAt
		if ingestedAt.IsZero() {
			ingestedAt = now
		}

		_, err := q.Exec(query,
			h.ID,
			h.ETFTicker,
			h.HoldingTicker,
			h.HoldingName,
			h.Date.Format("2006-01-02"),
			h.Shares,
			h.MarketValue,
			h.Weight,
			ingestedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert etf_holding row: %w", err)
		}
	}

	return nil
}
