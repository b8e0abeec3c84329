package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/model"
)

// DisclosureRepository provides data access methods for the congress_trade table.
type DisclosureRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewDisclosureRepository creates a new repository instance.
func NewDisclosureRepository(db *sql.DB) *DisclosureRepository {
	return &DisclosureRepository{db: db}
}

func (r *DisclosureRepository) WithTx(tx *sql.Tx) *DisclosureRepository {
	return &DisclosureRepository{db: r.db, tx: tx}
}

func (r *DisclosureRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// List retrieves congressional trades matching the filter, most recently
// disclosed first.
func (r *DisclosureRepository) List(filter model.DisclosureFilter) ([]model.CongressTrade, error) {
	query := `
		SELECT id, politician, chamber, ticker, transaction_type, amount_range,
		       transaction_date, disclosure_date
		FROM congress_trade
		WHERE 1=1
	`
	args := []any{}

	if filter.Ticker != "" {
		query += ` AND ticker = ?`
		args = append(args, filter.Ticker)
	}
	if filter.Politician != "" {
		query += ` AND politician = ?`
		args = append(args, filter.Politician)
	}
	if !filter.StartDate.IsZero() {
		query += ` AND disclosure_date >= ?`
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		query += ` AND disclosure_date <= ?`
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}

	query += ` ORDER BY disclosure_date DESC, politician ASC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query congress_trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.CongressTrade{}
	for rows.Next() {
		var t model.CongressTrade
		var transactionStr, disclosureStr string

		err := rows.Scan(
			&t.ID,
			&t.Politician,
			&t.Chamber,
			&t.Ticker,
			&t.TransactionType,
			&t.AmountRange,
			&transactionStr,
			&disclosureStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan congress_trade results: %w", err)
		}

		if t.TransactionDate, err = ParseTime(transactionStr); err != nil {
			return nil, fmt.Errorf("failed to parse transaction_date: %w", err)
		}
		if t.DisclosureDate, err = ParseTime(disclosureStr); err != nil {
			return nil, fmt.Errorf("failed to parse disclosure_date: %w", err)
		}

		trades = append(trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating congress_trade table: %w", err)
	}

	return trades, nil
}

// Insert appends a batch of disclosures.
func (r *DisclosureRepository) Insert(trades []model.CongressTrade) error {
	query := `
		INSERT INTO congress_trade
			(id, politician, chamber, ticker, transaction_type, amount_range, transaction_date, disclosure_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	q := r.getQuerier()
	for _, t := range trades {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}

		_, err := q.Exec(query,
			t.ID,
			t.Politician,
			t.Chamber,
			t.Ticker,
			t.TransactionType,
			t.AmountRange,
			t.TransactionDate.Format("2006-01-02"),
			t.DisclosureDate.Format("2006-01-02"),
		)
		if err != nil {
			return fmt.Errorf("failed to insert congress_trade row: %w", err)
		}
	}

	return nil
}
