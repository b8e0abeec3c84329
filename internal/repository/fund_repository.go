package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
)

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{db: r.db, tx: tx}
}

func (r *FundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetFunds retrieves funds from the database, ordered by name.
// Archived funds are excluded unless the filter asks for them.
func (r *FundRepository) GetFunds(filter model.FundFilter) ([]model.Fund, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), currency, is_archived
		FROM fund
	`
	if !filter.IncludeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}
	for rows.Next() {
		var f model.Fund
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Currency, &f.IsArchived); err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		funds = append(funds, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// GetFund retrieves a single fund by ID.
func (r *FundRepository) GetFund(fundID string) (model.Fund, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), currency, is_archived
		FROM fund
		WHERE id = ?
	`

	var f model.Fund
	err := r.getQuerier().QueryRow(query, fundID).
		Scan(&f.ID, &f.Name, &f.Description, &f.Currency, &f.IsArchived)
	if err == sql.ErrNoRows {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund: %w", err)
	}

	return f, nil
}

// CreateFund inserts a new fund and returns it with its generated ID.
func (r *FundRepository) CreateFund(fund model.Fund) (model.Fund, error) {
	if fund.ID == "" {
		fund.ID = uuid.NewString()
	}
	if fund.Currency == "" {
		fund.Currency = "USD"
	}

	query := `
		INSERT INTO fund (id, name, description, currency, is_archived)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query, fund.ID, fund.Name, fund.Description, fund.Currency, fund.IsArchived)
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to insert fund: %w", err)
	}

	return fund, nil
}
