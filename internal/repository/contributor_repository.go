package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
)

// ContributorRepository provides data access methods for the contributor and
// capital_event tables.
type ContributorRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewContributorRepository creates a new repository instance.
func NewContributorRepository(db *sql.DB) *ContributorRepository {
	return &ContributorRepository{db: db}
}

func (r *ContributorRepository) WithTx(tx *sql.Tx) *ContributorRepository {
	return &ContributorRepository{db: r.db, tx: tx}
}

func (r *ContributorRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetContributors retrieves all contributors ordered by name.
func (r *ContributorRepository) GetContributors() ([]model.Contributor, error) {
	rows, err := r.getQuerier().Query(`SELECT id, name, joined_at FROM contributor ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributor table: %w", err)
	}
	defer rows.Close()

	contributors := []model.Contributor{}
	for rows.Next() {
		var c model.Contributor
		if err := rows.Scan(&c.ID, &c.Name, &c.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contributor results: %w", err)
		}
		contributors = append(contributors, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contributor table: %w", err)
	}

	return contributors, nil
}

// GetContributor retrieves a single contributor by ID.
func (r *ContributorRepository) GetContributor(id string) (model.Contributor, error) {
	var c model.Contributor
	err := r.getQuerier().QueryRow(`SELECT id, name, joined_at FROM contributor WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.JoinedAt)
	if err == sql.ErrNoRows {
		return model.Contributor{}, apperrors.ErrContributorNotFound
	}
	if err != nil {
		return model.Contributor{}, fmt.Errorf("failed to query contributor: %w", err)
	}
	return c, nil
}

// GetCapitalEvents retrieves all capital events for a fund in ascending date
// order, joined with the contributor name.
func (r *ContributorRepository) GetCapitalEvents(fundID string) ([]model.CapitalEvent, map[string]string, error) {
	query := `
		SELECT ce.id, ce.contributor_id, ce.fund_id, ce.date, ce.amount, c.name
		FROM capital_event ce
		INNER JOIN contributor c ON c.id = ce.contributor_id
		WHERE ce.fund_id = ?
		ORDER BY ce.date ASC
	`

	rows, err := r.getQuerier().Query(query, fundID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query capital_event table: %w", err)
	}
	defer rows.Close()

	events := []model.CapitalEvent{}
	names := map[string]string{}
	for rows.Next() {
		var e model.CapitalEvent
		var dateStr, name string

		if err := rows.Scan(&e.ID, &e.ContributorID, &e.FundID, &dateStr, &e.Amount, &name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan capital_event results: %w", err)
		}
		if e.Date, err = ParseTime(dateStr); err != nil {
			return nil, nil, fmt.Errorf("failed to parse capital event date: %w", err)
		}

		events = append(events, e)
		names[e.ContributorID] = name
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating capital_event table: %w", err)
	}

	return events, names, nil
}

// CreateContributor inserts a new contributor.
func (r *ContributorRepository) CreateContributor(c model.Contributor) (model.Contributor, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	_, err := r.getQuerier().Exec(
		`INSERT INTO contributor (id, name, joined_at) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.JoinedAt,
	)
	if err != nil {
		return model.Contributor{}, fmt.Errorf("failed to insert contributor: %w", err)
	}

	return c, nil
}

// CreateCapitalEvent inserts a contribution or withdrawal.
func (r *ContributorRepository) CreateCapitalEvent(e model.CapitalEvent) (model.CapitalEvent, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := r.getQuerier().Exec(
		`INSERT INTO capital_event (id, contributor_id, fund_id, date, amount) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.ContributorID, e.FundID, e.Date.Format("2006-01-02"), e.Amount,
	)
	if err != nil {
		return model.CapitalEvent{}, fmt.Errorf("failed to insert capital_event: %w", err)
	}

	return e, nil
}
