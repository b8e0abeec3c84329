package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fundscope/fundscope-backend/internal/model"
)

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund().Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund().
//	    WithName("Alpha Fund").
//	    Archived().
//	    Build(t, db)
type FundBuilder struct {
	ID          string
	Name        string
	Description string
	Currency    string
	IsArchived  bool
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:          MakeID(),
		Name:        MakeFundName("Test Fund"),
		Description: "Test description",
		Currency:    "USD",
		IsArchived:  false,
	}
}

// WithID sets a custom ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// Archived marks the fund as archived.
func (b *FundBuilder) Archived() *FundBuilder {
	b.IsArchived = true
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, name, description, currency, is_archived)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Description, b.Currency, b.IsArchived)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Currency:    b.Currency,
		IsArchived:  b.IsArchived,
	}
}

// PositionBuilder creates rows in the fund position snapshot log.
//
// Example usage:
//
//	testutil.NewPosition(fund.ID, "AAPL").
//	    WithDate("2025-06-01").
//	    WithShares(10).
//	    WithPrice(110).
//	    Build(t, db)
type PositionBuilder struct {
	ID         string
	FundID     string
	Ticker     string
	Date       string
	Shares     float64
	Price      float64
	CostBasis  float64
	IngestedAt time.Time
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition(fundID, ticker string) *PositionBuilder {
	return &PositionBuilder{
		ID:         MakeID(),
		FundID:     fundID,
		Ticker:     ticker,
		Date:       "2025-06-01",
		Shares:     10,
		Price:      100,
		CostBasis:  900,
		IngestedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WithDate sets the snapshot date (YYYY-MM-DD).
func (b *PositionBuilder) WithDate(date string) *PositionBuilder {
	b.Date = date
	return b
}

// WithShares sets the share count.
func (b *PositionBuilder) WithShares(shares float64) *PositionBuilder {
	b.Shares = shares
	return b
}

// WithPrice sets the per-share price.
func (b *PositionBuilder) WithPrice(price float64) *PositionBuilder {
	b.Price = price
	return b
}

// WithCostBasis sets the cost basis.
func (b *PositionBuilder) WithCostBasis(basis float64) *PositionBuilder {
	b.CostBasis = basis
	return b
}

// WithIngestedAt sets the ingestion timestamp, for duplicate tie-break tests.
func (b *PositionBuilder) WithIngestedAt(ts time.Time) *PositionBuilder {
	b.IngestedAt = ts
	return b
}

// Build creates the position row in the database.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) {
	t.Helper()

	query := `
		INSERT INTO fund_position (id, fund_id, ticker, date, shares, price, cost_basis, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.FundID, b.Ticker, b.Date, b.Shares, b.Price, b.CostBasis,
		b.IngestedAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
}

// HoldingBuilder creates rows in the ETF holdings snapshot log.
type HoldingBuilder struct {
	ID            string
	ETFTicker     string
	HoldingTicker string
	HoldingName   string
	Date          string
	Shares        float64
	MarketValue   float64
	Weight        float64
	IngestedAt    time.Time
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding(etfTicker, holdingTicker string) *HoldingBuilder {
	return &HoldingBuilder{
		ID:            MakeID(),
		ETFTicker:     etfTicker,
		HoldingTicker: holdingTicker,
		HoldingName:   holdingTicker + " Inc",
		Date:          "2025-06-01",
		Shares:        100000,
		MarketValue:   1000000,
		Weight:        1.5,
		IngestedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WithDate sets the snapshot date (YYYY-MM-DD).
func (b *HoldingBuilder) WithDate(date string) *HoldingBuilder {
	b.Date = date
	return b
}

// WithShares sets the share count.
func (b *HoldingBuilder) WithShares(shares float64) *HoldingBuilder {
	b.Shares = shares
	return b
}

// WithMarketValue sets the position's market value.
func (b *HoldingBuilder) WithMarketValue(value float64) *HoldingBuilder {
	b.MarketValue = value
	return b
}

// WithWeight sets the portfolio weight percentage.
func (b *HoldingBuilder) WithWeight(weight float64) *HoldingBuilder {
	b.Weight = weight
	return b
}

// Build creates the holding row in the database.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) {
	t.Helper()

	query := `
		INSERT INTO etf_holding (id, etf_ticker, holding_ticker, holding_name, date, shares, market_value, weight, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.ETFTicker, b.HoldingTicker, b.HoldingName, b.Date,
		b.Shares, b.MarketValue, b.Weight, b.IngestedAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}
}

// ContributorBuilder creates test contributors.
type ContributorBuilder struct {
	ID       string
	Name     string
	JoinedAt string
}

// NewContributor creates a ContributorBuilder with sensible defaults.
func NewContributor() *ContributorBuilder {
	return &ContributorBuilder{
		ID:       MakeID(),
		Name:     MakeFundName("Contributor"),
		JoinedAt: "2024-01-01",
	}
}

// WithName sets a custom name.
func (b *ContributorBuilder) WithName(name string) *ContributorBuilder {
	b.Name = name
	return b
}

// Build creates the contributor in the database and returns it.
func (b *ContributorBuilder) Build(t *testing.T, db *sql.DB) model.Contributor {
	t.Helper()

	query := `INSERT INTO contributor (id, name, joined_at) VALUES (?, ?, ?)`

	_, err := db.Exec(query, b.ID, b.Name, b.JoinedAt)
	if err != nil {
		t.Fatalf("Failed to create test contributor: %v", err)
	}

	return model.Contributor{ID: b.ID, Name: b.Name, JoinedAt: b.JoinedAt}
}

// CreateCapitalEvent inserts a capital event row directly.
func CreateCapitalEvent(t *testing.T, db *sql.DB, contributorID, fundID, date string, amount float64) {
	t.Helper()

	query := `INSERT INTO capital_event (id, contributor_id, fund_id, date, amount) VALUES (?, ?, ?, ?, ?)`

	_, err := db.Exec(query, MakeID(), contributorID, fundID, date, amount)
	if err != nil {
		t.Fatalf("Failed to create test capital event: %v", err)
	}
}

// CreateCongressTrade inserts a congressional trade disclosure row directly.
func CreateCongressTrade(t *testing.T, db *sql.DB, politician, ticker, transactionType, transactionDate, disclosureDate string) {
	t.Helper()

	query := `
		INSERT INTO congress_trade (id, politician, chamber, ticker, transaction_type, amount_range, transaction_date, disclosure_date)
		VALUES (?, ?, 'house', ?, ?, '$1,001 - $15,000', ?, ?)
	`

	_, err := db.Exec(query, MakeID(), politician, ticker, transactionType, transactionDate, disclosureDate)
	if err != nil {
		t.Fatalf("Failed to create test congress trade: %v", err)
	}
}

// CreateArticle inserts a research article row directly and returns its ID.
func CreateArticle(t *testing.T, db *sql.DB, title, ticker, publishedAt string) string {
	t.Helper()

	id := MakeID()
	query := `
		INSERT INTO article (id, title, ticker, summary, content, published_at)
		VALUES (?, ?, ?, 'summary', 'content', ?)
	`

	_, err := db.Exec(query, id, title, ticker, publishedAt)
	if err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}

	return id
}
