package model

import "time"

// Fund represents a tracked fund from the database
type Fund struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	IsArchived  bool   `json:"isArchived"`
}

// FundFilter for querying funds
type FundFilter struct {
	IncludeArchived bool
}

// FundPosition is one row of the append-only position snapshot log: the
// shares, price, and cost basis a fund held in one ticker on one date.
// Rows are immutable once written; corrections are appended, never updated,
// and the most recently ingested row for a (fund, ticker, date) key is the
// canonical one.
type FundPosition struct {
	ID         string    // Primary key
	FundID     string    // Owning fund
	Ticker     string    // Holding ticker symbol
	Date       time.Time // Snapshot date
	Shares     float64   // Shares held; <= 0 records a closed position
	Price      float64   // Price per share on the snapshot date
	CostBasis  float64   // Cost basis for the position, 0 when not recorded
	IngestedAt time.Time // When the ingestion process wrote the row
	RowID      int64     // SQLite rowid, insertion-order tie-break
}
