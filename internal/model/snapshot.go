package model

import "time"

// DailyPortfolioSnapshot represents a pre-calculated per-fund valuation for a
// specific date. This is used for fast retrieval of snapshot history from the
// materialized table instead of re-deriving it from the observation log.
type DailyPortfolioSnapshot struct {
	ID               string    // Primary key
	FundID           string    // Fund identifier
	Date             time.Time // Date of this snapshot
	PositionCount    int       // Distinct open positions on this date
	TotalMarketValue float64   // Sum of shares * price across open positions
	TotalBasis       float64   // Sum of recorded cost basis
	TotalUnrealized  float64   // Market value - basis
	TotalReturnPct   float64   // Unrealized over basis, 0 when basis is 0
	CalculatedAt     time.Time // When this record was materialized
}
