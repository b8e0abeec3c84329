package model

import "time"

// ETFHolding is one row of the ETF holdings snapshot log: the shares an ETF
// held in one constituent on one date. Same append-only semantics as
// FundPosition.
type ETFHolding struct {
	ID            string
	ETFTicker     string
	HoldingTicker string
	HoldingName   string
	Date          time.Time
	Shares        float64
	MarketValue   float64 // Reported market value of the holding
	Weight        float64 // Portfolio weight percentage, 0 when not reported
	IngestedAt    time.Time
	RowID         int64
}
