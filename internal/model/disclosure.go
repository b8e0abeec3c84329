package model

import "time"

// CongressTrade represents one congressional trade disclosure as published
// in a periodic filing. Rows arrive from the ingestion process; this service
// only stores and serves them.
type CongressTrade struct {
	ID              string
	Politician      string
	Chamber         string // "house" or "senate"
	Ticker          string
	TransactionType string // "buy" or "sell"
	AmountRange     string // Disclosed band, e.g. "$1,001 - $15,000"
	TransactionDate time.Time
	DisclosureDate  time.Time
}

// DisclosureFilter for querying congressional trades
type DisclosureFilter struct {
	Ticker     string
	Politician string
	StartDate  time.Time
	EndDate    time.Time
	Limit      int
}
