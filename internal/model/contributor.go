package model

import "time"

// Contributor represents a capital contributor to one or more funds.
type Contributor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	JoinedAt string `json:"joinedAt"` // Date in YYYY-MM-DD format
}

// CapitalEvent is a single contribution or withdrawal of capital.
type CapitalEvent struct {
	ID            string
	ContributorID string
	FundID        string
	Date          time.Time
	Amount        float64 // Positive for contributions, negative for withdrawals
}

// ContributorCapital is a contributor's aggregate stake in one fund: total
// net capital and the share of the fund's capital it represents.
type ContributorCapital struct {
	ContributorID string  `json:"contributorId"`
	Name          string  `json:"name"`
	NetCapital    float64 `json:"netCapital"`
	OwnershipPct  float64 `json:"ownershipPct"` // 0 when the fund has no net capital
}
