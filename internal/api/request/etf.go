package request

type ImportHoldingsRequest struct {
	Holdings []HoldingImportRequest `json:"holdings"`
}

type HoldingImportRequest struct {
	HoldingTicker string  `json:"holdingTicker"`
	HoldingName   string  `json:"holdingName"`
	Date          string  `json:"date"`
	Shares        float64 `json:"shares"`
	MarketValue   float64 `json:"marketValue"`
	Weight        float64 `json:"weight"`
}
