package request

type CreateFundRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
}

type ImportPositionsRequest struct {
	Positions []PositionImportRequest `json:"positions"`
}

type PositionImportRequest struct {
	Ticker    string  `json:"ticker"`
	Date      string  `json:"date"`
	Shares    float64 `json:"shares"`
	Price     float64 `json:"price"`
	CostBasis float64 `json:"costBasis"`
}
