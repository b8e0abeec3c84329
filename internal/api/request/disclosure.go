package request

type ImportDisclosuresRequest struct {
	Trades []DisclosureImportRequest `json:"trades"`
}

type DisclosureImportRequest struct {
	Politician      string `json:"politician"`
	Chamber         string `json:"chamber"`
	Ticker          string `json:"ticker"`
	TransactionType string `json:"transactionType"`
	AmountRange     string `json:"amountRange"`
	TransactionDate string `json:"transactionDate"`
	DisclosureDate  string `json:"disclosureDate"`
}