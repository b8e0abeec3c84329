package request

type CreateContributorRequest struct {
	Name     string `json:"name"`
	JoinedAt string `json:"joinedAt"`
}

type CreateCapitalEventRequest struct {
	ContributorID string  `json:"contributorId"`
	FundID        string  `json:"fundId"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
}
