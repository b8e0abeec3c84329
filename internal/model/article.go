package model

import "time"

// Article represents a research article attached to a ticker.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Ticker      string    `json:"ticker"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
