package request

type CreateArticleRequest struct {
	Title       string `json:"title"`
	Ticker      string `json:"ticker"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
}
