package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundscope/fundscope-backend/internal/api/request"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// ArticleHandler handles HTTP requests for research article endpoints.
type ArticleHandler struct {
	articleService *service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// Articles handles GET requests for the article feed.
//
// Endpoint: GET /api/article
// Query: ticker, limit (optional)
// Response: 200 OK with array of model.Article, most recently published first
func (h *ArticleHandler) Articles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := request.ParseLimit(query.Get("limit"), 50, 200)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid limit", err)
		return
	}

	articles, err := h.articleService.GetArticles(query.Get("ticker"), limit)
	if err != nil {
		respondServiceError(w, "failed to retrieve articles", err)
		return
	}

	respondJSON(w, http.StatusOK, articles)
}

// Article handles GET requests for a single article.
//
// Endpoint: GET /api/article/{articleId}
func (h *ArticleHandler) Article(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "articleId")

	article, err := h.articleService.GetArticle(id)
	if err != nil {
		respondServiceError(w, "failed to retrieve article", err)
		return
	}

	respondJSON(w, http.StatusOK, article)
}

// CreateArticle handles POST requests to store a research article.
//
// Endpoint: POST /api/article
// Response: 201 Created with the stored model.Article
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	publishedAt, err := repository.ParseTime(req.PublishedAt)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid publishedAt", err)
		return
	}

	article, err := h.articleService.CreateArticle(model.Article{
		Title:       req.Title,
		Ticker:      req.Ticker,
		Summary:     req.Summary,
		Content:     req.Content,
		PublishedAt: publishedAt,
	})
	if err != nil {
		respondServiceError(w, "failed to create article", err)
		return
	}

	respondJSON(w, http.StatusCreated, article)
}
