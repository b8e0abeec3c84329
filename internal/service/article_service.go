package service

import (
	"fmt"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/validation"
)

// ArticleService handles research article operations.
type ArticleService struct {
	articleRepo *repository.ArticleRepository
}

// NewArticleService creates a new ArticleService with the provided dependencies.
func NewArticleService(articleRepo *repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// GetArticles returns articles, most recently published first, optionally
// filtered by ticker.
func (s *ArticleService) GetArticles(ticker string, limit int) ([]model.Article, error) {
	if ticker != "" {
		if err := validation.ValidateTicker(ticker); err != nil {
			return nil, err
		}
	}
	return s.articleRepo.List(ticker, limit)
}

// GetArticle returns a single article by ID.
func (s *ArticleService) GetArticle(id string) (model.Article, error) {
	if err := validation.ValidateUUID(id); err != nil {
		return model.Article{}, err
	}
	return s.articleRepo.Get(id)
}

// CreateArticle stores a new research article.
func (s *ArticleService) CreateArticle(a model.Article) (model.Article, error) {
	if a.Title == "" {
		return model.Article{}, fmt.Errorf("%w: title", apperrors.ErrMissingRequiredField)
	}
	if a.PublishedAt.IsZero() {
		return model.Article{}, fmt.Errorf("%w: publishedAt", apperrors.ErrMissingRequiredField)
	}
	if a.Ticker != "" {
		if err := validation.ValidateTicker(a.Ticker); err != nil {
			return model.Article{}, err
		}
	}
	return s.articleRepo.Create(a)
}
