package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
)

// ArticleRepository provides data access methods for the article table.
type ArticleRepository struct {
	db *sql.DB
}

// NewArticleRepository creates a new repository instance.
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// List retrieves articles, most recently published first, optionally filtered
// by ticker.
func (r *ArticleRepository) List(ticker string, limit int) ([]model.Article, error) {
	query := `
		SELECT id, title, COALESCE(ticker, ''), COALESCE(summary, ''), COALESCE(content, ''),
		       published_at, created_at
		FROM article
	`
	args := []any{}
	if ticker != "" {
		query += ` WHERE ticker = ?`
		args = append(args, ticker)
	}
	query += ` ORDER BY published_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query article table: %w", err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article table: %w", err)
	}

	return articles, nil
}

// Get retrieves a single article by ID.
func (r *ArticleRepository) Get(id string) (model.Article, error) {
	query := `
		SELECT id, title, COALESCE(ticker, ''), COALESCE(summary, ''), COALESCE(content, ''),
		       published_at, created_at
		FROM article
		WHERE id = ?
	`

	a, err := scanArticle(r.db.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return model.Article{}, apperrors.ErrArticleNotFound
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("failed to query article: %w", err)
	}

	return a, nil
}

// Create inserts a new article and returns it with generated fields set.
func (r *ArticleRepository) Create(a model.Article) (model.Article, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO article (id, title, ticker, summary, content, published_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		a.ID,
		a.Title,
		a.Ticker,
		a.Summary,
		a.Content,
		a.PublishedAt.Format(time.RFC3339),
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Article{}, fmt.Errorf("failed to insert article: %w", err)
	}

	return a, nil
}

func scanArticle(scan func(dest ...any) error) (model.Article, error) {
	var a model.Article
	var publishedStr, createdStr string

	err := scan(&a.ID, &a.Title, &a.Ticker, &a.Summary, &a.Content, &publishedStr, &createdStr)
	if err != nil {
		return model.Article{}, err
	}

	if a.PublishedAt, err = ParseTime(publishedStr); err != nil {
		return model.Article{}, fmt.Errorf("failed to parse published_at: %w", err)
	}
	if a.CreatedAt, err = ParseTime(createdStr); err != nil {
		return model.Article{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return a, nil
}
