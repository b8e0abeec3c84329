package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/testutil"
)

// TestArticleService tests research article storage and retrieval.
func TestArticleService(t *testing.T) {
	t.Run("lists articles filtered by ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestArticleService(t, db)

		testutil.CreateArticle(t, db, "AAPL outlook", "AAPL", "2025-06-01")
		testutil.CreateArticle(t, db, "MSFT outlook", "MSFT", "2025-06-02")

		articles, err := svc.GetArticles("AAPL", 10)
		if err != nil {
			t.Fatalf("GetArticles() returned unexpected error: %v", err)
		}
		if len(articles) != 1 || articles[0].Title != "AAPL outlook" {
			t.Errorf("Expected only the AAPL article, got %+v", articles)
		}
	})

	t.Run("gets a stored article by ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestArticleService(t, db)

		id := testutil.CreateArticle(t, db, "Quarterly review", "", "2025-06-01")

		article, err := svc.GetArticle(id)
		if err != nil {
			t.Fatalf("GetArticle() returned unexpected error: %v", err)
		}
		if article.Title != "Quarterly review" {
			t.Errorf("Expected stored title, got %q", article.Title)
		}
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestArticleService(t, db)

		_, err := svc.GetArticle(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrArticleNotFound) {
			t.Errorf("Expected ErrArticleNotFound, got %v", err)
		}
	})

	t.Run("rejects articles without a title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestArticleService(t, db)

		_, err := svc.CreateArticle(model.Article{
			PublishedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		if !errors.Is(err, apperrors.ErrMissingRequiredField) {
			t.Errorf("Expected ErrMissingRequiredField, got %v", err)
		}
	})
}
