package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/config"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// TestReconcileConfig returns the stock engine defaults used across the
// service tests.
func TestReconcileConfig() config.ReconcileConfig {
	return config.ReconcileConfig{
		DailyWindowMin:  1,
		DailyWindowMax:  14,
		WeeklyWindowMin: 3,
		WeeklyWindowMax: 10,
		AbsThreshold:    1000,
		PctThreshold:    0.5,
	}
}

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(repository.NewFundRepository(db))
}

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	return service.NewPositionService(
		repository.NewPositionRepository(db),
		repository.NewFundRepository(db),
		TestReconcileConfig(),
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		repository.NewFundRepository(db),
		NewTestPositionService(t, db),
		repository.NewPositionRepository(db),
	)
}

func NewTestHoldingsService(t *testing.T, db *sql.DB) *service.HoldingsService {
	t.Helper()

	return service.NewHoldingsService(repository.NewETFRepository(db))
}

func NewTestContributorService(t *testing.T, db *sql.DB) *service.ContributorService {
	t.Helper()

	return service.NewContributorService(
		repository.NewContributorRepository(db),
		repository.NewFundRepository(db),
	)
}

func NewTestDisclosureService(t *testing.T, db *sql.DB) *service.DisclosureService {
	t.Helper()

	return service.NewDisclosureService(repository.NewDisclosureRepository(db))
}

func NewTestArticleService(t *testing.T, db *sql.DB) *service.ArticleService {
	t.Helper()

	return service.NewArticleService(repository.NewArticleRepository(db))
}

func NewTestJobService(t *testing.T, db *sql.DB) *service.JobService {
	t.Helper()

	return service.NewJobService(repository.NewJobRepository(db))
}

func NewTestIngestService(t *testing.T, db *sql.DB) *service.IngestService {
	t.Helper()

	return service.NewIngestService(
		db,
		repository.NewPositionRepository(db),
		repository.NewETFRepository(db),
		repository.NewFundRepository(db),
		NewTestJobService(t, db),
	)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Tech Fund")
//	// Returns: "Tech Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
