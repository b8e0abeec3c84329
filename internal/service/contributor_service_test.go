package service_test

import (
	"errors"
	"testing"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/testutil"
)

// TestContributorService_GetCapitalSummary tests ownership computation.
//
// WHY: Ownership percentages drive the contributor dashboard. They must sum
// from signed capital events and degrade gracefully when a fund's net
// capital is not positive.
func TestContributorService_GetCapitalSummary(t *testing.T) {
	t.Run("computes net capital and ownership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContributorService(t, db)

		fund := testutil.NewFund().Build(t, db)
		alice := testutil.NewContributor().WithName("Alice").Build(t, db)
		bob := testutil.NewContributor().WithName("Bob").Build(t, db)

		testutil.CreateCapitalEvent(t, db, alice.ID, fund.ID, "2025-01-01", 60000)
		testutil.CreateCapitalEvent(t, db, alice.ID, fund.ID, "2025-03-01", -10000)
		testutil.CreateCapitalEvent(t, db, bob.ID, fund.ID, "2025-02-01", 50000)

		summary, err := svc.GetCapitalSummary(fund.ID)
		if err != nil {
			t.Fatalf("GetCapitalSummary() returned unexpected error: %v", err)
		}

		if len(summary) != 2 {
			t.Fatalf("Expected 2 contributors, got %d", len(summary))
		}
		// Largest stake first.
		if summary[0].Name != "Alice" || summary[0].NetCapital != 50000 {
			t.Errorf("Expected Alice with 50000, got %s with %v", summary[0].Name, summary[0].NetCapital)
		}
		if summary[0].OwnershipPct != 50 || summary[1].OwnershipPct != 50 {
			t.Errorf("Expected 50/50 ownership, got %v/%v", summary[0].OwnershipPct, summary[1].OwnershipPct)
		}
	})

	t.Run("reports zero ownership when fund total is not positive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContributorService(t, db)

		fund := testutil.NewFund().Build(t, db)
		alice := testutil.NewContributor().WithName("Alice").Build(t, db)
		bob := testutil.NewContributor().WithName("Bob").Build(t, db)

		testutil.CreateCapitalEvent(t, db, alice.ID, fund.ID, "2025-01-01", 10000)
		testutil.CreateCapitalEvent(t, db, bob.ID, fund.ID, "2025-02-01", -10000)

		summary, err := svc.GetCapitalSummary(fund.ID)
		if err != nil {
			t.Fatalf("GetCapitalSummary() returned unexpected error: %v", err)
		}

		for _, c := range summary {
			if c.OwnershipPct != 0 {
				t.Errorf("Expected zero ownership for %s, got %v", c.Name, c.OwnershipPct)
			}
		}
	})

	t.Run("returns not found for unknown fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContributorService(t, db)

		_, err := svc.GetCapitalSummary(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})
}

// TestContributorService_RecordCapitalEvent tests capital event validation.
func TestContributorService_RecordCapitalEvent(t *testing.T) {
	t.Run("rejects events for unknown contributors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContributorService(t, db)
		fund := testutil.NewFund().Build(t, db)

		_, err := svc.RecordCapitalEvent(model.CapitalEvent{
			ContributorID: testutil.MakeID(),
			FundID:        fund.ID,
			Amount:        1000,
		})
		if !errors.Is(err, apperrors.ErrContributorNotFound) {
			t.Errorf("Expected ErrContributorNotFound, got %v", err)
		}
	})

	t.Run("rejects zero amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContributorService(t, db)

		_, err := svc.RecordCapitalEvent(model.CapitalEvent{Amount: 0})
		if !errors.Is(err, apperrors.ErrMissingRequiredField) {
			t.Errorf("Expected ErrMissingRequiredField, got %v", err)
		}
	})
}
