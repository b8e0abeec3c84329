package service_test

import (
	"testing"
	"time"

	"github.com/fundscope/fundscope-backend/internal/reconcile"
	"github.com/fundscope/fundscope-backend/internal/testutil"
)

// TestHoldingsService_GetCurrentHoldings tests ETF constituent resolution.
func TestHoldingsService_GetCurrentHoldings(t *testing.T) {
	t.Run("returns latest constituents at reference date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-01").WithShares(100000).WithMarketValue(20000000).Build(t, db)
		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-05").WithShares(110000).WithMarketValue(23000000).Build(t, db)
		testutil.NewHolding("ARKK", "COIN").WithDate("2025-06-05").WithShares(50000).WithMarketValue(12000000).Build(t, db)

		reference := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		holdings, err := svc.GetCurrentHoldings("ARKK", reference)
		if err != nil {
			t.Fatalf("GetCurrentHoldings() returned unexpected error: %v", err)
		}

		if len(holdings) != 2 {
			t.Fatalf("Expected 2 holdings, got %d", len(holdings))
		}
		// Ordered by holding ticker.
		if holdings[0].HoldingTicker != "COIN" || holdings[1].HoldingTicker != "TSLA" {
			t.Errorf("Expected [COIN TSLA], got [%s %s]", holdings[0].HoldingTicker, holdings[1].HoldingTicker)
		}
		if holdings[1].AsOfDate != "2025-06-05" {
			t.Errorf("Expected latest TSLA snapshot 2025-06-05, got %s", holdings[1].AsOfDate)
		}
		if holdings[1].Shares != 110000 {
			t.Errorf("Expected 110000 TSLA shares, got %v", holdings[1].Shares)
		}
	})

	t.Run("omits exited constituents", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-01").WithShares(100000).Build(t, db)
		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-05").WithShares(0).WithMarketValue(0).Build(t, db)

		reference := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		holdings, err := svc.GetCurrentHoldings("ARKK", reference)
		if err != nil {
			t.Fatalf("GetCurrentHoldings() returned unexpected error: %v", err)
		}

		if len(holdings) != 0 {
			t.Errorf("Expected no holdings after exit, got %d", len(holdings))
		}
	})
}

// TestHoldingsService_GetHoldingChanges tests the trade blotter view of
// constituent changes.
//
// WHY: The changes feed drives alerting. Share increases must read as buys,
// decreases as sells, and brand-new constituents must stay hidden unless the
// caller asks for them, since the first snapshot of a tracked ETF is not a
// trade.
func TestHoldingsService_GetHoldingChanges(t *testing.T) {
	thresholds := reconcile.Thresholds{AbsThreshold: 1000, PctThreshold: 0.5}
	reference := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("maps increases to buys and decreases to sells", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-01").WithShares(100000).Build(t, db)
		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-05").WithShares(120000).Build(t, db)
		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-10").WithShares(90000).Build(t, db)

		changes, err := svc.GetHoldingChanges("ARKK", reference, thresholds, false)
		if err != nil {
			t.Fatalf("GetHoldingChanges() returned unexpected error: %v", err)
		}

		if len(changes) != 2 {
			t.Fatalf("Expected 2 changes, got %d", len(changes))
		}
		if changes[0].Action != "buy" || changes[0].SharesChange != 20000 {
			t.Errorf("Expected first change buy of 20000, got %s %v", changes[0].Action, changes[0].SharesChange)
		}
		if changes[1].Action != "sell" || changes[1].SharesChange != -30000 {
			t.Errorf("Expected second change sell of 30000, got %s %v", changes[1].Action, changes[1].SharesChange)
		}
		if changes[1].PriorDate != "2025-06-05" {
			t.Errorf("Expected prior date 2025-06-05, got %s", changes[1].PriorDate)
		}
	})

	t.Run("suppresses insignificant changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-01").WithShares(200000).Build(t, db)
		// +500 shares is +0.25%: under both thresholds.
		testutil.NewHolding("ARKK", "TSLA").WithDate("2025-06-05").WithShares(200500).Build(t, db)

		changes, err := svc.GetHoldingChanges("ARKK", reference, thresholds, false)
		if err != nil {
			t.Fatalf("GetHoldingChanges() returned unexpected error: %v", err)
		}

		if len(changes) != 0 {
			t.Errorf("Expected no significant changes, got %d", len(changes))
		}
	})

	t.Run("excludes new positions unless requested", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewHolding("ARKK", "COIN").WithDate("2025-06-01").WithShares(50000).Build(t, db)

		changes, err := svc.GetHoldingChanges("ARKK", reference, thresholds, false)
		if err != nil {
			t.Fatalf("GetHoldingChanges() returned unexpected error: %v", err)
		}
		if len(changes) != 0 {
			t.Errorf("Expected new position to be hidden, got %d changes", len(changes))
		}

		changes, err = svc.GetHoldingChanges("ARKK", reference, thresholds, true)
		if err != nil {
			t.Fatalf("GetHoldingChanges() returned unexpected error: %v", err)
		}
		if len(changes) != 1 {
			t.Fatalf("Expected 1 change with includeNew, got %d", len(changes))
		}
		if changes[0].Action != "new" {
			t.Errorf("Expected action new, got %s", changes[0].Action)
		}
		if changes[0].PriorDate != "" {
			t.Errorf("Expected empty prior date, got %s", changes[0].PriorDate)
		}
	})
}
