package reconcile

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func obs(entity, sub, day string, qty, value float64) Observation {
	return Observation{
		EntityID:    entity,
		SubEntityID: sub,
		AsOfDate:    date(day),
		Quantity:    qty,
		ValueMetric: value,
	}
}

// TestResolveLatest_PicksMaxDateAtOrBeforeReference tests the core contract:
// one row per pair, carrying the largest date on or before the reference.
//
// WHY: every reporting view hangs off this resolution; a wrong "latest" row
// silently corrupts all downstream deltas and summaries.
func TestResolveLatest_PicksMaxDateAtOrBeforeReference(t *testing.T) {
	observations := []Observation{
		obs("alpha", "AAPL", "2025-01-01", 10, 100),
		obs("alpha", "AAPL", "2025-01-02", 10, 110),
		obs("alpha", "AAPL", "2025-01-05", 12, 115),
		obs("alpha", "MSFT", "2025-01-02", 5, 400),
	}

	latest := ResolveLatest(observations, date("2025-01-03"))

	if len(latest) != 2 {
		t.Fatalf("Expected 2 resolved rows, got %d", len(latest))
	}

	// Ordered by entity then sub-entity: AAPL before MSFT.
	if !latest[0].AsOfDate.Equal(date("2025-01-02")) {
		t.Errorf("Expected AAPL resolved at 2025-01-02, got %v", latest[0].AsOfDate)
	}
	if latest[0].ValueMetric != 110 {
		t.Errorf("Expected AAPL value 110, got %v", latest[0].ValueMetric)
	}
	if latest[1].SubEntityID != "MSFT" {
		t.Errorf("Expected second row MSFT, got %s", latest[1].SubEntityID)
	}
}

// TestResolveLatest_ExcludesNonPositiveQuantities tests the active-position
// filter and the omission rule.
//
// WHY: a closed position must vanish from "latest" reporting, never show up
// as a zero row. This is a stated invariant of the resolver.
func TestResolveLatest_ExcludesNonPositiveQuantities(t *testing.T) {
	t.Run("closed position falls back to last open snapshot", func(t *testing.T) {
		observations := []Observation{
			obs("alpha", "AAPL", "2025-01-01", 10, 100),
			obs("alpha", "AAPL", "2025-01-02", 0, 110),
		}

		latest := ResolveLatest(observations, date("2025-01-02"))

		if len(latest) != 1 {
			t.Fatalf("Expected 1 resolved row, got %d", len(latest))
		}
		if !latest[0].AsOfDate.Equal(date("2025-01-01")) {
			t.Errorf("Expected fallback to 2025-01-01, got %v", latest[0].AsOfDate)
		}
	})

	t.Run("pair with no positive quantity is omitted", func(t *testing.T) {
		observations := []Observation{
			obs("alpha", "AAPL", "2025-01-01", 0, 100),
			obs("alpha", "AAPL", "2025-01-02", -5, 110),
		}

		latest := ResolveLatest(observations, date("2025-01-05"))

		if len(latest) != 0 {
			t.Errorf("Expected empty result, got %d rows", len(latest))
		}
	})

	t.Run("never includes a row with quantity <= 0", func(t *testing.T) {
		observations := []Observation{
			obs("alpha", "AAPL", "2025-01-01", 10, 100),
			obs("alpha", "AAPL", "2025-01-03", 0, 105),
			obs("beta", "TSLA", "2025-01-02", -1, 200),
			obs("beta", "NVDA", "2025-01-02", 3, 500),
		}

		for _, o := range ResolveLatest(observations, date("2025-01-10")) {
			if o.Quantity <= 0 {
				t.Errorf("Resolved row %s/%s has quantity %v", o.EntityID, o.SubEntityID, o.Quantity)
			}
		}
	})
}

// TestResolveLatest_IgnoresFutureObservations verifies the reference date is
// a hard upper bound.
func TestResolveLatest_IgnoresFutureObservations(t *testing.T) {
	observations := []Observation{
		obs("alpha", "AAPL", "2025-01-01", 10, 100),
		obs("alpha", "AAPL", "2025-02-01", 20, 120),
	}

	latest := ResolveLatest(observations, date("2025-01-15"))

	if len(latest) != 1 {
		t.Fatalf("Expected 1 resolved row, got %d", len(latest))
	}
	if latest[0].Quantity != 10 {
		t.Errorf("Expected quantity 10 from the January row, got %v", latest[0].Quantity)
	}
}

// TestResolveLatest_DuplicateSameDayTieBreak tests the deterministic
// resolution of duplicate (entity, sub-entity, date) rows.
//
// WHY: ingestion can legitimately write the same snapshot twice (a re-run
// under the job lock after a partial failure). The resolver must pick the
// most recently ingested row every time, never raise, and never depend on
// input order.
func TestResolveLatest_DuplicateSameDayTieBreak(t *testing.T) {
	early := obs("alpha", "AAPL", "2025-01-02", 10, 100)
	early.IngestedAt = time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC)
	early.RowID = 1

	late := obs("alpha", "AAPL", "2025-01-02", 11, 101)
	late.IngestedAt = time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC)
	late.RowID = 2

	t.Run("most recent ingestion wins", func(t *testing.T) {
		for _, input := range [][]Observation{{early, late}, {late, early}} {
			latest := ResolveLatest(input, date("2025-01-02"))
			if len(latest) != 1 {
				t.Fatalf("Expected 1 resolved row, got %d", len(latest))
			}
			if latest[0].Quantity != 11 {
				t.Errorf("Expected the later ingestion (quantity 11), got %v", latest[0].Quantity)
			}
		}
	})

	t.Run("equal ingestion timestamps fall back to row order", func(t *testing.T) {
		a := early
		b := late
		b.IngestedAt = a.IngestedAt // same timestamp, higher RowID

		for _, input := range [][]Observation{{a, b}, {b, a}} {
			latest := ResolveLatest(input, date("2025-01-02"))
			if latest[0].RowID != 2 {
				t.Errorf("Expected RowID 2 to win, got %d", latest[0].RowID)
			}
		}
	})
}
