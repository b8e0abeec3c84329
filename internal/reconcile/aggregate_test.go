package reconcile

import (
	"testing"
)

func obsWithBasis(entity, sub, day string, qty, value, basis float64) Observation {
	o := obs(entity, sub, day, qty, value)
	o.BasisMetric = basis
	return o
}

// TestSummarize_Rollup tests the per-entity totals.
func TestSummarize_Rollup(t *testing.T) {
	latest := []Observation{
		obsWithBasis("alpha", "AAPL", "2025-01-02", 10, 110, 900),
		obsWithBasis("alpha", "MSFT", "2025-01-02", 5, 400, 1800),
		obsWithBasis("beta", "NVDA", "2025-01-02", 2, 500, 1000),
	}

	summaries := Summarize(latest, date("2025-01-02"))

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}

	alpha := summaries[0]
	if alpha.EntityID != "alpha" {
		t.Fatalf("Expected alpha first, got %s", alpha.EntityID)
	}
	if alpha.PositionCount != 2 {
		t.Errorf("Expected 2 positions, got %d", alpha.PositionCount)
	}
	if alpha.TotalMarketValue != 3100 { // 10*110 + 5*400
		t.Errorf("Expected market value 3100, got %v", alpha.TotalMarketValue)
	}
	if alpha.TotalBasis != 2700 {
		t.Errorf("Expected basis 2700, got %v", alpha.TotalBasis)
	}
	if alpha.TotalUnrealized != 400 {
		t.Errorf("Expected unrealized 400, got %v", alpha.TotalUnrealized)
	}

	wantReturn := 400.0 / 2700.0 * 100
	if alpha.TotalReturnPct != wantReturn {
		t.Errorf("Expected return pct %v, got %v", wantReturn, alpha.TotalReturnPct)
	}
}

// TestSummarize_ZeroBasisReturnsZeroPct tests the division guard.
//
// WHY: funds that track quantities without cost data must report a stable 0,
// not NaN or an error.
func TestSummarize_ZeroBasisReturnsZeroPct(t *testing.T) {
	latest := []Observation{
		obsWithBasis("alpha", "AAPL", "2025-01-02", 5, 100, 0),
	}

	summaries := Summarize(latest, date("2025-01-02"))

	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].TotalMarketValue != 500 {
		t.Errorf("Expected market value 500, got %v", summaries[0].TotalMarketValue)
	}
	if summaries[0].TotalReturnPct != 0 {
		t.Errorf("Expected return pct exactly 0 with zero basis, got %v", summaries[0].TotalReturnPct)
	}
}

// TestSummarizeHistory_PerDateResolution tests that each date's summary
// reflects the positions as resolved at that date, including carry-forward
// of pairs that have no fresh snapshot that day.
func TestSummarizeHistory_PerDateResolution(t *testing.T) {
	observations := []Observation{
		obsWithBasis("alpha", "AAPL", "2025-01-01", 10, 100, 900),
		obsWithBasis("alpha", "MSFT", "2025-01-01", 5, 400, 1800),
		// Only AAPL gets a fresh snapshot on the 2nd; MSFT carries forward.
		obsWithBasis("alpha", "AAPL", "2025-01-02", 10, 110, 900),
	}

	summaries := SummarizeHistory(observations, date("2025-01-31"))

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}

	// Most recent first within the entity.
	latest := summaries[0]
	if !latest.AsOfDate.Equal(date("2025-01-02")) {
		t.Fatalf("Expected 2025-01-02 first, got %v", latest.AsOfDate)
	}
	if latest.PositionCount != 2 {
		t.Errorf("Expected MSFT carried forward (2 positions), got %d", latest.PositionCount)
	}
	if latest.TotalMarketValue != 3100 { // 10*110 + 5*400
		t.Errorf("Expected market value 3100, got %v", latest.TotalMarketValue)
	}

	prior := summaries[1]
	if prior.TotalMarketValue != 3000 { // 10*100 + 5*400
		t.Errorf("Expected market value 3000 on the 1st, got %v", prior.TotalMarketValue)
	}
}

// TestSummarizeHistory_RespectsReferenceDate verifies dates after the
// reference are excluded.
func TestSummarizeHistory_RespectsReferenceDate(t *testing.T) {
	observations := []Observation{
		obsWithBasis("alpha", "AAPL", "2025-01-01", 10, 100, 900),
		obsWithBasis("alpha", "AAPL", "2025-02-01", 10, 130, 900),
	}

	summaries := SummarizeHistory(observations, date("2025-01-15"))

	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	if !summaries[0].AsOfDate.Equal(date("2025-01-01")) {
		t.Errorf("Expected only the January snapshot, got %v", summaries[0].AsOfDate)
	}
}
