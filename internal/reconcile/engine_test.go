package reconcile

import (
	"reflect"
	"testing"
)

// TestCurrentPositions_EndToEnd walks the full pipeline for one fund and one
// ticker across two days: latest resolution, market value, unrealized gain,
// and the 1-day lookback delta.
func TestCurrentPositions_EndToEnd(t *testing.T) {
	observations := []Observation{
		obsWithBasis("Alpha", "AAPL", "2025-01-01", 10, 100, 900),
		obsWithBasis("Alpha", "AAPL", "2025-01-02", 10, 110, 900),
	}

	rows := CurrentPositions(observations, Options{ReferenceDate: date("2025-01-02")})

	if len(rows) != 1 {
		t.Fatalf("Expected 1 position row, got %d", len(rows))
	}

	row := rows[0]
	if row.Latest.Quantity != 10 || row.Latest.ValueMetric != 110 {
		t.Errorf("Expected latest qty=10 value=110, got qty=%v value=%v",
			row.Latest.Quantity, row.Latest.ValueMetric)
	}
	if row.MarketValue != 1100 {
		t.Errorf("Expected market value 1100, got %v", row.MarketValue)
	}
	if row.Unrealized != 200 {
		t.Errorf("Expected unrealized 200, got %v", row.Unrealized)
	}

	daily, ok := row.Lookbacks["1d"]
	if !ok {
		t.Fatal("Expected a 1d lookback result")
	}
	if !daily.Prior.AsOfDate.Equal(date("2025-01-01")) {
		t.Errorf("Expected 1d lookback to resolve to 2025-01-01, got %v", daily.Prior.AsOfDate)
	}
	if daily.DeltaValue != 100 { // (110-100)*10
		t.Errorf("Expected daily pnl 100, got %v", daily.DeltaValue)
	}
	if daily.DeltaPercent == nil || *daily.DeltaPercent != 10 {
		t.Errorf("Expected daily pnl pct 10, got %v", daily.DeltaPercent)
	}
}

// TestCurrentPositions_MissingLookbackIsAbsent verifies a lag with no
// candidate is omitted from the map rather than reported with zero deltas.
func TestCurrentPositions_MissingLookbackIsAbsent(t *testing.T) {
	observations := []Observation{
		obsWithBasis("Alpha", "AAPL", "2025-01-02", 10, 110, 900),
	}

	rows := CurrentPositions(observations, Options{ReferenceDate: date("2025-01-02")})

	if len(rows) != 1 {
		t.Fatalf("Expected 1 position row, got %d", len(rows))
	}
	if len(rows[0].Lookbacks) != 0 {
		t.Errorf("Expected no lookback results, got %d", len(rows[0].Lookbacks))
	}
}

// TestPipeline_Deterministic runs every derivation twice over the same input
// and expects identical output.
//
// WHY: the engine is advertised as a pure function of its inputs; any hidden
// map-iteration or input-order dependence would surface here.
func TestPipeline_Deterministic(t *testing.T) {
	observations := []Observation{
		obsWithBasis("Alpha", "AAPL", "2025-01-01", 10, 100, 900),
		obsWithBasis("Alpha", "AAPL", "2025-01-02", 10, 110, 900),
		obsWithBasis("Alpha", "MSFT", "2025-01-02", 5, 400, 1800),
		obsWithBasis("Beta", "NVDA", "2025-01-01", 2000, 500, 0),
		obsWithBasis("Beta", "NVDA", "2025-01-02", 4000, 510, 0),
	}
	reversed := make([]Observation, len(observations))
	for i, o := range observations {
		reversed[len(observations)-1-i] = o
	}

	opts := Options{ReferenceDate: date("2025-01-02")}

	for name, input := range map[string][]Observation{"same order": observations, "reversed": reversed} {
		t.Run(name, func(t *testing.T) {
			if !reflect.DeepEqual(CurrentPositions(observations, opts), CurrentPositions(input, opts)) {
				t.Error("CurrentPositions output differs between runs")
			}
			if !reflect.DeepEqual(SnapshotHistory(observations, opts), SnapshotHistory(input, opts)) {
				t.Error("SnapshotHistory output differs between runs")
			}
			if !reflect.DeepEqual(ActivityFeed(observations, opts), ActivityFeed(input, opts)) {
				t.Error("ActivityFeed output differs between runs")
			}
		})
	}
}

// TestActivityFeed_BoundedByReferenceDate verifies future observations do
// not leak into the feed.
func TestActivityFeed_BoundedByReferenceDate(t *testing.T) {
	observations := []Observation{
		obs("SPY", "AAPL", "2025-01-01", 5000, 100),
		obs("SPY", "AAPL", "2025-03-01", 9000, 100),
	}

	events := ActivityFeed(observations, Options{ReferenceDate: date("2025-01-31")})

	if len(events) != 1 {
		t.Fatalf("Expected only the establishing event, got %d", len(events))
	}
	if !events[0].AsOfDate.Equal(date("2025-01-01")) {
		t.Errorf("Expected event dated 2025-01-01, got %v", events[0].AsOfDate)
	}
}
