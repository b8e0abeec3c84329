package reconcile

import (
	"testing"
)

// TestResolveLookback_PicksClosestToTarget tests closest-match selection
// inside the tolerance window.
//
// WHY: snapshot logs have gaps (weekends, holidays); the resolver must pick
// the candidate nearest the ideal lag date rather than demanding an exact hit.
func TestResolveLookback_PicksClosestToTarget(t *testing.T) {
	latest := obs("alpha", "AAPL", "2025-06-10", 10, 120)
	history := []Observation{
		obs("alpha", "AAPL", "2025-06-01", 10, 100), // 9 days back
		obs("alpha", "AAPL", "2025-06-04", 10, 110), // 6 days back
		latest,
	}
	lag := LookbackLag{Label: "5d", TargetDays: 5, WindowMin: 3, WindowMax: 10}

	result, ok := ResolveLookback(latest, history, lag)

	if !ok {
		t.Fatal("Expected a lookback candidate, got none")
	}
	if !result.Prior.AsOfDate.Equal(date("2025-06-04")) {
		t.Errorf("Expected 2025-06-04 (closest to 5-day target), got %v", result.Prior.AsOfDate)
	}
}

// TestResolveLookback_TiePrefersMoreRecent verifies the equal-distance
// tie-break.
func TestResolveLookback_TiePrefersMoreRecent(t *testing.T) {
	latest := obs("alpha", "AAPL", "2025-06-10", 10, 120)
	history := []Observation{
		obs("alpha", "AAPL", "2025-06-03", 10, 100), // 2 days before target
		obs("alpha", "AAPL", "2025-06-07", 10, 110), // 2 days after target
		latest,
	}
	lag := LookbackLag{Label: "5d", TargetDays: 5, WindowMin: 1, WindowMax: 10}

	result, ok := ResolveLookback(latest, history, lag)

	if !ok {
		t.Fatal("Expected a lookback candidate, got none")
	}
	if !result.Prior.AsOfDate.Equal(date("2025-06-07")) {
		t.Errorf("Expected the more recent 2025-06-07 on a distance tie, got %v", result.Prior.AsOfDate)
	}
}

// TestResolveLookback_WindowBounds tests candidate eligibility: strictly
// before the latest date, inside the configured window, positive quantity.
func TestResolveLookback_WindowBounds(t *testing.T) {
	latest := obs("alpha", "AAPL", "2025-06-10", 10, 120)
	lag := LookbackLag{Label: "1d", TargetDays: 1, WindowMin: 1, WindowMax: 14}

	tests := []struct {
		name    string
		history []Observation
		wantOK  bool
		want    string // expected prior date when wantOK
	}{
		{
			name:    "empty window yields no result",
			history: []Observation{latest},
			wantOK:  false,
		},
		{
			name: "candidate older than the window is excluded",
			history: []Observation{
				obs("alpha", "AAPL", "2025-05-01", 10, 90),
				latest,
			},
			wantOK: false,
		},
		{
			name: "latest date itself is never a candidate",
			history: []Observation{
				obs("alpha", "AAPL", "2025-06-10", 10, 119),
				latest,
			},
			wantOK: false,
		},
		{
			name: "closed-position rows are skipped",
			history: []Observation{
				obs("alpha", "AAPL", "2025-06-09", 0, 100),
				obs("alpha", "AAPL", "2025-06-06", 10, 100),
				latest,
			},
			wantOK: true,
			want:   "2025-06-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ResolveLookback(latest, tt.history, lag)

			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if tt.wantOK && !result.Prior.AsOfDate.Equal(date(tt.want)) {
				t.Errorf("Expected prior date %s, got %v", tt.want, result.Prior.AsOfDate)
			}
		})
	}
}

// TestResolveLookback_Deltas tests the derived delta values.
//
// WHY: the division guard matters most here; a zero prior value must produce
// an absent percentage, never infinity or a panic.
func TestResolveLookback_Deltas(t *testing.T) {
	lag := LookbackLag{Label: "1d", TargetDays: 1, WindowMin: 1, WindowMax: 14}

	t.Run("delta value and percent against a positive prior", func(t *testing.T) {
		latest := obs("alpha", "AAPL", "2025-01-02", 10, 110)
		history := []Observation{
			obs("alpha", "AAPL", "2025-01-01", 10, 100),
			latest,
		}

		result, ok := ResolveLookback(latest, history, lag)

		if !ok {
			t.Fatal("Expected a lookback candidate, got none")
		}
		if result.DeltaValue != 100 {
			t.Errorf("Expected delta value 100, got %v", result.DeltaValue)
		}
		if result.DeltaPercent == nil || *result.DeltaPercent != 10 {
			t.Errorf("Expected delta percent 10, got %v", result.DeltaPercent)
		}
	})

	t.Run("delta percent is absent when prior value is zero", func(t *testing.T) {
		latest := obs("alpha", "AAPL", "2025-01-02", 10, 110)
		history := []Observation{
			obs("alpha", "AAPL", "2025-01-01", 10, 0),
			latest,
		}

		result, ok := ResolveLookback(latest, history, lag)

		if !ok {
			t.Fatal("Expected a lookback candidate, got none")
		}
		if result.DeltaPercent != nil {
			t.Errorf("Expected nil delta percent against a zero prior value, got %v", *result.DeltaPercent)
		}
		if result.DeltaValue != 1100 {
			t.Errorf("Expected delta value 1100, got %v", result.DeltaValue)
		}
	})
}
