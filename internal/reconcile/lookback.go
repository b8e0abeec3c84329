package reconcile

import "time"

// LookbackLag describes one period-over-period comparison: find the prior
// observation closest to TargetDays before the latest date, searching between
// WindowMin and WindowMax days back. The window bounds exist to tolerate
// missing snapshot days (weekends, holidays); the right tolerance depends on
// the ingestion cadence, so they are configuration, not constants.
type LookbackLag struct {
	Label      string // e.g. "1d", "5d"; keys the result in reporting output
	TargetDays int
	WindowMin  int
	WindowMax  int
}

// DefaultLags returns the standard daily and weekly lookbacks: 1-day with a
// window of 1-14 days back, and 5-day with a window of 3-10 days back.
func DefaultLags() []LookbackLag {
	return []LookbackLag{
		{Label: "1d", TargetDays: 1, WindowMin: 1, WindowMax: 14},
		{Label: "5d", TargetDays: 5, WindowMin: 3, WindowMax: 10},
	}
}

// LookbackResult is the resolved prior observation for one lag, with the
// deltas derived against the latest observation.
type LookbackResult struct {
	Lag   LookbackLag
	Prior Observation

	// DeltaValue is (latest value - prior value) * latest quantity.
	DeltaValue float64

	// DeltaPercent is the value change as a percentage of the prior value.
	// It is nil when the prior value is zero or negative, where the ratio
	// is undefined; callers must report it as absent, never as infinity.
	DeltaPercent *float64
}

// ResolveLookback finds the best-matching prior observation for one lag,
// given the resolved latest observation and the pair's full history.
//
// Candidates must fall strictly before the latest date, inside the window
// [latest - WindowMax, latest - WindowMin], and carry positive quantity.
// The candidate whose date is closest to the ideal target (latest date minus
// TargetDays) wins; on equal distance the more recent date is preferred.
// Returns false when the window holds no candidate.
func ResolveLookback(latest Observation, history []Observation, lag LookbackLag) (LookbackResult, bool) {
	series := canonicalSeries(history)
	rows := series[Key{EntityID: latest.EntityID, SubEntityID: latest.SubEntityID}]

	latestDay := Day(latest.AsOfDate)
	target := latestDay.AddDate(0, 0, -lag.TargetDays)
	windowStart := latestDay.AddDate(0, 0, -lag.WindowMax)
	windowEnd := latestDay.AddDate(0, 0, -lag.WindowMin)

	var best Observation
	var bestDistance time.Duration
	found := false

	for _, o := range rows {
		if !o.AsOfDate.Before(latestDay) {
			break
		}
		if o.Quantity <= 0 || o.AsOfDate.Before(windowStart) || o.AsOfDate.After(windowEnd) {
			continue
		}

		distance := o.AsOfDate.Sub(target)
		if distance < 0 {
			distance = -distance
		}

		// Rows arrive date-ascending, so on a distance tie the later row
		// replaces the earlier one, which is exactly the preference we want.
		if !found || distance <= bestDistance {
			best = o
			bestDistance = distance
			found = true
		}
	}

	if !found {
		return LookbackResult{}, false
	}

	result := LookbackResult{
		Lag:        lag,
		Prior:      best,
		DeltaValue: (latest.ValueMetric - best.ValueMetric) * latest.Quantity,
	}
	if best.ValueMetric > 0 {
		pct := (latest.ValueMetric - best.ValueMetric) / best.ValueMetric * 100
		result.DeltaPercent = &pct
	}

	return result, true
}
