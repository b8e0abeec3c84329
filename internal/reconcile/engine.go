package reconcile

import "time"

// Options are the call-time knobs of the engine. The zero value is usable:
// every field falls back to its documented default.
type Options struct {
	// ReferenceDate bounds which observations are considered. Zero means now.
	ReferenceDate time.Time

	// Lags are the lookback comparisons to resolve per position.
	// Nil means DefaultLags.
	Lags []LookbackLag

	// Thresholds is the significance filter for change events.
	// The zero value means DefaultThresholds.
	Thresholds Thresholds
}

func (o Options) withDefaults() Options {
	if o.ReferenceDate.IsZero() {
		o.ReferenceDate = time.Now()
	}
	if o.Lags == nil {
		o.Lags = DefaultLags()
	}
	if o.Thresholds == (Thresholds{}) {
		o.Thresholds = DefaultThresholds()
	}
	return o
}

// PositionRow is one current-position reporting row: the resolved latest
// observation joined with its lookback deltas, one entry per configured lag.
type PositionRow struct {
	Latest      Observation
	MarketValue float64
	Unrealized  float64 // market value - basis

	// Lookbacks is keyed by lag label. A lag whose window held no candidate
	// is absent from the map, not present with zero deltas.
	Lookbacks map[string]LookbackResult
}

// CurrentPositions resolves the latest observation per open position and
// joins each with its lookback deltas. Rows are ordered by entity then
// sub-entity.
func CurrentPositions(observations []Observation, opts Options) []PositionRow {
	opts = opts.withDefaults()

	rows := []PositionRow{}
	for _, latest := range ResolveLatest(observations, opts.ReferenceDate) {
		row := PositionRow{
			Latest:      latest,
			MarketValue: latest.MarketValue(),
			Unrealized:  latest.MarketValue() - latest.BasisMetric,
			Lookbacks:   make(map[string]LookbackResult, len(opts.Lags)),
		}
		for _, lag := range opts.Lags {
			if result, ok := ResolveLookback(latest, observations, lag); ok {
				row.Lookbacks[lag.Label] = result
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// SnapshotHistory returns the per-entity-per-date summaries up to the
// reference date, most recent first. See SummarizeHistory.
func SnapshotHistory(observations []Observation, opts Options) []PeriodSummary {
	opts = opts.withDefaults()
	return SummarizeHistory(observations, opts.ReferenceDate)
}

// ActivityFeed returns the significant change events derivable from the log
// up to the reference date. See ClassifyChanges.
func ActivityFeed(observations []Observation, opts Options) []ChangeEvent {
	opts = opts.withDefaults()

	bounded := []Observation{}
	ref := Day(opts.ReferenceDate)
	for _, o := range observations {
		if !Day(o.AsOfDate).After(ref) {
			bounded = append(bounded, o)
		}
	}

	return ClassifyChanges(bounded, opts.Thresholds)
}
