package reconcile

import "time"

// ResolveLatest returns, for each (entity, sub-entity) pair, the observation
// with the largest AsOfDate on or before the reference date, considering only
// rows with Quantity > 0. Pairs with no qualifying row are omitted entirely:
// a closed or never-opened position is valid state, not a zero-valued row.
//
// Same-day duplicates are resolved to the most recently ingested row before
// the date comparison, so the result is deterministic for any input order.
// Results are ordered by entity then sub-entity.
func ResolveLatest(observations []Observation, reference time.Time) []Observation {
	series := canonicalSeries(observations)
	ref := Day(reference)

	latest := []Observation{}
	for _, k := range sortedKeys(series) {
		if o, ok := latestInSeries(series[k], ref); ok {
			latest = append(latest, o)
		}
	}
	return latest
}

// latestInSeries scans a date-ascending canonical series for the most recent
// positive-quantity observation on or before ref.
func latestInSeries(rows []Observation, ref time.Time) (Observation, bool) {
	var best Observation
	found := false

	for _, o := range rows {
		if o.AsOfDate.After(ref) {
			break
		}
		if o.Quantity > 0 {
			best = o
			found = true
		}
	}

	return best, found
}
