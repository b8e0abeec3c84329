package reconcile

import (
	"sort"
	"time"
)

// PeriodSummary is the per-entity rollup of a resolved position set for one
// date: how many positions are open and what they are worth in aggregate.
type PeriodSummary struct {
	EntityID string
	AsOfDate time.Time

	PositionCount    int
	TotalMarketValue float64 // sum of quantity * value over open positions
	TotalBasis       float64
	TotalUnrealized  float64 // market value - basis

	// TotalReturnPct is unrealized gain over basis, as a percentage. It is
	// exactly 0 when no basis is recorded, so reporting stays stable for
	// entities that track quantities without cost data.
	TotalReturnPct float64
}

// Summarize rolls a set of resolved latest observations up into one
// PeriodSummary per entity, dated at the given reference date. The input is
// expected to hold at most one row per (entity, sub-entity) pair, as produced
// by ResolveLatest.
//
// Results are ordered by entity ascending.
func Summarize(latest []Observation, asOf time.Time) []PeriodSummary {
	byEntity := make(map[string]*PeriodSummary)

	for _, o := range latest {
		s, ok := byEntity[o.EntityID]
		if !ok {
			s = &PeriodSummary{EntityID: o.EntityID, AsOfDate: Day(asOf)}
			byEntity[o.EntityID] = s
		}
		s.PositionCount++
		s.TotalMarketValue += o.MarketValue()
		s.TotalBasis += o.BasisMetric
	}

	summaries := make([]PeriodSummary, 0, len(byEntity))
	for _, s := range byEntity {
		s.TotalUnrealized = s.TotalMarketValue - s.TotalBasis
		if s.TotalBasis > 0 {
			s.TotalReturnPct = s.TotalUnrealized / s.TotalBasis * 100
		}
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EntityID < summaries[j].EntityID
	})

	return summaries
}

// SummarizeHistory computes one PeriodSummary per (entity, observation date)
// on or before the reference date, each summarizing the positions as resolved
// at that date. This is the snapshot-history shape: what every entity's
// holdings looked like on each day the log has data for.
//
// Results are ordered by entity ascending, then date descending, most recent
// first.
func SummarizeHistory(observations []Observation, reference time.Time) []PeriodSummary {
	ref := Day(reference)

	// Distinct snapshot dates per entity, bounded by the reference date.
	dates := make(map[string]map[time.Time]bool)
	for _, o := range observations {
		day := Day(o.AsOfDate)
		if day.After(ref) {
			continue
		}
		if dates[o.EntityID] == nil {
			dates[o.EntityID] = make(map[time.Time]bool)
		}
		dates[o.EntityID][day] = true
	}

	summaries := []PeriodSummary{}
	for entityID, days := range dates {
		entityRows := filterEntity(observations, entityID)
		for day := range days {
			latest := ResolveLatest(entityRows, day)
			summaries = append(summaries, Summarize(latest, day)...)
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].EntityID != summaries[j].EntityID {
			return summaries[i].EntityID < summaries[j].EntityID
		}
		return summaries[i].AsOfDate.After(summaries[j].AsOfDate)
	})

	return summaries
}

func filterEntity(observations []Observation, entityID string) []Observation {
	filtered := []Observation{}
	for _, o := range observations {
		if o.EntityID == entityID {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
