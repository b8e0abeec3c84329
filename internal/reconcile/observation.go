// Package reconcile computes point-in-time position state from an append-only
// log of periodic snapshot observations. It derives latest-known values,
// lookback deltas, significant holding changes, and per-entity summaries.
//
// Everything in this package is a pure function of its inputs: the engine
// holds no state between calls and never mutates the observation slices it
// is given, so concurrent invocations over the same data need no coordination.
package reconcile

import (
	"sort"
	"time"
)

// Observation is a single periodic snapshot row from the observation log.
// Rows are immutable once written; the log may contain more than one row for
// the same (entity, sub-entity, date) key, in which case the most recently
// ingested row is the canonical one (IngestedAt, then RowID as insertion order).
type Observation struct {
	EntityID    string    // e.g. fund name or ETF ticker
	SubEntityID string    // e.g. holding ticker
	AsOfDate    time.Time // snapshot date, normalized to midnight UTC
	Quantity    float64   // shares held; <= 0 means the position is closed
	ValueMetric float64   // e.g. price per share
	BasisMetric float64   // e.g. cost basis, optional (0 when not recorded)
	IngestedAt  time.Time // when the ingestion process wrote the row
	RowID       int64     // storage insertion order, used as the final tie-break
}

// MarketValue returns Quantity * ValueMetric.
func (o Observation) MarketValue() float64 {
	return o.Quantity * o.ValueMetric
}

// Key identifies the two-level grouping under which observations are tracked.
type Key struct {
	EntityID    string
	SubEntityID string
}

// Day normalizes a time to midnight UTC so observations compare by calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// newerRow reports whether a should win over b when both carry the same
// (entity, sub-entity, date) key: latest IngestedAt first, then highest RowID.
func newerRow(a, b Observation) bool {
	if !a.IngestedAt.Equal(b.IngestedAt) {
		return a.IngestedAt.After(b.IngestedAt)
	}
	return a.RowID > b.RowID
}

// canonicalSeries groups observations by key and collapses same-day duplicates
// to their canonical row. Each returned series is sorted by date ascending.
func canonicalSeries(observations []Observation) map[Key][]Observation {
	byDay := make(map[Key]map[time.Time]Observation)

	for _, o := range observations {
		k := Key{EntityID: o.EntityID, SubEntityID: o.SubEntityID}
		day := Day(o.AsOfDate)

		days, ok := byDay[k]
		if !ok {
			days = make(map[time.Time]Observation)
			byDay[k] = days
		}
		if current, ok := days[day]; !ok || newerRow(o, current) {
			o.AsOfDate = day
			days[day] = o
		}
	}

	series := make(map[Key][]Observation, len(byDay))
	for k, days := range byDay {
		rows := make([]Observation, 0, len(days))
		for _, o := range days {
			rows = append(rows, o)
		}
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].AsOfDate.Before(rows[j].AsOfDate)
		})
		series[k] = rows
	}

	return series
}

// sortedKeys returns the keys of a series map ordered by entity then sub-entity,
// so derived output is deterministic regardless of map iteration order.
func sortedKeys[V any](m map[Key]V) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].EntityID != keys[j].EntityID {
			return keys[i].EntityID < keys[j].EntityID
		}
		return keys[i].SubEntityID < keys[j].SubEntityID
	})
	return keys
}
