package reconcile

import "time"

// Direction labels how a position quantity moved between two snapshots.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Thresholds is the significance filter for change events. A change is
// reported when either threshold trips: |delta quantity| >= AbsThreshold
// OR |delta percent| >= PctThreshold. Both are independently tunable.
type Thresholds struct {
	AbsThreshold float64 // minimum absolute unit change to report
	PctThreshold float64 // minimum percentage change to report
}

// DefaultThresholds returns the standard significance filter: 1000 units
// absolute or 0.5 percent relative.
func DefaultThresholds() Thresholds {
	return Thresholds{AbsThreshold: 1000, PctThreshold: 0.5}
}

// ChangeEvent records one significant quantity transition between consecutive
// snapshots of a (entity, sub-entity) pair.
type ChangeEvent struct {
	EntityID    string
	SubEntityID string
	AsOfDate    time.Time // date of the later snapshot
	PriorDate   time.Time // zero for the event establishing a new position

	QuantityBefore float64
	QuantityAfter  float64
	DeltaQuantity  float64
	DeltaPercent   float64
	Direction      Direction
}

// ClassifyChanges walks each pair's canonical snapshot sequence in date order
// and emits a ChangeEvent for every consecutive pair whose quantity differs,
// filtered by the significance thresholds.
//
// The first observation of a sequence has no predecessor and is treated as a
// transition from quantity 0: a new position, reported as a 100% increase.
// The same convention applies when a mid-sequence predecessor had quantity 0,
// since the ratio against zero is otherwise undefined.
//
// Events are ordered by entity, sub-entity, then date ascending.
func ClassifyChanges(observations []Observation, thresholds Thresholds) []ChangeEvent {
	series := canonicalSeries(observations)

	events := []ChangeEvent{}
	for _, k := range sortedKeys(series) {
		events = append(events, classifySeries(k, series[k], thresholds)...)
	}
	return events
}

func classifySeries(k Key, rows []Observation, thresholds Thresholds) []ChangeEvent {
	events := []ChangeEvent{}

	prevQuantity := 0.0
	var prevDate time.Time

	for _, o := range rows {
		delta := o.Quantity - prevQuantity
		if delta != 0 {
			event := ChangeEvent{
				EntityID:       k.EntityID,
				SubEntityID:    k.SubEntityID,
				AsOfDate:       o.AsOfDate,
				PriorDate:      prevDate,
				QuantityBefore: prevQuantity,
				QuantityAfter:  o.Quantity,
				DeltaQuantity:  delta,
			}

			if prevQuantity > 0 {
				event.DeltaPercent = delta / prevQuantity * 100
			} else {
				event.DeltaPercent = 100
			}

			if delta > 0 {
				event.Direction = DirectionIncrease
			} else {
				event.Direction = DirectionDecrease
			}

			if significant(event, thresholds) {
				events = append(events, event)
			}
		}

		prevQuantity = o.Quantity
		prevDate = o.AsOfDate
	}

	return events
}

func significant(e ChangeEvent, t Thresholds) bool {
	abs := e.DeltaQuantity
	if abs < 0 {
		abs = -abs
	}
	pct := e.DeltaPercent
	if pct < 0 {
		pct = -pct
	}
	return abs >= t.AbsThreshold || pct >= t.PctThreshold
}
