package service

import "math"

// RoundingPrecision is the factor used to round monetary values in API
// responses to two decimal places.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places. Monetary values and
// share counts are rounded at the service boundary so every response reports
// consistent precision; internal computation stays at full precision.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
