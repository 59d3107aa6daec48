// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
)

// RoundUnit rounds a value to the nearest whole currency unit. Halves round
// toward positive infinity (-2.5 rounds to -2).
func RoundUnit(val float64) float64 {
	rounded := math.Floor(val + 0.5)
	if rounded == 0 {
		// Normalise negative zero so it never renders as "-0".
		return 0
	}
	return rounded
}

// IsFinite reports whether a value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}
