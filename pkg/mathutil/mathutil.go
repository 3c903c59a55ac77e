// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/fuel-blend/pkg/constants"
)

// Round rounds a value to two decimals, the precision of rendered money and
// volumes.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// BisectionSteps returns the number of halvings needed to shrink an interval of
// the given width to at most tolerance. Non-positive inputs yield 0.
func BisectionSteps(width, tolerance float64) int {
	if width <= 0 || tolerance <= 0 || width <= tolerance {
		return 0
	}
	steps := math.Ceil(math.Log2(width / tolerance))
	if math.IsInf(steps, 0) || steps > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(steps)
}
