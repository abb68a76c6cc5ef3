// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"math"
	"sort"
)

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDevPop returns the population standard deviation. The population
// estimator is used uniformly everywhere a standard deviation feeds
// downstream logic; a single observation has deviation 0, not NaN.
func stdDevPop(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// variancePop returns the population variance.
func variancePop(values []float64) float64 {
	sd := stdDevPop(values)
	return sd * sd
}

// pearson returns the Pearson correlation coefficient of two equal-length
// vectors. A zero denominator (either vector has no variance over the
// sample) yields 0, except when the two vectors are element-for-element
// identical: two raters in exact agreement correlate at 1 even when
// their shared ratings are all the same value.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
		sumXY += x[i] * y[i]
	}

	fn := float64(n)
	num := fn*sumXY - sumX*sumY
	den := math.Sqrt((fn*sumXX - sumX*sumX) * (fn*sumYY - sumY*sumY))
	if den == 0 {
		if equalVectors(x, y) {
			return 1
		}
		return 0
	}
	return num / den
}

func equalVectors(x, y []float64) bool {
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// olsSlope returns the ordinary least-squares slope of y on x, or 0 when
// fewer than two points exist or all x coincide.
func olsSlope(x, y []float64) float64 {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXX += x[i] * x[i]
		sumXY += x[i] * y[i]
	}

	fn := float64(n)
	den := fn*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / den
}

// medianLower returns the median, taking the lower of the two middle
// values for even-length input. This is a fixed project convention; do
// not switch to interpolation without migrating stored expectations.
func medianLower(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[(len(sorted)-1)/2]
}

// correlationStrength labels the magnitude of a correlation coefficient.
func correlationStrength(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return "very strong"
	case abs >= 0.5:
		return "strong"
	case abs >= 0.3:
		return "moderate"
	case abs >= 0.1:
		return "weak"
	default:
		return "very weak"
	}
}
