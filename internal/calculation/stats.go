package calculation

import (
	"math"
	"sort"
)

// percentile computes the q-th percentile (0-100) of values using linear
// interpolation between closest ranks. The input slice is not modified.
func percentile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sortedPercentile(sorted, q)
}

// sortedPercentile is percentile for an already-sorted slice.
func sortedPercentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := q / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// median is the 50th percentile.
func median(values []float64) float64 {
	return percentile(values, 50)
}

// roundCents rounds a monetary value to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundTenth rounds a percentage to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// isFinite reports whether every value is a finite number.
func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
