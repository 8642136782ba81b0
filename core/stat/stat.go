// Package stat holds the pure statistical primitives shared by all
// analyzers. Functions here perform no I/O and guard every numeric
// degeneracy inline, resolving to 0 or a neutral default instead of
// raising.
package stat

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value of the set. For even-length input it
// averages the two middle values. The input is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StdDev returns the population standard deviation (not the sample
// deviation), or 0 for an empty slice.
func StdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// Percentile returns the p-th percentile (p in [0,1]) of already-sorted
// values using index = ceil(n*p) - 1, clamped to the valid range.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(float64(n)*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

// ZScore returns how many standard deviations x lies from the mean.
// A zero stddev returns 0 rather than dividing by zero; with no spread
// there is no meaningful deviation to report.
func ZScore(x, mean, stddev float64) float64 {
	if stddev == 0 {
		return 0
	}
	return (x - mean) / stddev
}

// IQRFences returns the first quartile, third quartile and the standard
// 1.5*IQR outlier fences for the given values.
func IQRFences(values []float64) (q1, q3, lower, upper float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 = Percentile(sorted, 0.25)
	q3 = Percentile(sorted, 0.75)
	iqr := q3 - q1
	return q1, q3, q1 - 1.5*iqr, q3 + 1.5*iqr
}

// LinearTrendSlope fits a least-squares line through (index, value) pairs
// and returns its slope. Fewer than two points have no slope.
func LinearTrendSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// RSquared returns the coefficient of determination for predictions against
// actual values, floored at 0 so an adversarial model never reports negative
// explanatory power. Mismatched or empty inputs return 0.
func RSquared(actual, predicted []float64) float64 {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		return 0
	}
	mean := Mean(actual)

	var ssRes, ssTot float64
	for i := range actual {
		r := actual[i] - predicted[i]
		ssRes += r * r
		d := actual[i] - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0
	}
	return math.Max(0, 1-ssRes/ssTot)
}

// Clamp bounds v to the [lo, hi] interval.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
