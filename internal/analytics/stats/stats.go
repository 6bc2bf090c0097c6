// Package stats implements the descriptive statistics and least-squares
// regression used by the forecasting and reporting code.
//
// Every function accepts an empty slice and returns a zero value for it.
// Callers that must treat an empty series as an error check the length
// themselves.
package stats

import (
	"math"
	"sort"
)

// OutlierFactor is the IQR multiplier used by Outliers.
const OutlierFactor = 1.5

// Mean returns the arithmetic mean.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, or the average of the two middle values
// for an even-length input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return medianSorted(sortedCopy(values))
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Variance returns the sample variance (n-1 denominator). Fewer than two
// values yield 0.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values)-1)
}

// StdDev returns the sample standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Quartiles returns Q1, Q2 and Q3. Q1 and Q3 are picked by integer index
// into the sorted values at floor(0.25n) and floor(0.75n); they are not
// interpolated. Q2 is the median.
func Quartiles(values []float64) [3]float64 {
	if len(values) == 0 {
		return [3]float64{}
	}
	sorted := sortedCopy(values)
	n := len(sorted)
	return [3]float64{
		sorted[n/4],
		medianSorted(sorted),
		sorted[(3*n)/4],
	}
}

// Outliers returns the values lying outside [Q1-1.5*IQR, Q3+1.5*IQR], in
// input order.
func Outliers(values []float64) []float64 {
	out := []float64{}
	if len(values) == 0 {
		return out
	}
	q := Quartiles(values)
	iqr := q[2] - q[0]
	lower := q[0] - OutlierFactor*iqr
	upper := q[2] + OutlierFactor*iqr
	for _, v := range values {
		if v < lower || v > upper {
			out = append(out, v)
		}
	}
	return out
}

// Mode returns every value that occurs with the highest frequency, sorted
// ascending. When all values are distinct each of them is a mode.
func Mode(values []float64) []float64 {
	modes := []float64{}
	if len(values) == 0 {
		return modes
	}
	counts := make(map[float64]int, len(values))
	maxCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}
	for v, c := range counts {
		if c == maxCount {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes
}

// Skewness returns the mean cubed z-score. A constant series yields 0.
func Skewness(values []float64) float64 {
	return standardizedMoment(values, 3)
}

// Kurtosis returns the excess kurtosis (mean fourth-power z-score minus 3).
// A constant series yields 0.
func Kurtosis(values []float64) float64 {
	if StdDev(values) == 0 {
		return 0
	}
	return standardizedMoment(values, 4) - 3
}

func standardizedMoment(values []float64, power float64) float64 {
	sigma := StdDev(values)
	if sigma == 0 {
		return 0
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		sum += math.Pow((v-mean)/sigma, power)
	}
	return sum / float64(len(values))
}

// MinMax returns the smallest and largest value.
func MinMax(values []float64) (minV, maxV float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minV, maxV = values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	return minV, maxV
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
