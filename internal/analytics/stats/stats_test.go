package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		median float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4}, 4, 4},
		{"odd", []float64{3, 1, 2}, 2, 2},
		{"even", []float64{1, 3, 2, 4}, 2.5, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.mean, Mean(tt.values), 1e-12)
			assert.InDelta(t, tt.median, Median(tt.values), 1e-12)
		})
	}
}

func TestVariance(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 32.0/7.0, Variance(values), 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(values), 1e-12)

	assert.Equal(t, 0.0, Variance([]float64{5}))
	assert.Equal(t, 0.0, StdDev(nil))
}

func TestQuartiles_IntegerIndex(t *testing.T) {
	q := Quartiles([]float64{8, 7, 6, 5, 4, 3, 2, 1})
	assert.Equal(t, [3]float64{3, 4.5, 7}, q)

	// n=5: floor(1.25)=1, floor(3.75)=3
	q = Quartiles([]float64{10, 20, 30, 40, 50})
	assert.Equal(t, [3]float64{20, 30, 40}, q)
}

func TestOutliers(t *testing.T) {
	assert.Equal(t, []float64{100}, Outliers([]float64{1, 2, 3, 4, 5, 100}))
	assert.Empty(t, Outliers([]float64{1, 2, 3, 4, 5}))
	assert.NotNil(t, Outliers(nil))
}

func TestMode(t *testing.T) {
	assert.Equal(t, []float64{2, 3}, Mode([]float64{3, 1, 2, 2, 3}))
	assert.Equal(t, []float64{7}, Mode([]float64{7, 7, 1}))
	assert.Equal(t, []float64{1, 2, 3}, Mode([]float64{3, 2, 1}))
	assert.Empty(t, Mode(nil))
}

func TestSkewnessKurtosis(t *testing.T) {
	assert.InDelta(t, 0, Skewness([]float64{1, 2, 3}), 1e-12)
	assert.Greater(t, Skewness([]float64{1, 1, 1, 2, 10}), 0.0)

	assert.Equal(t, 0.0, Skewness([]float64{5, 5, 5}))
	assert.Equal(t, 0.0, Kurtosis([]float64{5, 5, 5}))

	// sample sigma of {1,2,3} is 1, z = -1,0,1 -> mean z^4 = 2/3
	assert.InDelta(t, 2.0/3.0-3, Kurtosis([]float64{1, 2, 3}), 1e-12)
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{3, -1, 8, 2})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 8.0, hi)
}

func TestLinearRegression(t *testing.T) {
	r := LinearRegression(Index(5), []float64{10, 20, 30, 40, 50})
	assert.InDelta(t, 10, r.Slope, 1e-9)
	assert.InDelta(t, 10, r.Intercept, 1e-9)
	assert.InDelta(t, 1, r.RSquared, 1e-9)
	assert.InDelta(t, 60, r.Predict(5), 1e-9)
}

func TestLinearRegression_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"constant y", []float64{0, 1, 2}, []float64{4, 4, 4}},
		{"constant x", []float64{1, 1, 1}, []float64{1, 2, 3}},
		{"single point", []float64{0}, []float64{9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := LinearRegression(tt.x, tt.y)
			assert.Equal(t, 0.0, r.Slope)
			assert.Equal(t, 0.0, r.RSquared)
			assert.False(t, math.IsNaN(r.Intercept))
			assert.InDelta(t, Mean(tt.y), r.Intercept, 1e-12)
		})
	}

	assert.Equal(t, Regression{}, LinearRegression([]float64{1}, []float64{1, 2}))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4, 5, 100})
	assert.Equal(t, 6, s.Count)
	assert.InDelta(t, 115.0/6.0, s.Mean, 1e-12)
	assert.InDelta(t, 3.5, s.Median, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, []float64{100}, s.Outliers)
	assert.Equal(t, [3]float64{2, 3.5, 5}, s.Quartiles)
	assert.InDelta(t, s.StandardDeviation*s.StandardDeviation, s.Variance, 1e-9)
}

func TestSummarize_EmptyEncodesArrays(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Mean)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mode":[]`)
	assert.Contains(t, string(raw), `"outliers":[]`)
	assert.Contains(t, string(raw), `"quartiles":[0,0,0]`)
}
