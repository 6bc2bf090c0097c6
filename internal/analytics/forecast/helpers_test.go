package forecast

import (
	"math"
	"testing"
	"time"
)

var testBaseTime = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

// dailyTimes returns n timestamps one day apart starting at testBaseTime.
func dailyTimes(n int) []time.Time {
	times := make([]time.Time, n)
	for i := range times {
		times[i] = testBaseTime.Add(time.Duration(i) * Step)
	}
	return times
}

// cyclicValues returns 100 + i%10 for i in [0,n).
func cyclicValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(100 + i%10)
	}
	return values
}

func assertClose(t *testing.T, want, got float64, msg string) {
	t.Helper()
	if math.Abs(want-got) > 1e-9 {
		t.Errorf("%s: want %v, got %v", msg, want, got)
	}
}

func predictedValues(points []ForecastPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.PredictedValue
	}
	return out
}
