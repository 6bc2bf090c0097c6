package forecast

import (
	"time"

	"github.com/soltixdb/revenue/internal/analytics/stats"
)

// WeeklyPeriod is the season length of SeasonalForecaster.
const WeeklyPeriod = 7

// SeasonalForecaster scales the level of the last week by a per-weekday
// seasonal index. Series shorter than one period are handed to exponential
// smoothing unchanged.
type SeasonalForecaster struct {
	Period   int
	fallback Forecaster
}

// NewSeasonalForecaster creates a weekly seasonal forecaster
func NewSeasonalForecaster() *SeasonalForecaster {
	return &SeasonalForecaster{
		Period:   WeeklyPeriod,
		fallback: NewExponentialSmoothingForecaster(),
	}
}

func init() {
	RegisterForecaster(NewSeasonalForecaster())
}

// Method returns the canonical strategy name
func (f *SeasonalForecaster) Method() Method {
	return MethodSeasonal
}

// Forecast generates predictions from the seasonal index
func (f *SeasonalForecaster) Forecast(values []float64, timestamps []time.Time, periods int) ([]ForecastPoint, error) {
	if len(values) < f.Period {
		return f.fallback.Forecast(values, timestamps, periods)
	}
	if err := checkInput(values, timestamps); err != nil {
		return nil, err
	}
	if periods <= 0 {
		return []ForecastPoint{}, nil
	}

	index := f.seasonalIndex(values)
	level := stats.Mean(values[len(values)-f.Period:])

	raw := make([]float64, periods)
	for i := range raw {
		raw[i] = level * index[i%f.Period]
	}
	return buildPoints(values, timestamps[len(timestamps)-1], raw), nil
}

// seasonalIndex returns, per position p, the average of the values at
// p, p+Period, ... divided by the overall mean. A zero mean yields 1.
func (f *SeasonalForecaster) seasonalIndex(values []float64) []float64 {
	sums := make([]float64, f.Period)
	counts := make([]int, f.Period)
	for i, v := range values {
		sums[i%f.Period] += v
		counts[i%f.Period]++
	}

	mean := stats.Mean(values)
	index := make([]float64, f.Period)
	for p := range index {
		if mean == 0 || counts[p] == 0 {
			index[p] = 1
			continue
		}
		index[p] = (sums[p] / float64(counts[p])) / mean
	}
	return index
}
