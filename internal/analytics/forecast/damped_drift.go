package forecast

import "time"

// DampedDriftForecaster extrapolates the last observed day-over-day change,
// shrinking it by Damping at every step so the projection levels off.
// It is served under the legacy name "arima" but fits no ARIMA model.
type DampedDriftForecaster struct {
	Damping float64
}

// NewDampedDriftForecaster creates a forecaster with the default damping of 0.3.
func NewDampedDriftForecaster() *DampedDriftForecaster {
	return &DampedDriftForecaster{Damping: 0.3}
}

func init() {
	RegisterForecaster(NewDampedDriftForecaster())
}

// Method returns the canonical strategy name
func (f *DampedDriftForecaster) Method() Method {
	return MethodDampedDrift
}

// Forecast generates predictions by damping the last difference
func (f *DampedDriftForecaster) Forecast(values []float64, timestamps []time.Time, periods int) ([]ForecastPoint, error) {
	if err := checkInput(values, timestamps); err != nil {
		return nil, err
	}
	if periods <= 0 {
		return []ForecastPoint{}, nil
	}

	n := len(values)
	lastValue := values[n-1]
	lastDiff := 0.0
	if n >= 2 {
		lastDiff = values[n-1] - values[n-2]
	}

	raw := make([]float64, periods)
	for i := range raw {
		predictedDiff := f.Damping * lastDiff
		predicted := lastValue + predictedDiff
		raw[i] = predicted
		lastValue, lastDiff = predicted, predictedDiff
	}

	return buildPoints(values, timestamps[n-1], raw), nil
}
