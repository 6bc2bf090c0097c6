package forecast

import "time"

// ExponentialSmoothingForecaster implements simple exponential smoothing.
// The forecast is flat: every step carries the final smoothed level.
type ExponentialSmoothingForecaster struct {
	Alpha float64
}

// NewExponentialSmoothingForecaster creates a new Exponential Smoothing forecaster
func NewExponentialSmoothingForecaster() *ExponentialSmoothingForecaster {
	return &ExponentialSmoothingForecaster{Alpha: 0.3}
}

func init() {
	RegisterForecaster(NewExponentialSmoothingForecaster())
}

// Method returns the canonical strategy name
func (f *ExponentialSmoothingForecaster) Method() Method {
	return MethodExponentialSmoothing
}

// Forecast generates predictions using simple exponential smoothing
func (f *ExponentialSmoothingForecaster) Forecast(values []float64, timestamps []time.Time, periods int) ([]ForecastPoint, error) {
	if err := checkInput(values, timestamps); err != nil {
		return nil, err
	}
	if periods <= 0 {
		return []ForecastPoint{}, nil
	}

	level := f.smooth(values)
	raw := make([]float64, periods)
	for i := range raw {
		raw[i] = level
	}
	return buildPoints(values, timestamps[len(timestamps)-1], raw), nil
}

// smooth runs one forward pass seeded at the first value.
func (f *ExponentialSmoothingForecaster) smooth(values []float64) float64 {
	level := values[0]
	for _, v := range values[1:] {
		level = f.Alpha*v + (1-f.Alpha)*level
	}
	return level
}
