package forecast

import (
	"time"

	"github.com/soltixdb/revenue/internal/analytics/stats"
)

// LinearRegressionForecaster fits a least squares line over the sample index
// and extends it past the end of the series.
type LinearRegressionForecaster struct{}

// NewLinearRegressionForecaster creates a new Linear Regression forecaster
func NewLinearRegressionForecaster() *LinearRegressionForecaster {
	return &LinearRegressionForecaster{}
}

func init() {
	RegisterForecaster(NewLinearRegressionForecaster())
}

// Method returns the canonical strategy name
func (f *LinearRegressionForecaster) Method() Method {
	return MethodLinearRegression
}

// Forecast generates predictions using linear regression on x = 0..n-1
func (f *LinearRegressionForecaster) Forecast(values []float64, timestamps []time.Time, periods int) ([]ForecastPoint, error) {
	if err := checkInput(values, timestamps); err != nil {
		return nil, err
	}
	if periods <= 0 {
		return []ForecastPoint{}, nil
	}

	n := len(values)
	fit := stats.LinearRegression(stats.Index(n), values)

	raw := make([]float64, periods)
	for i := range raw {
		raw[i] = fit.Predict(float64(n + i))
	}
	return buildPoints(values, timestamps[n-1], raw), nil
}
