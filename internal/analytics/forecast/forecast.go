// Package forecast implements the revenue forecasting strategies. Every
// strategy shares one contract: given a validated series it projects a fixed
// number of daily steps with a 95% confidence band that widens with the
// horizon.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/soltixdb/revenue/internal/analytics/stats"
	"github.com/soltixdb/revenue/internal/utils"
)

// Method names a forecasting strategy.
type Method string

const (
	MethodDampedDrift          Method = "damped_drift"
	MethodExponentialSmoothing Method = "exponential_smoothing"
	MethodLinearRegression     Method = "linear_regression"
	MethodSeasonal             Method = "seasonal"

	// MethodARIMA is the legacy name of the damped drift strategy. It is
	// accepted by ParseMethod but never returned by Forecaster.Method.
	MethodARIMA Method = "arima"
)

const (
	// ConfidenceLevel is reported on every forecast point.
	ConfidenceLevel = 0.95
	// zScore95 is the two-sided normal quantile for ConfidenceLevel.
	zScore95 = 1.96
	// Step is the spacing between forecast points.
	Step = utils.Day
)

var (
	ErrUnknownMethod  = errors.New("unknown forecasting method")
	ErrEmptySeries    = errors.New("empty series")
	ErrLengthMismatch = errors.New("values and timestamps differ in length")
)

// UnknownMethodError carries the method string that could not be resolved.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown forecasting method: %q", e.Method)
}

func (e *UnknownMethodError) Is(target error) bool {
	return target == ErrUnknownMethod
}

// ConfidenceInterval bounds a predicted value.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastPoint is one projected day.
type ForecastPoint struct {
	Timestamp          time.Time          `json:"timestamp"`
	PredictedValue     float64            `json:"predicted_value"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	ConfidenceLevel    float64            `json:"confidence_level"`
}

// Forecaster is implemented by every strategy.
type Forecaster interface {
	// Method returns the canonical strategy name.
	Method() Method
	// Forecast projects periods daily steps past the last timestamp.
	Forecast(values []float64, timestamps []time.Time, periods int) ([]ForecastPoint, error)
}

var forecasterRegistry = make(map[Method]Forecaster)

// RegisterForecaster adds a forecaster to the registry under its method name.
func RegisterForecaster(f Forecaster) {
	forecasterRegistry[f.Method()] = f
}

// ParseMethod resolves a method name, including the arima alias.
func ParseMethod(name string) (Method, error) {
	m := Method(name)
	if m == MethodARIMA {
		return MethodDampedDrift, nil
	}
	if _, ok := forecasterRegistry[m]; !ok {
		return "", &UnknownMethodError{Method: name}
	}
	return m, nil
}

// ForMethod returns the forecaster registered for m.
func ForMethod(m Method) (Forecaster, error) {
	if m == MethodARIMA {
		m = MethodDampedDrift
	}
	if f, ok := forecasterRegistry[m]; ok {
		return f, nil
	}
	return nil, &UnknownMethodError{Method: string(m)}
}

// Get parses name and returns its forecaster.
func Get(name string) (Forecaster, error) {
	m, err := ParseMethod(name)
	if err != nil {
		return nil, err
	}
	return ForMethod(m)
}

// ListMethods returns the canonical method names in sorted order.
func ListMethods() []Method {
	methods := make([]Method, 0, len(forecasterRegistry))
	for m := range forecasterRegistry {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	return methods
}

func checkInput(values []float64, timestamps []time.Time) error {
	if len(values) == 0 {
		return ErrEmptySeries
	}
	if len(values) != len(timestamps) {
		return fmt.Errorf("%w: %d values, %d timestamps", ErrLengthMismatch, len(values), len(timestamps))
	}
	return nil
}

// bandWidth is the half width of the confidence band at horizon step i.
func bandWidth(variance float64, i int) float64 {
	return zScore95 * math.Sqrt(variance*float64(i+1))
}

// buildPoints turns raw projections into forecast points. The variance of
// the history is computed once and drives the band at every step.
//
// The half width upper-predicted never shrinks with the horizon. The full
// width upper-lower can shrink once lower is clamped at 0, since it then
// follows the predicted value.
func buildPoints(values []float64, last time.Time, raw []float64) []ForecastPoint {
	variance := stats.Variance(values)
	points := make([]ForecastPoint, len(raw))
	for i, v := range raw {
		predicted := math.Max(0, v)
		width := bandWidth(variance, i)
		points[i] = ForecastPoint{
			Timestamp:      last.Add(time.Duration(i+1) * Step),
			PredictedValue: predicted,
			ConfidenceInterval: ConfidenceInterval{
				Lower: math.Max(0, predicted-width),
				Upper: predicted + width,
			},
			ConfidenceLevel: ConfidenceLevel,
		}
	}
	return points
}
