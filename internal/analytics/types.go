// Package analytics provides the common time-series types shared by the
// statistics, forecasting and trend packages.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// TimeSeriesPoint is one daily revenue sample.
type TimeSeriesPoint struct {
	Time  time.Time `json:"timestamp"`
	Value float64   `json:"value"`
}

// TimeSeriesData represents a collection of time-series data points
type TimeSeriesData []TimeSeriesPoint

// Values extracts just the values from the time series
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Times extracts just the times from the time series
func (ts TimeSeriesData) Times() []time.Time {
	times := make([]time.Time, len(ts))
	for i, p := range ts {
		times[i] = p.Time
	}
	return times
}

// Len returns the number of data points
func (ts TimeSeriesData) Len() int {
	return len(ts)
}

// Last returns the most recent point. ok is false for an empty series.
func (ts TimeSeriesData) Last() (p TimeSeriesPoint, ok bool) {
	if len(ts) == 0 {
		return TimeSeriesPoint{}, false
	}
	return ts[len(ts)-1], true
}

// ErrInvalidSample is matched by every error returned from ValidateSeries.
var ErrInvalidSample = errors.New("invalid sample")

// InvalidSampleError reports the first sample ValidateSeries refused.
type InvalidSampleError struct {
	Index  int
	Reason string
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("invalid sample at index %d: %s", e.Index, e.Reason)
}

func (e *InvalidSampleError) Is(target error) bool {
	return target == ErrInvalidSample
}

// ValidateSeries checks every sample and returns a copy sorted ascending by
// time. The sort is stable and duplicate timestamps are kept.
func ValidateSeries(points []TimeSeriesPoint) (TimeSeriesData, error) {
	out := make(TimeSeriesData, len(points))
	for i, p := range points {
		switch {
		case p.Time.IsZero():
			return nil, &InvalidSampleError{Index: i, Reason: "zero timestamp"}
		case math.IsNaN(p.Value):
			return nil, &InvalidSampleError{Index: i, Reason: "value is NaN"}
		case math.IsInf(p.Value, 0):
			return nil, &InvalidSampleError{Index: i, Reason: "value is infinite"}
		}
		out[i] = p
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Time.Before(out[b].Time)
	})
	return out, nil
}
