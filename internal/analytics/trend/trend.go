// Package trend classifies the direction of a revenue series.
package trend

import (
	"math"

	"github.com/soltixdb/revenue/internal/analytics"
	"github.com/soltixdb/revenue/internal/analytics/stats"
	"github.com/soltixdb/revenue/internal/utils"
)

// Direction of a fitted trend.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// StableSlope is the largest absolute slope still classified as stable.
// The slope is expressed per millisecond.
const StableSlope = 0.01

// Analysis is the result of Analyze.
type Analysis struct {
	Slope          float64   `json:"slope"`
	Intercept      float64   `json:"intercept"`
	RSquared       float64   `json:"r_squared"`
	TrendDirection Direction `json:"trend_direction"`
	ChangeRate     float64   `json:"change_rate"`
	DataPoints     int       `json:"data_points"`
}

// Analyze regresses value on elapsed milliseconds since the first sample.
// The series must already be sorted. Fewer than two samples produce the
// zero analysis with a stable direction.
func Analyze(series analytics.TimeSeriesData) Analysis {
	if len(series) < 2 {
		return Analysis{TrendDirection: Stable, DataPoints: len(series)}
	}

	origin := series[0].Time
	x := make([]float64, len(series))
	for i, p := range series {
		x[i] = float64(p.Time.Sub(origin).Milliseconds())
	}
	y := series.Values()

	fit := stats.LinearRegression(x, y)
	result := Analysis{
		Slope:          fit.Slope,
		Intercept:      fit.Intercept,
		RSquared:       fit.RSquared,
		TrendDirection: classify(fit.Slope),
		DataPoints:     len(series),
	}
	if mean := stats.Mean(y); mean != 0 {
		result.ChangeRate = fit.Slope * utils.MillisPerDay / mean
	}
	return result
}

func classify(slope float64) Direction {
	switch {
	case math.Abs(slope) <= StableSlope:
		return Stable
	case slope > 0:
		return Increasing
	default:
		return Decreasing
	}
}
