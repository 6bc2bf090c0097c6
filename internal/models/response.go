package models

import (
	"github.com/soltixdb/revenue/internal/analytics/stats"
	"github.com/soltixdb/revenue/internal/analytics/trend"
	"github.com/soltixdb/revenue/internal/history"
	"github.com/soltixdb/revenue/internal/services"
)

// HealthResponse reports the service wiring and history cache counters
type HealthResponse struct {
	Status        string        `json:"status"`
	Timestamp     string        `json:"timestamp"`
	Version       string        `json:"version"`
	History       HistoryHealth `json:"history"`
	EventsEnabled bool          `json:"events_enabled"`
	MinDataPoints int           `json:"min_data_points"`
}

// HistoryHealth describes the revenue history source. Cache is nil when
// the source is not cached.
type HistoryHealth struct {
	Source string              `json:"source"`
	Cache  *history.CacheStats `json:"cache,omitempty"`
}

// TrendResponse represents a trend analysis over a time range
type TrendResponse struct {
	PropertyID string         `json:"property_id"`
	StartTime  string         `json:"start_time"`
	EndTime    string         `json:"end_time"`
	Trend      trend.Analysis `json:"trend"`
}

// StatisticsResponse represents descriptive statistics over a time range
type StatisticsResponse struct {
	PropertyID string        `json:"property_id"`
	StartTime  string        `json:"start_time"`
	EndTime    string        `json:"end_time"`
	Statistics stats.Summary `json:"statistics"`
}

// ScenarioResponse represents scenario projection response
type ScenarioResponse struct {
	Results []services.ScenarioResult `json:"results"`
}

// MethodsResponse lists accepted forecasting methods and periods
type MethodsResponse struct {
	Methods       []string `json:"methods"`
	DefaultMethod string   `json:"default_method"`
	Periods       []string `json:"periods"`
	DefaultPeriod string   `json:"default_period"`
	MinDataPoints int      `json:"min_data_points"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
