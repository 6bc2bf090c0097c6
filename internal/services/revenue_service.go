package services

import (
	"context"
	"fmt"
	"time"

	"github.com/soltixdb/revenue/internal/analytics"
	"github.com/soltixdb/revenue/internal/analytics/forecast"
	"github.com/soltixdb/revenue/internal/analytics/stats"
	"github.com/soltixdb/revenue/internal/analytics/trend"
	"github.com/soltixdb/revenue/internal/config"
	"github.com/soltixdb/revenue/internal/history"
	"github.com/soltixdb/revenue/internal/logging"
	"github.com/soltixdb/revenue/internal/metrics"
	"github.com/soltixdb/revenue/internal/queue"
	"github.com/soltixdb/revenue/internal/utils"
)

// RevenueService handles revenue analytics business logic. It holds no
// mutable state, so one instance serves concurrent requests.
type RevenueService struct {
	logger  *logging.Logger
	source  history.Source
	cfg     config.ForecastingConfig
	period  PeriodName
	method  forecast.Method
	events  queue.Publisher
	subject string
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a RevenueService
type Option func(*RevenueService)

// WithClock replaces time.Now, which anchors the history window.
func WithClock(now func() time.Time) Option {
	return func(s *RevenueService) { s.now = now }
}

// WithPublisher enables prediction events on subjects "<prefix>.<property_id>".
func WithPublisher(p queue.Publisher, subjectPrefix string) Option {
	return func(s *RevenueService) {
		s.events = p
		s.subject = subjectPrefix
	}
}

// WithMetrics records operation metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *RevenueService) { s.metrics = m }
}

// NewRevenueService creates a new RevenueService. The default period and
// method in cfg are resolved once here.
func NewRevenueService(logger *logging.Logger, source history.Source, cfg config.ForecastingConfig, opts ...Option) (*RevenueService, error) {
	if cfg.MinDataPoints < 1 {
		return nil, fmt.Errorf("min_data_points must be at least 1, got %d", cfg.MinDataPoints)
	}

	s := &RevenueService{
		logger:  logger,
		source:  source,
		cfg:     cfg,
		period:  Period30Days,
		method:  forecast.MethodDampedDrift,
		subject: "revenue.predictions",
		now:     time.Now,
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	if cfg.DefaultPeriod != "" {
		p, err := ParsePeriod(cfg.DefaultPeriod)
		if err != nil {
			return nil, fmt.Errorf("default period: %w", err)
		}
		s.period = p
	}
	if cfg.DefaultMethod != "" {
		m, err := forecast.ParseMethod(cfg.DefaultMethod)
		if err != nil {
			return nil, fmt.Errorf("default method: %w", err)
		}
		s.method = m
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MinDataPoints returns the configured minimum history length.
func (s *RevenueService) MinDataPoints() int {
	return s.cfg.MinDataPoints
}

// EventsEnabled reports whether predictions are published.
func (s *RevenueService) EventsEnabled() bool {
	return s.events != nil
}

// DefaultPeriod returns the period used when a request names none.
func (s *RevenueService) DefaultPeriod() PeriodName {
	return s.period
}

// DefaultMethod returns the method used when a request names none.
func (s *RevenueService) DefaultMethod() forecast.Method {
	return s.method
}

// PredictRevenue forecasts the next day of revenue for a property. Empty
// period and method select the configured defaults.
//
// The period sets both the lookback window and the number of steps
// forecast; only the first step is reported.
func (s *RevenueService) PredictRevenue(ctx context.Context, propertyID, period, method string) (*RevenuePrediction, error) {
	start := time.Now()
	ctx = logging.WithPropertyID(ctx, propertyID)
	logger := s.logger.WithContext(ctx)

	p := s.period
	if period != "" {
		var err error
		if p, err = ParsePeriod(period); err != nil {
			s.metrics.ObservePrediction("unknown", "invalid_period")
			return nil, err
		}
	}
	m := s.method
	if method != "" {
		var err error
		if m, err = forecast.ParseMethod(method); err != nil {
			s.metrics.ObservePrediction("unknown", "invalid_method")
			return nil, err
		}
	}
	forecaster, err := forecast.ForMethod(m)
	if err != nil {
		return nil, err
	}

	// The window ends on the current UTC day boundary so every prediction
	// made during a day reads the same range.
	days := p.Days()
	end := s.now().UTC().Truncate(utils.Day)
	series, err := s.fetch(ctx, propertyID, end.Add(-time.Duration(days)*utils.Day), end)
	if err != nil {
		s.metrics.ObservePrediction(string(m), "error")
		return nil, err
	}

	if series.Len() < s.cfg.MinDataPoints {
		s.metrics.ObservePrediction(string(m), "insufficient_data")
		logger.Warn("Not enough history to forecast",
			"required", s.cfg.MinDataPoints,
			"actual", series.Len(),
			"period", string(p),
		)
		return nil, &InsufficientDataError{Required: s.cfg.MinDataPoints, Actual: series.Len()}
	}

	points, err := forecaster.Forecast(series.Values(), series.Times(), days)
	if err != nil {
		s.metrics.ObservePrediction(string(m), "error")
		return nil, fmt.Errorf("forecast %s: %w", m, err)
	}

	headline := points[0]
	current, _ := series.Last()
	prediction := &RevenuePrediction{
		PropertyID:         propertyID,
		Period:             p,
		Method:             forecaster.Method(),
		ForecastDate:       headline.Timestamp,
		PredictedRevenue:   headline.PredictedValue,
		ConfidenceInterval: headline.ConfidenceInterval,
		Breakdown:          splitRevenue(headline.PredictedValue),
		GrowthRate:         growthRate(headline.PredictedValue, current.Value),
	}

	s.metrics.ObservePrediction(string(m), "success")
	s.metrics.ObserveOperation("predict_revenue", start, series.Len())
	logger.Info("Revenue prediction completed",
		"period", string(p),
		"method", string(m),
		"data_points", series.Len(),
		"predicted_revenue", prediction.PredictedRevenue,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	s.publishPrediction(ctx, prediction)
	return prediction, nil
}

// AnalyzeRevenueTrends fits a linear trend over the history in [start, end].
func (s *RevenueService) AnalyzeRevenueTrends(ctx context.Context, propertyID string, start, end time.Time) (*trend.Analysis, error) {
	began := time.Now()
	ctx = logging.WithPropertyID(ctx, propertyID)

	series, err := s.fetchRange(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}

	analysis := trend.Analyze(series)
	s.metrics.ObserveOperation("analyze_trends", began, series.Len())
	s.logger.WithContext(ctx).Info("Revenue trend analyzed",
		"data_points", series.Len(),
		"trend_direction", string(analysis.TrendDirection),
		"latency_ms", time.Since(began).Milliseconds(),
	)
	return &analysis, nil
}

// GetRevenueStatistics summarizes the history in [start, end]. An empty
// history yields the zero summary, not an error.
func (s *RevenueService) GetRevenueStatistics(ctx context.Context, propertyID string, start, end time.Time) (*stats.Summary, error) {
	began := time.Now()
	ctx = logging.WithPropertyID(ctx, propertyID)

	series, err := s.fetchRange(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(series.Values())
	s.metrics.ObserveOperation("revenue_statistics", began, series.Len())
	s.logger.WithContext(ctx).Info("Revenue statistics computed",
		"data_points", series.Len(),
		"latency_ms", time.Since(began).Milliseconds(),
	)
	return &summary, nil
}

// ForecastRevenueScenarios projects base under each scenario.
func (s *RevenueService) ForecastRevenueScenarios(base RevenuePrediction, scenarios []Scenario) []ScenarioResult {
	return ForecastRevenueScenarios(base, scenarios)
}

func (s *RevenueService) fetchRange(ctx context.Context, propertyID string, start, end time.Time) (analytics.TimeSeriesData, error) {
	if start.After(end) {
		return nil, &InvalidRangeError{Start: start.Format(time.RFC3339), End: end.Format(time.RFC3339)}
	}
	return s.fetch(ctx, propertyID, start, end)
}

// fetch loads and validates history.
func (s *RevenueService) fetch(ctx context.Context, propertyID string, start, end time.Time) (analytics.TimeSeriesData, error) {
	raw, err := s.source.FetchRevenueData(ctx, propertyID, start, end)
	if err != nil {
		s.logger.WithContext(ctx).Error("Failed to fetch revenue history", "error", err)
		return nil, fmt.Errorf("fetch revenue history: %w", err)
	}
	series, err := analytics.ValidateSeries(raw)
	if err != nil {
		return nil, fmt.Errorf("validate revenue history: %w", err)
	}
	return series, nil
}

// AvailableMethods lists accepted method names: the canonical strategies
// followed by the arima alias.
func AvailableMethods() []string {
	methods := forecast.ListMethods()
	names := make([]string, 0, len(methods)+1)
	for _, m := range methods {
		names = append(names, string(m))
	}
	return append(names, string(forecast.MethodARIMA))
}
