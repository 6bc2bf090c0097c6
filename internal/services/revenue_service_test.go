package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/revenue/internal/analytics"
	"github.com/soltixdb/revenue/internal/analytics/forecast"
	"github.com/soltixdb/revenue/internal/analytics/trend"
	"github.com/soltixdb/revenue/internal/config"
	"github.com/soltixdb/revenue/internal/history"
	"github.com/soltixdb/revenue/internal/logging"
	"github.com/soltixdb/revenue/internal/metrics"
	"github.com/soltixdb/revenue/internal/queue"
	"github.com/soltixdb/revenue/internal/utils"
)

var fixedNow = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// dailySeries returns n samples ending at fixedNow.
func dailySeries(values ...float64) []analytics.TimeSeriesPoint {
	points := make([]analytics.TimeSeriesPoint, len(values))
	first := fixedNow.Add(-time.Duration(len(values)-1) * utils.Day)
	for i, v := range values {
		points[i] = analytics.TimeSeriesPoint{Time: first.Add(time.Duration(i) * utils.Day), Value: v}
	}
	return points
}

func testForecastingConfig() config.ForecastingConfig {
	return config.ForecastingConfig{MinDataPoints: 10, DefaultPeriod: "30_days", DefaultMethod: "arima"}
}

func newTestService(t *testing.T, src history.Source, opts ...Option) *RevenueService {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	svc, err := NewRevenueService(logging.NewNop(), src, testForecastingConfig(), opts...)
	require.NoError(t, err)
	return svc
}

func seededSource() *history.MemorySource {
	src := history.NewMemorySource()
	// Steady growth over 14 days.
	src.Add("5", dailySeries(1000, 1010, 1020, 1030, 1040, 1050, 1060, 1070, 1080, 1090, 1100, 1110, 1120, 1130)...)
	// Flat revenue on a closed property.
	src.Add("6", dailySeries(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)...)
	src.Add("7", dailySeries(500, 520)...)
	// Weekly cycle.
	src.Add("8", dailySeries(100, 120, 140, 160, 180, 300, 280, 100, 120, 140, 160, 180, 300, 280)...)
	return src
}

func TestNewRevenueService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ForecastingConfig
		wantErr error
	}{
		{name: "defaults", cfg: config.ForecastingConfig{MinDataPoints: 1}},
		{name: "configured", cfg: testForecastingConfig()},
		{name: "bad period", cfg: config.ForecastingConfig{MinDataPoints: 1, DefaultPeriod: "2_weeks"}, wantErr: ErrUnknownPeriod},
		{name: "bad method", cfg: config.ForecastingConfig{MinDataPoints: 1, DefaultMethod: "prophet"}, wantErr: forecast.ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewRevenueService(nil, history.NewMemorySource(), tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.MinDataPoints, svc.MinDataPoints())
		})
	}

	_, err := NewRevenueService(nil, history.NewMemorySource(), config.ForecastingConfig{})
	assert.Error(t, err)
}

func TestPredictRevenue_Defaults(t *testing.T) {
	svc := newTestService(t, seededSource())

	p, err := svc.PredictRevenue(context.Background(), "5", "", "")
	require.NoError(t, err)

	assert.Equal(t, "5", p.PropertyID)
	assert.Equal(t, Period30Days, p.Period)
	assert.Equal(t, forecast.MethodDampedDrift, p.Method)
	assert.Equal(t, fixedNow.Add(utils.Day), p.ForecastDate)
	assert.Greater(t, p.PredictedRevenue, 1130.0)
	assert.LessOrEqual(t, p.ConfidenceInterval.Lower, p.PredictedRevenue)
	assert.GreaterOrEqual(t, p.ConfidenceInterval.Upper, p.PredictedRevenue)
	assert.InDelta(t, p.PredictedRevenue, p.Breakdown.Total(), 1e-9)
	assert.InDelta(t, (p.PredictedRevenue-1130)/1130, p.GrowthRate, 1e-12)
}

func TestPredictRevenue_MatchesStrategy(t *testing.T) {
	src := seededSource()
	svc := newTestService(t, src)

	for _, method := range []string{"exponential_smoothing", "linear_regression", "seasonal", "damped_drift"} {
		t.Run(method, func(t *testing.T) {
			p, err := svc.PredictRevenue(context.Background(), "8", "30_days", method)
			require.NoError(t, err)

			raw, err := src.FetchRevenueData(context.Background(), "8", fixedNow.Add(-30*utils.Day), fixedNow)
			require.NoError(t, err)
			series := analytics.TimeSeriesData(raw)

			f, err := forecast.Get(method)
			require.NoError(t, err)
			points, err := f.Forecast(series.Values(), series.Times(), 30)
			require.NoError(t, err)

			assert.Equal(t, forecast.Method(method), p.Method)
			assert.Equal(t, points[0].PredictedValue, p.PredictedRevenue)
			assert.Equal(t, points[0].ConfidenceInterval, p.ConfidenceInterval)
		})
	}
}

func TestPredictRevenue_ArimaAlias(t *testing.T) {
	svc := newTestService(t, seededSource())

	alias, err := svc.PredictRevenue(context.Background(), "5", "7_days", "arima")
	require.Error(t, err, "7 days of history is below the minimum")
	assert.Nil(t, alias)

	alias, err = svc.PredictRevenue(context.Background(), "5", "30_days", "arima")
	require.NoError(t, err)
	canonical, err := svc.PredictRevenue(context.Background(), "5", "30_days", "damped_drift")
	require.NoError(t, err)

	assert.Equal(t, canonical, alias)
	assert.Equal(t, forecast.MethodDampedDrift, alias.Method)
}

func TestPredictRevenue_ZeroRevenue(t *testing.T) {
	svc := newTestService(t, seededSource())

	p, err := svc.PredictRevenue(context.Background(), "6", "30_days", "linear_regression")
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.PredictedRevenue)
	assert.Equal(t, 0.0, p.GrowthRate)
	assert.Equal(t, Breakdown{}, p.Breakdown)
}

func TestPredictRevenue_InsufficientData(t *testing.T) {
	svc := newTestService(t, seededSource())

	_, err := svc.PredictRevenue(context.Background(), "7", "30_days", "arima")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "10")

	var insufficient *InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 10, insufficient.Required)
	assert.Equal(t, 2, insufficient.Actual)

	_, err = svc.PredictRevenue(context.Background(), "9", "", "")
	var empty *InsufficientDataError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, 0, empty.Actual)
}

func TestPredictRevenue_InvalidArguments(t *testing.T) {
	svc := newTestService(t, seededSource())

	_, err := svc.PredictRevenue(context.Background(), "5", "2_weeks", "")
	assert.ErrorIs(t, err, ErrUnknownPeriod)

	_, err = svc.PredictRevenue(context.Background(), "5", "", "prophet")
	assert.ErrorIs(t, err, forecast.ErrUnknownMethod)
}

func TestPredictRevenue_SourceErrors(t *testing.T) {
	unavailable := history.SourceFunc(func(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
		return nil, history.ErrUnavailable
	})
	svc := newTestService(t, unavailable)
	_, err := svc.PredictRevenue(context.Background(), "5", "", "")
	assert.ErrorIs(t, err, history.ErrUnavailable)

	corrupt := history.SourceFunc(func(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
		return []analytics.TimeSeriesPoint{{Value: 10}}, nil
	})
	svc = newTestService(t, corrupt)
	_, err = svc.PredictRevenue(context.Background(), "5", "", "")
	assert.ErrorIs(t, err, analytics.ErrInvalidSample)
}

func TestPredictRevenue_FetchWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	src := history.SourceFunc(func(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
		gotStart, gotEnd = start, end
		return nil, nil
	})
	svc := newTestService(t, src)

	_, _ = svc.PredictRevenue(context.Background(), "5", "90_days", "")
	assert.Equal(t, fixedNow.Add(-90*utils.Day), gotStart)
	assert.Equal(t, fixedNow, gotEnd)
}

func TestPredictRevenue_WindowEndsOnDayBoundary(t *testing.T) {
	var ends []time.Time
	src := history.SourceFunc(func(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
		ends = append(ends, end)
		assert.Equal(t, end.Add(-30*utils.Day), start)
		return nil, nil
	})

	for _, at := range []time.Time{
		fixedNow.Add(9*time.Hour + 15*time.Minute),
		fixedNow.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
		time.Date(2024, 3, 31, 8, 30, 0, 0, time.FixedZone("UTC+5", 5*3600)),
	} {
		svc, err := NewRevenueService(logging.NewNop(), src, testForecastingConfig(), WithClock(func() time.Time { return at }))
		require.NoError(t, err)
		_, _ = svc.PredictRevenue(context.Background(), "5", "", "")
	}

	require.Len(t, ends, 3)
	for _, end := range ends {
		assert.True(t, end.Equal(fixedNow), "window end %v", end)
	}
}

func TestPredictRevenue_CachedWithinDay(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cached := history.NewCachedSource(seededSource(), rdb, time.Hour, "", nil)

	for _, offset := range []time.Duration{time.Hour, 5 * time.Hour, 20 * time.Hour} {
		at := fixedNow.Add(offset)
		svc, err := NewRevenueService(logging.NewNop(), cached, testForecastingConfig(), WithClock(func() time.Time { return at }))
		require.NoError(t, err)
		_, err = svc.PredictRevenue(context.Background(), "5", "", "")
		require.NoError(t, err)
	}

	assert.Equal(t, history.CacheStats{Hits: 2, Misses: 1}, cached.Stats())
	assert.Len(t, mr.Keys(), 1)
}

func TestPredictRevenue_MetricsOnInvalidArguments(t *testing.T) {
	m := metrics.New()
	svc := newTestService(t, seededSource(), WithMetrics(m))

	_, err := svc.PredictRevenue(context.Background(), "5", "2_weeks", "")
	require.Error(t, err)
	_, err = svc.PredictRevenue(context.Background(), "5", "", "prophet")
	require.Error(t, err)
	_, err = svc.PredictRevenue(context.Background(), "7", "", "")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PredictionsTotal.WithLabelValues("unknown", "invalid_period")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PredictionsTotal.WithLabelValues("unknown", "invalid_method")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PredictionsTotal.WithLabelValues("damped_drift", "insufficient_data")))
}

func TestPredictRevenue_CanceledIsUnavailable(t *testing.T) {
	svc := newTestService(t, seededSource())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PredictRevenue(ctx, "5", "", "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, CodeHistoryUnavailable, AsServiceError(err).Code)
}

func TestPredictRevenue_PublishesEvent(t *testing.T) {
	pub := queue.NewMemoryPublisher(4)
	svc := newTestService(t, seededSource(), WithPublisher(pub, "revenue.predictions"))

	p, err := svc.PredictRevenue(context.Background(), "5", "", "")
	require.NoError(t, err)

	require.Equal(t, 1, pub.Pending("revenue.predictions.5"))
	var event PredictionEvent
	require.NoError(t, json.Unmarshal(<-pub.Messages("revenue.predictions.5"), &event))
	assert.Equal(t, EventPredictionCreated, event.Type)
	assert.Equal(t, "5", event.PropertyID)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, fixedNow, event.OccurredAt)
	assert.InDelta(t, p.PredictedRevenue, event.Prediction.PredictedRevenue, 1e-9)

	_, err = svc.PredictRevenue(context.Background(), "7", "", "")
	require.Error(t, err)
	assert.Equal(t, 0, pub.Pending("revenue.predictions.7"))
}

func TestPredictRevenue_PublishFailureIgnored(t *testing.T) {
	pub := queue.NewMemoryPublisher(1)
	require.NoError(t, pub.Close())
	svc := newTestService(t, seededSource(), WithPublisher(pub, "revenue.predictions"))

	_, err := svc.PredictRevenue(context.Background(), "5", "", "")
	assert.NoError(t, err)
}

func TestAnalyzeRevenueTrends(t *testing.T) {
	svc := newTestService(t, seededSource())
	start := fixedNow.Add(-30 * utils.Day)

	// A daily gain of 10 is far below the per-millisecond threshold.
	up, err := svc.AnalyzeRevenueTrends(context.Background(), "5", start, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, trend.Stable, up.TrendDirection)
	assert.Greater(t, up.Slope, 0.0)
	assert.InDelta(t, 10.0/1065.0, up.ChangeRate, 1e-9)
	assert.InDelta(t, 1.0, up.RSquared, 1e-9)
	assert.Equal(t, 14, up.DataPoints)

	flat, err := svc.AnalyzeRevenueTrends(context.Background(), "6", start, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, trend.Stable, flat.TrendDirection)

	none, err := svc.AnalyzeRevenueTrends(context.Background(), "9", start, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, trend.Analysis{TrendDirection: trend.Stable}, *none)

	_, err = svc.AnalyzeRevenueTrends(context.Background(), "5", fixedNow, start)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetRevenueStatistics(t *testing.T) {
	svc := newTestService(t, seededSource())
	start := fixedNow.Add(-30 * utils.Day)

	s, err := svc.GetRevenueStatistics(context.Background(), "7", start, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 510.0, s.Mean)
	assert.Equal(t, 500.0, s.Min)
	assert.Equal(t, 520.0, s.Max)

	empty, err := svc.GetRevenueStatistics(context.Background(), "9", start, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0.0, empty.Mean)
	assert.Empty(t, empty.Outliers)
	assert.Empty(t, empty.Mode)

	_, err = svc.GetRevenueStatistics(context.Background(), "5", fixedNow, start)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAvailableMethods(t *testing.T) {
	assert.Equal(t, []string{
		"damped_drift",
		"exponential_smoothing",
		"linear_regression",
		"seasonal",
		"arima",
	}, AvailableMethods())
}
