// Package history provides the historical daily revenue consumed by the
// forecasting service. Sources may return fewer points than the requested
// range covers; callers decide whether that is enough.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/soltixdb/revenue/internal/analytics"
)

// ErrUnavailable wraps failures of the backing store.
var ErrUnavailable = errors.New("revenue history unavailable")

// Source fetches daily revenue for one property within [start, end].
type Source interface {
	FetchRevenueData(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error)

// FetchRevenueData calls f.
func (f SourceFunc) FetchRevenueData(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
	return f(ctx, propertyID, start, end)
}
