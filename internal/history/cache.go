package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"

	"github.com/soltixdb/revenue/internal/analytics"
	"github.com/soltixdb/revenue/internal/logging"
)

// CacheStats counts cache outcomes since construction.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// CachedSource is a read-through Redis cache in front of another Source.
// Entries are JSON encoded and snappy compressed. Redis failures are logged
// and fall through to the wrapped source.
type CachedSource struct {
	next   Source
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
	logger *logging.Logger

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// NewCachedSource wraps next with a cache stored in rdb.
func NewCachedSource(next Source, rdb redis.Cmdable, ttl time.Duration, prefix string, logger *logging.Logger) *CachedSource {
	if prefix == "" {
		prefix = "revenue:history"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CachedSource{next: next, rdb: rdb, ttl: ttl, prefix: prefix, logger: logger}
}

func (c *CachedSource) key(propertyID string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%d:%d", c.prefix, propertyID, start.UnixMilli(), end.UnixMilli())
}

// FetchRevenueData implements Source.
func (c *CachedSource) FetchRevenueData(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
	key := c.key(propertyID, start, end)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		points, decodeErr := decodePoints(raw)
		if decodeErr == nil {
			c.hits.Add(1)
			return points, nil
		}
		c.errors.Add(1)
		c.logger.Warn("Discarding unreadable cache entry", "key", key, "error", decodeErr)
	case errors.Is(err, redis.Nil):
		c.misses.Add(1)
	default:
		c.errors.Add(1)
		c.logger.Warn("History cache read failed", "key", key, "error", err)
	}

	points, err := c.next.FetchRevenueData(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}

	payload, err := encodePoints(points)
	if err == nil {
		err = c.rdb.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.errors.Add(1)
		c.logger.Warn("History cache write failed", "key", key, "error", err)
	}
	return points, nil
}

// Stats returns a snapshot of the counters.
func (c *CachedSource) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}

func encodePoints(points []analytics.TimeSeriesPoint) ([]byte, error) {
	data, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("encode cache entry: %w", err)
	}
	return snappy.Encode(nil, data), nil
}

func decodePoints(raw []byte) ([]analytics.TimeSeriesPoint, error) {
	data, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("snappy decompress failed: %w", err)
	}
	var points []analytics.TimeSeriesPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	return points, nil
}
