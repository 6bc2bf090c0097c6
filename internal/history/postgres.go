package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soltixdb/revenue/internal/analytics"
	"github.com/soltixdb/revenue/internal/config"
)

// Querier is the subset of pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PostgresSource reads one row per day from the daily revenue table.
type PostgresSource struct {
	db      Querier
	query   string
	timeout time.Duration
}

// NewPostgresPool opens and pings a connection pool.
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// NewPostgresSource creates a source over table. A zero timeout leaves the
// caller's deadline untouched.
func NewPostgresSource(db Querier, table string, timeout time.Duration) *PostgresSource {
	if table == "" {
		table = "daily_revenue"
	}
	return &PostgresSource{
		db: db,
		query: fmt.Sprintf(
			"SELECT revenue_date, total_revenue FROM %s WHERE property_id = $1 AND revenue_date BETWEEN $2 AND $3 ORDER BY revenue_date ASC",
			pgx.Identifier{table}.Sanitize(),
		),
		timeout: timeout,
	}
}

// FetchRevenueData implements Source.
func (s *PostgresSource) FetchRevenueData(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rows, err := s.db.Query(ctx, s.query, propertyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: query daily revenue: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	points := make([]analytics.TimeSeriesPoint, 0)
	for rows.Next() {
		var p analytics.TimeSeriesPoint
		if err := rows.Scan(&p.Time, &p.Value); err != nil {
			return nil, fmt.Errorf("%w: scan daily revenue: %v", ErrUnavailable, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate daily revenue: %v", ErrUnavailable, err)
	}
	return points, nil
}
