package history

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/soltixdb/revenue/internal/config"
	"github.com/soltixdb/revenue/internal/logging"
)

// Closer releases connections held by a source built with NewSource.
type Closer func()

// NewSource builds the configured source, wrapped with the Redis cache when
// enabled.
func NewSource(ctx context.Context, cfg *config.Config, logger *logging.Logger) (Source, Closer, error) {
	var (
		src     Source
		closers []func()
	)

	switch cfg.Source.Type {
	case "postgres":
		pool, err := NewPostgresPool(ctx, cfg.Source.Postgres)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		src = NewPostgresSource(pool, cfg.Source.Postgres.Table, cfg.Source.QueryTimeout)
		logger.Info("Connected to PostgreSQL history source", "table", cfg.Source.Postgres.Table)

	case "memory", "":
		mem := NewMemorySource()
		if cfg.Source.SeedFile != "" {
			n, err := mem.LoadCSVFile(cfg.Source.SeedFile)
			if err != nil {
				return nil, nil, err
			}
			logger.Info("Seeded memory history source", "file", cfg.Source.SeedFile, "samples", n)
		}
		src = mem

	default:
		return nil, nil, fmt.Errorf("unsupported source type: %s", cfg.Source.Type)
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Cache.Enabled {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("invalid cache.redis_url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			closeAll()
			return nil, nil, fmt.Errorf("failed to connect to redis cache: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		src = NewCachedSource(src, client, cfg.Cache.TTL, cfg.Cache.KeyPrefix, logger)
		logger.Info("History cache enabled", "ttl", cfg.Cache.TTL.String())
	}

	return src, closeAll, nil
}
