package config

import (
	"fmt"
	"time"

	"github.com/soltixdb/revenue/internal/analytics/forecast"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Forecasting ForecastingConfig `mapstructure:"forecasting"`
	Source      SourceConfig      `mapstructure:"source"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Events      EventsConfig      `mapstructure:"events"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// ForecastingConfig holds the prediction defaults. It is read once at
// startup and never mutated afterwards.
type ForecastingConfig struct {
	MinDataPoints int    `mapstructure:"min_data_points"`
	DefaultPeriod string `mapstructure:"default_period"`
	DefaultMethod string `mapstructure:"default_method"`
}

// SourceConfig selects where historical revenue is read from
type SourceConfig struct {
	Type         string         `mapstructure:"type"` // postgres, memory
	Postgres     PostgresConfig `mapstructure:"postgres"`
	SeedFile     string         `mapstructure:"seed_file"` // CSV seed for the memory source
	QueryTimeout time.Duration  `mapstructure:"query_timeout"`
}

// PostgresConfig represents the history database connection
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
	Table    string `mapstructure:"table"`
}

// CacheConfig represents the Redis read-through cache for history queries
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisURL  string        `mapstructure:"redis_url"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// EventsConfig represents the prediction event publisher
type EventsConfig struct {
	Type          string `mapstructure:"type"` // none, nats, redis, kafka, memory
	URL           string `mapstructure:"url"`  // nats://localhost:4222, redis://localhost:6379
	SubjectPrefix string `mapstructure:"subject_prefix"`

	// Redis-specific options
	RedisStream string `mapstructure:"redis_stream"` // stream key prefix

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Forecasting.Validate(); err != nil {
		return fmt.Errorf("forecasting config: %w", err)
	}

	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := c.Events.Validate(); err != nil {
		return fmt.Errorf("events config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// Validate validates forecasting configuration. The default period is
// checked by the service that owns the period table.
func (c *ForecastingConfig) Validate() error {
	if c.MinDataPoints < 1 {
		return fmt.Errorf("forecasting.min_data_points must be at least 1")
	}

	if c.DefaultMethod != "" {
		if _, err := forecast.ParseMethod(c.DefaultMethod); err != nil {
			return fmt.Errorf("forecasting.default_method: %w", err)
		}
	}

	return nil
}

// Validate validates source configuration
func (c *SourceConfig) Validate() error {
	switch c.Type {
	case "postgres":
		if c.Postgres.DSN == "" {
			return fmt.Errorf("source.postgres.dsn is required for postgres source")
		}
	case "memory":
	default:
		return fmt.Errorf("source.type must be 'postgres' or 'memory', got %q", c.Type)
	}

	if c.QueryTimeout < 0 {
		return fmt.Errorf("source.query_timeout cannot be negative")
	}

	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required when cache is enabled")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	return nil
}

// Validate validates events configuration
func (c *EventsConfig) Validate() error {
	switch c.Type {
	case "", "none", "memory":
	case "nats", "redis":
		if c.URL == "" {
			return fmt.Errorf("events.url is required for %s events", c.Type)
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("events.kafka_brokers is required for kafka events")
		}
	default:
		return fmt.Errorf("unsupported events.type: %s", c.Type)
	}
	return nil
}
