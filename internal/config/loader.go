package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/soltixdb/revenue/internal/utils"
)

// EnvPrefix is prepended to environment overrides, e.g. REVENUE_SERVER_HTTP_PORT.
const EnvPrefix = "REVENUE"

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/revenue")
	}

	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)

	v.SetDefault("forecasting.min_data_points", d.Forecasting.MinDataPoints)
	v.SetDefault("forecasting.default_period", d.Forecasting.DefaultPeriod)
	v.SetDefault("forecasting.default_method", d.Forecasting.DefaultMethod)

	v.SetDefault("source.type", d.Source.Type)
	v.SetDefault("source.postgres.dsn", "")
	v.SetDefault("source.postgres.max_conns", d.Source.Postgres.MaxConns)
	v.SetDefault("source.postgres.table", d.Source.Postgres.Table)
	v.SetDefault("source.seed_file", "")
	v.SetDefault("source.query_timeout", d.Source.QueryTimeout)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.key_prefix", d.Cache.KeyPrefix)

	v.SetDefault("events.type", d.Events.Type)
	v.SetDefault("events.url", "")
	v.SetDefault("events.subject_prefix", d.Events.SubjectPrefix)
	v.SetDefault("events.redis_stream", d.Events.RedisStream)
	v.SetDefault("events.kafka_brokers", []string{})

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: utils.ShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
		Forecasting: ForecastingConfig{
			MinDataPoints: 10,
			DefaultPeriod: "30_days",
			DefaultMethod: "arima",
		},
		Source: SourceConfig{
			Type: "memory",
			Postgres: PostgresConfig{
				MaxConns: 10,
				Table:    "daily_revenue",
			},
			QueryTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			RedisURL:  "redis://localhost:6379/0",
			TTL:       5 * time.Minute,
			KeyPrefix: "revenue:history",
		},
		Events: EventsConfig{
			Type:          "none",
			SubjectPrefix: "revenue.predictions",
			RedisStream:   "revenue",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
