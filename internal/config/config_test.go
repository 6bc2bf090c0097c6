package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "default config should be valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid http port",
			mutate:  func(c *Config) { c.Server.HTTPPort = 0 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "zero min data points",
			mutate:  func(c *Config) { c.Forecasting.MinDataPoints = 0 },
			wantErr: true,
		},
		{
			name:    "unknown default method",
			mutate:  func(c *Config) { c.Forecasting.DefaultMethod = "prophet" },
			wantErr: true,
		},
		{
			name:    "arima alias is accepted",
			mutate:  func(c *Config) { c.Forecasting.DefaultMethod = "arima" },
			wantErr: false,
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Source.Type = "postgres" },
			wantErr: true,
		},
		{
			name:    "unknown source type",
			mutate:  func(c *Config) { c.Source.Type = "mysql" },
			wantErr: true,
		},
		{
			name: "cache without ttl",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.TTL = 0
			},
			wantErr: true,
		},
		{
			name:    "nats events without url",
			mutate:  func(c *Config) { c.Events.Type = "nats" },
			wantErr: true,
		},
		{
			name:    "kafka events without brokers",
			mutate:  func(c *Config) { c.Events.Type = "kafka" },
			wantErr: true,
		},
		{
			name:    "unknown events type",
			mutate:  func(c *Config) { c.Events.Type = "sqs" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http_port: 9090
forecasting:
  min_data_points: 14
  default_method: seasonal
source:
  type: postgres
  postgres:
    dsn: postgres://revenue@localhost/revenue
cache:
  enabled: true
  redis_url: redis://localhost:6379/1
  ttl: 30s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPPort != 9090 {
		t.Errorf("Expected http_port 9090, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Forecasting.MinDataPoints != 14 {
		t.Errorf("Expected min_data_points 14, got %d", cfg.Forecasting.MinDataPoints)
	}
	if cfg.Forecasting.DefaultPeriod != "30_days" {
		t.Errorf("Expected default period from defaults, got %q", cfg.Forecasting.DefaultPeriod)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("Expected ttl 30s, got %v", cfg.Cache.TTL)
	}
	if cfg.Source.Postgres.Table != "daily_revenue" {
		t.Errorf("Expected default table, got %q", cfg.Source.Postgres.Table)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  http_port: 9090\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REVENUE_FORECASTING_MIN_DATA_POINTS", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Forecasting.MinDataPoints != 3 {
		t.Errorf("Expected env override 3, got %d", cfg.Forecasting.MinDataPoints)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("forecasting:\n  min_data_points: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected validation error")
	}
	if cfg := LoadOrDefault(path); cfg.Forecasting.MinDataPoints != 10 {
		t.Errorf("Expected default fallback, got %d", cfg.Forecasting.MinDataPoints)
	}
}

func TestHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetServerAddress(); got != "0.0.0.0:8080" {
		t.Errorf("GetServerAddress() = %q", got)
	}
	if cfg.Events.EventsEnabled() {
		t.Error("Expected events disabled by default")
	}
	cfg.Events.Type = "memory"
	if !cfg.Events.EventsEnabled() {
		t.Error("Expected memory events enabled")
	}
}
