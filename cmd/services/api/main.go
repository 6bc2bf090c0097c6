package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/soltixdb/revenue/internal/config"
	"github.com/soltixdb/revenue/internal/history"
	"github.com/soltixdb/revenue/internal/logging"
	"github.com/soltixdb/revenue/internal/metrics"
	"github.com/soltixdb/revenue/internal/queue"
	"github.com/soltixdb/revenue/internal/router"
	"github.com/soltixdb/revenue/internal/services"
	"github.com/soltixdb/revenue/internal/utils"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before the config")
	flag.Parse()

	// A missing .env is normal outside development
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Revenue service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// History source
	connectCtx, connectCancel := context.WithTimeout(context.Background(), utils.ConnectTimeout)
	source, closeSource, err := history.NewSource(connectCtx, cfg, logger)
	connectCancel()
	if err != nil {
		logger.Fatal("Failed to initialize history source", "type", cfg.Source.Type, "error", err)
	}
	defer closeSource()
	logger.Info("History source ready", "type", cfg.Source.Type, "cache", cfg.Cache.Enabled)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	opts := []services.Option{services.WithMetrics(m)}

	// Prediction events (optional)
	if cfg.Events.EventsEnabled() {
		logger.Info("Connecting to event transport", "type", cfg.Events.Type, "url", cfg.Events.URL)
		publisher, err := queue.NewPublisher(cfg.Events)
		if err != nil {
			logger.Fatal("Failed to connect to event transport", "error", err)
		}
		defer func() { _ = publisher.Close() }()
		opts = append(opts, services.WithPublisher(publisher, cfg.Events.SubjectPrefix))
	} else {
		logger.Info("Prediction events disabled")
	}

	revenue, err := services.NewRevenueService(logger, source, cfg.Forecasting, opts...)
	if err != nil {
		logger.Fatal("Failed to create revenue service", "error", err)
	}

	app := router.New(logger, revenue, source, m, *cfg)

	// Start server in goroutine
	go func() {
		addr := cfg.GetServerAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
