package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/soltixdb/revenue/internal/config"
	"github.com/soltixdb/revenue/internal/handlers"
	"github.com/soltixdb/revenue/internal/history"
	"github.com/soltixdb/revenue/internal/logging"
	"github.com/soltixdb/revenue/internal/metrics"
	"github.com/soltixdb/revenue/internal/middleware"
	"github.com/soltixdb/revenue/internal/services"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Setup configures all routes and middlewares. source is the history source
// given to revenue and is reported by the health endpoint. m may be nil when
// metrics are disabled.
func Setup(app *fiber.App, logger *logging.Logger, revenue *services.RevenueService, source history.Source, m *metrics.Metrics, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, revenue, handlers.HealthInfo{
		Version:    Version,
		SourceType: cfg.Source.Type,
		Source:     source,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	app.Get("/health", h.Health)

	if m != nil && cfg.Metrics.Enabled {
		app.Use(m.Middleware())
		app.Get(cfg.Metrics.Path, m.Handler())
	}

	v1 := app.Group("/v1")

	// Property revenue routes
	v1.Get("/properties/:property_id/revenue/prediction", h.PredictRevenue)
	v1.Get("/properties/:property_id/revenue/trends", h.RevenueTrends)
	v1.Get("/properties/:property_id/revenue/statistics", h.RevenueStatistics)

	v1.Post("/revenue/scenarios", h.RevenueScenarios)
	v1.Get("/forecast/methods", h.ListMethods)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, revenue *services.RevenueService, source history.Source, m *metrics.Metrics, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Revenue Analytics",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, revenue, source, m, cfg)

	return app
}
