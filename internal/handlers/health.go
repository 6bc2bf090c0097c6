package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/revenue/internal/history"
	"github.com/soltixdb/revenue/internal/models"
)

// statsReporter is implemented by cached history sources
type statsReporter interface {
	Stats() history.CacheStats
}

// Health reports the history source, cache counters and event wiring
// GET /health
func (h *Handler) Health(c *fiber.Ctx) error {
	resp := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.info.Version,
		History:   models.HistoryHealth{Source: h.info.SourceType},
	}
	if r, ok := h.info.Source.(statsReporter); ok {
		stats := r.Stats()
		resp.History.Cache = &stats
	}
	if h.revenue != nil {
		resp.EventsEnabled = h.revenue.EventsEnabled()
		resp.MinDataPoints = h.revenue.MinDataPoints()
	}
	return c.JSON(resp)
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
