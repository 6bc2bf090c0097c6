package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/revenue/internal/history"
	"github.com/soltixdb/revenue/internal/logging"
	"github.com/soltixdb/revenue/internal/models"
	"github.com/soltixdb/revenue/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger  *logging.Logger
	revenue *services.RevenueService
	info    HealthInfo
}

// HealthInfo is the static wiring reported by Health.
type HealthInfo struct {
	Version    string
	SourceType string
	// Source is inspected for cache counters; it may be nil.
	Source history.Source
}

// New creates a new handler instance
func New(logger *logging.Logger, revenue *services.RevenueService, info HealthInfo) *Handler {
	return &Handler{
		logger:  logger,
		revenue: revenue,
		info:    info,
	}
}

// statusFor maps service error codes to HTTP statuses
func statusFor(code string) int {
	switch code {
	case services.CodeInsufficientData, services.CodeInvalidHistory:
		return fiber.StatusUnprocessableEntity
	case services.CodeInvalidMethod, services.CodeInvalidPeriod, services.CodeInvalidRequest:
		return fiber.StatusBadRequest
	case services.CodeHistoryUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// serviceError writes err in the error envelope
func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = services.NewServiceError(services.CodeHistoryUnavailable, "Revenue history request timed out")
	}
	svcErr := services.AsServiceError(err)
	status := statusFor(svcErr.Code)
	if status >= fiber.StatusInternalServerError {
		h.logger.WithContext(c.UserContext()).Error("Revenue request failed",
			"path", c.Path(),
			"code", svcErr.Code,
			"error", err,
		)
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    svcErr.Code,
			Message: svcErr.Message,
			Path:    c.Path(),
			Details: svcErr.Details,
		},
	})
}

func badRequest(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    services.CodeInvalidRequest,
			Message: message,
			Path:    c.Path(),
			Details: details,
		},
	})
}
