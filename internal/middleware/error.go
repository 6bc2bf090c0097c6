package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/revenue/internal/logging"
	"github.com/soltixdb/revenue/internal/models"
	"github.com/soltixdb/revenue/internal/services"
)

// ErrorHandler returns a custom error handler middleware. Errors that escape
// a handler are written in the same envelope the handlers use.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := services.CodeInternal
		message := "Internal Server Error"

		var fe *fiber.Error
		var se *services.ServiceError
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			errCode = "ERROR"
			message = fe.Message
		case errors.As(err, &se):
			errCode = se.Code
			message = se.Message
		}

		logger.WithContext(c.UserContext()).Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errCode,
				Message: message,
				Path:    c.Path(),
			},
		})
	}
}
