package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/revenue/internal/models"
	"github.com/soltixdb/revenue/internal/services"
	"github.com/soltixdb/revenue/internal/utils"
)

// requestContext bounds one request, including the history fetch
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), utils.DefaultRequestTimeout)
}

// PredictRevenue handles revenue prediction requests
// GET /v1/properties/:property_id/revenue/prediction?period=30_days&method=arima
func (h *Handler) PredictRevenue(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	prediction, err := h.revenue.PredictRevenue(ctx, c.Params("property_id"), c.Query("period"), c.Query("method"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(prediction)
}

// RevenueTrends handles trend analysis requests
// GET /v1/properties/:property_id/revenue/trends?start_time=...&end_time=...
func (h *Handler) RevenueTrends(c *fiber.Ctx) error {
	start, end, err := parseTimeRange(c)
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	propertyID := c.Params("property_id")
	analysis, err := h.revenue.AnalyzeRevenueTrends(ctx, propertyID, start, end)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(models.TrendResponse{
		PropertyID: propertyID,
		StartTime:  start.Format(time.RFC3339),
		EndTime:    end.Format(time.RFC3339),
		Trend:      *analysis,
	})
}

// RevenueStatistics handles descriptive statistics requests
// GET /v1/properties/:property_id/revenue/statistics?start_time=...&end_time=...
func (h *Handler) RevenueStatistics(c *fiber.Ctx) error {
	start, end, err := parseTimeRange(c)
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	propertyID := c.Params("property_id")
	summary, err := h.revenue.GetRevenueStatistics(ctx, propertyID, start, end)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(models.StatisticsResponse{
		PropertyID: propertyID,
		StartTime:  start.Format(time.RFC3339),
		EndTime:    end.Format(time.RFC3339),
		Statistics: *summary,
	})
}

// RevenueScenarios handles scenario projection requests
// POST /v1/revenue/scenarios
func (h *Handler) RevenueScenarios(c *fiber.Ctx) error {
	var body models.ScenarioRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Failed to parse JSON body", map[string]interface{}{"error": err.Error()})
	}
	if body.BasePrediction == nil {
		return badRequest(c, "base_prediction is required", nil)
	}
	if len(body.Scenarios) == 0 {
		return badRequest(c, "at least one scenario is required", nil)
	}
	for i, sc := range body.Scenarios {
		if sc.Name == "" {
			return badRequest(c, "scenario name is required", map[string]interface{}{"index": i})
		}
	}

	return c.JSON(models.ScenarioResponse{
		Results: h.revenue.ForecastRevenueScenarios(*body.BasePrediction, body.Scenarios),
	})
}

// ListMethods lists the accepted forecasting methods and periods
// GET /v1/forecast/methods
func (h *Handler) ListMethods(c *fiber.Ctx) error {
	return c.JSON(models.MethodsResponse{
		Methods:       services.AvailableMethods(),
		DefaultMethod: string(h.revenue.DefaultMethod()),
		Periods:       services.PeriodNames(),
		DefaultPeriod: string(h.revenue.DefaultPeriod()),
		MinDataPoints: h.revenue.MinDataPoints(),
	})
}

// parseTimeRange reads the required RFC3339 start_time and end_time query
// parameters.
func parseTimeRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	startTimeStr := c.Query("start_time")
	endTimeStr := c.Query("end_time")
	if startTimeStr == "" || endTimeStr == "" {
		return time.Time{}, time.Time{}, errors.New("start_time and end_time are required")
	}

	startTime, err := time.Parse(time.RFC3339, startTimeStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_time must be in RFC3339 format")
	}
	endTime, err := time.Parse(time.RFC3339, endTimeStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_time must be in RFC3339 format")
	}
	return startTime, endTime, nil
}
