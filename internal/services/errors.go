// Package services implements the revenue operations exposed by the API:
// prediction, trend analysis, descriptive statistics and scenario projection.
package services

import (
	"errors"
	"fmt"

	"github.com/soltixdb/revenue/internal/analytics"
	"github.com/soltixdb/revenue/internal/analytics/forecast"
	"github.com/soltixdb/revenue/internal/history"
)

// Error codes carried by ServiceError
const (
	CodeInsufficientData   = "INSUFFICIENT_DATA"
	CodeInvalidMethod      = "INVALID_METHOD"
	CodeInvalidPeriod      = "INVALID_PERIOD"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidHistory     = "INVALID_HISTORY"
	CodeHistoryUnavailable = "HISTORY_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrUnknownPeriod    = errors.New("unknown period")
	ErrInvalidRange     = errors.New("invalid time range")
)

// InsufficientDataError is returned when the history is shorter than the
// configured minimum.
type InsufficientDataError struct {
	Required int
	Actual   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need at least %d data points, got %d", e.Required, e.Actual)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// UnknownPeriodError carries the period name that could not be resolved.
type UnknownPeriodError struct {
	Period string
}

func (e *UnknownPeriodError) Error() string {
	return fmt.Sprintf("unknown period: %q", e.Period)
}

func (e *UnknownPeriodError) Is(target error) bool {
	return target == ErrUnknownPeriod
}

// InvalidRangeError reports a start time after the end time.
type InvalidRangeError struct {
	Start, End string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid time range: start %s is after end %s", e.Start, e.End)
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// AsServiceError classifies err for transport layers. A *ServiceError is
// returned unchanged.
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	var insufficient *InsufficientDataError
	switch {
	case errors.As(err, &insufficient):
		return NewServiceErrorWithDetails(CodeInsufficientData, err.Error(), map[string]interface{}{
			"required": insufficient.Required,
			"actual":   insufficient.Actual,
		})
	case errors.Is(err, forecast.ErrUnknownMethod):
		return NewServiceErrorWithDetails(CodeInvalidMethod, err.Error(), map[string]interface{}{
			"available_methods": AvailableMethods(),
		})
	case errors.Is(err, ErrUnknownPeriod):
		return NewServiceErrorWithDetails(CodeInvalidPeriod, err.Error(), map[string]interface{}{
			"available_periods": PeriodNames(),
		})
	case errors.Is(err, ErrInvalidRange):
		return NewServiceError(CodeInvalidRequest, err.Error())
	case errors.Is(err, analytics.ErrInvalidSample):
		return NewServiceError(CodeInvalidHistory, err.Error())
	case errors.Is(err, history.ErrUnavailable):
		return NewServiceErrorWithDetails(CodeHistoryUnavailable, "Failed to fetch revenue history", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return NewServiceError(CodeInternal, err.Error())
	}
}
