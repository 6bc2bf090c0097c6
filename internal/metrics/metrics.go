// Package metrics exposes Prometheus collectors for the revenue service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// PredictionsTotal counts predictRevenue calls by method and outcome
	PredictionsTotal *prometheus.CounterVec
	// OperationDuration measures service operations end to end
	OperationDuration *prometheus.HistogramVec
	// HistoryPoints observes how many samples each operation received
	HistoryPoints *prometheus.HistogramVec
	// EventsPublished counts prediction events by outcome
	EventsPublished *prometheus.CounterVec
	// HTTPRequests counts HTTP requests
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration measures request latency
	HTTPDuration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry that also carries the Go
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		PredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revenue_predictions_total",
				Help: "Total number of revenue predictions",
			},
			[]string{"method", "status"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "revenue_operation_duration_seconds",
				Help:    "Duration of revenue analytics operations in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		HistoryPoints: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "revenue_history_points",
				Help:    "Number of historical samples fetched per operation",
				Buckets: []float64{0, 1, 7, 14, 30, 90, 180, 365},
			},
			[]string{"operation"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revenue_events_published_total",
				Help: "Total number of prediction events published",
			},
			[]string{"status"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.PredictionsTotal,
		m.OperationDuration,
		m.HistoryPoints,
		m.EventsPublished,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// Gatherer returns the registry backing m.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObservePrediction records one prediction outcome.
func (m *Metrics) ObservePrediction(method, status string) {
	if m == nil {
		return
	}
	m.PredictionsTotal.WithLabelValues(method, status).Inc()
}

// ObserveOperation records the duration and history size of an operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time, points int) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if points >= 0 {
		m.HistoryPoints.WithLabelValues(operation).Observe(float64(points))
	}
}

// ObserveEvent records a publish outcome.
func (m *Metrics) ObserveEvent(status string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(status).Inc()
}

// Handler serves the Prometheus exposition format through Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency labelled by route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
