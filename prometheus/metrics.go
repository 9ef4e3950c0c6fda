package prometheus

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics records outgoing calls made by the API clients.
// A nil *ClientMetrics is valid and records nothing.
type ClientMetrics struct {
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	UnauthenticatedTotal *prometheus.CounterVec
}

// NewClientMetrics registers the client metrics on reg using the given prefix
func NewClientMetrics(prefix string, reg prometheus.Registerer) *ClientMetrics {
	factory := promauto.With(reg)

	return &ClientMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_client_requests_total",
				Help: "Total number of requests issued to the inventory service",
			},
			[]string{"operation", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_client_request_duration_seconds",
				Help:    "Duration of requests issued to the inventory service in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		UnauthenticatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_client_unauthenticated_total",
				Help: "Total number of operations refused because no credential was stored",
			},
			[]string{"operation"},
		),
	}
}

// ObserveRequest records one finished request. Status 0 means no response was received.
func (m *ClientMetrics) ObserveRequest(operation, method string, status int, start time.Time) {
	if m == nil {
		return
	}

	statusLabel := "error"
	if status != 0 {
		statusLabel = strconv.Itoa(status)
	}

	m.RequestsTotal.WithLabelValues(operation, method, statusLabel).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordUnauthenticated counts an operation short-circuited for lack of a credential
func (m *ClientMetrics) RecordUnauthenticated(operation string) {
	if m == nil {
		return
	}
	m.UnauthenticatedTotal.WithLabelValues(operation).Inc()
}

// ServerMetrics holds the HTTP metrics of the development inventory server
type ServerMetrics struct {
	RequestCounter           *prometheus.CounterVec
	RequestDurationHistogram *prometheus.HistogramVec
	StatusCodeCategory       *prometheus.CounterVec
	AuthErrorsCounter        *prometheus.CounterVec
}

func NewServerMetrics(prefix string, reg prometheus.Registerer) *ServerMetrics {
	factory := promauto.With(reg)

	return &ServerMetrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDurationHistogram: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		StatusCodeCategory: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_status_category_total",
				Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"category"},
		),
		AuthErrorsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of authentication errors",
			},
			[]string{"reason"},
		),
	}
}

// RecordAuthError counts a rejected authentication by reason
func (m *ServerMetrics) RecordAuthError(reason string) {
	if m == nil {
		return
	}
	m.AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// Middleware creates an Echo middleware function that records HTTP request metrics
func (m *ServerMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			m.RequestCounter.WithLabelValues(method, path, statusStr).Inc()
			if category := statusCategory(status); category != "" {
				m.StatusCodeCategory.WithLabelValues(category).Inc()
			}
			m.RequestDurationHistogram.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}
