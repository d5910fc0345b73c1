package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Booking operation counter
	BookingOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kennel_booking_operations_total",
			Help: "Total number of booking operations",
		},
		[]string{"operation"}, // operation can be "create", "get", "update", "delete", "list", "list_unpaid"
	)

	// Booking status transition counter
	StatusTransitionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kennel_booking_status_transitions_total",
			Help: "Total number of booking status transitions",
		},
		[]string{"to"},
	)

	// Tenant resolution counter by source
	TenantResolutionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kennel_tenant_resolutions_total",
			Help: "Total number of tenant resolutions by source",
		},
		[]string{"source"}, // source can be "subdomain", "header", "cookie", "claims", "default"
	)

	// Side effect counter
	SideEffectCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kennel_side_effects_total",
			Help: "Total number of notification side effects by outcome",
		},
		[]string{"kind", "outcome"}, // kind: "schedule", "whatsapp", "email"; outcome: "ok", "failed"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kennel_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	ErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kennel_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // type can be "validation", "not_found", "db_error", etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kennel_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kennel_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kennel_info",
			Help: "Information about the kennel service",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(BookingOperationCounter)
	prometheus.MustRegister(StatusTransitionCounter)
	prometheus.MustRegister(TenantResolutionCounter)
	prometheus.MustRegister(SideEffectCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(ErrorCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := endTime.Sub(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{"operation": operation}).Observe(duration)
	}
}

// RecordBookingOperation records a booking operation
func RecordBookingOperation(operation string) {
	BookingOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordStatusTransition records a booking status transition
func RecordStatusTransition(to string) {
	StatusTransitionCounter.With(prometheus.Labels{"to": to}).Inc()
}

// RecordTenantResolution records which source resolved the tenant
func RecordTenantResolution(source string) {
	TenantResolutionCounter.With(prometheus.Labels{"source": source}).Inc()
}

// RecordSideEffect records a notification side effect outcome
func RecordSideEffect(kind, outcome string) {
	SideEffectCounter.With(prometheus.Labels{"kind": kind, "outcome": outcome}).Inc()
}

// RecordError records an error by type
func RecordError(errorType string) {
	ErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Start timer for request duration
			start := time.Now()

			// Process request
			err := next(c)

			// Calculate request duration
			duration := time.Since(start).Seconds()

			// Get request details
			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			// Record metrics
			HTTPRequestCounter.WithLabelValues(path, method, status).Inc()
			RequestDuration.WithLabelValues(path, method, status).Observe(duration)

			return err
		}
	}
}
