package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"storefront-service/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter    prometheus.Counter
	RegisterCounter prometheus.Counter
	AuthErrors      prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Order metrics
	OrdersPlacedCounter prometheus.Counter
	OrderErrorsCounter  prometheus.CounterVec

	// Data-access mode: 0 = orm, 1 = procedure
	RepositoryModeGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_register_attempts_total",
			Help: "Total number of registration attempts",
		},
	)

	AuthErrors = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	OrdersPlacedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	OrderErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_errors_total",
			Help: "Total number of failed order placements",
		},
		[]string{"reason"},
	)

	RepositoryModeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_repository_mode",
			Help: "Active data-access mode (0 = orm, 1 = procedure)",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operation).Observe(duration)
	}
}

// RecordAuthError increments the counter for a failed auth operation
func RecordAuthError(reason string) {
	AuthErrors.WithLabelValues(reason).Inc()
}

// RecordOrderError increments the counter for a failed order placement
func RecordOrderError(reason string) {
	OrderErrorsCounter.WithLabelValues(reason).Inc()
}

// SetRepositoryMode records the active data-access mode
func SetRepositoryMode(procedure bool) {
	if procedure {
		RepositoryModeGauge.Set(1)
	} else {
		RepositoryModeGauge.Set(0)
	}
}
