package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"storefront-service/prometheus"
)

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Start timer for request duration
		start := time.Now()

		// Process request
		err := next(c)

		duration := time.Since(start).Seconds()

		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		prometheus.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)

		return err
	}
}
