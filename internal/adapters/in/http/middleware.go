package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"swiftdrop/internal/pkg/observability"
)

// MetricsMiddleware records request counts and latency per route. The route
// template keeps label cardinality bounded; raw URLs would not.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			path := ctx.Path()
			if path == "" {
				path = "unmatched"
			}
			method := ctx.Request().Method
			status := strconv.Itoa(ctx.Response().Status)

			observability.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
			observability.HTTPRequestDuration.WithLabelValues(method, path).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}
