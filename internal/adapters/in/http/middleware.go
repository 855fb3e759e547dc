package http

import (
	"time"

	"restaurant/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// ObserveRequests records the status and latency of every request under its
// route pattern, so path parameters do not multiply label values.
func ObserveRequests(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
