package middleware

import (
	"strconv"
	"time"

	applogger "SignalLog/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LatencyRecorder receives request durations.
type LatencyRecorder interface {
	RecordLatency(op string, seconds float64)
}

// Metrics records request latency under the route template (not the raw URL)
// to keep label cardinality low, and logs 5xx and slow requests.
func Metrics(rec LatencyRecorder, l *applogger.Logger, slowThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			method := c.Request().Method
			duration := time.Since(start)
			status := c.Response().Status

			if rec != nil {
				rec.RecordLatency("http "+method+" "+route, duration.Seconds())
			}

			if l != nil {
				fields := []applogger.Field{
					applogger.String("route", route),
					applogger.String("method", method),
					applogger.String("status", strconv.Itoa(status)),
					applogger.Duration("duration_ms", duration),
					applogger.Int64("bytes", c.Response().Size),
				}
				switch {
				case status >= 500:
					l.Error("http request failed", fields...)
				case slowThreshold > 0 && duration >= slowThreshold:
					l.Warn("http request slow", fields...)
				}
			}
			return nil
		}
	}
}
