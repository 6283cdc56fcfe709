package middleware

import (
	"net/http"

	applogger "SignalLog/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Allower decides whether a request from key may proceed.
type Allower interface {
	Allow(key string) bool
}

// RateLimit throttles write requests per client IP. Reads pass through.
func RateLimit(a Allower, l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			if a == nil || method == http.MethodGet || method == http.MethodHead {
				return next(c)
			}
			ip := c.RealIP()
			if a.Allow(ip) {
				return next(c)
			}
			l.Warn("rate limited",
				applogger.String("ip", ip),
				applogger.String("path", c.Path()),
			)
			return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
				"status":  http.StatusTooManyRequests,
				"message": "Too Many Requests",
			})
		}
	}
}
