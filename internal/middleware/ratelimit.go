package middleware

import (
	"github.com/labstack/echo/v4"

	"PickRank/internal/service/ratelimit"
	xhttp "PickRank/pkg/http"
	applogger "PickRank/pkg/logger"
)

// RateLimit rejects clients that exceed their token bucket with 429.
func RateLimit(l *ratelimit.Limiter, log *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if l.Allow(key) {
				return next(c)
			}
			log.Warn("http.rate_limited",
				applogger.String("remote", key),
				applogger.String("route", c.Path()),
			)
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
		}
	}
}
