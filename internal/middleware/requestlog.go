package middleware

import (
	"cmp"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const component = "http"

type Logger interface {
	Info(component, method, msg string, args ...any)
	Warn(component, method, msg string, args ...any)
	Error(component, method, msg string, args ...any)
}

// RequestLog writes one application log entry per request. Requests whose
// path starts with one of skipPrefixes are not logged.
func RequestLog(logger Logger, skipPrefixes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, prefix := range skipPrefixes {
				if strings.HasPrefix(c.Request().URL.Path, prefix) {
					return next(c)
				}
			}

			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			path := cmp.Or(c.Path(), "/")
			statusCode := c.Response().Status

			args := []any{
				"httpMethod", c.Request().Method,
				"path", path,
				"durationMs", float64(duration.Microseconds()) / 1000.0,
				"clientIp", c.RealIP(),
			}
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					statusCode = he.Code
				} else if !c.Response().Committed {
					statusCode = http.StatusInternalServerError
				}
				args = append(args, "error", err.Error())
			}
			args = append(args, "status", statusCode)

			switch {
			case statusCode >= http.StatusInternalServerError:
				logger.Error(component, "RequestLog", "Request failed", args...)
			case statusCode >= http.StatusBadRequest:
				logger.Warn(component, "RequestLog", "Request rejected", args...)
			default:
				logger.Info(component, "RequestLog", "Request handled", args...)
			}

			return err
		}
	}
}
