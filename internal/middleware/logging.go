package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/splitkaro/backend/internal/metrics"
)

// RequestLogger logs each request on completion and records HTTP metrics.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		metrics.RecordHTTPRequest(c.Method(), route, strconv.Itoa(status), latency)

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"ip", c.IP(),
		}
		if userID := UserID(c); userID != "" {
			attrs = append(attrs, "user_id", userID)
		}

		if status >= 500 {
			logger.Error("http_request", attrs...)
		} else if status >= 400 {
			logger.Warn("http_request", attrs...)
		} else {
			logger.Info("http_request", attrs...)
		}

		return err
	}
}
