package logging

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogger returns middleware that logs each request with method, path,
// status code, duration, remote IP and request id. Handler errors are
// rendered through the app's ErrorHandler first so the logged status is the
// one the client sees.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set(RequestIDHeader, id)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []slog.Attr{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", c.IP()),
			slog.String("request_id", id),
		}

		switch {
		case status >= 500:
			logger.LogAttrs(c.UserContext(), slog.LevelError, "request", attrs...)
		case status >= 400:
			logger.LogAttrs(c.UserContext(), slog.LevelWarn, "request", attrs...)
		default:
			logger.LogAttrs(c.UserContext(), slog.LevelInfo, "request", attrs...)
		}
		return nil
	}
}

// RequestID returns the id assigned by RequestLogger, or "".
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
