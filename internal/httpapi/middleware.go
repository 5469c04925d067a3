package httpapi

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const principalKey = "principal"

// loggingMiddleware logs one line per request, leveled by status.
func loggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// render now so the logged status is the one the client sees
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", c.IP()),
		}
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			attrs = append(attrs, slog.String("request_id", rid))
		}
		if uid, ok := principal(c); ok {
			attrs = append(attrs, slog.Int64("user_id", uid))
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		slog.LogAttrs(c.UserContext(), level, "http request", attrs...)
		return nil
	}
}

// timeoutMiddleware bounds the request context handed to services.
func timeoutMiddleware(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 || c.Path() == "/api/events" {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// principalMiddleware trusts the user id forwarded by the auth gateway.
// A missing or malformed header leaves the request anonymous.
func principalMiddleware(header string) fiber.Handler {
	if header == "" {
		header = "X-User-ID"
	}
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(header))
		if raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				c.Locals(principalKey, id)
			}
		}
		return c.Next()
	}
}

func principal(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(principalKey).(int64)
	return id, ok && id > 0
}

// rateLimitMiddleware caps requests per client IP per minute. Health and
// the event stream are exempt.
func rateLimitMiddleware(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/health" || p == "/api/events"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}
