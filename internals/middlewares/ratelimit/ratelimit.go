// Package ratelimit is the per-user fixed-window limiter. Counters live
// behind CounterStore so a single process can use the in-memory map while
// multi-instance deployments point the same middleware at Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	auditDTO "virtualab_backend/internals/features/audit/dto"
	"virtualab_backend/internals/features/audit/model"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

// CounterStore increments the counter for key within a fixed window and
// returns the new count. The first increment of a window starts it.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// SecurityLogger is the slice of the audit logger this middleware needs.
type SecurityLogger interface {
	LogSecurityEvent(ctx context.Context, userID *uuid.UUID, ip, userAgent string, p auditDTO.SecurityEventPayload)
}

// New returns a fiber middleware enforcing max requests per window, keyed
// by userID:path (IP:path when anonymous). Every violation returns 429
// and logs one medium-severity security event.
func New(max int64, window time.Duration, store CounterStore, logger SecurityLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID *uuid.UUID
		keyOwner := c.IP()
		if id, err := helperAuth.GetUserID(c); err == nil {
			userID = &id
			keyOwner = id.String()
		}
		key := keyOwner + ":" + c.Path()

		count, err := store.Incr(c.Context(), key, window)
		if err != nil {
			// a broken counter store must not take the API down
			return c.Next()
		}

		if count > max {
			logger.LogSecurityEvent(c.Context(), userID, c.IP(), c.Get(fiber.HeaderUserAgent),
				auditDTO.SecurityEventPayload{
					Severity: model.SeverityMedium,
					Event:    "rate_limit_exceeded",
					Context: map[string]interface{}{
						"path":  c.Path(),
						"count": count,
						"max":   max,
					},
				})
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "rate limit exceeded",
			})
		}

		return c.Next()
	}
}
