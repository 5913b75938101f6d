package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"songboard/logging"
)

const healthTimeout = 2 * time.Second

// Health reports whether every dependency answers a ping.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("component", check.Name).Msg("health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "unavailable",
				"component": check.Name,
				"error":     err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
