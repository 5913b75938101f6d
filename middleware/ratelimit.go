package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit allows max requests per client IP per window. storage may be nil
// for the in-process store; pass the Redis storage to share counters between
// replicas. Probe endpoints are never limited.
func RateLimit(max int, window time.Duration, storage fiber.Storage, skipPaths ...string) fiber.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		Next: func(c *fiber.Ctx) bool {
			_, ok := skip[c.Path()]
			return ok
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return "songboard:ratelimit:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Request was throttled.",
			})
		},
	})
}
