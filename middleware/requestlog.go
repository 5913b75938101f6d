package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"songboard/logging"
	"songboard/metrics"
)

// RequestID tags each request with a UUID, reusing an incoming X-Request-ID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// Instrument attaches a request-scoped logger to the user context, then logs
// and records metrics for the request once the chain has finished. Errors from
// the chain are rendered here so the logged status is the one sent.
func Instrument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		l := logging.Logger().With().Str("request_id", rid).Logger()
		c.SetUserContext(logging.WithContext(c.UserContext(), l))

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		metrics.RecordRequest(c.Method(), c.Route().Path, status, latency)

		evt := l.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = l.Error()
		case status >= fiber.StatusBadRequest:
			evt = l.Warn()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
