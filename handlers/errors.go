package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"songboard/logging"
)

// ErrorHandler renders every error that escapes a handler or the router as
// {"detail": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := msgServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		switch code {
		case fiber.StatusMethodNotAllowed:
			detail = fmt.Sprintf("Method %q not allowed.", c.Method())
		case fiber.StatusNotFound:
			detail = msgNotFound
		default:
			detail = fe.Message
		}
	} else {
		logging.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{"detail": detail})
}
