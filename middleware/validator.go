package middleware

import (
	"github.com/gofiber/fiber/v2"

	"songboard/query"
)

const listParamsKey = "listParams"

// ValidateListQuery checks the listing query string. A per_page that is not a
// positive integer is rejected with 400; everything else is normalised and
// handed to the handler through ListParams.
func ValidateListQuery(c *fiber.Ctx) error {
	params, err := query.Parse(c.Queries())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": query.InvalidPerPage,
		})
	}
	c.Locals(listParamsKey, params)
	return c.Next()
}

// ListParams returns the parameters stored by ValidateListQuery.
func ListParams(c *fiber.Ctx) (query.Params, bool) {
	p, ok := c.Locals(listParamsKey).(query.Params)
	return p, ok
}
