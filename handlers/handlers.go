package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"songboard/logging"
	"songboard/metrics"
	"songboard/store"
)

const (
	msgSongNotFound = "No Song matches the given query."
	msgServerError  = "A server error occurred."
	msgNotFound     = "Not found."
)

// Check is a named dependency probe used by the health endpoint.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Handler carries the dependencies shared by every route.
type Handler struct {
	store  store.Store
	checks []Check
}

// New builds a Handler over s. The store is always health-checked; extra checks
// (e.g. Redis) are probed after it.
func New(s store.Store, checks ...Check) *Handler {
	all := append([]Check{{Name: "database", Ping: s.Ping}}, checks...)
	return &Handler{store: s, checks: all}
}

// storeError logs an unexpected store failure and replies 500.
func (h *Handler) storeError(c *fiber.Ctx, op string, err error) error {
	metrics.RecordStoreError(op)
	logging.Ctx(c.UserContext()).Error().Err(err).Str("operation", op).Msg("store operation failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": msgServerError})
}
