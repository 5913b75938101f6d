package handlers

import (
	"github.com/gofiber/fiber/v2"

	"songboard/middleware"
	"songboard/models"
	"songboard/query"
)

// ListSongs lists songs filtered by title, sorted by sort_key/direction and
// paginated by per_page/page. Parameters are validated by
// middleware.ValidateListQuery.
func (h *Handler) ListSongs(c *fiber.Ctx) error {
	params, ok := middleware.ListParams(c)
	if !ok {
		var err error
		if params, err = query.Parse(c.Queries()); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": query.InvalidPerPage})
		}
	}
	ctx := c.UserContext()

	total, err := h.store.CountSongs(ctx, params)
	if err != nil {
		return h.storeError(c, "count", err)
	}

	window, err := query.Paginate(total, params.PerPage, params.Page)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": query.InvalidPageValue})
	}

	songs, err := h.store.ListSongs(ctx, params, window)
	if err != nil {
		return h.storeError(c, "list", err)
	}
	if songs == nil {
		songs = []models.Song{}
	}

	return c.JSON(models.SongPage{
		Data:       songs,
		Pagination: window.Metadata(),
	})
}
