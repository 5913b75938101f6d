package handlers

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goccy/go-json"

	"songboard/logging"
	"songboard/metrics"
	"songboard/models"
	"songboard/store"
	"songboard/validation"
)

const msgRatingUpdated = "Rating updated successfully"

type ratingInput struct {
	Rating int `json:"rating" validate:"min=1,max=5"`
}

// RateSong sets the rating of one song. The song is looked up before the body
// is validated, so an unknown id is always a 404.
func (h *Handler) RateSong(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": msgSongNotFound})
	}
	songID := int64(id)
	ctx := c.UserContext()

	if _, err := h.store.GetSong(ctx, songID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": msgSongNotFound})
		}
		return h.storeError(c, "get", err)
	}

	input, err := decodeRating(c.Body())
	if err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			return c.Status(fiber.StatusBadRequest).JSON(fe)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	if err := h.store.SetRating(ctx, songID, input.Rating); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": msgSongNotFound})
		}
		return h.storeError(c, "rate", err)
	}

	metrics.RecordRating(input.Rating)
	logging.Ctx(ctx).Info().Int64("song_id", songID).Int("rating", input.Rating).Msg("song rated")

	return c.JSON(models.RatingResponse{Message: msgRatingUpdated, Rating: input.Rating})
}

// decodeRating parses and validates a rating body. Field problems come back as
// validation.FieldErrors; an unreadable body as a plain error.
func decodeRating(body []byte) (ratingInput, error) {
	fields := map[string]json.RawMessage{}

	body = bytes.TrimSpace(body)
	if len(body) > 0 {
		if !json.Valid(body) {
			var syntax map[string]interface{}
			err := json.Unmarshal(body, &syntax)
			return ratingInput{}, fmt.Errorf("JSON parse error - %v", err)
		}
		if body[0] != '{' {
			fe := validation.FieldErrors{}
			fe.Add("non_field_errors", nonObjectMessage(body[0]))
			return ratingInput{}, fe
		}
		if err := json.Unmarshal(body, &fields); err != nil {
			return ratingInput{}, fmt.Errorf("JSON parse error - %v", err)
		}
	}

	fe := validation.FieldErrors{}
	raw, ok := fields["rating"]
	switch {
	case !ok:
		fe.Add("rating", validation.MsgRequired)
	case string(bytes.TrimSpace(raw)) == "null":
		fe.Add("rating", validation.MsgNull)
	default:
		n, ok := validation.Integer(raw)
		if !ok {
			fe.Add("rating", validation.MsgInvalidInt)
			break
		}
		input := ratingInput{Rating: n}
		if err := validation.Struct(input); err != nil {
			return ratingInput{}, err
		}
		return input, nil
	}
	return ratingInput{}, fe
}

func nonObjectMessage(first byte) string {
	if first == 'n' {
		return "No data provided"
	}
	kind := "int"
	switch first {
	case '[':
		kind = "list"
	case '"':
		kind = "str"
	case 't', 'f':
		kind = "bool"
	}
	return fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", kind)
}
