package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songboard/models"
	"songboard/query"
	"songboard/store"
)

var errBroken = errors.New("connection reset")

// brokenStore fails the listed operations and delegates the rest to Memory.
type brokenStore struct {
	*store.Memory
	count, get, rate bool
}

func (b *brokenStore) CountSongs(ctx context.Context, p query.Params) (int, error) {
	if b.count {
		return 0, errBroken
	}
	return b.Memory.CountSongs(ctx, p)
}

func (b *brokenStore) GetSong(ctx context.Context, id int64) (models.Song, error) {
	if b.get {
		return models.Song{}, errBroken
	}
	return b.Memory.GetSong(ctx, id)
}

func (b *brokenStore) SetRating(ctx context.Context, id int64, rating int) error {
	if b.rate {
		return errBroken
	}
	return b.Memory.SetRating(ctx, id, rating)
}

func newApp(s store.Store) *fiber.App {
	h := New(s)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/songs", h.ListSongs)
	app.Patch("/songs/:id<int>/rate", h.RateSong)
	app.Get("/healthz", h.Health)
	app.Get("/panic", func(*fiber.Ctx) error { return errBroken })
	return app
}

func send(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	resp, err := app.Test(httptest.NewRequest(method, target, r), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func seeded() *store.Memory {
	m := store.NewMemory()
	m.Seed(models.Song{ID: 1, Title: "Only Song", DurationMs: 1000})
	return m
}

func TestListSongsWithoutMiddleware(t *testing.T) {
	app := newApp(seeded())

	status, body := send(t, app, http.MethodGet, "/songs?per_page=5", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = send(t, app, http.MethodGet, "/songs?per_page=x", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, query.InvalidPerPage, body["error"])
}

func TestStoreFailuresAreHidden(t *testing.T) {
	tests := []struct {
		name   string
		store  *brokenStore
		method string
		target string
		body   string
	}{
		{"count", &brokenStore{Memory: seeded(), count: true}, http.MethodGet, "/songs", ""},
		{"get", &brokenStore{Memory: seeded(), get: true}, http.MethodPatch, "/songs/1/rate", `{"rating": 3}`},
		{"rate", &brokenStore{Memory: seeded(), rate: true}, http.MethodPatch, "/songs/1/rate", `{"rating": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := send(t, newApp(tt.store), tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, msgServerError, body["detail"])
			assert.NotContains(t, body["detail"], errBroken.Error())
		})
	}
}

func TestHealthOK(t *testing.T) {
	status, body := send(t, newApp(seeded()), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestErrorHandler(t *testing.T) {
	app := newApp(seeded())

	status, body := send(t, app, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, msgServerError, body["detail"])

	status, body = send(t, app, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, msgNotFound, body["detail"])

	status, body = send(t, app, http.MethodPut, "/songs", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, `Method "PUT" not allowed.`, body["detail"])
}

func TestDecodeRating(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"rating": 1}`, 1},
		{`{"rating": 5.0}`, 5},
		{`{"rating": "3"}`, 3},
		{`{"rating": 2, "title": "ignored"}`, 2},
	}
	for _, tt := range tests {
		in, err := decodeRating([]byte(tt.body))
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.want, in.Rating, tt.body)
	}

	_, err := decodeRating([]byte(`"5"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got str")
}
