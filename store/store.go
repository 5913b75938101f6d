// Package store persists songs. Postgres is the production backend; Memory
// serves tests and local runs without a database.
package store

import (
	"context"
	"errors"

	"songboard/models"
	"songboard/query"
)

// ErrNotFound is returned when no song has the requested id.
var ErrNotFound = errors.New("song not found")

// Store is the persistence contract the HTTP handlers and the loader rely on.
type Store interface {
	// CountSongs returns how many songs pass the title filter in p.
	CountSongs(ctx context.Context, p query.Params) (int, error)
	// ListSongs returns the filtered, sorted songs on page w.
	ListSongs(ctx context.Context, p query.Params, w query.Window) ([]models.Song, error)
	GetSong(ctx context.Context, id int64) (models.Song, error)
	// SetRating overwrites the rating of one song. Last writer wins.
	SetRating(ctx context.Context, id int64, rating int) error
	// CreateSongs inserts songs, ignoring their ID and Rating, and returns the count written.
	CreateSongs(ctx context.Context, songs []models.Song) (int, error)
	// Truncate removes every song and resets id assignment.
	Truncate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*Memory)(nil)
)
