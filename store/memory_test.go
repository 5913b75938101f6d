package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songboard/models"
	"songboard/query"
)

func newSong(title string, danceability float64) models.Song {
	return models.Song{
		Title: title, Danceability: danceability, Energy: 0.5, DurationMs: 200000,
		Tempo: 120, NumSegments: 5, NumSections: 3, Acousticness: 0.2,
	}
}

func TestMemoryCreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rating := 3
	withRating := newSong("Rated", 0.1)
	withRating.Rating = &rating
	withRating.ID = 42

	n, err := m.CreateSongs(ctx, []models.Song{newSong("A", 0.1), withRating})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	s, err := m.GetSong(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.ID)
	assert.Equal(t, "Rated", s.Title)
	assert.Nil(t, s.Rating, "loader never sets ratings")

	_, err = m.GetSong(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySetRating(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.CreateSongs(ctx, []models.Song{newSong("A", 0.1)})
	require.NoError(t, err)

	before, err := m.GetSong(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, m.SetRating(ctx, 1, 5))
	after, err := m.GetSong(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, after.Rating)
	assert.Equal(t, 5, *after.Rating)
	assert.Nil(t, before.Rating)

	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Danceability, after.Danceability)

	assert.ErrorIs(t, m.SetRating(ctx, 99, 3), ErrNotFound)
}

func TestMemoryListAndCount(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.CreateSongs(ctx, []models.Song{
		newSong("Song One", 0.8),
		newSong("Song Two", 0.6),
		newSong("Another Song", 0.9),
		newSong("Zebra", 0.3),
	})
	require.NoError(t, err)

	p, err := query.Parse(map[string]string{"title": "song", "sort_key": "danceability", "direction": "desc", "per_page": "2"})
	require.NoError(t, err)

	total, err := m.CountSongs(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	w, err := query.Paginate(total, p.PerPage, "1")
	require.NoError(t, err)
	page, err := m.ListSongs(ctx, p, w)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Another Song", page[0].Title)
	assert.Equal(t, "Song One", page[1].Title)

	w, err = query.Paginate(total, p.PerPage, "2")
	require.NoError(t, err)
	page, err = m.ListSongs(ctx, p, w)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Song Two", page[0].Title)
}

func TestMemoryTruncate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.CreateSongs(ctx, []models.Song{newSong("A", 0.1), newSong("B", 0.2)})
	require.NoError(t, err)

	require.NoError(t, m.Truncate(ctx))
	total, err := m.CountSongs(ctx, query.Params{})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = m.CreateSongs(ctx, []models.Song{newSong("C", 0.3)})
	require.NoError(t, err)
	s, err := m.GetSong(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "C", s.Title)
}

func TestMemorySeedKeepsIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rating := 4
	a := newSong("A", 0.1)
	a.ID = 10
	a.Rating = &rating
	m.Seed(a)

	got, err := m.GetSong(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)

	_, err = m.CreateSongs(ctx, []models.Song{newSong("B", 0.2)})
	require.NoError(t, err)
	_, err = m.GetSong(ctx, 11)
	assert.NoError(t, err)
}
