package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"songboard/models"
	"songboard/query"
)

// Memory keeps songs in a slice ordered by id.
type Memory struct {
	mu     sync.RWMutex
	songs  []models.Song
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() {}

func (m *Memory) CountSongs(_ context.Context, p query.Params) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for i := range m.songs {
		if p.Matches(&m.songs[i]) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) ListSongs(_ context.Context, p query.Params, w query.Window) ([]models.Song, error) {
	m.mu.RLock()
	shaped := query.Apply(m.songs, p)
	m.mu.RUnlock()

	lo, hi := w.Bounds(len(shaped))
	return shaped[lo:hi], nil
}

func (m *Memory) find(id int64) (int, bool) {
	return slices.BinarySearchFunc(m.songs, id, func(s models.Song, id int64) int {
		return cmp.Compare(s.ID, id)
	})
}

func (m *Memory) GetSong(_ context.Context, id int64) (models.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.find(id)
	if !ok {
		return models.Song{}, ErrNotFound
	}
	return m.songs[i], nil
}

func (m *Memory) SetRating(_ context.Context, id int64, rating int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.find(id)
	if !ok {
		return ErrNotFound
	}
	// Fresh pointer so songs handed out earlier keep their old value.
	m.songs[i].Rating = &rating
	return nil
}

func (m *Memory) CreateSongs(_ context.Context, songs []models.Song) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range songs {
		s.ID = m.nextID
		s.Rating = nil
		m.nextID++
		m.songs = append(m.songs, s)
	}
	return len(songs), nil
}

func (m *Memory) Truncate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.songs = nil
	m.nextID = 1
	return nil
}

// Seed inserts songs keeping their ID and Rating, for tests and fixtures.
// Songs must be supplied in ascending id order above any existing id.
func (m *Memory) Seed(songs ...models.Song) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range songs {
		if s.ID == 0 {
			s.ID = m.nextID
		}
		m.songs = append(m.songs, s)
		m.nextID = s.ID + 1
	}
}
