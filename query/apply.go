package query

import (
	"cmp"
	"slices"
	"strings"

	"songboard/models"
)

// Matches reports whether s passes the title filter.
func (p Params) Matches(s *models.Song) bool {
	if p.Title == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Title), strings.ToLower(p.Title))
}

// Apply filters and sorts songs in memory. The input is not modified.
func Apply(songs []models.Song, p Params) []models.Song {
	out := make([]models.Song, 0, len(songs))
	for i := range songs {
		if p.Matches(&songs[i]) {
			out = append(out, songs[i])
		}
	}

	slices.SortStableFunc(out, func(a, b models.Song) int {
		c := p.Sort.Compare(&a, &b)
		if p.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
