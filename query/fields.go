package query

import (
	"cmp"
	"fmt"
	"strings"

	"songboard/models"
)

// Field is an allow-listed sort key.
type Field struct {
	Name string
	// Expr is the SQL ordering expression. Text is lower-cased and compared
	// byte-wise so both stores agree.
	Expr string
	// Compare orders two songs ascending on this field.
	Compare func(a, b *models.Song) int
}

var fields = map[string]Field{
	"id": {
		Name: "id", Expr: "id",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.ID, b.ID) },
	},
	"title": {
		Name: "title", Expr: `LOWER(title) COLLATE "C"`,
		Compare: func(a, b *models.Song) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		},
	},
	"danceability": {
		Name: "danceability", Expr: "danceability",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.Danceability, b.Danceability) },
	},
	"energy": {
		Name: "energy", Expr: "energy",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.Energy, b.Energy) },
	},
	"duration_ms": {
		Name: "duration_ms", Expr: "duration_ms",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.DurationMs, b.DurationMs) },
	},
	"tempo": {
		Name: "tempo", Expr: "tempo",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.Tempo, b.Tempo) },
	},
	"num_segments": {
		Name: "num_segments", Expr: "num_segments",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.NumSegments, b.NumSegments) },
	},
	"num_sections": {
		Name: "num_sections", Expr: "num_sections",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.NumSections, b.NumSections) },
	},
	"acousticness": {
		Name: "acousticness", Expr: "acousticness",
		Compare: func(a, b *models.Song) int { return cmp.Compare(a.Acousticness, b.Acousticness) },
	},
	"rating": {
		Name: "rating", Expr: "rating",
		Compare: compareRating,
	},
}

// Unrated songs compare greater than any rating, as NULL does in Postgres.
func compareRating(a, b *models.Song) int {
	switch {
	case a.Rating == nil && b.Rating == nil:
		return 0
	case a.Rating == nil:
		return 1
	case b.Rating == nil:
		return -1
	}
	return cmp.Compare(*a.Rating, *b.Rating)
}

// LookupField resolves a sort key, falling back to title for anything unknown.
func LookupField(key string) Field {
	if f, ok := fields[key]; ok {
		return f
	}
	return fields[DefaultSortKey]
}

// SortKeys returns the allow-listed key names.
func SortKeys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	return keys
}

// OrderBy renders the ORDER BY clause body. Ties fall back to ascending id.
func (p Params) OrderBy() string {
	dir, nulls := "ASC", "LAST"
	if p.Desc {
		dir, nulls = "DESC", "FIRST"
	}
	if p.Sort.Name == "id" {
		return fmt.Sprintf("id %s", dir)
	}
	return fmt.Sprintf("%s %s NULLS %s, id ASC", p.Sort.Expr, dir, nulls)
}

// LikePattern returns a lower-cased LIKE pattern matching titles that contain
// p.Title, with wildcard characters escaped by backslash.
func (p Params) LikePattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(p.Title)) + "%"
}
