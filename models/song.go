package models

// Song represents a row of the songs table.
type Song struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	DurationMs   int64   `json:"duration_ms"`
	Tempo        float64 `json:"tempo"`
	NumSegments  int64   `json:"num_segments"`
	NumSections  int64   `json:"num_sections"`
	Acousticness float64 `json:"acousticness"`
	// Rating is nil until a listener rates the song.
	Rating *int `json:"rating"`
}

// RatingMin and RatingMax bound Song.Rating.
const (
	RatingMin = 1
	RatingMax = 5
)

// Columns lists the CSV/table columns every song row must carry, in file order.
var Columns = []string{
	"title",
	"danceability",
	"energy",
	"duration_ms",
	"tempo",
	"num_segments",
	"num_sections",
	"acousticness",
}
