// Package loader bulk-inserts songs from the normalized CSV into a store.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"

	"songboard/logging"
	"songboard/metrics"
	"songboard/models"
	"songboard/store"
)

const (
	DefaultBatchSize = 500
	maxTitleLength   = 255
)

var ErrMissingColumn = errors.New("missing required column")

// Options tunes a load.
type Options struct {
	BatchSize int
	// Truncate empties the table before inserting.
	Truncate bool
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
}

// LoadFile loads the CSV at path into s and returns the number of songs created.
func LoadFile(ctx context.Context, s store.Store, path string, opts Options) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	n, err := Load(ctx, s, f, opts)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Load parses every row before writing anything, so a malformed file leaves
// the store untouched.
func Load(ctx context.Context, s store.Store, r io.Reader, opts Options) (int, error) {
	songs, err := Parse(r)
	if err != nil {
		return 0, err
	}

	if opts.Truncate {
		if err := s.Truncate(ctx); err != nil {
			return 0, err
		}
		logging.Info().Msg("songs table truncated")
	}

	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(songs),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionFullWidth(),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("Loading songs..."),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
		)
	}

	total := 0
	for start := 0; start < len(songs); start += batch {
		end := start + batch
		if end > len(songs) {
			end = len(songs)
		}
		n, err := s.CreateSongs(ctx, songs[start:end])
		total += n
		metrics.RecordSongsLoaded(n)
		if err != nil {
			return total, fmt.Errorf("insert rows %d-%d: %w", start+1, end, err)
		}
		if bar != nil {
			_ = bar.Add(n)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logging.Info().Int("songs", total).Msg("songs loaded")
	return total, nil
}

// Parse reads the header and every data row. Columns are matched by header
// name; extra columns are ignored. Errors name the offending line.
func Parse(r io.Reader) ([]models.Song, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}
	cols := make([]int, len(models.Columns))
	for i, name := range models.Columns {
		pos, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		cols[i] = pos
	}

	var songs []models.Song
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		song, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// parseRow maps a record to a Song. cols holds the record position of each
// entry of models.Columns.
func parseRow(rec []string, cols []int) (models.Song, error) {
	field := func(i int) string { return strings.TrimSpace(rec[cols[i]]) }

	var (
		s   models.Song
		err error
	)
	s.Title = rec[cols[0]]
	if strings.TrimSpace(s.Title) == "" {
		return s, errors.New(`column "title": empty`)
	}
	if utf8.RuneCountInString(s.Title) > maxTitleLength {
		return s, fmt.Errorf(`column "title": longer than %d characters`, maxTitleLength)
	}

	floats := []struct {
		col int
		dst *float64
	}{
		{1, &s.Danceability},
		{2, &s.Energy},
		{4, &s.Tempo},
		{7, &s.Acousticness},
	}
	for _, f := range floats {
		if *f.dst, err = parseFloat(field(f.col)); err != nil {
			return s, fmt.Errorf("column %q: %w", models.Columns[f.col], err)
		}
	}

	ints := []struct {
		col int
		dst *int64
	}{
		{3, &s.DurationMs},
		{5, &s.NumSegments},
		{6, &s.NumSections},
	}
	for _, f := range ints {
		if *f.dst, err = parseInt(field(f.col)); err != nil {
			return s, fmt.Errorf("column %q: %w", models.Columns[f.col], err)
		}
	}
	return s, nil
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return f, nil
}

// parseInt accepts integral floats such as 210000.0, which is how pandas
// writes integer columns that once held a missing value. Values must fit the
// 32-bit INTEGER columns of the songs table.
func parseInt(v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return 0, fmt.Errorf("invalid integer %q", v)
		}
		n = int64(f)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("integer %q out of range", v)
	}
	return n, nil
}
