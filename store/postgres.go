package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"songboard/models"
	"songboard/query"
)

const songColumns = `id, title, danceability, energy, duration_ms, tempo, num_segments, num_sections, acousticness, rating`

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to url and verifies the connection. maxConns <= 0 keeps
// the pgxpool default.
func OpenPostgres(ctx context.Context, url string, maxConns int32) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// where returns the title filter clause and its arguments.
func where(q query.Params) (string, []interface{}) {
	if q.Title == "" {
		return "", nil
	}
	return ` WHERE LOWER(title) LIKE $1 ESCAPE '\'`, []interface{}{q.LikePattern()}
}

func (p *Postgres) CountSongs(ctx context.Context, q query.Params) (int, error) {
	clause, args := where(q)

	var count int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM songs`+clause, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	return count, nil
}

func (p *Postgres) ListSongs(ctx context.Context, q query.Params, w query.Window) ([]models.Song, error) {
	clause, args := where(q)

	// ORDER BY comes from the sort allow-list, never from request text.
	sql := `SELECT ` + songColumns + ` FROM songs` + clause +
		` ORDER BY ` + q.OrderBy() +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, w.PerPage, w.Offset())

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.Song, 0, w.Len())
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return songs, nil
}

func (p *Postgres) GetSong(ctx context.Context, id int64) (models.Song, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+songColumns+` FROM songs WHERE id = $1`, id)
	s, err := scanSong(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Song{}, ErrNotFound
		}
		return models.Song{}, fmt.Errorf("get song %d: %w", id, err)
	}
	return s, nil
}

func (p *Postgres) SetRating(ctx context.Context, id int64, rating int) error {
	tag, err := p.pool.Exec(ctx, `UPDATE songs SET rating = $1 WHERE id = $2`, rating, id)
	if err != nil {
		return fmt.Errorf("update rating of song %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) CreateSongs(ctx context.Context, songs []models.Song) (int, error) {
	rows := make([][]interface{}, len(songs))
	for i, s := range songs {
		rows[i] = []interface{}{
			s.Title, s.Danceability, s.Energy, s.DurationMs, s.Tempo,
			s.NumSegments, s.NumSections, s.Acousticness,
		}
	}

	n, err := p.pool.CopyFrom(ctx, pgx.Identifier{"songs"}, models.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy songs: %w", err)
	}
	return int(n), nil
}

func (p *Postgres) Truncate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `TRUNCATE songs RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate songs: %w", err)
	}
	return nil
}

func scanSong(row pgx.Row) (models.Song, error) {
	var s models.Song
	err := row.Scan(
		&s.ID, &s.Title, &s.Danceability, &s.Energy, &s.DurationMs, &s.Tempo,
		&s.NumSegments, &s.NumSections, &s.Acousticness, &s.Rating,
	)
	return s, err
}
