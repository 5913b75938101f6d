package store

import (
	"context"
	"fmt"

	"songboard/config"
	"songboard/logging"
)

// Open returns the backend selected by cfg. Postgres is migrated first when
// cfg.Migrate is set.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logging.Warn().Msg("using in-memory store, data is lost on exit")
		return NewMemory(), nil
	case config.DriverPostgres:
		pg, err := OpenPostgres(ctx, cfg.URL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := pg.Migrate(ctx); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
