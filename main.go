package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	redisstorage "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"songboard/config"
	"songboard/handlers"
	"songboard/loader"
	"songboard/logging"
	"songboard/query"
	"songboard/server"
	"songboard/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.SeedFile != "" {
		if err := seed(ctx, db, cfg.Database.SeedFile); err != nil {
			return err
		}
	}

	opts := server.Options{
		BasePath:         cfg.Server.BasePath,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		CORSOrigins:      cfg.Server.CORSOrigins,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimitMax:     cfg.RateLimit.Max,
		RateLimitWindow:  cfg.RateLimit.Window,
	}

	if cfg.Redis.URL != "" {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		opts.RateLimitStorage = redisstorage.NewFromConnection(client)
		opts.Checks = append(opts.Checks, handlers.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		logging.Info().Msg("redis connected, rate limit counters are shared")
	}

	app := server.New(db, opts)
	return serve(ctx, app, cfg.Server)
}

// seed loads the seed file when the store holds no songs yet.
func seed(ctx context.Context, db store.Store, path string) error {
	n, err := db.CountSongs(ctx, query.Params{})
	if err != nil {
		return err
	}
	if n > 0 {
		logging.Info().Int("songs", n).Msg("store already populated, skipping seed file")
		return nil
	}
	_, err = loader.LoadFile(ctx, db, path, loader.Options{})
	return err
}

// serve listens until ctx is cancelled, then shuts the app down gracefully.
func serve(ctx context.Context, app *fiber.App, cfg config.ServerConfig) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := app.Listen(cfg.Addr()); err != nil {
			return err
		}
		// Listen returned without error: Shutdown was called.
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	})

	return g.Wait()
}
