// Command loaddata inserts the songs of a normalized CSV into the configured
// database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"songboard/config"
	"songboard/loader"
	"songboard/logging"
	"songboard/store"
)

func main() {
	file := flag.String("file", "normalized_songs.csv", "CSV file to load")
	truncate := flag.Bool("truncate", false, "delete existing songs first")
	batch := flag.Int("batch", loader.DefaultBatchSize, "rows per insert batch")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

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

	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open store")
	}
	defer db.Close()

	n, err := loader.LoadFile(ctx, db, *file, loader.Options{
		BatchSize: *batch,
		Truncate:  *truncate,
		Progress:  os.Stderr,
	})
	if err != nil {
		db.Close()
		logging.Fatal().Err(err).Int("loaded", n).Msg("load failed")
	}
	fmt.Fprintln(os.Stderr)
	logging.Info().Int("songs", n).Str("file", *file).Msg("data loaded successfully")
}
