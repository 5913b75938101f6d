// Command ingest flattens the raw songs JSON export into the CSV read by
// loaddata.
package main

import (
	"flag"
	"fmt"
	"os"

	"songboard/ingest"
	"songboard/logging"
)

func main() {
	in := flag.String("in", "playlist.json", "JSON export to read")
	out := flag.String("out", "normalized_songs.csv", "CSV file to write")
	allColumns := flag.Bool("all-columns", false, "write every flattened column, not only the song fields")
	logFormat := flag.String("log-format", "console", "log format: json or console")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: *logFormat})

	if err := run(*in, *out, *allColumns); err != nil {
		logging.Fatal().Err(err).Str("in", *in).Msg("ingest failed")
	}
}

func run(inPath, outPath string, allColumns bool) error {
	src, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return err
	}

	n, err := ingest.Convert(src, dst, allColumns)
	if err != nil {
		dst.Close()
		os.Remove(outPath)
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	logging.Info().Int("rows", n).Str("out", outPath).Msg("csv written")
	return nil
}
