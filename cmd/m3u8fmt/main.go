// Command m3u8fmt reads an HLS playlist, optionally validates it, and
// rewrites it in canonical form.
package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hlstools/m3u8"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "m3u8fmt").Logger()

	var (
		configPath = flag.String("config", "", "optional TOML config file")
		input      = flag.String("in", "", `input playlist path, "-" for stdin`)
		output     = flag.String("out", "", `output path, "-" for stdout`)
		check      = flag.Bool("check", false, "validate the playlist structure")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			logger.Fatal().Err(err).Msg("loading config")
		}
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *check {
		cfg.Check = true
	}

	if err := run(logger, cfg); err != nil {
		logger.Fatal().Err(err).Msg("m3u8fmt failed")
	}
}

func run(logger zerolog.Logger, cfg config) error {
	reader, closeReader, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer closeReader()

	playlist, err := m3u8.Decode(reader)
	if err != nil {
		return err
	}
	logger.Debug().Int("entries", len(playlist.Entries())).Msg("decoded playlist")

	if cfg.Check {
		if err := playlist.Validate(); err != nil {
			return err
		}
		logger.Info().Bool("master", playlist.IsMaster()).Msg("playlist is valid")
	}

	writer, closeWriter, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer closeWriter()

	return playlist.Encode(writer)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}
