// Command blowscan runs the blow detector over recorded audio.
//
// Usage:
//
//	blowscan [flags] file...
//
// Every file is decoded (WAV or MP3), mixed down to mono and cut into frames
// of sampleRate/fps samples. The frames drive a fresh session, exactly as a
// live microphone would, and blowscan prints the blowing spans and the tick
// at which the cartridge became clean.
//
// Examples:
//
//	blowscan breath.wav
//	blowscan -config tuning.yaml -frames take1.wav take2.mp3
//	blowscan -fps 30 -verbose *.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-blow/internal/config"
	applog "github.com/cwbudde/algo-blow/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	fps        float64
	verbose    bool
	frames     bool
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("blowscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.Float64Var(&opts.fps, "fps", 0, "frames per second (overrides detector.frame_rate)")
	fs.BoolVar(&opts.verbose, "verbose", false, "log at debug level")
	fs.BoolVar(&opts.frames, "frames", false, "print one row per frame")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: blowscan [flags] file...\n\n")
		fmt.Fprintf(stderr, "Runs the blow detector over WAV or MP3 recordings.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  blowscan breath.wav\n")
		fmt.Fprintf(stderr, "  blowscan -config tuning.yaml -frames take1.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fs.Usage()
		return opts, errors.New("no input files")
	}

	return opts, nil
}

func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.fps > 0 {
		cfg.Detector.FrameRate = opts.fps
	}
	if opts.verbose {
		cfg.Log.Level = config.LogDebug
	}

	return cfg, config.Validate(cfg)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	logger := applog.Init(stderr, string(cfg.Log.Level), cfg.Log.Format)

	failed := 0
	for _, path := range opts.files {
		res, err := scanFile(path, cfg, opts.frames, logger)
		if err != nil {
			logger.Error("scan failed", "file", path, "err", err)
			failed++
			continue
		}

		printResult(stdout, res, opts.frames)
	}

	if failed > 0 {
		logger.Warn("some files failed", slog.Int("failed", failed), slog.Int("total", len(opts.files)))
		return 1
	}

	return 0
}
