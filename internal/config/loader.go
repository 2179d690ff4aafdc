package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-blow/dsp/core"
	"github.com/cwbudde/algo-blow/game/dust"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over [Default] and validates the
// result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Log.Level != "" && !cfg.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is invalid; valid values: text, json", cfg.Log.Format))
	}

	// The sample rate only matters for validation here; each recording
	// brings its own.
	det, err := cfg.Detector.Blow(core.DefaultProcessorConfig().SampleRate)
	if err != nil {
		errs = append(errs, fmt.Errorf("detector: %w", err))
	} else if err := det.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("detector: %w", err))
	}

	if cfg.Dust.StartLevel <= 0 || cfg.Dust.StartLevel > dust.FullLevel {
		errs = append(errs, fmt.Errorf("dust.start_level %.2f is out of range (0, %.0f]", cfg.Dust.StartLevel, dust.FullLevel))
	}
	if cfg.Dust.Rate <= 0 {
		errs = append(errs, fmt.Errorf("dust.rate %.2f must be > 0", cfg.Dust.Rate))
	}

	return errors.Join(errs...)
}
