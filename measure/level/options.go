package level

import "math"

// Config defines the adaptive threshold settings of an [Estimator].
type Config struct {
	// MinThreshold is the lowest RMS (in PCM16 units) that can ever count as
	// loud, regardless of the background level.
	MinThreshold float64
	// BackgroundMultiplier scales the mean background RMS into the threshold.
	BackgroundMultiplier float64
	// Window is the number of past frames averaged into the background level.
	Window int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings tuned for 60 Hz microphone frames.
func DefaultConfig() Config {
	return Config{
		MinThreshold:         80,
		BackgroundMultiplier: 2.0,
		Window:               30,
	}
}

// WithMinThreshold sets the threshold floor in PCM16 RMS units.
func WithMinThreshold(v float64) Option {
	return func(cfg *Config) {
		if v >= 0 && !math.IsInf(v, 0) {
			cfg.MinThreshold = v
		}
	}
}

// WithBackgroundMultiplier sets the factor applied to the background level.
func WithBackgroundMultiplier(v float64) Option {
	return func(cfg *Config) {
		if v > 0 && !math.IsInf(v, 0) {
			cfg.BackgroundMultiplier = v
		}
	}
}

// WithWindow sets the number of frames in the background average.
func WithWindow(frames int) Option {
	return func(cfg *Config) {
		if frames > 0 {
			cfg.Window = frames
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
