package blow

import (
	"github.com/cwbudde/algo-blow/dsp/core"
	"github.com/cwbudde/algo-blow/dsp/window"
)

// Option mutates a Config. Options ignore values that can never be valid
// (for example a negative window); cross-field constraints are checked by
// [Config.Validate] when the detector is built.
type Option func(*Config)

// WithSampleRate sets the input sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig)
	}
}

// WithFrameRate sets the host tick rate, which fixes the nominal frame length.
func WithFrameRate(frameRate float64) Option {
	return func(cfg *Config) {
		core.WithFrameRate(frameRate)(&cfg.ProcessorConfig)
	}
}

// WithMaxFrameLength sets the largest accepted frame in samples.
func WithMaxFrameLength(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxFrameLength = n
		}
	}
}

// WithMinThreshold sets the PCM16 RMS floor of the adaptive threshold.
func WithMinThreshold(v float64) Option {
	return func(cfg *Config) {
		if nonNegative(v) {
			cfg.MinThreshold = v
		}
	}
}

// WithBackgroundMultiplier sets the factor applied to the background RMS.
func WithBackgroundMultiplier(v float64) Option {
	return func(cfg *Config) {
		if positive(v) {
			cfg.BackgroundMultiplier = v
		}
	}
}

// WithAdaptiveWindow sets the number of frames in the background average.
func WithAdaptiveWindow(frames int) Option {
	return func(cfg *Config) {
		if frames > 0 {
			cfg.AdaptiveWindow = frames
		}
	}
}

// WithWindow selects the analysis window. Unknown types are ignored.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		if t.Valid() {
			cfg.Window = t
		}
	}
}

// WithLowFreqCutoff sets the upper edge of the low-frequency band in Hz.
func WithLowFreqCutoff(hz float64) Option {
	return func(cfg *Config) {
		if positive(hz) {
			cfg.LowFreqCutoff = hz
		}
	}
}

// WithSignatureBand sets the breath signature band (exclusive edges, Hz).
func WithSignatureBand(lowHz, highHz float64) Option {
	return func(cfg *Config) {
		if nonNegative(lowHz) && positive(highHz) && highHz > lowHz {
			cfg.SignatureLow = lowHz
			cfg.SignatureHigh = highHz
		}
	}
}

// WithBlowRatio sets the broadband test threshold in [0, 1].
func WithBlowRatio(v float64) Option {
	return func(cfg *Config) {
		if unit(v) {
			cfg.BlowRatio = v
		}
	}
}

// WithSignatureRatio sets the signature band energy threshold in [0, 1].
func WithSignatureRatio(v float64) Option {
	return func(cfg *Config) {
		if unit(v) {
			cfg.SignatureRatio = v
		}
	}
}

// WithPeakMultiplier sets how far the signature peak must exceed the mean
// bin level.
func WithPeakMultiplier(v float64) Option {
	return func(cfg *Config) {
		if nonNegative(v) {
			cfg.PeakMultiplier = v
		}
	}
}

// WithEnergyFloor sets the minimum clean spectral energy needed to classify.
func WithEnergyFloor(v float64) Option {
	return func(cfg *Config) {
		if nonNegative(v) {
			cfg.EnergyFloor = v
		}
	}
}

// WithCombine selects how the broadband and signature tests are combined.
func WithCombine(c Combine) Option {
	return func(cfg *Config) {
		if c == CombineOr || c == CombineAnd {
			cfg.Combine = c
		}
	}
}

// WithNoiseFloor sets the baseline blend rate and subtraction multiplier.
func WithNoiseFloor(blend, multiplier float64) Option {
	return func(cfg *Config) {
		if blend > 0 && blend <= 1 {
			cfg.FloorBlend = blend
		}
		if nonNegative(multiplier) {
			cfg.FloorMultiplier = multiplier
		}
	}
}

// WithQuietFactor sets the fraction of the threshold below which the noise
// floor may learn.
func WithQuietFactor(v float64) Option {
	return func(cfg *Config) {
		if nonNegative(v) {
			cfg.QuietFactor = v
		}
	}
}

// WithBaselineInterval makes the noise floor learn on every nth eligible frame.
func WithBaselineInterval(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.BaselineInterval = n
		}
	}
}

// WithSmoothing sets the vote window and the positives needed within it.
func WithSmoothing(window, votes int) Option {
	return func(cfg *Config) {
		if window > 0 {
			cfg.SmoothingWindow = window
		}
		if votes > 0 {
			cfg.Votes = votes
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
