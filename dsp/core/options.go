package core

import "math"

// ProcessorConfig defines the common frame-oriented processing settings.
//
// Audio arrives in frames paced by a host tick, so the frame length is
// derived from the sample rate and the tick rate rather than configured on
// its own.
type ProcessorConfig struct {
	SampleRate float64
	FrameRate  float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 44.1 kHz audio delivered at 60 frames per second.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		FrameRate:  60,
	}
}

// FrameLength returns the nominal number of samples per frame
// (sampleRate / frameRate, truncated). It is at least 1.
func (c ProcessorConfig) FrameLength() int {
	if c.SampleRate <= 0 || c.FrameRate <= 0 {
		return 1
	}

	return max(int(c.SampleRate/c.FrameRate), 1)
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameRate sets the host tick rate in frames per second.
func WithFrameRate(frameRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frameRate > 0 && !math.IsInf(frameRate, 0) {
			cfg.FrameRate = frameRate
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
