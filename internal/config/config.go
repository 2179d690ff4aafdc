// Package config loads the YAML configuration of the blowscan tool.
package config

import (
	"github.com/cwbudde/algo-blow/detect/blow"
	"github.com/cwbudde/algo-blow/dsp/core"
	"github.com/cwbudde/algo-blow/dsp/window"
	"github.com/cwbudde/algo-blow/game/dust"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root of the YAML document.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Detector DetectorConfig `yaml:"detector"`
	Dust     DustConfig     `yaml:"dust"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  LogLevel `yaml:"level"`
	Format string   `yaml:"format"` // "text" or "json"
}

// DetectorConfig mirrors [blow.Config]. The sample rate is taken from each
// recording and is therefore not configurable.
type DetectorConfig struct {
	FrameRate            float64 `yaml:"frame_rate"`
	MinThreshold         float64 `yaml:"min_threshold"`
	BackgroundMultiplier float64 `yaml:"background_multiplier"`
	AdaptiveWindow       int     `yaml:"adaptive_window"`

	Window         string  `yaml:"window"` // rectangular, hann, hamming, blackman, blackman-harris
	LowFreqCutoff  float64 `yaml:"low_freq_cutoff"`
	SignatureLow   float64 `yaml:"signature_low"`
	SignatureHigh  float64 `yaml:"signature_high"`
	BlowRatio      float64 `yaml:"blow_ratio"`
	SignatureRatio float64 `yaml:"signature_ratio"`
	PeakMultiplier float64 `yaml:"peak_multiplier"`
	EnergyFloor    float64 `yaml:"energy_floor"`
	Combine        string  `yaml:"combine"`

	FloorBlend       float64 `yaml:"floor_blend"`
	FloorMultiplier  float64 `yaml:"floor_multiplier"`
	QuietFactor      float64 `yaml:"quiet_factor"`
	BaselineInterval int     `yaml:"baseline_interval"`

	SmoothingWindow int `yaml:"smoothing_window"`
	Votes           int `yaml:"votes"`
}

// DustConfig configures the dust meter.
type DustConfig struct {
	StartLevel float64 `yaml:"start_level"`
	Rate       float64 `yaml:"rate"` // percent per second
}

// Default returns the configuration used when no file is given. Fields left
// out of a YAML file keep these values.
func Default() *Config {
	d := blow.DefaultConfig()

	return &Config{
		Log: LogConfig{Level: LogInfo, Format: "text"},
		Detector: DetectorConfig{
			FrameRate:            d.FrameRate,
			MinThreshold:         d.MinThreshold,
			BackgroundMultiplier: d.BackgroundMultiplier,
			AdaptiveWindow:       d.AdaptiveWindow,
			Window:               d.Window.String(),
			LowFreqCutoff:        d.LowFreqCutoff,
			SignatureLow:         d.SignatureLow,
			SignatureHigh:        d.SignatureHigh,
			BlowRatio:            d.BlowRatio,
			SignatureRatio:       d.SignatureRatio,
			PeakMultiplier:       d.PeakMultiplier,
			EnergyFloor:          d.EnergyFloor,
			Combine:              d.Combine.String(),
			FloorBlend:           d.FloorBlend,
			FloorMultiplier:      d.FloorMultiplier,
			QuietFactor:          d.QuietFactor,
			BaselineInterval:     d.BaselineInterval,
			SmoothingWindow:      d.SmoothingWindow,
			Votes:                d.Votes,
		},
		Dust: DustConfig{StartLevel: dust.FullLevel, Rate: dust.DefaultRate},
	}
}

// Blow converts the detector section into a [blow.Config] for a recording
// at sampleRate.
func (c DetectorConfig) Blow(sampleRate float64) (blow.Config, error) {
	combine, err := blow.ParseCombine(c.Combine)
	if err != nil {
		return blow.Config{}, err
	}

	win, err := window.ParseType(c.Window)
	if err != nil {
		return blow.Config{}, err
	}

	return blow.Config{
		ProcessorConfig:      core.ProcessorConfig{SampleRate: sampleRate, FrameRate: c.FrameRate},
		MinThreshold:         c.MinThreshold,
		BackgroundMultiplier: c.BackgroundMultiplier,
		AdaptiveWindow:       c.AdaptiveWindow,
		Window:               win,
		LowFreqCutoff:        c.LowFreqCutoff,
		SignatureLow:         c.SignatureLow,
		SignatureHigh:        c.SignatureHigh,
		BlowRatio:            c.BlowRatio,
		SignatureRatio:       c.SignatureRatio,
		PeakMultiplier:       c.PeakMultiplier,
		EnergyFloor:          c.EnergyFloor,
		Combine:              combine,
		FloorBlend:           c.FloorBlend,
		FloorMultiplier:      c.FloorMultiplier,
		QuietFactor:          c.QuietFactor,
		BaselineInterval:     c.BaselineInterval,
		SmoothingWindow:      c.SmoothingWindow,
		Votes:                c.Votes,
	}, nil
}

// MeterOptions returns the dust meter options for the dust section.
func (c DustConfig) MeterOptions() []dust.Option {
	return []dust.Option{dust.WithStartLevel(c.StartLevel), dust.WithRate(c.Rate)}
}
