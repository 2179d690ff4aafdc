package blow

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-blow/dsp/core"
	"github.com/cwbudde/algo-blow/dsp/window"
)

// Combine selects how the broadband and signature tests form a per-frame
// decision.
type Combine int

const (
	// CombineOr reports blowing when either test passes.
	CombineOr Combine = iota
	// CombineAnd requires both tests to pass.
	CombineAnd
)

// String returns "or" or "and".
func (c Combine) String() string {
	switch c {
	case CombineOr:
		return "or"
	case CombineAnd:
		return "and"
	default:
		return fmt.Sprintf("Combine(%d)", int(c))
	}
}

// ParseCombine parses "or" / "and" (case-insensitive).
func ParseCombine(s string) (Combine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "or":
		return CombineOr, nil
	case "and":
		return CombineAnd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCombine, s)
	}
}

// Config holds every tunable of a [Detector]. It is copied at construction
// and never changes afterwards.
type Config struct {
	core.ProcessorConfig

	// MaxFrameLength is the largest frame the detector accepts. Zero means
	// the nominal frame length of ProcessorConfig. Longer frames are
	// truncated.
	MaxFrameLength int

	// Loudness gate.
	MinThreshold         float64 // PCM16 RMS floor of the adaptive threshold
	BackgroundMultiplier float64 // background RMS factor
	AdaptiveWindow       int     // frames in the background average

	// Spectral shape.
	Window         window.Type // analysis window applied before the FFT
	LowFreqCutoff  float64     // Hz; energy below counts as low frequency
	SignatureLow   float64     // Hz; exclusive lower edge of the signature band
	SignatureHigh  float64     // Hz; exclusive upper edge, at most LowFreqCutoff
	BlowRatio      float64     // broadband test: low/total must exceed this
	SignatureRatio float64     // signature test: band/total must exceed this
	PeakMultiplier float64     // signature test: band peak over mean bin level
	EnergyFloor    float64     // minimum clean total energy to classify at all
	Combine        Combine

	// Noise floor.
	FloorBlend       float64 // weight of a new spectrum in the baseline
	FloorMultiplier  float64 // baseline scale before subtraction
	QuietFactor      float64 // baseline learns only below threshold*QuietFactor
	BaselineInterval int     // learn on every Nth eligible frame

	// Smoothing.
	SmoothingWindow int // frames in the vote
	Votes           int // positives needed for a stable positive
}

// DefaultConfig returns the tuning used for 44.1 kHz / 60 Hz microphone input.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig:      core.DefaultProcessorConfig(),
		MinThreshold:         80,
		BackgroundMultiplier: 2.0,
		AdaptiveWindow:       30,
		Window:               window.TypeHann,
		LowFreqCutoff:        600,
		SignatureLow:         150,
		SignatureHigh:        500,
		BlowRatio:            0.55,
		SignatureRatio:       0.3,
		PeakMultiplier:       3.0,
		EnergyFloor:          0.005,
		Combine:              CombineOr,
		FloorBlend:           0.05,
		FloorMultiplier:      1.2,
		QuietFactor:          0.8,
		BaselineInterval:     10,
		SmoothingWindow:      6,
		Votes:                2,
	}
}

// FrameCapacity returns the largest accepted frame length.
func (c Config) FrameCapacity() int {
	if c.MaxFrameLength > 0 {
		return c.MaxFrameLength
	}
	return c.FrameLength()
}

// Validate checks that c describes a usable detector. It reports every
// problem found, joined, wrapped in [ErrInvalidConfig].
func (c Config) Validate() error {
	var errs []error

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(positive(c.SampleRate), "sample rate must be > 0: %v", c.SampleRate)
	check(positive(c.FrameRate), "frame rate must be > 0: %v", c.FrameRate)
	check(c.MaxFrameLength >= 0, "max frame length must be >= 0: %d", c.MaxFrameLength)
	check(nonNegative(c.MinThreshold), "min threshold must be >= 0: %v", c.MinThreshold)
	check(positive(c.BackgroundMultiplier), "background multiplier must be > 0: %v", c.BackgroundMultiplier)
	check(c.AdaptiveWindow > 0, "adaptive window must be > 0: %d", c.AdaptiveWindow)
	check(c.Window.Valid(), "window type invalid: %v", c.Window)
	check(positive(c.LowFreqCutoff), "low frequency cutoff must be > 0: %v", c.LowFreqCutoff)
	check(nonNegative(c.SignatureLow) && c.SignatureHigh > c.SignatureLow,
		"signature band must satisfy 0 <= low < high: [%v, %v]", c.SignatureLow, c.SignatureHigh)
	check(c.SignatureHigh <= c.LowFreqCutoff,
		"signature band must lie within the low band: high %v > cutoff %v", c.SignatureHigh, c.LowFreqCutoff)
	check(unit(c.BlowRatio), "blow ratio must be in [0, 1]: %v", c.BlowRatio)
	check(unit(c.SignatureRatio), "signature ratio must be in [0, 1]: %v", c.SignatureRatio)
	check(nonNegative(c.PeakMultiplier), "peak multiplier must be >= 0: %v", c.PeakMultiplier)
	check(nonNegative(c.EnergyFloor), "energy floor must be >= 0: %v", c.EnergyFloor)
	check(c.Combine == CombineOr || c.Combine == CombineAnd, "combine policy invalid: %v", c.Combine)
	check(c.FloorBlend > 0 && c.FloorBlend <= 1, "floor blend must be in (0, 1]: %v", c.FloorBlend)
	check(nonNegative(c.FloorMultiplier), "floor multiplier must be >= 0: %v", c.FloorMultiplier)
	check(nonNegative(c.QuietFactor), "quiet factor must be >= 0: %v", c.QuietFactor)
	check(c.BaselineInterval > 0, "baseline interval must be > 0: %d", c.BaselineInterval)
	check(c.SmoothingWindow > 0, "smoothing window must be > 0: %d", c.SmoothingWindow)
	check(c.Votes > 0 && c.Votes <= c.SmoothingWindow,
		"votes must be in [1, %d]: %d", c.SmoothingWindow, c.Votes)

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
