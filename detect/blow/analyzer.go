package blow

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-blow/dsp/core"
	"github.com/cwbudde/algo-blow/dsp/spectrum"
	"github.com/cwbudde/algo-blow/dsp/window"
)

// Features are the spectral ratios of one loud frame after noise removal.
type Features struct {
	LowFreqRatio       float64 // low-band energy / total energy
	SignatureRatio     float64 // signature-band energy / total energy
	SignaturePeakRatio float64 // signature-band peak / mean bin level
	TotalEnergy        float64 // sum of clean bin magnitudes
}

// Broadband reports whether most of the energy sits below the cutoff.
func (f Features) Broadband(cfg Config) bool {
	return f.LowFreqRatio > cfg.BlowRatio
}

// Signature reports whether the signature band is both strong and peaked.
func (f Features) Signature(cfg Config) bool {
	return f.SignatureRatio > cfg.SignatureRatio && f.SignaturePeakRatio > cfg.PeakMultiplier
}

// Blowing combines the broadband and signature tests per cfg.Combine.
func (f Features) Blowing(cfg Config) bool {
	if cfg.Combine == CombineAnd {
		return f.Broadband(cfg) && f.Signature(cfg)
	}
	return f.Broadband(cfg) || f.Signature(cfg)
}

// analyzer windows and transforms frames and extracts [Features].
//
// All buffers are sized at construction. The FFT spans the frame capacity;
// shorter frames are zero padded, so bin k maps to k*sampleRate/capacity
// regardless of the frame length.
type analyzer struct {
	sampleRate      float64
	size            int
	windowType      window.Type
	lowCutoff       float64
	sigLow, sigHigh float64
	floorMultiplier float64
	quietFactor     float64
	energyFloor     float64
	interval        int

	plan  *algofft.Plan[complex128]
	floor *spectrum.NoiseFloor
	ticks int

	coeffs  []float64 // window coefficients for the current frame length
	samples []float64
	in      []complex128
	out     []complex128
	re, im  []float64
	mag     []float64 // raw magnitude per bin, index = bin
	clean   []float64 // mag minus the noise floor
}

func newAnalyzer(cfg Config) (*analyzer, error) {
	capacity := cfg.FrameCapacity()
	size := max(capacity, 2)
	bins := size / 2

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("%w: fft size %d: %w", ErrTransform, size, err)
	}

	floor, err := spectrum.NewNoiseFloor(bins, cfg.FloorBlend)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &analyzer{
		sampleRate:      cfg.SampleRate,
		size:            size,
		windowType:      cfg.Window,
		lowCutoff:       cfg.LowFreqCutoff,
		sigLow:          cfg.SignatureLow,
		sigHigh:         cfg.SignatureHigh,
		floorMultiplier: cfg.FloorMultiplier,
		quietFactor:     cfg.QuietFactor,
		energyFloor:     cfg.EnergyFloor,
		interval:        cfg.BaselineInterval,
		plan:            plan,
		floor:           floor,
		coeffs:          make([]float64, 0, capacity),
		samples:         make([]float64, capacity),
		in:              make([]complex128, size),
		out:             make([]complex128, size),
		re:              make([]float64, bins),
		im:              make([]float64, bins),
		mag:             make([]float64, bins),
		clean:           make([]float64, bins),
	}, nil
}

// baselineDue is evaluated once per frame. It reports whether the noise
// floor should learn from this frame: the frame must be well below the
// threshold and the rate limiter must be on its first tick.
func (a *analyzer) baselineDue(rms, threshold float64) bool {
	if rms >= threshold*a.quietFactor {
		return false
	}

	due := a.ticks == 0
	a.ticks = (a.ticks + 1) % a.interval

	return due
}

// learn feeds a frame that was rejected as quiet into the noise floor.
func (a *analyzer) learn(frame []int16, rms, threshold float64) {
	if len(frame) == 0 || !a.baselineDue(rms, threshold) {
		return
	}

	if a.transform(frame) != nil {
		return
	}

	a.floor.Update(a.mag)
}

// analyze extracts features from a loud frame. ok is false when nothing is
// left after noise removal.
func (a *analyzer) analyze(frame []int16, rms, threshold float64) (Features, bool) {
	if len(frame) == 0 {
		return Features{}, false
	}

	if a.transform(frame) != nil {
		return Features{}, false
	}

	if a.baselineDue(rms, threshold) {
		a.floor.Update(a.mag)
	}

	a.floor.Subtract(a.clean, a.mag, a.floorMultiplier)

	var total, low, sig, peak float64

	// Bin 0 is DC and skipped.
	for k := 1; k < len(a.clean); k++ {
		freq := spectrum.BinFrequency(k, a.sampleRate, a.size)
		m := a.clean[k]
		total += m

		if freq >= a.lowCutoff {
			continue
		}

		low += m

		if freq > a.sigLow && freq < a.sigHigh {
			sig += m
			peak = max(peak, m)
		}
	}

	if total < a.energyFloor || total == 0 {
		return Features{}, false
	}

	return Features{
		LowFreqRatio:       low / total,
		SignatureRatio:     sig / total,
		SignaturePeakRatio: peak / (total / float64(a.size)),
		TotalEnergy:        total,
	}, true
}

// transform fills a.mag with the magnitude spectrum of the windowed,
// normalised frame.
func (a *analyzer) transform(frame []int16) error {
	n := min(len(frame), len(a.samples))

	if len(a.coeffs) != n {
		a.coeffs = a.coeffs[:n]
		if err := window.Fill(a.windowType, a.coeffs); err != nil {
			return err
		}
	}

	samples := a.samples[:n]
	core.Normalize16(samples, frame[:n])

	if err := window.ApplyCoefficientsInPlace(samples, a.coeffs); err != nil {
		return err
	}

	for i, v := range samples {
		a.in[i] = complex(v, 0)
	}
	core.Zero(a.in[n:])

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return err
	}

	spectrum.SplitComplex(a.re, a.im, a.out)
	spectrum.MagnitudeFromParts(a.mag, a.re, a.im)

	return nil
}
