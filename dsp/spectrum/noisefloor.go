package spectrum

import "fmt"

// NoiseFloor tracks a slowly adapting per-bin magnitude baseline.
//
// Each update blends the new magnitudes in with weight blend:
//
//	baseline[k] = baseline[k]*(1-blend) + mag[k]*blend
//
// Baseline values are never negative. The baseline starts at zero, so a fresh
// floor subtracts nothing. The zero value is not usable; create one with
// [NewNoiseFloor].
type NoiseFloor struct {
	baseline []float64
	blend    float64
}

// NewNoiseFloor creates a zeroed baseline of bins entries.
func NewNoiseFloor(bins int, blend float64) (*NoiseFloor, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}

	if !(blend > 0 && blend <= 1) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidBlend, blend)
	}

	return &NoiseFloor{
		baseline: make([]float64, bins),
		blend:    blend,
	}, nil
}

// Len returns the number of tracked bins.
func (f *NoiseFloor) Len() int { return len(f.baseline) }

// Blend returns the weight given to new magnitudes.
func (f *NoiseFloor) Blend() float64 { return f.blend }

// At returns the baseline of bin k, or 0 outside the tracked range.
func (f *NoiseFloor) At(k int) float64 {
	if k < 0 || k >= len(f.baseline) {
		return 0
	}
	return f.baseline[k]
}

// Update blends mag into the baseline. Bins beyond either length are left
// untouched; negative magnitudes count as zero.
func (f *NoiseFloor) Update(mag []float64) {
	keep := 1 - f.blend
	n := min(len(mag), len(f.baseline))

	for k := range n {
		m := mag[k]
		if m < 0 {
			m = 0
		}
		f.baseline[k] = f.baseline[k]*keep + m*f.blend
	}
}

// Subtract writes max(0, mag[k] - baseline[k]*multiplier) into dst for every
// bin present in dst and mag. A multiplier above 1 over-estimates the floor.
func (f *NoiseFloor) Subtract(dst, mag []float64, multiplier float64) {
	n := min(len(dst), len(mag))

	for k := range n {
		v := mag[k] - f.At(k)*multiplier
		if v < 0 {
			v = 0
		}
		dst[k] = v
	}
}

// Reset zeroes the baseline.
func (f *NoiseFloor) Reset() {
	clear(f.baseline)
}
