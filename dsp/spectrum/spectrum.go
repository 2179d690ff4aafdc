package spectrum

import "github.com/cwbudde/algo-vecmath"

// SplitComplex copies the real and imaginary parts of in into re and im and
// returns the number of bins copied (the shortest of the three lengths).
func SplitComplex(re, im []float64, in []complex128) int {
	n := min(len(re), len(im), len(in))
	for i := range n {
		re[i] = real(in[i])
		im[i] = imag(in[i])
	}
	return n
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation fast path for callers that already have real and
// imaginary parts in separate slices. All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// BinFrequency returns the center frequency in Hz of bin for an FFT of size
// points at sampleRate. It returns 0 for a non-positive size.
func BinFrequency(bin int, sampleRate float64, size int) float64 {
	if size <= 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(size)
}

// BinWidth returns the spacing in Hz between adjacent bins.
func BinWidth(sampleRate float64, size int) float64 {
	return BinFrequency(1, sampleRate, size)
}
