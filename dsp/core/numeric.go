package core

import "math"

// FullScale16 is the magnitude of the most negative signed 16-bit sample.
// Dividing by it maps PCM16 into [-1, 1).
const FullScale16 = 32768.0

// Normalize16 converts PCM16 samples to float64 in [-1, 1) into dst and
// returns the number of converted samples (min(len(dst), len(src))).
func Normalize16(dst []float64, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i]) / FullScale16
	}
	return n
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DBFS16 converts a PCM16 amplitude (for example an RMS value) to dB
// relative to full scale.
func DBFS16(amplitude float64) float64 {
	return LinearToDB(amplitude / FullScale16)
}
