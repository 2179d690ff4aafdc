package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Quantize16 rounds samples (already in PCM16 units) to int16, saturating
// at the type limits.
func Quantize16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, v := range samples {
		v = math.Round(v)
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		out[i] = int16(v)
	}
	return out
}

// SinePCM16 generates a PCM16 sine frame. amplitude is in PCM16 units.
func SinePCM16(freqHz, sampleRate, amplitude float64, length int) []int16 {
	return Quantize16(DeterministicSine(freqHz, sampleRate, amplitude, length))
}

// NoisePCM16 generates a PCM16 white-noise frame with a fixed seed.
func NoisePCM16(seed int64, amplitude float64, length int) []int16 {
	return Quantize16(DeterministicNoise(seed, amplitude, length))
}

// SilencePCM16 returns length zero samples.
func SilencePCM16(length int) []int16 {
	return make([]int16, length)
}

// Repeat returns n references to frame, convenient for feeding a detector
// the same frame many times.
func Repeat(frame []int16, n int) [][]int16 {
	out := make([][]int16, n)
	for i := range out {
		out[i] = frame
	}
	return out
}
