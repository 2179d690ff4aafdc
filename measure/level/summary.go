package level

import (
	"math"

	"github.com/cwbudde/algo-blow/dsp/core"
)

// Summary describes the overall level of a PCM16 recording.
type Summary struct {
	Samples       int
	RMS           float64 // PCM16 units
	Peak          float64 // PCM16 units, absolute
	PeakPos       int
	DC            float64 // mean sample value
	Clipped       int     // samples at either int16 limit
	ZeroCrossings int
}

// RMSDBFS returns the RMS relative to full scale.
func (s Summary) RMSDBFS() float64 { return core.DBFS16(s.RMS) }

// PeakDBFS returns the peak relative to full scale.
func (s Summary) PeakDBFS() float64 { return core.DBFS16(s.Peak) }

// CrestFactor returns peak over RMS, or 0 for silence.
func (s Summary) CrestFactor() float64 {
	if s.RMS == 0 {
		return 0
	}
	return s.Peak / s.RMS
}

// Summarizer accumulates a [Summary] frame by frame.
type Summarizer struct {
	n       int
	sum     float64
	sumSq   float64
	peak    float64
	peakPos int
	clipped int
	zc      int
	sign    int // sign of the last non-zero sample
}

// Update adds frame to the running summary.
func (s *Summarizer) Update(frame []int16) {
	for _, v := range frame {
		x := float64(v)

		s.sum += x
		s.sumSq += x * x

		if a := math.Abs(x); a > s.peak {
			s.peak = a
			s.peakPos = s.n
		}
		if v == math.MaxInt16 || v == math.MinInt16 {
			s.clipped++
		}
		if sign := signOf(v); sign != 0 {
			if s.sign != 0 && sign != s.sign {
				s.zc++
			}
			s.sign = sign
		}

		s.n++
	}
}

// Result returns the summary of everything seen so far.
func (s *Summarizer) Result() Summary {
	if s.n == 0 {
		return Summary{}
	}

	nf := float64(s.n)

	return Summary{
		Samples:       s.n,
		RMS:           math.Sqrt(s.sumSq / nf),
		Peak:          s.peak,
		PeakPos:       s.peakPos,
		DC:            s.sum / nf,
		Clipped:       s.clipped,
		ZeroCrossings: s.zc,
	}
}

// Reset clears the accumulated data.
func (s *Summarizer) Reset() {
	*s = Summarizer{}
}

func signOf(v int16) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
