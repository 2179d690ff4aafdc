package level

import "math"

// Reading is the result of one [Estimator.Update].
type Reading struct {
	RMS        float64
	Background float64
	Threshold  float64
	Quiet      bool
}

// Estimator computes frame RMS and maintains the adaptive loudness state.
//
// Every frame updates the background estimate, loud or not, so the threshold
// follows the ambient level continuously. The estimator is not thread-safe.
type Estimator struct {
	minThreshold float64
	multiplier   float64

	history  []float64
	writeIdx int

	background float64
	threshold  float64
}

// NewEstimator creates an estimator with the given options.
func NewEstimator(opts ...Option) *Estimator {
	cfg := ApplyOptions(opts...)

	e := &Estimator{
		minThreshold: cfg.MinThreshold,
		multiplier:   cfg.BackgroundMultiplier,
		history:      make([]float64, cfg.Window),
	}
	e.Reset()

	return e
}

// Reset clears the background history.
func (e *Estimator) Reset() {
	clear(e.history)
	e.writeIdx = 0
	e.background = 0
	e.threshold = e.minThreshold
}

// Update measures frame, records it in the background history and reports
// whether it is below the adaptive threshold. An empty frame reads as RMS 0
// and is always quiet.
func (e *Estimator) Update(frame []int16) Reading {
	rms := RMS16(frame)

	e.history[e.writeIdx] = rms
	e.writeIdx = (e.writeIdx + 1) % len(e.history)

	sum := 0.0
	for _, v := range e.history {
		sum += v
	}

	e.background = sum / float64(len(e.history))
	e.threshold = math.Max(e.minThreshold, e.background*e.multiplier)

	return Reading{
		RMS:        rms,
		Background: e.background,
		Threshold:  e.threshold,
		Quiet:      len(frame) == 0 || rms < e.threshold,
	}
}

// Threshold returns the current adaptive threshold.
func (e *Estimator) Threshold() float64 { return e.threshold }

// Background returns the current mean background RMS.
func (e *Estimator) Background() float64 { return e.background }

// Window returns the background history length in frames.
func (e *Estimator) Window() int { return len(e.history) }

// RMS16 returns the root-mean-square of PCM16 samples, accumulated in
// float64. It returns 0 for an empty frame.
func RMS16(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}

	sum := 0.0
	for _, s := range frame {
		v := float64(s)
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(frame)))
}
