package blow

import (
	"github.com/cwbudde/algo-blow/measure/level"
)

// Stats describes the most recent [Detector.Evaluate] call. It is meant for
// tuning and diagnostics and has no influence on classification.
type Stats struct {
	Reading      level.Reading
	Features     Features
	HasFeatures  bool // false for quiet frames and frames with no clean energy
	FrameBlowing bool // per-frame decision before smoothing
	Positives    int  // positive votes in the smoothing window
	Blowing      bool // smoothed result returned by Evaluate
}

// Detector classifies PCM16 microphone frames as blowing or not.
//
// A Detector owns its FFT plan and all working buffers. It is single-owner
// and not safe for concurrent use; Close releases the plan.
type Detector struct {
	cfg      Config
	capacity int

	energy   *level.Estimator
	analyzer *analyzer
	smoother *Smoother

	last   Stats
	closed bool
}

// New creates a detector from the default config modified by opts.
func New(opts ...Option) (*Detector, error) {
	return NewFromConfig(ApplyOptions(opts...))
}

// NewFromConfig validates cfg and creates a detector. It fails with
// [ErrInvalidConfig] or [ErrTransform].
func NewFromConfig(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	an, err := newAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	sm, err := NewSmoother(cfg.SmoothingWindow, cfg.Votes)
	if err != nil {
		return nil, err
	}

	return &Detector{
		cfg:      cfg,
		capacity: cfg.FrameCapacity(),
		energy: level.NewEstimator(
			level.WithMinThreshold(cfg.MinThreshold),
			level.WithBackgroundMultiplier(cfg.BackgroundMultiplier),
			level.WithWindow(cfg.AdaptiveWindow),
		),
		analyzer: an,
		smoother: sm,
	}, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() Config { return d.cfg }

// FrameCapacity returns the largest frame length Evaluate looks at.
func (d *Detector) FrameCapacity() int { return d.capacity }

// Evaluate classifies one frame and returns the smoothed decision.
//
// Samples beyond FrameCapacity are ignored. Empty frames count as quiet.
// A closed detector always returns false.
func (d *Detector) Evaluate(frame []int16) bool {
	if d.closed {
		return false
	}

	if len(frame) > d.capacity {
		frame = frame[:d.capacity]
	}

	reading := d.energy.Update(frame)
	d.last = Stats{Reading: reading}

	if reading.Quiet {
		d.analyzer.learn(frame, reading.RMS, reading.Threshold)
		return d.push(false)
	}

	features, ok := d.analyzer.analyze(frame, reading.RMS, reading.Threshold)
	d.last.Features = features
	d.last.HasFeatures = ok

	return d.push(ok && features.Blowing(d.cfg))
}

func (d *Detector) push(frameBlowing bool) bool {
	blowing := d.smoother.Push(frameBlowing)

	d.last.FrameBlowing = frameBlowing
	d.last.Positives = d.smoother.Positives()
	d.last.Blowing = blowing

	return blowing
}

// Stats returns diagnostics of the last Evaluate call.
func (d *Detector) Stats() Stats { return d.last }

// Close releases the FFT plan and working buffers. It is safe to call more
// than once.
func (d *Detector) Close() error {
	if d.closed {
		return nil
	}

	d.closed = true
	d.analyzer = nil

	return nil
}
