package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-blow/detect/blow"
	"github.com/cwbudde/algo-blow/game/dust"
)

// ErrNilSource is returned by [New] without a source.
var ErrNilSource = errors.New("session: nil source")

// State is the outcome of one tick.
type State struct {
	Tick    int     // ticks completed, starting at 1
	Samples int     // samples read this tick
	Blowing bool    // smoothed detector output
	Level   float64 // remaining dust in percent
	Cleaned bool    // true only on the tick that finished cleaning
	Clean   bool    // the cartridge is clean
}

// Observer receives session events. Both calls happen synchronously inside
// [Session.Tick].
type Observer interface {
	OnTick(State)
	OnClean(State)
}

// ObserverFuncs adapts plain functions to [Observer]. Nil fields are skipped.
type ObserverFuncs struct {
	Tick  func(State)
	Clean func(State)
}

// OnTick calls f.Tick.
func (f ObserverFuncs) OnTick(s State) {
	if f.Tick != nil {
		f.Tick(s)
	}
}

// OnClean calls f.Clean.
func (f ObserverFuncs) OnClean(s State) {
	if f.Clean != nil {
		f.Clean(s)
	}
}

type options struct {
	detector []blow.Option
	config   *blow.Config
	meter    []dust.Option
	observer Observer
	tick     time.Duration
}

// Option configures a [Session].
type Option func(*options)

// WithDetectorOptions adds options for the session's detector.
func WithDetectorOptions(opts ...blow.Option) Option {
	return func(o *options) {
		o.detector = append(o.detector, opts...)
	}
}

// WithDetectorConfig builds the detector from cfg. Detector options are
// ignored when a config is given.
func WithDetectorConfig(cfg blow.Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithMeterOptions adds options for the session's dust meter.
func WithMeterOptions(opts ...dust.Option) Option {
	return func(o *options) {
		o.meter = append(o.meter, opts...)
	}
}

// WithObserver registers the event receiver.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithTickDuration overrides the meter step. It defaults to one frame
// period of the detector config. Non-positive values are ignored.
func WithTickDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.tick = d
		}
	}
}

// Session is a single-threaded scene driver.
type Session struct {
	src      Source
	detector *blow.Detector
	meter    *dust.Meter
	observer Observer
	tick     time.Duration

	buf   []int16
	state State
}

// New builds a detector and a dust meter around src.
func New(src Source, opts ...Option) (*Session, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var (
		det *blow.Detector
		err error
	)
	if o.config != nil {
		det, err = blow.NewFromConfig(*o.config)
	} else {
		det, err = blow.New(o.detector...)
	}
	if err != nil {
		return nil, fmt.Errorf("session: detector: %w", err)
	}

	tick := o.tick
	if tick <= 0 {
		tick = time.Duration(float64(time.Second) / det.Config().FrameRate)
	}

	observer := o.observer
	if observer == nil {
		observer = ObserverFuncs{}
	}

	meter := dust.NewMeter(o.meter...)

	return &Session{
		src:      src,
		detector: det,
		meter:    meter,
		observer: observer,
		tick:     tick,
		buf:      make([]int16, det.FrameCapacity()),
		state:    State{Level: meter.Level()},
	}, nil
}

// Tick reads one frame, classifies it and advances the dust meter. A source
// error is returned wrapped together with the unchanged previous state.
func (s *Session) Tick() (State, error) {
	n, err := s.src.ReadFrame(s.buf)
	if err != nil {
		return s.state, fmt.Errorf("session: read frame: %w", err)
	}

	n = min(max(n, 0), len(s.buf))

	st := State{Tick: s.state.Tick + 1, Samples: n}

	if n > 0 {
		st.Blowing = s.detector.Evaluate(s.buf[:n])
		st.Level, st.Cleaned = s.meter.Update(st.Blowing, s.tick)
	} else {
		st.Level = s.meter.Level()
	}

	st.Clean = s.meter.Clean()
	s.state = st

	s.observer.OnTick(st)
	if st.Cleaned {
		s.observer.OnClean(st)
	}

	return st, nil
}

// State returns the result of the last tick.
func (s *Session) State() State { return s.state }

// Detector exposes the session's detector for diagnostics.
func (s *Session) Detector() *blow.Detector { return s.detector }

// Meter exposes the session's dust meter.
func (s *Session) Meter() *dust.Meter { return s.meter }

// TickDuration returns the meter step per tick.
func (s *Session) TickDuration() time.Duration { return s.tick }

// Close releases the detector.
func (s *Session) Close() error {
	return s.detector.Close()
}
