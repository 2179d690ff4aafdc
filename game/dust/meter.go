package dust

import "time"

const (
	// FullLevel is the dust level of a dirty cartridge, in percent.
	FullLevel = 100.0
	// DefaultRate is the default cleaning speed in percent per second.
	DefaultRate = 85.0

	// PromptMessage is shown while dust remains.
	PromptMessage = "Blow into the microphone to clean your ROM!"
	// CleanMessage is shown once the cartridge is clean.
	CleanMessage = "Your ROM is clean!"
)

// Option configures a [Meter].
type Option func(*Meter)

// WithRate sets the cleaning speed in percent per second. Non-positive
// values are ignored.
func WithRate(percentPerSecond float64) Option {
	return func(m *Meter) {
		if percentPerSecond > 0 {
			m.rate = percentPerSecond
		}
	}
}

// WithStartLevel sets the level a new or reset meter starts from. Values
// outside (0, FullLevel] are ignored.
func WithStartLevel(level float64) Option {
	return func(m *Meter) {
		if level > 0 && level <= FullLevel {
			m.start = level
		}
	}
}

// Meter is the remaining dust on the cartridge.
type Meter struct {
	rate  float64
	start float64

	level float64
	clean bool
}

// NewMeter returns a full meter.
func NewMeter(opts ...Option) *Meter {
	m := &Meter{rate: DefaultRate, start: FullLevel}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	m.Reset()

	return m
}

// Update advances the meter by dt. While blowing the level drops by
// rate*dt, clamped at zero. cleaned is true only on the update that reaches
// zero.
func (m *Meter) Update(blowing bool, dt time.Duration) (level float64, cleaned bool) {
	if !blowing || m.clean || dt <= 0 {
		return m.level, false
	}

	m.level -= m.rate * dt.Seconds()
	if m.level > 0 {
		return m.level, false
	}

	m.level = 0
	m.clean = true

	return 0, true
}

// Level returns the remaining dust in percent.
func (m *Meter) Level() float64 { return m.level }

// Clean reports whether the level has reached zero.
func (m *Meter) Clean() bool { return m.clean }

// Rate returns the cleaning speed in percent per second.
func (m *Meter) Rate() float64 { return m.rate }

// Message returns the text to display for the current state.
func (m *Meter) Message() string {
	if m.clean {
		return CleanMessage
	}
	return PromptMessage
}

// Reset puts the dust back.
func (m *Meter) Reset() {
	m.level = m.start
	m.clean = false
}
