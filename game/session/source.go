package session

import "io"

// Source delivers captured microphone samples. ReadFrame fills at most
// len(dst) mono PCM16 samples and returns how many were written. Returning
// zero samples with a nil error means nothing was captured this tick.
type Source interface {
	ReadFrame(dst []int16) (int, error)
}

// SampleSource serves a recorded PCM16 stream frame by frame.
type SampleSource struct {
	samples []int16
	frame   int
	pos     int
}

// NewSampleSource returns a source reading frameLen samples per call from
// samples. A non-positive frameLen means "as many as the caller asks for".
func NewSampleSource(samples []int16, frameLen int) *SampleSource {
	return &SampleSource{samples: samples, frame: frameLen}
}

// ReadFrame copies the next frame into dst. It returns io.EOF once every
// sample has been served.
func (s *SampleSource) ReadFrame(dst []int16) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	n := len(dst)
	if s.frame > 0 {
		n = min(n, s.frame)
	}

	n = copy(dst[:n], s.samples[s.pos:])
	s.pos += n

	return n, nil
}

// Offset returns the index of the next sample to be served.
func (s *SampleSource) Offset() int { return s.pos }
