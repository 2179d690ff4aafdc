package blow

import "fmt"

// Smoother debounces per-frame decisions with a majority vote over the last
// window decisions. A fresh smoother holds only false votes.
type Smoother struct {
	history   []bool
	writeIdx  int
	positives int
	votes     int
}

// NewSmoother creates a smoother that reports true once at least votes of
// the last window pushes were true.
func NewSmoother(window, votes int) (*Smoother, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: smoothing window must be > 0: %d", ErrInvalidConfig, window)
	}

	if votes <= 0 || votes > window {
		return nil, fmt.Errorf("%w: votes must be in [1, %d]: %d", ErrInvalidConfig, window, votes)
	}

	return &Smoother{
		history: make([]bool, window),
		votes:   votes,
	}, nil
}

// Push records decision, overwriting the oldest one, and returns the
// smoothed state.
func (s *Smoother) Push(decision bool) bool {
	if s.history[s.writeIdx] {
		s.positives--
	}

	s.history[s.writeIdx] = decision
	if decision {
		s.positives++
	}

	s.writeIdx = (s.writeIdx + 1) % len(s.history)

	return s.positives >= s.votes
}

// Positives returns the number of true decisions in the window.
func (s *Smoother) Positives() int { return s.positives }
