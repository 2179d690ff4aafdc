package spectrum

import "errors"

var (
	// ErrInvalidBins is returned when a noise floor is created with no bins.
	ErrInvalidBins = errors.New("spectrum: bin count must be > 0")
	// ErrInvalidBlend is returned for a blend rate outside (0, 1].
	ErrInvalidBlend = errors.New("spectrum: blend rate must be in (0, 1]")
)
