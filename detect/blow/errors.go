package blow

import "errors"

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("blow: invalid config")
	// ErrTransform is returned when the forward FFT cannot be prepared.
	ErrTransform = errors.New("blow: transform setup failed")
	// ErrUnknownCombine is returned when parsing an unknown combine policy.
	ErrUnknownCombine = errors.New("blow: unknown combine policy")
)
