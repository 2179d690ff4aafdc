package window

import "errors"

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

// ErrUnknownType is returned for window types and names that do not exist.
var ErrUnknownType = errors.New("window: unknown type")
