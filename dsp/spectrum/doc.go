// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package does not implement the FFT itself. It operates on
// complex spectrum bins produced by an FFT backend and provides helpers for
// magnitude extraction, bin/frequency mapping and noise-floor tracking.
package spectrum
