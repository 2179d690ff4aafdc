// Package level measures frame loudness of PCM16 audio and tracks the
// background level to derive an adaptive silence threshold.
//
// The estimator keeps the RMS of the last N frames in a fixed ring. The
// background level is the mean over the whole ring, so slots that have not
// been written yet count as silence and a fresh estimator starts permissive.
package level
