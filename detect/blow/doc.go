// Package blow detects someone blowing into a microphone.
//
// A [Detector] classifies one mono PCM16 frame per host tick. Each frame is
// measured for loudness against an adaptive background threshold; quiet
// frames are rejected early. Loud frames are windowed and transformed, a
// slowly learned noise floor is subtracted, and the remaining energy is
// tested for the low-frequency shape of breath noise. Per-frame decisions
// are smoothed by a short majority vote so the output does not flicker.
//
// Typical use:
//
//	det, err := blow.New()
//	if err != nil {
//		return err
//	}
//	defer det.Close()
//
//	for frame := range frames {
//		if det.Evaluate(frame) {
//			// ...
//		}
//	}
//
// A Detector never allocates, blocks or performs I/O in Evaluate. It is not
// safe for concurrent use.
package blow
