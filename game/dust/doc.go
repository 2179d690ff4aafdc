// Package dust tracks how dirty the cartridge is while the player blows on
// it.
//
// A [Meter] starts at [FullLevel] percent and drops at a fixed rate for as
// long as the detector reports blowing. Reaching zero fires a one-shot clean
// event; the level never rises again until [Meter.Reset].
package dust
