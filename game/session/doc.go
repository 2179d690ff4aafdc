// Package session drives one "blow on the cartridge" scene.
//
// A [Session] pulls one frame per host tick from a [Source], classifies it
// with a [blow.Detector] and feeds the result to a [dust.Meter]. Rendering
// and audio capture stay with the host; they only meet the session through
// [Source] and [Observer].
package session
