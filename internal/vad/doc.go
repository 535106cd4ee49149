// Package vad classifies audio frames as speech or silence and coalesces
// the frame stream into speech intervals.
//
// Per-frame decisions come from WebRTC VAD with an energy-threshold
// override so loud non-speech audio (music, effects) still counts as an
// active region. A hysteresis state machine turns the boolean stream into
// intervals: a minimum speech run opens one, a minimum silence run closes
// it with the trailing silence trimmed off.
package vad
