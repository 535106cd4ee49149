// Package chunker splits a normalized recording into bounded WAV chunks
// around the speech regions the VAD detects.
//
// Adjacent speech separated by short silence is merged, each region gets
// padding clamped to the recording, gaps up to a second are split at the
// midpoint so neighboring chunks never share padded audio, and regions
// longer than the configured maximum are walked in overlapping windows.
package chunker
