// Package media decodes source recordings into the normalized waveform the
// chunker operates on and materializes chunk WAV files for the transcriber.
//
// All analysis runs on mono 16 kHz 16-bit PCM. ffmpeg performs the decode
// and resample; the resulting WAV is read back into memory once and treated
// as immutable for the rest of the run.
package media
