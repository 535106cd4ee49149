// Package consolidate reconciles the fragments that independent chunk
// transcriptions produce into a single monolingual sequence.
//
// The pass normalizes per-fragment language tags, picks the dominant
// language, drops the duplicates the deliberate chunk overlap creates,
// and stitches English sentences back together when the transcriber split
// them across an utterance pause.
package consolidate
