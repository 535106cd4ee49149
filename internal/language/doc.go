// Package language provides language tag normalization for subtitle fragments.
//
// The transcriber reports free-form tags ("ja", "japanese", "und", ...).
// All downstream reconciliation works on exactly two codes, "ja" and "en",
// resolved from the tag when possible and from the fragment text otherwise.
// Conversions for CLI-facing codes (target languages, display names) are
// consolidated here as well.
package language
