// Package config loads, normalizes, and validates lingoview configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENAI_API_KEY. The Config type centralizes every knob the pipeline and
// CLI need, so storage directories, transcription credentials, and chunking
// thresholds are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, clamped thresholds, and clear validation errors.
package config
