// Package logging constructs the slog loggers used across lingoview.
//
// It supports JSON output for machine consumption and a compact console
// format for interactive use, with optional fan-out to a log file. Attr
// helpers and component loggers keep structured field names consistent
// between the pipeline stages and the CLI.
package logging
