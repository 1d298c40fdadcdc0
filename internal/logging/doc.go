// Package logging assembles structured slog loggers for the larder CLI.
//
// It owns the console and JSON handlers, routes output to stderr (stdout is
// reserved for command results) plus an optional log file, and exposes
// context helpers that tag lines with the CLI session identifier. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
