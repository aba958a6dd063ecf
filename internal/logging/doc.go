// Package logging assembles structured slog loggers used across plexmissing.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers that tag log lines with the run
// identifier and the library being walked. Logs default to stderr because
// stdout carries the report lines. A no-op logger is provided for tests and
// wiring code that cannot fail.
package logging
