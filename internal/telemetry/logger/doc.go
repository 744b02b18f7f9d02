// Package logger provides structured logging for vsclone.
//
// It wraps the standard library log/slog with a small Logger interface
// so infrastructure packages can log without coupling to a concrete
// handler. Text output on stderr is the default for interactive use;
// JSON output is available for scripted runs.
package logger
