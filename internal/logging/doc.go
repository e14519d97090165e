// Package logging assembles the slog loggers used by tubeclip commands.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stdout plus an optional log file under paths.log_dir). Context helpers tag
// lines with the run ID and stage carried on a context, and NewNop gives tests
// and wiring code a logger that cannot fail.
package logging
