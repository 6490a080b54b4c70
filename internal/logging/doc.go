// Package logging provides structured logging for cpp-scaffold built on
// log/slog.
//
// The default handler is TTY-aware: it colorizes output when the writer is a
// terminal and color has not been disabled via NO_COLOR or TERM=dumb. A JSON
// handler is available for machine consumption, and MultiHandler combines
// terminal output with a log file.
//
// Attribute values whose keys look secret (token, password, api_key, ...)
// are masked before being written.
package logging
