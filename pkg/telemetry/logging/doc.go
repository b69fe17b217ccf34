// Package logging provides structured logging for the Torii gateway.
//
// Logging is built on log/slog. The package parses the configured level
// and format and returns a ready-to-use *slog.Logger, which callers
// typically install with slog.SetDefault so that every package logs
// through the same handler.
package logging
