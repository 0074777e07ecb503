// Package logging provides structured logging helpers built on log/slog.
//
// It defines canonical attribute keys used across the codebase so that log
// output stays consistent and searchable, along with helpers for safely
// logging user identifiers and OAuth tokens without exposing sensitive data.
package logging
