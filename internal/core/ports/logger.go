// Package ports defines the interfaces between the core and its collaborators.
package ports

import "io"

// Logger is the logging interface used throughout the application.
type Logger interface {
	// Debug logs a message only when verbose mode is enabled.
	Debug(msg string)
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error.
	Error(err error)
	// SetOutput updates the logger's output destination.
	SetOutput(w io.Writer)
	// SetVerbose toggles debug-level output.
	SetVerbose(enabled bool)
}
