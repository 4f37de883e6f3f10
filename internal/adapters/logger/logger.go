package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/stencilkit/stencil/internal/core/ports"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog with a pretty handler.
// Verbosity is an explicit setting toggled by the CLI, never process-wide
// mutable state touched by the core.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	level  *slog.LevelVar
	output io.Writer
}

// New creates a new Logger writing to stderr at info level.
func New() ports.Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	return &Logger{
		logger: slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		level:  level,
		output: os.Stderr,
	}
}

// SetOutput updates the logger's output destination. If w is nil, os.Stderr
// is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(NewPrettyHandler(w, &slog.HandlerOptions{Level: l.level}))
}

// SetVerbose toggles debug-level output.
func (l *Logger) SetVerbose(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if enabled {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
}

// Debug logs a message only visible in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error, rendering a zerr chain as a main message followed by
// its causes.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	var messages []string
	current := err
	for current != nil {
		if m, ok := current.(messager); ok {
			// Metadata-only wrappers carry no message of their own.
			if msg := m.Message(); msg != "" {
				messages = append(messages, msg)
			}
			current = errors.Unwrap(current)
		} else {
			messages = append(messages, current.Error())
			break
		}
	}

	var lines []string
	for i, msg := range messages {
		if i == 0 {
			lines = append(lines, "Error: "+msg)
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msg)
	}

	l.logger.Error(strings.Join(lines, "\n"))
}
