// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/tago/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error (go.trai.ch/zerr v0.3.0+).
// If zerr's API changes, errors will gracefully fall back to standard error handling.
type messager interface {
	Message() string
}

// metadataer describes an error that carries structured metadata.
// This matches the Metadata() method provided by zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry holds a single error's message and metadata extracted from a chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger instance.
func New() ports.Logger {
	handler := NewPrettyHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{
		logger: slog.New(handler),
		output: os.Stderr,
	}
}

// SetOutput updates the logger's output destination.
// This is thread-safe and updates the underlying slog handler.
// It preserves the current JSON mode setting.
// If w is nil, os.Stderr is used as the default.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = NewPrettyHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	l.logger = slog.New(handler)
}

// SetJSON switches between JSON and pretty logging.
// When enabled, logs are output as JSON. When disabled, pretty-printed logs are used.
// The output destination is preserved from SetOutput calls.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable

	w := l.output
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	if enable {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = NewPrettyHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	l.logger = slog.New(handler)
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

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	entries := collectErrorEntries(err)
	l.logger.Error(formatErrorEntries(entries))
}

// collectErrorEntries traverses the error chain and extracts one entry per
// error. zerr errors contribute their raw message and metadata; the first
// non-zerr error contributes its full Error() string and stops the walk.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			// Standard error: append full Error() and stop
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)

		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the collected entries hierarchically, with the
// main error first and the remaining causes indented under a "Caused by:"
// header. Metadata keys are printed sorted for deterministic output.
func formatErrorEntries(entries []ErrorEntry) string {
	var formattedLines []string

	for i, entry := range entries {
		lines := strings.Split(entry.Message, "\n")

		if i == 0 {
			// Main error
			formattedLines = append(formattedLines, "Error: "+lines[0])
			// Indent any continuation lines to align with "Error: "
			for _, line := range lines[1:] {
				formattedLines = append(formattedLines, "       "+line)
			}
			for _, kv := range sortedMetadataLines(entry.Metadata) {
				formattedLines = append(formattedLines, "       "+kv)
			}
		} else {
			if i == 1 {
				// Add "Caused by:" header before first cause
				formattedLines = append(formattedLines, "", "  Caused by:")
			}
			// Add cause with arrow
			formattedLines = append(formattedLines, "    → "+lines[0])
			// Indent any continuation lines to align with the arrow
			for _, line := range lines[1:] {
				formattedLines = append(formattedLines, "      "+line)
			}
			for _, kv := range sortedMetadataLines(entry.Metadata) {
				formattedLines = append(formattedLines, "      "+kv)
			}
		}
	}

	return strings.Join(formattedLines, "\n")
}

// sortedMetadataLines formats the metadata map as "key: value" lines with
// keys sorted alphabetically.
func sortedMetadataLines(md map[string]any) []string {
	if len(md) == 0 {
		return nil
	}

	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, md[k]))
	}

	return lines
}
