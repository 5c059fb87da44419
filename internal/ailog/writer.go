// Package ailog appends one JSON object per AI call to a newline-delimited
// log file. Writes are best-effort: a logging failure must never fail the
// operation that triggered it.
package ailog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Request describes the outgoing side of an AI call.
type Request struct {
	ProviderConfig string          `json:"providerConfig"`
	RawRequestBody json.RawMessage `json:"rawRequestBody,omitempty"`
}

// Entry is one logged AI call.
type Entry struct {
	Timestamp   time.Time       `json:"timestamp"`
	Request     Request         `json:"request"`
	RawResponse json.RawMessage `json:"rawResponse,omitempty"`
	Provider    string          `json:"provider,omitempty"`
	DurationMS  int64           `json:"duration"`
	FinalAnswer string          `json:"finalAnswer,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Writer appends entries to a single log file, serialized by a mutex.
// A nil *Writer is valid and drops everything.
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

// NewWriter opens (or creates) the log file in append mode, creating parent
// directories as needed.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ailog: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("ailog: open log file: %w", err)
	}
	return &Writer{file: f}, nil
}

// Append writes one entry as a JSON line. Failures are logged and swallowed.
func (w *Writer) Append(e Entry) {
	if w == nil {
		return
	}
	line, err := json.Marshal(e)
	if err != nil {
		slog.Warn("ailog: marshal entry failed", slog.String("error", err.Error()))
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(append(line, '\n')); err != nil {
		slog.Warn("ailog: append failed", slog.String("error", err.Error()))
	}
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}
