package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log record with its attributes flattened.
// Group attributes are keyed by their dotted path.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// recordSink is shared by a handler and every handler derived from it
type recordSink struct {
	mu      sync.Mutex
	records []LogRecord
}

// BufferedSlogHandler captures log records for assertions
type BufferedSlogHandler struct {
	sink  *recordSink
	attrs []slog.Attr
	group string
	t     *testing.T
}

// NewTestLogger creates a logger whose records can be inspected afterwards
func NewTestLogger(t *testing.T) (*slog.Logger, *BufferedSlogHandler) {
	h := &BufferedSlogHandler{sink: &recordSink{}, t: t}
	return slog.New(h), h
}

// Enabled implements slog.Handler
func (h *BufferedSlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	for _, a := range h.attrs {
		flatten(attrs, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(attrs, h.group, a)
		return true
	})

	h.sink.mu.Lock()
	h.sink.records = append(h.sink.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	h.sink.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler
func (h *BufferedSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler
func (h *BufferedSlogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = joinKey(h.group, name)
	return &clone
}

func flatten(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	key := joinKey(prefix, a.Key)
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			flatten(dst, key, ga)
		}
		return
	}
	dst[key] = v.Any()
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Records returns a copy of the captured records
func (h *BufferedSlogHandler) Records() []LogRecord {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	records := make([]LogRecord, len(h.sink.records))
	copy(records, h.sink.records)
	return records
}

// Find returns the first record with the given message
func (h *BufferedSlogHandler) Find(message string) (LogRecord, bool) {
	for _, r := range h.Records() {
		if r.Message == message {
			return r, true
		}
	}
	return LogRecord{}, false
}

// FindAll returns every record with the given message
func (h *BufferedSlogHandler) FindAll(message string) []LogRecord {
	var found []LogRecord
	for _, r := range h.Records() {
		if r.Message == message {
			found = append(found, r)
		}
	}
	return found
}

// AssertLogContains fails the test unless a record at level contains message
func AssertLogContains(t *testing.T, h *BufferedSlogHandler, level slog.Level, message string) {
	t.Helper()
	for _, r := range h.Records() {
		if r.Level == level && strings.Contains(r.Message, message) {
			return
		}
	}
	t.Errorf("expected %s log containing %q", level, message)
}

// AssertNoErrors fails the test if any error-level record was captured
func AssertNoErrors(t *testing.T, h *BufferedSlogHandler) {
	t.Helper()
	for _, r := range h.Records() {
		if r.Level >= slog.LevelError {
			t.Errorf("unexpected error log: %s %v", r.Message, r.Attrs)
		}
	}
}
