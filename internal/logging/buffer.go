package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry is one record kept in the ring buffer.
type LogEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level"`
	Module     string         `json:"module"`
	Message    string         `json:"message"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// LogCallback receives every entry written to the buffer.
type LogCallback func(entry LogEntry)

// RingBuffer keeps the most recent log entries.
type RingBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	head    int
	count   int
}

// NewRingBuffer creates a buffer holding at most size entries.
func NewRingBuffer(size int) *RingBuffer {
	if size < 1 {
		size = 1
	}
	return &RingBuffer{entries: make([]LogEntry, size)}
}

// Write appends entry, evicting the oldest when full.
func (rb *RingBuffer) Write(entry LogEntry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.head] = entry
	rb.head = (rb.head + 1) % len(rb.entries)
	if rb.count < len(rb.entries) {
		rb.count++
	}
}

// ReadAll returns the buffered entries oldest first.
func (rb *RingBuffer) ReadAll() []LogEntry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.count == 0 {
		return nil
	}
	result := make([]LogEntry, 0, rb.count)
	start := (rb.head - rb.count + len(rb.entries)) % len(rb.entries)
	for i := 0; i < rb.count; i++ {
		result = append(result, rb.entries[(start+i)%len(rb.entries)])
	}
	return result
}

// Count returns the number of buffered entries.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// BufferHandler is a slog.Handler writing to the package ring buffer.
// Records are dropped until Initialize has created the buffer.
type BufferHandler struct {
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewBufferHandler creates a buffer handler filtering at level.
func NewBufferHandler(level slog.Leveler) *BufferHandler {
	return &BufferHandler{level: level}
}

// Enabled implements slog.Handler.
func (h *BufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *BufferHandler) Handle(_ context.Context, r slog.Record) error {
	buffer, callback := currentSinks()
	if buffer == nil {
		return nil
	}

	entry := LogEntry{
		Timestamp:  r.Time,
		Level:      strings.ToLower(r.Level.String()),
		Module:     "app",
		Message:    r.Message,
		Attributes: make(map[string]any),
	}

	collect := func(a slog.Attr) {
		if a.Key == "module" && len(h.groups) == 0 {
			entry.Module = a.Value.String()
			return
		}
		flattenAttr(entry.Attributes, h.groups, a)
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	buffer.Write(entry)
	if callback != nil {
		callback(entry)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *BufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &BufferHandler{
		level:  h.level,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups: h.groups,
	}
}

// WithGroup implements slog.Handler.
func (h *BufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &BufferHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: append(append([]string{}, h.groups...), name),
	}
}

// flattenAttr stores a under a dotted key built from groups.
func flattenAttr(attrs map[string]any, groups []string, a slog.Attr) {
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		nested := append(append([]string{}, groups...), a.Key)
		for _, ga := range v.Group() {
			flattenAttr(attrs, nested, ga)
		}
	case slog.KindTime:
		attrs[key] = v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		attrs[key] = v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			attrs[key] = err.Error()
		} else {
			attrs[key] = v.Any()
		}
	default:
		attrs[key] = v.Any()
	}
}
