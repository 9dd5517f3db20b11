package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
)

const syslogIdentifier = "ledintent"

// JournalHandler is a slog.Handler that sends records to the systemd journal.
type JournalHandler struct {
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewJournalHandler creates a journal handler filtering at level.
func NewJournalHandler(level slog.Leveler) *JournalHandler {
	return &JournalHandler{level: level}
}

// IsJournalAvailable reports whether journald accepts messages.
func IsJournalAvailable() bool {
	return journal.Enabled()
}

// Enabled implements slog.Handler.
func (h *JournalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *JournalHandler) Handle(_ context.Context, r slog.Record) error {
	fields := map[string]string{
		"SYSLOG_IDENTIFIER": syslogIdentifier,
	}
	for _, a := range h.attrs {
		addJournalField(fields, h.groups, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addJournalField(fields, h.groups, a)
		return true
	})

	if err := journal.Send(r.Message, journalPriority(r.Level), fields); err != nil {
		return fmt.Errorf("journal send: %w", err)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &JournalHandler{
		level:  h.level,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups: h.groups,
	}
}

// WithGroup implements slog.Handler.
func (h *JournalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &JournalHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: append(append([]string{}, h.groups...), name),
	}
}

func journalPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// addJournalField adds a as an upper-case journal field; groups join with '_'.
func addJournalField(fields map[string]string, groups []string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, "_") + "_" + key
	}
	key = journalKey(key)

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		nested := append(append([]string{}, groups...), a.Key)
		for _, ga := range v.Group() {
			addJournalField(fields, nested, ga)
		}
	case slog.KindBool:
		fields[key] = strconv.FormatBool(v.Bool())
	case slog.KindTime:
		fields[key] = v.Time().Format(time.RFC3339Nano)
	default:
		fields[key] = v.String()
	}
}

// journalKey upper-cases key and replaces characters journald rejects.
func journalKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
