package led

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/smazurov/ledintent/internal/events"
)

func TestMirror_AppliesPublishedPatterns(t *testing.T) {
	target := NewMemory(nil)
	eventBus := events.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mirror := NewMirror(target, eventBus, logger)
	mirror.Start()
	defer mirror.Stop()

	eventBus.Publish(events.PatternAppliedEvent{
		Pattern:   "1100",
		Intent:    "setmood",
		Timestamp: time.Now().Format(time.RFC3339),
	})

	deadline := time.Now().Add(time.Second)
	for target.Current() != "1100" {
		if time.Now().After(deadline) {
			t.Fatalf("mirror target = %q, want 1100", target.Current())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMirror_IgnoresInvalidPattern(t *testing.T) {
	target := NewMemory(nil)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mirror := NewMirror(target, events.New(), logger)

	mirror.handleEvent(events.PatternAppliedEvent{Pattern: "111"})

	if target.Current() != "0000" {
		t.Errorf("invalid pattern reached target: %q", target.Current())
	}
}

func TestMirror_StopWithoutStart(_ *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	NewMirror(NewMemory(nil), events.New(), logger).Stop()
}
