package led

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/ledintent/internal/events"
	"github.com/smazurov/ledintent/internal/pattern"
)

const mirrorTimeout = 2 * time.Second

// Mirror copies every pattern accepted by the primary backend onto a local controller.
type Mirror struct {
	target      Controller
	eventBus    *events.Bus
	unsubscribe func()
	logger      *slog.Logger
}

// NewMirror creates a mirror that drives target from PatternAppliedEvents.
func NewMirror(target Controller, eventBus *events.Bus, logger *slog.Logger) *Mirror {
	return &Mirror{
		target:   target,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Start begins listening for applied patterns.
func (m *Mirror) Start() {
	m.unsubscribe = m.eventBus.Subscribe(func(e events.PatternAppliedEvent) {
		m.handleEvent(e)
	})
	m.logger.Info("LED mirror started")
}

// Stop unsubscribes from events.
func (m *Mirror) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.logger.Info("LED mirror stopped")
}

func (m *Mirror) handleEvent(e events.PatternAppliedEvent) {
	p, err := pattern.Parse(e.Pattern)
	if err != nil {
		m.logger.Warn("Ignoring invalid mirrored pattern", "pattern", e.Pattern, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if _, err := m.target.ApplyPattern(ctx, p); err != nil {
		m.logger.Warn("Failed to mirror LED pattern", "pattern", e.Pattern, "error", err)
		return
	}
	m.logger.Debug("Mirrored LED pattern", "pattern", e.Pattern, "intent", e.Intent)
}
