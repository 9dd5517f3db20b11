package led

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/smazurov/ledintent/internal/pattern"
)

// Memory is a simulated LED array for systems without LED hardware or a LedAPI.
type Memory struct {
	mu      sync.RWMutex
	current pattern.Pattern
	logger  *slog.Logger
}

// NewMemory creates a simulated array with every LED off.
func NewMemory(logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		current: pattern.Off,
		logger:  logger,
	}
}

// ApplyPattern stores p as the current state.
func (m *Memory) ApplyPattern(_ context.Context, p pattern.Pattern) (json.RawMessage, error) {
	valid, err := pattern.Parse(p.String())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = valid
	m.mu.Unlock()

	m.logger.Debug("Simulated LED pattern applied", "pattern", valid.String())
	return encodeState("ok", "memory", valid)
}

// GetStatus returns the stored state.
func (m *Memory) GetStatus(_ context.Context) (json.RawMessage, error) {
	return encodeState("", "memory", m.Current())
}

// Current returns the stored pattern.
func (m *Memory) Current() pattern.Pattern {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
