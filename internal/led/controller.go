// Package led provides the LED backends an intent can be dispatched to.
package led

import (
	"context"
	"encoding/json"

	"github.com/smazurov/ledintent/internal/pattern"
)

// Controller drives a 4-LED array. Implementations return JSON responses that
// are relayed to API clients without interpretation.
type Controller interface {
	// ApplyPattern shows p on the array. Reapplying the current pattern is a no-op.
	ApplyPattern(ctx context.Context, p pattern.Pattern) (json.RawMessage, error)

	// GetStatus reports the current LED state.
	GetStatus(ctx context.Context) (json.RawMessage, error)
}

// State is the JSON body local controllers return.
type State struct {
	Status  string              `json:"status,omitempty"`
	Pattern string              `json:"pattern"`
	LEDs    [pattern.Width]bool `json:"leds"`
	Source  string              `json:"source"`
}

func encodeState(status, source string, p pattern.Pattern) (json.RawMessage, error) {
	return json.Marshal(State{
		Status:  status,
		Pattern: p.String(),
		LEDs:    p.States(),
		Source:  source,
	})
}
