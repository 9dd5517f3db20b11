package events

// Event type constants for kelindar/event.
const (
	TypeIntentHandled uint32 = iota + 1
	TypeIntentFailed
	TypePatternApplied
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// IntentHandledEvent is published after an intent reached the backend successfully.
type IntentHandledEvent struct {
	Intent    string `json:"intent" example:"setmood" doc:"Normalized intent name"`
	Action    string `json:"action" example:"apply" doc:"Resolved action: apply or status"`
	Pattern   string `json:"pattern,omitempty" example:"0001" doc:"Pattern sent to the backend (apply only)"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for IntentHandledEvent.
func (e IntentHandledEvent) Type() uint32 { return TypeIntentHandled }

// IntentFailedEvent is published when resolution or the backend call fails.
type IntentFailedEvent struct {
	Intent    string `json:"intent" example:"turnonled" doc:"Intent name as received"`
	Code      string `json:"code" example:"UNSUPPORTED_COLOR" doc:"Failure category"`
	Message   string `json:"message" example:"unsupported color: purple" doc:"Human-readable reason"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for IntentFailedEvent.
func (e IntentFailedEvent) Type() uint32 { return TypeIntentFailed }

// PatternAppliedEvent is published whenever a backend accepted a new pattern.
// Consumed by the local LED mirror.
type PatternAppliedEvent struct {
	Pattern   string `json:"pattern" example:"1000" doc:"Applied 4-LED pattern"`
	Intent    string `json:"intent" example:"turnonled" doc:"Intent that produced the pattern"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PatternAppliedEvent.
func (e PatternAppliedEvent) Type() uint32 { return TypePatternApplied }

// LogEntryEvent represents a log entry for SSE streaming.
type LogEntryEvent struct {
	Timestamp  string         `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"intent" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
