package mqtt

import "encoding/json"

// IntentMessage is published on TopicIntents. RequestID is generated when empty.
type IntentMessage struct {
	RequestID  string         `json:"request_id,omitempty"`
	Intent     string         `json:"intent"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ResultMessage answers one IntentMessage on TopicResult.
type ResultMessage struct {
	RequestID string          `json:"request_id"`
	OK        bool            `json:"ok"`
	Result    json.RawMessage `json:"result,omitempty"`
	Intent    string          `json:"intent,omitempty"`
	Action    string          `json:"action,omitempty"`
	Pattern   string          `json:"pattern,omitempty"`
	Code      string          `json:"code,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// StateMessage is the retained LED state.
type StateMessage struct {
	Pattern   string  `json:"pattern"`
	LEDs      [4]bool `json:"leds"`
	Intent    string  `json:"intent"`
	Timestamp string  `json:"timestamp"`
}
