package nats

import (
	"encoding/json"
	"fmt"
)

// Subjects and queue group.
const (
	SubjectPrefix       = "ledintent"
	SubjectIntents      = SubjectPrefix + ".intents"
	SubjectEventsPrefix = SubjectPrefix + ".events"
	QueueGroup          = "ledintent"
)

// Event kinds published by the Bridge.
const (
	EventHandled = "handled"
	EventFailed  = "failed"
	EventApplied = "applied"
)

// ErrCodeInvalidRequest marks a request that could not be decoded.
const ErrCodeInvalidRequest = "INVALID_REQUEST"

// SubjectEvent returns the subject an event kind is published on.
func SubjectEvent(kind string) string {
	return fmt.Sprintf("%s.%s", SubjectEventsPrefix, kind)
}

// IntentRequest is the payload on SubjectIntents.
type IntentRequest struct {
	Intent     string         `json:"intent"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Marshal serializes the message to JSON.
func (m IntentRequest) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalIntentRequest parses an intent request.
func UnmarshalIntentRequest(data []byte) (IntentRequest, error) {
	var m IntentRequest
	err := json.Unmarshal(data, &m)
	return m, err
}

// ReplyError carries a failed intent's category and reason.
type ReplyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IntentReply answers an IntentRequest. Exactly one of Result or Error is set.
type IntentReply struct {
	Result  json.RawMessage `json:"result,omitempty"`
	Intent  string          `json:"intent,omitempty"`
	Action  string          `json:"action,omitempty"`
	Pattern string          `json:"pattern,omitempty"`
	Error   *ReplyError     `json:"error,omitempty"`
}

// Marshal serializes the message to JSON.
func (m IntentReply) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalIntentReply parses an intent reply.
func UnmarshalIntentReply(data []byte) (IntentReply, error) {
	var m IntentReply
	err := json.Unmarshal(data, &m)
	return m, err
}
