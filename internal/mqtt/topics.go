// Package mqtt accepts intents over MQTT and publishes LED state for
// robots and home-automation clients that speak MQTT rather than HTTP.
//
// Topics, relative to a configurable prefix:
//
//	{prefix}/intents                 # IntentMessage in
//	{prefix}/results/{request_id}    # ResultMessage out, one per intent
//	{prefix}/leds/state              # retained StateMessage after each applied pattern
package mqtt

import (
	"fmt"
	"strings"
)

// TopicIntents is where clients publish intents.
func TopicIntents(prefix string) string {
	return fmt.Sprintf("%s/intents", prefix)
}

// TopicResult is where the outcome of one intent is published.
func TopicResult(prefix, requestID string) string {
	return fmt.Sprintf("%s/results/%s", prefix, requestID)
}

// TopicState carries the retained current LED state.
func TopicState(prefix string) string {
	return fmt.Sprintf("%s/leds/state", prefix)
}

// ValidRequestID reports whether id fits in a single topic level.
func ValidRequestID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/+#\x00")
}

// ParseRequestID extracts the request ID from a result topic.
func ParseRequestID(topic string) string {
	const marker = "/results/"
	idx := strings.LastIndex(topic, marker)
	if idx < 0 {
		return ""
	}
	id := topic[idx+len(marker):]
	if !ValidRequestID(id) {
		return ""
	}
	return id
}
