// Package intent resolves symbolic LED intents into patterns and dispatches
// them to an LED backend.
package intent

import (
	"fmt"
	"strings"

	"github.com/smazurov/ledintent/internal/pattern"
)

// ActionKind tags what a resolved intent asks the backend to do.
type ActionKind string

const (
	// ActionApply sets the LEDs to Action.Pattern.
	ActionApply ActionKind = "apply"
	// ActionStatus queries current LED state without changing it.
	ActionStatus ActionKind = "status"
)

// Action is the outcome of resolving an intent.
type Action struct {
	Intent  Name
	Kind    ActionKind
	Pattern pattern.Pattern // empty for ActionStatus
}

// Resolve maps an intent and its parameters to an Action.
// The intent name and the color/mood parameters are matched case-insensitively.
// Every returned apply action carries a pattern that passed pattern.Parse.
func Resolve(name string, params map[string]any) (Action, error) {
	intent := Name(normalize(name))

	switch intent {
	case TurnOnLED:
		color, ok := stringParam(params, ParamColor)
		p, found := LookupColor(color)
		if !ok || !found {
			return Action{}, NewError(ErrCodeUnsupportedColor,
				"unsupported color: "+describeParam(params, ParamColor, color), nil)
		}
		return apply(intent, p)

	case TurnOffLED, PowerDown:
		return apply(intent, pattern.Off)

	case SetPattern:
		raw, ok := stringParam(params, ParamPattern)
		if !ok {
			return Action{}, NewError(ErrCodeInvalidPattern,
				"invalid LED pattern format: "+describeParam(params, ParamPattern, raw), pattern.ErrInvalidFormat)
		}
		return apply(intent, pattern.Pattern(raw))

	case GetStatus:
		return Action{Intent: intent, Kind: ActionStatus}, nil

	case SetMood:
		mood, ok := stringParam(params, ParamMood)
		p, found := LookupMood(mood)
		if !ok || !found {
			return Action{}, NewError(ErrCodeUnsupportedMood,
				"unsupported mood: "+describeParam(params, ParamMood, mood), nil)
		}
		return apply(intent, p)

	default:
		return Action{}, NewError(ErrCodeUnknownIntent, "unknown intent: "+string(intent), nil)
	}
}

// apply validates p again so no intent can hand an unchecked pattern to a backend.
func apply(intent Name, p pattern.Pattern) (Action, error) {
	valid, err := pattern.Parse(string(p))
	if err != nil {
		return Action{}, NewError(ErrCodeInvalidPattern, "invalid LED pattern format: "+string(p), err)
	}
	return Action{Intent: intent, Kind: ActionApply, Pattern: valid}, nil
}

// stringParam returns params[key]. A missing key reads as "" with ok=true;
// a non-string value returns ok=false.
func stringParam(params map[string]any, key string) (string, bool) {
	v, exists := params[key]
	if !exists || v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

func describeParam(params map[string]any, key, value string) string {
	if v, exists := params[key]; exists && v != nil {
		if _, isString := v.(string); !isString {
			return fmt.Sprintf("%v (%T)", v, v)
		}
	}
	if key == ParamPattern {
		return value
	}
	return normalize(value)
}

// normalize lower-cases s. Surrounding whitespace is significant.
func normalize(s string) string {
	return strings.ToLower(s)
}
