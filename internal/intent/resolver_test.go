package intent

import (
	"errors"
	"testing"

	"github.com/smazurov/ledintent/internal/pattern"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		intent      string
		params      map[string]any
		wantKind    ActionKind
		wantPattern pattern.Pattern
		wantCode    ErrorCode
	}{
		{"turn on red mixed case", "turnOnLED", map[string]any{"color": "RED"}, ActionApply, "1000", ""},
		{"turn on yellow", "turnonled", map[string]any{"color": "yellow"}, ActionApply, "0100", ""},
		{"turn on green", "turnonled", map[string]any{"color": "Green"}, ActionApply, "0010", ""},
		{"turn on blue", "TURNONLED", map[string]any{"color": "blue"}, ActionApply, "0001", ""},
		{"turn on unsupported color", "turnonled", map[string]any{"color": "purple"}, "", "", ErrCodeUnsupportedColor},
		{"turn on missing color", "turnonled", map[string]any{}, "", "", ErrCodeUnsupportedColor},
		{"turn on non-string color", "turnonled", map[string]any{"color": 42}, "", "", ErrCodeUnsupportedColor},
		{"turn off", "turnoffled", map[string]any{}, ActionApply, "0000", ""},
		{"power down", "powerdown", nil, ActionApply, "0000", ""},
		{"set pattern", "setpattern", map[string]any{"pattern": "1111"}, ActionApply, "1111", ""},
		{"set pattern too short", "setpattern", map[string]any{"pattern": "11"}, "", "", ErrCodeInvalidPattern},
		{"set pattern bad digit", "setpattern", map[string]any{"pattern": "0120"}, "", "", ErrCodeInvalidPattern},
		{"set pattern missing", "setpattern", map[string]any{}, "", "", ErrCodeInvalidPattern},
		{"set pattern non-string", "setpattern", map[string]any{"pattern": 1010}, "", "", ErrCodeInvalidPattern},
		{"get status", "GetStatus", map[string]any{"color": "red"}, ActionStatus, "", ""},
		{"mood calm", "setmood", map[string]any{"mood": "calm"}, ActionApply, "0001", ""},
		{"mood night", "setmood", map[string]any{"mood": "NIGHT"}, ActionApply, "0001", ""},
		{"mood alert", "setMood", map[string]any{"mood": "alert"}, ActionApply, "1111", ""},
		{"mood unsupported", "setmood", map[string]any{"mood": "grumpy"}, "", "", ErrCodeUnsupportedMood},
		{"mood missing", "setmood", map[string]any{}, "", "", ErrCodeUnsupportedMood},
		{"unknown intent", "danceparty", map[string]any{}, "", "", ErrCodeUnknownIntent},
		{"empty intent", "", nil, "", "", ErrCodeUnknownIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.intent, tt.params)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("Resolve(%q, %v) = %+v, want %s", tt.intent, tt.params, got, tt.wantCode)
				}
				if code := CodeOf(err); code != tt.wantCode {
					t.Errorf("error code = %s, want %s (err: %v)", code, tt.wantCode, err)
				}
				if !IsResolutionError(err) {
					t.Errorf("IsResolutionError(%v) = false", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q, %v) unexpected error: %v", tt.intent, tt.params, err)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.Pattern != tt.wantPattern {
				t.Errorf("Pattern = %q, want %q", got.Pattern, tt.wantPattern)
			}
		})
	}
}

func TestResolve_ErrorMessages(t *testing.T) {
	tests := []struct {
		intent string
		params map[string]any
		want   string
	}{
		{"turnonled", map[string]any{"color": "Purple"}, "unsupported color: purple"},
		{"setmood", map[string]any{"mood": "grumpy"}, "unsupported mood: grumpy"},
		{"DanceParty", nil, "unknown intent: danceparty"},
		{"setpattern", map[string]any{"pattern": "11"}, "invalid LED pattern format: 11"},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			_, err := Resolve(tt.intent, tt.params)
			var ie *Error
			if !errors.As(err, &ie) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if ie.Message != tt.want {
				t.Errorf("Message = %q, want %q", ie.Message, tt.want)
			}
		})
	}
}

func TestResolve_InvalidPatternWrapsSentinel(t *testing.T) {
	_, err := Resolve("setpattern", map[string]any{"pattern": "012"})
	if !errors.Is(err, pattern.ErrInvalidFormat) {
		t.Errorf("expected error to wrap pattern.ErrInvalidFormat, got %v", err)
	}
}

func TestResolve_OffIntentsAgree(t *testing.T) {
	off, err := Resolve("turnoffled", nil)
	if err != nil {
		t.Fatal(err)
	}
	down, err := Resolve("powerdown", nil)
	if err != nil {
		t.Fatal(err)
	}
	if off.Pattern != down.Pattern || off.Pattern != pattern.Off {
		t.Errorf("turnoffled=%q powerdown=%q, want both %q", off.Pattern, down.Pattern, pattern.Off)
	}
}

func TestTables(t *testing.T) {
	moods := Moods()
	if len(moods) != 20 {
		t.Errorf("mood table has %d entries, want 20", len(moods))
	}
	for name, p := range moods {
		if !pattern.Valid(p.String()) {
			t.Errorf("mood %q has invalid pattern %q", name, p)
		}
	}

	aliases := map[pattern.Pattern][]string{
		"0001": {"calm", "sleepy", "night"},
		"1000": {"warning", "error"},
	}
	for want, names := range aliases {
		for _, name := range names {
			if got, ok := LookupMood(name); !ok || got != want {
				t.Errorf("LookupMood(%q) = %q, %v; want %q", name, got, ok, want)
			}
		}
	}

	colors := Colors()
	if len(colors) != 4 {
		t.Errorf("color table has %d entries, want 4", len(colors))
	}

	// Listings are copies.
	colors["purple"] = "1111"
	if _, ok := LookupColor("purple"); ok {
		t.Error("mutating Colors() result changed the color table")
	}

	if got := SortedKeys(Colors()); got[0] != "blue" || got[3] != "yellow" {
		t.Errorf("SortedKeys(Colors()) = %v", got)
	}
	if len(Names()) != 6 {
		t.Errorf("Names() = %v, want 6 intents", Names())
	}
}

func TestMoodTable(t *testing.T) {
	tests := []struct {
		mood string
		want pattern.Pattern
	}{
		{"calm", "0001"},
		{"alert", "1111"},
		{"focus", "0010"},
		{"idle", "0000"},
		{"energetic", "1110"},
		{"relaxed", "0011"},
		{"sleepy", "0001"},
		{"happy", "0110"},
		{"excited", "1011"},
		{"sunrise", "0111"},
		{"creative", "0101"},
		{"warning", "1000"},
		{"caution", "0100"},
		{"busy", "1100"},
		{"thinking", "1010"},
		{"success", "0010"},
		{"error", "1000"},
		{"party", "1111"},
		{"night", "0001"},
		{"sunset", "1001"},
	}
	if len(tests) != len(Moods()) {
		t.Fatalf("table lists %d moods, Moods() has %d", len(tests), len(Moods()))
	}

	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			if got, ok := LookupMood(tt.mood); !ok || got != tt.want {
				t.Errorf("LookupMood(%q) = %q, %v; want %q", tt.mood, got, ok, tt.want)
			}
			action, err := Resolve("setmood", map[string]any{"mood": tt.mood})
			if err != nil {
				t.Fatalf("Resolve(setmood, %q): %v", tt.mood, err)
			}
			if action.Kind != ActionApply || action.Pattern != tt.want {
				t.Errorf("Resolve(setmood, %q) = %+v, want pattern %q", tt.mood, action, tt.want)
			}
		})
	}
}

func TestColorTable(t *testing.T) {
	tests := []struct {
		color string
		want  pattern.Pattern
	}{
		{"red", "1000"},
		{"yellow", "0100"},
		{"green", "0010"},
		{"blue", "0001"},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			if got, ok := LookupColor(tt.color); !ok || got != tt.want {
				t.Errorf("LookupColor(%q) = %q, %v; want %q", tt.color, got, ok, tt.want)
			}
			action, err := Resolve("turnonled", map[string]any{"color": tt.color})
			if err != nil {
				t.Fatalf("Resolve(turnonled, %q): %v", tt.color, err)
			}
			if action.Pattern != tt.want {
				t.Errorf("Resolve(turnonled, %q) pattern = %q, want %q", tt.color, action.Pattern, tt.want)
			}
		})
	}
}

func TestResolve_WhitespaceIsSignificant(t *testing.T) {
	tests := []struct {
		name     string
		intent   string
		params   map[string]any
		wantCode ErrorCode
	}{
		{"padded intent", " turnoffled ", nil, ErrCodeUnknownIntent},
		{"padded color", "turnonled", map[string]any{"color": " red"}, ErrCodeUnsupportedColor},
		{"padded mood", "setmood", map[string]any{"mood": "calm "}, ErrCodeUnsupportedMood},
		{"padded pattern", "setpattern", map[string]any{"pattern": " 1010"}, ErrCodeInvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.intent, tt.params)
			if code := CodeOf(err); code != tt.wantCode {
				t.Errorf("Resolve(%q, %v) code = %q, want %q", tt.intent, tt.params, code, tt.wantCode)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	_, err := Resolve("setpattern", map[string]any{"pattern": "11"})
	want := "INVALID_PATTERN_FORMAT: invalid LED pattern format: 11"
	if err == nil || err.Error() != want {
		t.Errorf("err = %v, want %q", err, want)
	}
	if !errors.Is(err, pattern.ErrInvalidFormat) {
		t.Error("cause should still be reachable through errors.Is")
	}
}
