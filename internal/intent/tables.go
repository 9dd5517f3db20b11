package intent

import (
	"maps"
	"slices"

	"github.com/smazurov/ledintent/internal/pattern"
)

// Name identifies a supported intent. Names are lower-case.
type Name string

// Supported intents.
const (
	TurnOnLED  Name = "turnonled"
	TurnOffLED Name = "turnoffled"
	SetPattern Name = "setpattern"
	PowerDown  Name = "powerdown"
	GetStatus  Name = "getstatus"
	SetMood    Name = "setmood"
)

// Parameter keys read by the resolver.
const (
	ParamColor   = "color"
	ParamMood    = "mood"
	ParamPattern = "pattern"
)

var intentNames = []Name{TurnOnLED, TurnOffLED, SetPattern, PowerDown, GetStatus, SetMood}

// LED 0 is red, 1 yellow, 2 green, 3 blue.
var colorPatterns = map[string]pattern.Pattern{
	"red":    pattern.MustParse("1000"),
	"yellow": pattern.MustParse("0100"),
	"green":  pattern.MustParse("0010"),
	"blue":   pattern.MustParse("0001"),
}

// Several moods intentionally share a pattern (calm/sleepy/night, warning/error).
var moodPatterns = map[string]pattern.Pattern{
	// energy levels
	"idle":      pattern.MustParse("0000"),
	"calm":      pattern.MustParse("0001"),
	"relaxed":   pattern.MustParse("0011"),
	"energetic": pattern.MustParse("1110"),
	"alert":     pattern.MustParse("1111"),

	// emotional states
	"sleepy":  pattern.MustParse("0001"),
	"happy":   pattern.MustParse("0110"),
	"excited": pattern.MustParse("1011"),

	// work modes
	"focus":    pattern.MustParse("0010"),
	"creative": pattern.MustParse("0101"),
	"busy":     pattern.MustParse("1100"),
	"thinking": pattern.MustParse("1010"),

	// signals
	"success": pattern.MustParse("0010"),
	"caution": pattern.MustParse("0100"),
	"warning": pattern.MustParse("1000"),
	"error":   pattern.MustParse("1000"),

	// special
	"party":   pattern.MustParse("1111"),
	"night":   pattern.MustParse("0001"),
	"sunrise": pattern.MustParse("0111"),
	"sunset":  pattern.MustParse("1001"),
}

// LookupColor returns the pattern for a color name, ignoring case.
func LookupColor(color string) (pattern.Pattern, bool) {
	p, ok := colorPatterns[normalize(color)]
	return p, ok
}

// LookupMood returns the pattern for a mood name, ignoring case.
func LookupMood(mood string) (pattern.Pattern, bool) {
	p, ok := moodPatterns[normalize(mood)]
	return p, ok
}

// Names returns the supported intents in dispatch order.
func Names() []Name {
	return slices.Clone(intentNames)
}

// Colors returns a copy of the color table.
func Colors() map[string]pattern.Pattern {
	return maps.Clone(colorPatterns)
}

// Moods returns a copy of the mood table.
func Moods() map[string]pattern.Pattern {
	return maps.Clone(moodPatterns)
}

// SortedKeys returns the keys of a table in lexical order.
func SortedKeys(table map[string]pattern.Pattern) []string {
	return slices.Sorted(maps.Keys(table))
}
