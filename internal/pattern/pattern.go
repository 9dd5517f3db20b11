// Package pattern defines the 4-LED on/off pattern sent to LED backends.
package pattern

import (
	"errors"
	"fmt"
)

// Width is the number of LEDs addressed by a pattern.
const Width = 4

// ErrInvalidFormat is returned when a string is not a 4-character binary pattern.
var ErrInvalidFormat = errors.New("invalid LED pattern format")

// Pattern is a validated string of exactly Width '0'/'1' characters.
// Position i is lit when the character at i is '1'.
type Pattern string

// Off has every LED dark.
const Off Pattern = "0000"

// Parse validates s and returns it as a Pattern.
func Parse(s string) (Pattern, error) {
	if len(s) != Width {
		return "", fmt.Errorf("%w: %q must be %d characters", ErrInvalidFormat, s, Width)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return "", fmt.Errorf("%w: %q must contain only 0 and 1", ErrInvalidFormat, s)
		}
	}
	return Pattern(s), nil
}

// MustParse is like Parse but panics on error. Only for static tables.
func MustParse(s string) Pattern {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether s would be accepted by Parse.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// FromStates builds a pattern from per-LED states.
func FromStates(states [Width]bool) Pattern {
	b := make([]byte, Width)
	for i, on := range states {
		if on {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return Pattern(b)
}

// String returns the raw pattern string.
func (p Pattern) String() string {
	return string(p)
}

// Lit reports whether LED i is on. Out-of-range indexes are dark.
func (p Pattern) Lit(i int) bool {
	if i < 0 || i >= len(p) {
		return false
	}
	return p[i] == '1'
}

// States returns the per-LED on/off states.
func (p Pattern) States() [Width]bool {
	var states [Width]bool
	for i := range states {
		states[i] = p.Lit(i)
	}
	return states
}
