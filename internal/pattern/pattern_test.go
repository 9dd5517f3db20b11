package pattern

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"all off", "0000", false},
		{"all on", "1111", false},
		{"alternating", "0101", false},
		{"too short", "10", true},
		{"three chars with digit", "012", true},
		{"too long", "10101", true},
		{"empty", "", true},
		{"non binary digit", "0120", true},
		{"letters", "abcd", true},
		{"whitespace", " 101", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %q, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.input {
				t.Errorf("Parse(%q) = %q", tt.input, got)
			}
		})
	}
}

func TestValidMatchesDefinition(t *testing.T) {
	// Exhaustively check every string of length 0-5 over a small alphabet.
	alphabet := []byte{'0', '1', '2'}
	var walk func(prefix []byte)
	walk = func(prefix []byte) {
		s := string(prefix)
		want := len(s) == Width
		for i := 0; i < len(s); i++ {
			if s[i] != '0' && s[i] != '1' {
				want = false
			}
		}
		if got := Valid(s); got != want {
			t.Errorf("Valid(%q) = %v, want %v", s, got, want)
		}
		if len(prefix) == 5 {
			return
		}
		for _, c := range alphabet {
			walk(append(prefix, c))
		}
	}
	walk(nil)
}

func TestLitAndStates(t *testing.T) {
	p := MustParse("1010")

	want := [Width]bool{true, false, true, false}
	if got := p.States(); got != want {
		t.Errorf("States() = %v, want %v", got, want)
	}
	if p.Lit(-1) || p.Lit(Width) {
		t.Error("out-of-range LEDs should be dark")
	}
	if FromStates(want) != p {
		t.Errorf("FromStates(%v) = %q, want %q", want, FromStates(want), p)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("2")
}
