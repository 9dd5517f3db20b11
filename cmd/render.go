package cmd

import (
	"strings"

	"github.com/fatih/color"
	"github.com/smazurov/ledintent/internal/pattern"
)

// ledColors paints slot i the color of the physical LED it drives.
var ledColors = [pattern.Width]func(a ...any) string{
	color.New(color.FgRed, color.Bold).SprintFunc(),
	color.New(color.FgYellow, color.Bold).SprintFunc(),
	color.New(color.FgGreen, color.Bold).SprintFunc(),
	color.New(color.FgBlue, color.Bold).SprintFunc(),
}

var (
	dim  = color.New(color.Faint).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

// renderPattern draws p as four lamps, e.g. "● ○ ● ○".
func renderPattern(p pattern.Pattern) string {
	lamps := make([]string, pattern.Width)
	for i := range pattern.Width {
		if p.Lit(i) {
			lamps[i] = ledColors[i]("●")
		} else {
			lamps[i] = dim("○")
		}
	}
	return strings.Join(lamps, " ")
}
