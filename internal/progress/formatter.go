package progress

import (
	"github.com/fatih/color"
)

// markFor returns the symbol for r, colored when supported
func markFor(r Result, symbols ProgressSymbols, supportsColor bool) string {
	var (
		mark string
		c    *color.Color
	)
	switch r {
	case ResultSuccess:
		mark, c = symbols.Checkmark, color.New(color.FgGreen)
	case ResultWarning:
		mark, c = symbols.Warning, color.New(color.FgYellow)
	default:
		mark, c = symbols.Failure, color.New(color.FgRed)
	}

	if supportsColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(mark)
}

// truncate shortens s to width columns, ending in "..." when cut
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
