package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Palette used by the report renderer. Colours are disabled globally with
// SetColorEnabled(false) or when stdout is not a terminal.
var (
	headerColor  = color.New(color.Bold, color.FgMagenta)
	titleColor   = color.New(color.Bold, color.FgCyan)
	costLowColor = color.New(color.FgGreen)
	costMidColor = color.New(color.FgYellow)
	costHiColor  = color.New(color.FgRed)
)

const (
	costThresholdHigh = 25.0
	costThresholdMid  = 10.0
)

// SetColorEnabled toggles escape sequences for every helper in this file.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}

// ColorEnabled reports whether helpers currently emit escape sequences.
func ColorEnabled() bool {
	return !color.NoColor
}

func FormatHeaderTitle(title string) string { return headerColor.Sprint(title) }
func FormatBorderTitle(title string) string { return titleColor.Sprint(title) }

// ColorizeCost colours an already formatted cost cell by its amount.
func ColorizeCost(text string, cost float64) string {
	switch {
	case cost >= costThresholdHigh:
		return costHiColor.Sprint(text)
	case cost >= costThresholdMid:
		return costMidColor.Sprint(text)
	default:
		return costLowColor.Sprint(text)
	}
}

// StripANSI removes escape sequences.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// GetDisplayWidth returns the number of terminal cells s occupies once
// escape sequences are removed.
func GetDisplayWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Cells expands s into one rune per terminal cell. Wide runes are followed
// by a zero rune for each extra cell they cover, so indexes match columns.
func Cells(s string) []rune {
	plain := ansi.Strip(s)
	cells := make([]rune, 0, len(plain))
	for _, r := range plain {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		cells = append(cells, r)
		for ; w > 1; w-- {
			cells = append(cells, 0)
		}
	}
	return cells
}

// FitWidth truncates or right-pads plain text to exactly width cells.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// FitANSIWidth is FitWidth for strings that may carry escape sequences.
func FitANSIWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	out := ansi.Truncate(s, width, "…")
	if pad := width - GetDisplayWidth(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}
