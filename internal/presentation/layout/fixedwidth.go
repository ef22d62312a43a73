package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

// Unit is one rung of a magnitude ladder.
type Unit struct {
	Threshold float64 // smallest value rendered in this unit
	Divisor   float64
	Suffix    string
	Precision int
}

// UnitLadder is ordered from the largest unit to the smallest. The last
// rung must have a zero threshold so every non-negative value has a unit.
type UnitLadder []Unit

var (
	TokenLadder = UnitLadder{
		{Threshold: 1e12, Divisor: 1e12, Suffix: " Ttok", Precision: 1},
		{Threshold: 1e9, Divisor: 1e9, Suffix: " Gtok", Precision: 1},
		{Threshold: 1e6, Divisor: 1e6, Suffix: " Mtok", Precision: 1},
		{Threshold: 0, Divisor: 1e3, Suffix: " Ktok", Precision: 1},
	}
	CostLadder = UnitLadder{
		{Threshold: 0, Divisor: 1, Suffix: " USD", Precision: 2},
	}
	PercentLadder = UnitLadder{
		{Threshold: 0, Divisor: 1, Suffix: "%", Precision: 1},
	}
	CountLadder = UnitLadder{
		{Threshold: 1e9, Divisor: 1e9, Suffix: "G", Precision: 1},
		{Threshold: 1e6, Divisor: 1e6, Suffix: "M", Precision: 1},
		{Threshold: 0, Divisor: 1, Suffix: "", Precision: 0},
	}
)

// LadderFor returns the ladder used for a value kind.
func LadderFor(kind model.ValueKind) UnitLadder {
	switch kind {
	case model.CostAmount:
		return CostLadder
	case model.Percentage:
		return PercentLadder
	case model.PlainCount:
		return CountLadder
	default:
		return TokenLadder
	}
}

// Format renders v in exactly width cells, aligned per anchor.
//
// The unit is picked by magnitude and promoted when rounding reaches the
// next rung (999,950 tokens is "1.0 Mtok", not "1000.0 Ktok"). If the text
// is still too wide, precision drops one digit at a time; when even zero
// decimals do not fit the result is ErrFormatOverflow. Digits are never cut.
func (l UnitLadder) Format(v float64, width int, anchor Anchor) (string, error) {
	if width <= 0 || len(l) == 0 {
		return "", fmt.Errorf("%w: %g in %d columns", ErrFormatOverflow, v, width)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %g is not a non-negative finite value", ErrFormatOverflow, v)
	}

	i := l.rung(v)
	for i > 0 {
		u := l[i]
		rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v/u.Divisor, 'f', u.Precision, 64), 64)
		if rounded*u.Divisor < l[i-1].Threshold {
			break
		}
		i--
	}

	u := l[i]
	scaled := v / u.Divisor
	for p := u.Precision; p >= 0; p-- {
		text := strconv.FormatFloat(scaled, 'f', p, 64) + u.Suffix
		if len(text) <= width {
			return alignText(text, width, anchor), nil
		}
	}
	return "", fmt.Errorf("%w: %g in %d columns", ErrFormatOverflow, v, width)
}

func (l UnitLadder) rung(v float64) int {
	for i, u := range l {
		if v >= u.Threshold {
			return i
		}
	}
	return len(l) - 1
}

// FormatTokens renders a token count right-aligned in exactly width cells.
func FormatTokens(n int64, width int) (string, error) {
	return TokenLadder.Format(float64(n), width, AnchorRight)
}

// FormatCost renders a USD amount right-aligned in exactly width cells.
func FormatCost(c float64, width int) (string, error) {
	return CostLadder.Format(c, width, AnchorRight)
}

// FormatPercent renders a percentage right-aligned in exactly width cells.
func FormatPercent(p float64, width int) (string, error) {
	return PercentLadder.Format(p, width, AnchorRight)
}

// FormatCount renders a plain count right-aligned in exactly width cells.
func FormatCount(n int64, width int) (string, error) {
	return CountLadder.Format(float64(n), width, AnchorRight)
}

// FormatValue dispatches on the value kind.
func FormatValue(v model.UsageValue, width int, anchor Anchor) (string, error) {
	return LadderFor(v.Kind()).Format(v.Float(), width, anchor)
}

// OverflowMarker is the placeholder drawn in a cell whose value overflowed.
func OverflowMarker(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("#", width)
}
