package layout

import (
	"fmt"

	"github.com/penwyp/go-claude-usage/internal/util"
)

// Check names one independent validation rule.
type Check string

const (
	CheckWidth     Check = "width"
	CheckBorder    Check = "border"
	CheckBounds    Check = "bounds"
	CheckAlignment Check = "alignment"
)

// Diagnostic reports one validation failure. Row is the line index within
// the block and Column the cell index within that line.
type Diagnostic struct {
	Tier     string
	Row      int
	Column   int
	Check    Check
	Expected string
	Actual   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: tier %s row %d col %d: expected %s, got %s",
		d.Check, d.Tier, d.Row, d.Column, d.Expected, d.Actual)
}

// Validator checks already-rendered text against the tier it was produced
// for. It never modifies or rejects output; it only reports.
type Validator struct {
	Glyphs Glyphs
}

func NewValidator() *Validator {
	return &Validator{Glyphs: RoundedGlyphs}
}

// Validate runs all checks with the default glyphs.
func Validate(tier *Tier, lines []string) []Diagnostic {
	return NewValidator().Validate(tier, lines)
}

// ValidateFit is Validate for a block shown on a terminal columns wide. It
// also reports a block whose tier is wider than the terminal. A
// non-positive columns skips that check.
func ValidateFit(tier *Tier, lines []string, columns int) []Diagnostic {
	diags := NewValidator().Validate(tier, lines)
	if columns > 0 && tier.Width() > columns {
		diags = append(diags, Diagnostic{
			Tier: tier.Name, Row: 0, Column: columns, Check: CheckWidth,
			Expected: fmt.Sprintf("at most %d cells", columns),
			Actual:   fmt.Sprintf("%d cells", tier.Width()),
		})
	}
	return diags
}

// Validate runs every check on every line and returns all failures.
// Escape sequences are stripped before measuring. An empty result means
// the block is valid.
func (v *Validator) Validate(tier *Tier, lines []string) []Diagnostic {
	var diags []Diagnostic
	report := func(row, col int, check Check, expected, actual string) {
		diags = append(diags, Diagnostic{
			Tier: tier.Name, Row: row, Column: col, Check: check,
			Expected: expected, Actual: actual,
		})
	}

	width := tier.Width()
	if len(lines) < 2 {
		report(0, 0, CheckBorder, "top and bottom border", fmt.Sprintf("%d lines", len(lines)))
		return diags
	}

	g := v.Glyphs
	last := len(lines) - 1
	for row, line := range lines {
		cells := util.Cells(line)
		at := func(col int) rune {
			if col >= 0 && col < len(cells) {
				return cells[col]
			}
			return 0
		}

		if len(cells) != width {
			report(row, min(len(cells), width), CheckWidth,
				fmt.Sprintf("%d cells", width), fmt.Sprintf("%d cells", len(cells)))
		}

		switch {
		case row == 0:
			v.expectGlyph(report, row, 0, g.TopLeft, at(0))
			v.expectGlyph(report, row, width-1, g.TopRight, at(width-1))
		case row == last:
			v.expectGlyph(report, row, 0, g.BottomLeft, at(0))
			v.expectGlyph(report, row, width-1, g.BottomRight, at(width-1))
			v.expectRun(report, row, cells, width, g.Horizontal)
		case at(0) == g.TeeLeft:
			v.expectGlyph(report, row, width-1, g.TeeRight, at(width-1))
			v.expectRun(report, row, cells, width, g.Horizontal)
		default:
			v.expectGlyph(report, row, 0, g.Vertical, at(0))
			v.expectGlyph(report, row, width-1, g.Vertical, at(width-1))
			checkBounds(report, row, width, at)
			checkAlignment(report, row, tier.Columns, width, at)
		}
	}
	return diags
}

type reportFunc func(row, col int, check Check, expected, actual string)

func (v *Validator) expectGlyph(report reportFunc, row, col int, want, got rune) {
	if got != want {
		report(row, col, CheckBorder, quote(want), quote(got))
	}
}

// expectRun checks that a rule line has nothing but horizontals between
// its corners.
func (v *Validator) expectRun(report reportFunc, row int, cells []rune, width int, want rune) {
	for col := 1; col < width-1 && col < len(cells); col++ {
		if cells[col] != want {
			report(row, col, CheckBorder, quote(want), quote(cells[col]))
			return
		}
	}
}

// checkBounds requires the padding cell inside each border to be blank.
func checkBounds(report reportFunc, row, width int, at func(int) rune) {
	for _, col := range []int{1, width - 2} {
		if r := at(col); r != ' ' {
			report(row, col, CheckBounds, quote(' '), quote(r))
		}
	}
}

// checkAlignment requires every right-anchored field that has content on
// this line to end exactly at its anchor column.
func checkAlignment(report reportFunc, row int, cs ColumnSet, width int, at func(int) rune) {
	for _, f := range cs.Fields {
		if f.Anchor != AnchorRight {
			continue
		}
		occupied := false
		for col := f.Start(); col <= f.At; col++ {
			if at(col) != ' ' && at(col) != 0 {
				occupied = true
				break
			}
		}
		if !occupied {
			continue
		}
		if r := at(f.At); r == ' ' {
			report(row, f.At, CheckAlignment, fmt.Sprintf("%s ending at column %d", f.Column, f.At), quote(r))
			continue
		}
		if next := f.At + 1; next < width-1 && at(next) != ' ' {
			report(row, next, CheckAlignment, fmt.Sprintf("blank after %s", f.Column), quote(at(next)))
		}
	}
}

func quote(r rune) string {
	if r == 0 {
		return "nothing"
	}
	return fmt.Sprintf("%q", r)
}
