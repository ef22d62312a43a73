package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/penwyp/go-claude-usage/internal/util"
)

// Glyphs are the box-drawing characters of a frame.
type Glyphs struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	TeeLeft     rune
	TeeRight    rune
}

// RoundedGlyphs is the default frame: ╭─╮ │ ├─┤ ╰─╯.
var RoundedGlyphs = Glyphs{
	TopLeft:     '╭',
	TopRight:    '╮',
	BottomLeft:  '╰',
	BottomRight: '╯',
	Horizontal:  '─',
	Vertical:    '│',
	TeeLeft:     '├',
	TeeRight:    '┤',
}

// BorderRenderer frames engine output to the tier width.
type BorderRenderer struct {
	Glyphs     Glyphs
	TitleStyle func(string) string
}

func NewBorderRenderer() *BorderRenderer {
	return &BorderRenderer{Glyphs: RoundedGlyphs}
}

// Frame returns the top border (with an optional title), each section
// separated by a rule, and the bottom border. Empty sections are skipped.
// Every returned line is exactly tier.Width() cells wide.
func (b *BorderRenderer) Frame(tier *Tier, title string, sections ...[]string) []string {
	width := tier.Width()
	lines := []string{b.Top(width, title)}
	first := true
	for _, section := range sections {
		if len(section) == 0 {
			continue
		}
		if !first {
			lines = append(lines, b.Rule(width))
		}
		first = false
		for _, body := range section {
			lines = append(lines, b.Wrap(width, body))
		}
	}
	return append(lines, b.Bottom(width))
}

// Top draws ╭─ title ───╮. Titles that do not fit are shortened, and
// dropped when not even one character would remain.
func (b *BorderRenderer) Top(width int, title string) string {
	g := b.Glyphs
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	// one horizontal before the title, one after, and a blank on each side
	room := inner - 4
	if title == "" || room < 1 {
		return string(g.TopLeft) + b.horizontal(inner) + string(g.TopRight)
	}
	if runewidth.StringWidth(title) > room {
		title = runewidth.Truncate(title, room, "…")
	}
	tw := runewidth.StringWidth(title)
	if b.TitleStyle != nil {
		title = b.TitleStyle(title)
	}
	return string(g.TopLeft) + string(g.Horizontal) + " " + title + " " +
		b.horizontal(inner-3-tw) + string(g.TopRight)
}

// Rule draws ├───┤.
func (b *BorderRenderer) Rule(width int) string {
	return string(b.Glyphs.TeeLeft) + b.horizontal(width-2) + string(b.Glyphs.TeeRight)
}

// Bottom draws ╰───╯.
func (b *BorderRenderer) Bottom(width int) string {
	return string(b.Glyphs.BottomLeft) + b.horizontal(width-2) + string(b.Glyphs.BottomRight)
}

// Wrap puts vertical borders around a body line. Lines of the wrong width
// are fitted so the frame stays intact; the engine never produces them.
func (b *BorderRenderer) Wrap(width int, body string) string {
	if util.GetDisplayWidth(body) != width-2 {
		body = util.FitANSIWidth(body, width-2)
	}
	v := string(b.Glyphs.Vertical)
	return v + body + v
}

func (b *BorderRenderer) horizontal(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(b.Glyphs.Horizontal), n)
}
