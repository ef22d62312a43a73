package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/util"
)

// Row is one line of report data: a label plus one value per field of the
// tier's column set, in declaration order.
type Row struct {
	Label  string
	Values []model.UsageValue
	// Sub marks breakdown rows, whose labels start at the sub indent (A3).
	Sub bool
}

// SummaryItem is a label with a single value aligned to the right-most
// field, used for footers such as cache savings.
type SummaryItem struct {
	Label string
	Value model.UsageValue
}

// Overflow records a cell that was drawn as an overflow marker.
type Overflow struct {
	Row    int
	Column Column
	Err    error
}

// Body is the unframed output of the engine. Every line is exactly
// BodyWidth cells wide once escape sequences are removed.
type Body struct {
	Lines     []string
	Overflows []Overflow
}

// Styler decorates formatted cell text, typically with colour. It must not
// change the visible width of text.
type Styler func(f FieldSpec, v model.UsageValue, text string) string

// Engine places formatted cells at their anchors. It holds no mutable state
// and may be shared.
type Engine struct {
	styler      Styler
	headerStyle func(string) string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStyler decorates every value cell.
func WithStyler(s Styler) EngineOption {
	return func(e *Engine) { e.styler = s }
}

// WithHeaderStyle decorates header titles.
func WithHeaderStyle(style func(string) string) EngineOption {
	return func(e *Engine) { e.headerStyle = style }
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// cell is text to be placed at an absolute column. width is its visible
// width, text may carry escape sequences.
type cell struct {
	name  string
	start int
	width int
	text  string
}

// Layout renders rows for tier. A row with the wrong number of values is a
// configuration defect and fails the whole call with ErrArityMismatch.
// Values that overflow their field are drawn as OverflowMarker and listed
// in Body.Overflows; they never fail the call.
func (e *Engine) Layout(tier *Tier, rows []Row) (Body, error) {
	if tier == nil {
		return Body{}, fmt.Errorf("%w: nil tier", ErrInvalidTierTable)
	}
	cs := tier.Columns
	body := Body{Lines: make([]string, 0, len(rows))}

	for i, row := range rows {
		if len(row.Values) != cs.Arity() {
			return Body{}, fmt.Errorf("%w: tier %s row %d (%q) has %d values, want %d",
				ErrArityMismatch, tier.Name, i, row.Label, len(row.Values), cs.Arity())
		}

		cells := make([]cell, 0, len(cs.Fields)+1)
		cells = append(cells, e.labelCell(cs, row.Label, row.Sub))
		for j, f := range cs.Fields {
			c, err := e.valueCell(f, row.Values[j])
			if err != nil {
				body.Overflows = append(body.Overflows, Overflow{Row: i, Column: f.Column, Err: err})
			}
			cells = append(cells, c)
		}

		line, err := compose(cs, cells)
		if err != nil {
			return Body{}, fmt.Errorf("tier %s row %d: %w", tier.Name, i, err)
		}
		body.Lines = append(body.Lines, line)
	}
	return body, nil
}

// Header renders the column titles, each aligned like the values below it.
func (e *Engine) Header(tier *Tier, labelTitle string) (string, error) {
	cs := tier.Columns
	cells := make([]cell, 0, len(cs.Fields)+1)
	cells = append(cells, e.styledCell(e.labelCell(cs, labelTitle, false)))
	for _, f := range cs.Fields {
		title := f.Title
		if runewidth.StringWidth(title) > f.Width {
			title = runewidth.Truncate(title, f.Width, "")
		}
		c := cell{name: string(f.Column), start: f.Start(), width: f.Width, text: alignText(title, f.Width, f.Anchor)}
		cells = append(cells, e.styledCell(c))
	}
	line, err := compose(cs, cells)
	if err != nil {
		return "", fmt.Errorf("tier %s header: %w", tier.Name, err)
	}
	return line, nil
}

// Summary renders label/value lines whose values end at the right-most
// field's anchor, so they line up with that column. Values take the catalog
// width of their own kind unless that would reach into the label.
func (e *Engine) Summary(tier *Tier, items []SummaryItem) (Body, error) {
	cs := tier.Columns
	last, ok := cs.LastField()
	if !ok {
		return Body{}, fmt.Errorf("%w: tier %s has no fields", ErrInvalidColumnSet, tier.Name)
	}

	body := Body{Lines: make([]string, 0, len(items))}
	for i, item := range items {
		width := kindWidth(item.Value.Kind())
		if last.Stop()-width+1 <= cs.LabelStop() {
			width = last.Width
		}
		f := FieldSpec{
			Column: last.Column,
			Kind:   item.Value.Kind(),
			Width:  width,
			Anchor: AnchorRight,
			At:     last.Stop(),
		}
		c, err := e.valueCell(f, item.Value)
		if err != nil {
			body.Overflows = append(body.Overflows, Overflow{Row: i, Column: f.Column, Err: err})
		}
		line, err := compose(cs, []cell{e.labelCell(cs, item.Label, false), c})
		if err != nil {
			return Body{}, fmt.Errorf("tier %s summary %d: %w", tier.Name, i, err)
		}
		body.Lines = append(body.Lines, line)
	}
	return body, nil
}

func (e *Engine) labelCell(cs ColumnSet, label string, sub bool) cell {
	start := cs.LabelStart()
	if sub {
		start = cs.ContentStart() + cs.SubIndent
	}
	width := cs.LabelStop() - start + 1
	if width <= 0 {
		return cell{name: "label", start: start}
	}
	return cell{name: "label", start: start, width: width, text: util.FitWidth(label, width)}
}

func (e *Engine) valueCell(f FieldSpec, v model.UsageValue) (cell, error) {
	c := cell{name: string(f.Column), start: f.Start(), width: f.Width}
	text, err := FormatValue(v, f.Width, f.Anchor)
	if err != nil {
		c.text = OverflowMarker(f.Width)
		return c, fmt.Errorf("%s: %w", f.Column, err)
	}
	if e.styler != nil {
		text = e.styler(f, v, text)
	}
	c.text = text
	return c, nil
}

func (e *Engine) styledCell(c cell) cell {
	if e.headerStyle != nil && strings.TrimSpace(c.text) != "" {
		c.text = e.headerStyle(c.text)
	}
	return c
}

// compose fills the body of a line (absolute columns 1..Width-2) with the
// cells at their start columns and blanks everywhere else. Overlapping
// cells mean the column set was never validated and fail loudly.
func compose(cs ColumnSet, cells []cell) (string, error) {
	sorted := make([]cell, 0, len(cells))
	for _, c := range cells {
		if c.width > 0 {
			sorted = append(sorted, c)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var b strings.Builder
	pos := 1
	end := cs.Width - 2
	for i, c := range sorted {
		if c.start < pos || c.start+c.width-1 > end {
			prev := "border"
			if i > 0 {
				prev = sorted[i-1].name
			}
			return "", fmt.Errorf("%w: %s at %d..%d collides with %s",
				ErrOverlappingFields, c.name, c.start, c.start+c.width-1, prev)
		}
		b.WriteString(strings.Repeat(" ", c.start-pos))
		b.WriteString(c.text)
		pos = c.start + c.width
	}
	b.WriteString(strings.Repeat(" ", end-pos+1))
	return b.String(), nil
}

func alignText(text string, width int, anchor Anchor) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	switch anchor {
	case AnchorLeft:
		return text + strings.Repeat(" ", gap)
	case AnchorCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return strings.Repeat(" ", gap) + text
	}
}
