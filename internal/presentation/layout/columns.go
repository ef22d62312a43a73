package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

// Anchor says how a field's content is pinned to its anchor column.
type Anchor int

const (
	AnchorRight Anchor = iota
	AnchorLeft
	AnchorCenter
)

func (a Anchor) String() string {
	switch a {
	case AnchorLeft:
		return "left"
	case AnchorCenter:
		return "center"
	default:
		return "right"
	}
}

// ParseAnchor is the inverse of Anchor.String. Empty means right.
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(s) {
	case "", "right":
		return AnchorRight, nil
	case "left":
		return AnchorLeft, nil
	case "center", "centre":
		return AnchorCenter, nil
	}
	return 0, fmt.Errorf("unknown anchor %q", s)
}

// Column names the semantic content of a field. The layout engine treats it
// as opaque; report builders use it to pick the value for each cell.
type Column string

const (
	ColInput      Column = "input"
	ColOutput     Column = "output"
	ColCache      Column = "cache"
	ColCacheRead  Column = "cache_read"
	ColCacheWrite Column = "cache_write"
	ColTotal      Column = "total"
	ColCost       Column = "cost"
	ColHitRate    Column = "hit_rate"
	ColMessages   Column = "messages"
)

type columnInfo struct {
	kind  model.ValueKind
	width int
	title string
}

var columnCatalog = map[Column]columnInfo{
	ColInput:      {model.TokenCount, 10, "Input"},
	ColOutput:     {model.TokenCount, 10, "Output"},
	ColCache:      {model.TokenCount, 10, "Cache"},
	ColCacheRead:  {model.TokenCount, 10, "Cache rd"},
	ColCacheWrite: {model.TokenCount, 10, "Cache wr"},
	ColTotal:      {model.TokenCount, 10, "Total"},
	ColCost:       {model.CostAmount, 10, "Cost"},
	ColHitRate:    {model.Percentage, 6, "Hit"},
	ColMessages:   {model.PlainCount, 6, "Msgs"},
}

// kindWidth is the catalog width for values of kind.
func kindWidth(kind model.ValueKind) int {
	switch kind {
	case model.CostAmount:
		return columnCatalog[ColCost].width
	case model.Percentage:
		return columnCatalog[ColHitRate].width
	case model.PlainCount:
		return columnCatalog[ColMessages].width
	}
	return columnCatalog[ColTotal].width
}

// KnownColumn reports whether c has catalog defaults.
func KnownColumn(c Column) bool {
	_, ok := columnCatalog[c]
	return ok
}

// FieldSpec describes one cell of every row rendered with a column set.
// Width never depends on the value; the formatter always fills it exactly.
type FieldSpec struct {
	Column Column
	Kind   model.ValueKind
	Title  string
	Width  int
	Anchor Anchor
	// At is the absolute line column the anchor refers to: the first cell
	// for left anchors, the last cell for right anchors, and the first
	// cell of the centring range for centre anchors.
	At int
	// End is the last cell of the centring range. Unused otherwise.
	End int
}

// NewField returns a right-anchored field with catalog defaults for col.
func NewField(col Column, at int) FieldSpec {
	info, ok := columnCatalog[col]
	if !ok {
		info = columnInfo{model.TokenCount, 10, string(col)}
	}
	return FieldSpec{
		Column: col,
		Kind:   info.kind,
		Title:  info.title,
		Width:  info.width,
		Anchor: AnchorRight,
		At:     at,
	}
}

// Start is the absolute column of the field's first cell.
func (f FieldSpec) Start() int {
	switch f.Anchor {
	case AnchorLeft:
		return f.At
	case AnchorCenter:
		return f.At + (f.End-f.At+1-f.Width)/2
	default:
		return f.At - f.Width + 1
	}
}

// Stop is the absolute column of the field's last cell.
func (f FieldSpec) Stop() int {
	return f.Start() + f.Width - 1
}

// ColumnSet is the static geometry of one tier. Lines are laid out as
//
//	│ <label> <fields...> │
//
// with the vertical borders at columns 0 and Width-1 and one blank padding
// cell inside each border. Content therefore spans columns 2..Width-3.
type ColumnSet struct {
	Width       int
	LabelIndent int // A2: offset of top-level row labels from the content start
	SubIndent   int // A3: offset of breakdown row labels
	LabelWidth  int
	Fields      []FieldSpec
}

// ContentStart is the first column available to labels and fields.
func (c ColumnSet) ContentStart() int { return 2 }

// ContentEnd is the last column available to labels and fields.
func (c ColumnSet) ContentEnd() int { return c.Width - 3 }

// BodyWidth is the width of a line without its two vertical borders.
func (c ColumnSet) BodyWidth() int { return c.Width - 2 }

// LabelStart is the first column of top-level row labels.
func (c ColumnSet) LabelStart() int { return c.ContentStart() + c.LabelIndent }

// LabelStop is the last column of the label region, shared by all rows.
func (c ColumnSet) LabelStop() int { return c.LabelStart() + c.LabelWidth - 1 }

// Arity is the number of values every row must supply.
func (c ColumnSet) Arity() int { return len(c.Fields) }

// Field returns the spec for col.
func (c ColumnSet) Field(col Column) (FieldSpec, bool) {
	for _, f := range c.Fields {
		if f.Column == col {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Columns lists the column names in declaration order.
func (c ColumnSet) Columns() []Column {
	cols := make([]Column, len(c.Fields))
	for i, f := range c.Fields {
		cols[i] = f.Column
	}
	return cols
}

// LastField is the right-most field; key/value lines align to it.
func (c ColumnSet) LastField() (FieldSpec, bool) {
	if len(c.Fields) == 0 {
		return FieldSpec{}, false
	}
	last := c.Fields[0]
	for _, f := range c.Fields[1:] {
		if f.Stop() > last.Stop() {
			last = f
		}
	}
	return last, true
}

type span struct {
	name        string
	start, stop int
}

// Validate checks that every cell fits inside the content area and that no
// two cells (label region included) share a column. Together with the fill
// rules of the engine this guarantees that every line is exactly Width wide.
func (c ColumnSet) Validate() error {
	if c.Width < 6 {
		return fmt.Errorf("%w: width %d leaves no content area", ErrInvalidColumnSet, c.Width)
	}
	if c.LabelIndent < 0 || c.SubIndent < c.LabelIndent || c.LabelWidth < 0 {
		return fmt.Errorf("%w: label indent %d, sub indent %d, width %d",
			ErrInvalidColumnSet, c.LabelIndent, c.SubIndent, c.LabelWidth)
	}
	if c.SubIndent-c.LabelIndent > c.LabelWidth {
		return fmt.Errorf("%w: sub indent %d exceeds label width %d", ErrInvalidColumnSet, c.SubIndent, c.LabelWidth)
	}

	spans := make([]span, 0, len(c.Fields)+1)
	if c.LabelWidth > 0 {
		spans = append(spans, span{"label", c.LabelStart(), c.LabelStop()})
	}
	for _, f := range c.Fields {
		if f.Width <= 0 {
			return fmt.Errorf("%w: field %q has width %d", ErrInvalidColumnSet, f.Column, f.Width)
		}
		if f.Anchor == AnchorCenter && f.End-f.At+1 < f.Width {
			return fmt.Errorf("%w: field %q centring range %d..%d is narrower than %d",
				ErrInvalidColumnSet, f.Column, f.At, f.End, f.Width)
		}
		spans = append(spans, span{string(f.Column), f.Start(), f.Stop()})
	}

	for _, s := range spans {
		if s.start < c.ContentStart() || s.stop > c.ContentEnd() {
			return fmt.Errorf("%w: %s spans %d..%d outside content %d..%d",
				ErrInvalidColumnSet, s.name, s.start, s.stop, c.ContentStart(), c.ContentEnd())
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start <= spans[i-1].stop {
			return fmt.Errorf("%w: %s (%d..%d) and %s (%d..%d)", ErrOverlappingFields,
				spans[i-1].name, spans[i-1].start, spans[i-1].stop,
				spans[i].name, spans[i].start, spans[i].stop)
		}
	}
	return nil
}

// PackColumns builds a column set whose fields are right-anchored and packed
// leftwards from the content end, gap cells apart. Slack ends up between the
// label and the first field.
func PackColumns(width, labelIndent, subIndent, labelWidth, gap int, cols ...Column) ColumnSet {
	cs := ColumnSet{
		Width:       width,
		LabelIndent: labelIndent,
		SubIndent:   subIndent,
		LabelWidth:  labelWidth,
		Fields:      make([]FieldSpec, len(cols)),
	}
	at := cs.ContentEnd()
	for i := len(cols) - 1; i >= 0; i-- {
		f := NewField(cols[i], at)
		cs.Fields[i] = f
		at -= f.Width + gap
	}
	return cs
}
