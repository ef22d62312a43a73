package layout

import (
	"fmt"
	"sort"
)

// Tier is one supported terminal-width configuration.
type Tier struct {
	Name      string
	Threshold int // smallest observed width that selects this tier
	Rank      int // position in the table's total order; the fallback is 0
	Columns   ColumnSet
}

// Width is the declared total width of every line rendered for the tier.
func (t *Tier) Width() int { return t.Columns.Width }

func (t *Tier) String() string {
	return fmt.Sprintf("%s(%d)", t.Name, t.Width())
}

// TierTable is an ordered set of tiers plus the fallback used for widths
// below the smallest threshold. It is read-only once built and safe to
// share between goroutines.
type TierTable struct {
	fallback *Tier
	tiers    []*Tier // ascending by Threshold
}

// NewTierTable validates and orders the tiers. Thresholds must be distinct
// and every tier must fit within its own threshold, so a classified width
// is never exceeded.
func NewTierTable(fallback Tier, tiers ...Tier) (*TierTable, error) {
	if err := fallback.Columns.Validate(); err != nil {
		return nil, fmt.Errorf("%w: fallback tier %q: %w", ErrInvalidTierTable, fallback.Name, err)
	}
	fb := fallback
	fb.Threshold = 0
	fb.Rank = 0

	sorted := make([]*Tier, len(tiers))
	for i := range tiers {
		t := tiers[i]
		if err := t.Columns.Validate(); err != nil {
			return nil, fmt.Errorf("%w: tier %q: %w", ErrInvalidTierTable, t.Name, err)
		}
		if t.Threshold <= 0 {
			return nil, fmt.Errorf("%w: tier %q has threshold %d", ErrInvalidTierTable, t.Name, t.Threshold)
		}
		if t.Width() > t.Threshold {
			return nil, fmt.Errorf("%w: tier %q is %d wide but selected from %d columns",
				ErrInvalidTierTable, t.Name, t.Width(), t.Threshold)
		}
		sorted[i] = &t
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })

	seen := map[string]bool{fb.Name: true}
	for i, t := range sorted {
		if i > 0 && sorted[i-1].Threshold == t.Threshold {
			return nil, fmt.Errorf("%w: tiers %q and %q share threshold %d",
				ErrInvalidTierTable, sorted[i-1].Name, t.Name, t.Threshold)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("%w: duplicate tier name %q", ErrInvalidTierTable, t.Name)
		}
		seen[t.Name] = true
		t.Rank = i + 1
	}

	return &TierTable{fallback: &fb, tiers: sorted}, nil
}

// Classify maps an observed column count to the tier with the greatest
// threshold not above it. Widths below every threshold, including zero and
// negative values, get the fallback tier.
func (t *TierTable) Classify(columns int) *Tier {
	i := sort.Search(len(t.tiers), func(i int) bool { return t.tiers[i].Threshold > columns })
	if i == 0 {
		return t.fallback
	}
	return t.tiers[i-1]
}

// Fit returns the tier to render for an observed width. It is Classify,
// except that a tier wider than the terminal, which only the fallback can
// be, is rebuilt at the observed width: the label narrows and fields are
// dropped from the left until the rest fits. Widths below MinWidth are drawn
// MinWidth wide. A non-positive width means unknown and is not fitted.
func (t *TierTable) Fit(columns int) *Tier {
	tier := t.Classify(columns)
	if columns <= 0 || tier.Width() <= columns {
		return tier
	}
	return shrink(tier, max(columns, MinWidth))
}

// shrink repacks tier into width cells. Kept fields stay in order, become
// right-anchored and sit one cell apart; the label keeps at least
// minLabelWidth cells for as long as any field remains.
func shrink(tier *Tier, width int) *Tier {
	cs := tier.Columns
	content := width - 4
	fields := cs.Fields
	label := min(cs.LabelWidth, content)
	for len(fields) > 0 {
		span := len(fields) // one gap before each field
		for _, f := range fields {
			span += f.Width
		}
		if room := content - span; room >= min(minLabelWidth, cs.LabelWidth) {
			label = min(cs.LabelWidth, room)
			break
		}
		fields = fields[1:]
	}

	fitted := ColumnSet{
		Width:      width,
		SubIndent:  min(cs.SubIndent-cs.LabelIndent, label),
		LabelWidth: label,
		Fields:     make([]FieldSpec, len(fields)),
	}
	at := fitted.ContentEnd()
	for i := len(fields) - 1; i >= 0; i-- {
		f := fields[i]
		f.Anchor = AnchorRight
		f.At = at
		f.End = 0
		fitted.Fields[i] = f
		at -= f.Width + 1
	}
	return &Tier{Name: tier.Name, Threshold: tier.Threshold, Rank: tier.Rank, Columns: fitted}
}

// Fallback returns the minimal tier.
func (t *TierTable) Fallback() *Tier { return t.fallback }

// Tiers returns every tier in rank order, fallback first.
func (t *TierTable) Tiers() []*Tier {
	out := make([]*Tier, 0, len(t.tiers)+1)
	out = append(out, t.fallback)
	return append(out, t.tiers...)
}

// Lookup finds a tier by name.
func (t *TierTable) Lookup(name string) (*Tier, bool) {
	for _, tier := range t.Tiers() {
		if tier.Name == name {
			return tier, true
		}
	}
	return nil, false
}

// Default tier thresholds.
const (
	NarrowWidth      = 69
	NormalWidth      = 74
	ComfortableWidth = 80
	DetailedWidth    = 81
	WideWidth        = 86
	FullWidth        = 97
	CompactWidth     = 36

	// MinWidth is the narrowest frame that still has a content area.
	MinWidth = 6

	labelWidth    = 10
	minLabelWidth = 4
)

// DefaultTiers returns the fallback and tier definitions of the built-in
// table. Callers can tweak the copies before passing them to NewTierTable.
func DefaultTiers() (Tier, []Tier) {
	fallback := Tier{
		Name:    "compact",
		Columns: PackColumns(CompactWidth, 0, 0, labelWidth, 1, ColTotal, ColCost),
	}
	tiers := []Tier{
		{
			Name:      "narrow",
			Threshold: NarrowWidth,
			Columns:   PackColumns(NarrowWidth, 0, 0, labelWidth, 1, ColInput, ColOutput, ColCache, ColTotal, ColCost),
		},
		{
			Name:      "normal",
			Threshold: NormalWidth,
			Columns:   PackColumns(NormalWidth, 0, 0, labelWidth, 2, ColInput, ColOutput, ColCache, ColTotal, ColCost),
		},
		{
			Name:      "comfortable",
			Threshold: ComfortableWidth,
			Columns:   PackColumns(ComfortableWidth, 1, 3, labelWidth, 2, ColInput, ColOutput, ColCache, ColTotal, ColCost),
		},
		{
			Name:      "detailed",
			Threshold: DetailedWidth,
			Columns: PackColumns(DetailedWidth, 1, 3, labelWidth, 1,
				ColInput, ColOutput, ColCache, ColTotal, ColHitRate, ColCost),
		},
		{
			Name:      "wide",
			Threshold: WideWidth,
			Columns: PackColumns(WideWidth, 2, 4, labelWidth, 1,
				ColInput, ColOutput, ColCacheRead, ColCacheWrite, ColTotal, ColCost),
		},
		{
			Name:      "full",
			Threshold: FullWidth,
			Columns: PackColumns(FullWidth, 2, 4, labelWidth, 1,
				ColInput, ColOutput, ColCacheRead, ColCacheWrite, ColTotal, ColMessages, ColHitRate, ColCost),
		},
	}
	return fallback, tiers
}

// DefaultTierTable builds the built-in table. It panics if the static
// definitions are inconsistent, which tests guard against.
func DefaultTierTable() *TierTable {
	fallback, tiers := DefaultTiers()
	table, err := NewTierTable(fallback, tiers...)
	if err != nil {
		panic(err)
	}
	return table
}
