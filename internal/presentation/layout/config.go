package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

// TierTableConfig is the YAML form of a tier table:
//
//	fallback:
//	  name: compact
//	  width: 36
//	  columns: [total, cost]
//	tiers:
//	  - name: narrow
//	    threshold: 69
//	    columns: [input, output, cache, total, cost]
//	  - name: custom
//	    threshold: 100
//	    fields:
//	      - {column: cost, anchor: right, at: 96}
type TierTableConfig struct {
	Fallback TierConfig   `yaml:"fallback"`
	Tiers    []TierConfig `yaml:"tiers"`
}

// TierConfig describes one tier. Either Columns (packed right to left) or
// Fields (explicit anchors) is used; Fields wins when both are set.
type TierConfig struct {
	Name        string        `yaml:"name"`
	Threshold   int           `yaml:"threshold"`
	Width       int           `yaml:"width"`
	LabelIndent int           `yaml:"label_indent"`
	SubIndent   int           `yaml:"sub_indent"`
	LabelWidth  *int          `yaml:"label_width"`
	Gap         *int          `yaml:"gap"`
	Columns     []Column      `yaml:"columns"`
	Fields      []FieldConfig `yaml:"fields"`
}

// FieldConfig describes one explicit field. Missing kind, width and title
// come from the column catalog.
type FieldConfig struct {
	Column Column `yaml:"column"`
	Kind   string `yaml:"kind"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Anchor string `yaml:"anchor"`
	At     int    `yaml:"at"`
	End    int    `yaml:"end"`
}

// LoadTierTable reads a YAML tier table from path.
func LoadTierTable(path string) (*TierTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tier table: %w", err)
	}
	table, err := ParseTierTable(data)
	if err != nil {
		return nil, fmt.Errorf("tier table %s: %w", path, err)
	}
	return table, nil
}

// ParseTierTable builds a validated tier table from YAML.
func ParseTierTable(data []byte) (*TierTable, error) {
	var cfg TierTableConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTierTable, err)
	}
	return cfg.Build()
}

// Build converts the configuration into a TierTable.
func (c TierTableConfig) Build() (*TierTable, error) {
	if len(c.Tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidTierTable)
	}
	fallback, err := c.Fallback.tier()
	if err != nil {
		return nil, err
	}
	tiers := make([]Tier, 0, len(c.Tiers))
	for _, tc := range c.Tiers {
		t, err := tc.tier()
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return NewTierTable(fallback, tiers...)
}

func (c TierConfig) tier() (Tier, error) {
	width := c.Width
	if width == 0 {
		width = c.Threshold
	}
	if c.Name == "" {
		return Tier{}, fmt.Errorf("%w: tier without a name", ErrInvalidTierTable)
	}
	lw := labelWidth
	if c.LabelWidth != nil {
		lw = *c.LabelWidth
	}
	gap := 1
	if c.Gap != nil {
		gap = *c.Gap
	}
	subIndent := c.SubIndent
	if subIndent < c.LabelIndent {
		subIndent = c.LabelIndent
	}

	var cs ColumnSet
	switch {
	case len(c.Fields) > 0:
		cs = ColumnSet{Width: width, LabelIndent: c.LabelIndent, SubIndent: subIndent, LabelWidth: lw}
		for _, fc := range c.Fields {
			f, err := fc.field()
			if err != nil {
				return Tier{}, fmt.Errorf("%w: tier %q: %w", ErrInvalidTierTable, c.Name, err)
			}
			cs.Fields = append(cs.Fields, f)
		}
	case len(c.Columns) > 0:
		for _, col := range c.Columns {
			if !KnownColumn(col) {
				return Tier{}, fmt.Errorf("%w: tier %q: unknown column %q", ErrInvalidTierTable, c.Name, col)
			}
		}
		cs = PackColumns(width, c.LabelIndent, subIndent, lw, gap, c.Columns...)
	default:
		return Tier{}, fmt.Errorf("%w: tier %q has no columns", ErrInvalidTierTable, c.Name)
	}

	return Tier{Name: c.Name, Threshold: c.Threshold, Columns: cs}, nil
}

func (fc FieldConfig) field() (FieldSpec, error) {
	f := NewField(fc.Column, fc.At)
	if fc.Kind != "" {
		kind, err := model.ParseValueKind(fc.Kind)
		if err != nil {
			return FieldSpec{}, err
		}
		f.Kind = kind
	} else if !KnownColumn(fc.Column) {
		return FieldSpec{}, fmt.Errorf("column %q needs an explicit kind", fc.Column)
	}
	anchor, err := ParseAnchor(fc.Anchor)
	if err != nil {
		return FieldSpec{}, err
	}
	f.Anchor = anchor
	if fc.Width > 0 {
		f.Width = fc.Width
	}
	if fc.Title != "" {
		f.Title = fc.Title
	}
	f.End = fc.End
	return f, nil
}
