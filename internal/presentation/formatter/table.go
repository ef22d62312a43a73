package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/presentation/layout"
	"github.com/penwyp/go-claude-usage/internal/util"
)

// Rendered is a framed report together with the tier it was laid out for
// and the terminal width it was meant to fit.
type Rendered struct {
	Tier      *layout.Tier
	Width     int
	Lines     []string
	Overflows []layout.Overflow
}

// BoxFormatter renders reports as a bordered table sized for a terminal.
type BoxFormatter struct {
	tiers  *layout.TierTable
	width  int
	engine *layout.Engine
	border *layout.BorderRenderer
}

// NewBoxFormatter creates a formatter for an observed terminal width. A nil
// table means the built-in tiers.
func NewBoxFormatter(tiers *layout.TierTable, width int, color bool) *BoxFormatter {
	if tiers == nil {
		tiers = layout.DefaultTierTable()
	}
	f := &BoxFormatter{
		tiers:  tiers,
		width:  width,
		engine: layout.NewEngine(),
		border: layout.NewBorderRenderer(),
	}
	if color {
		f.engine = layout.NewEngine(
			layout.WithStyler(styleCell),
			layout.WithHeaderStyle(util.FormatHeaderTitle),
		)
		f.border.TitleStyle = util.FormatBorderTitle
	}
	return f
}

func styleCell(field layout.FieldSpec, v model.UsageValue, text string) string {
	if v.Kind() == model.CostAmount {
		return util.ColorizeCost(text, v.Float())
	}
	return text
}

// Format renders report and writes it to w.
func (f *BoxFormatter) Format(w io.Writer, report model.Report) error {
	r, err := f.Render(report)
	if err != nil {
		return err
	}
	for _, line := range r.Lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Render lays out report for the tier matching the formatter's width:
// header, one row per period (with model sub-rows when present), the total
// row and a footer with cache savings and hit rate.
func (f *BoxFormatter) Render(report model.Report) (Rendered, error) {
	tier := f.tiers.Fit(f.width)
	cs := tier.Columns
	util.LogDebug("Rendering report", util.F("shape", string(report.Shape)), util.F("width", f.width), util.F("tier", tier.String()))

	header, err := f.engine.Header(tier, report.Shape.LabelTitle())
	if err != nil {
		return Rendered{}, err
	}

	var rows []layout.Row
	for _, r := range report.Rows {
		row, err := tableRow(cs, r, false)
		if err != nil {
			return Rendered{}, err
		}
		rows = append(rows, row)
		for _, sub := range r.Breakdown {
			subRow, err := tableRow(cs, sub, true)
			if err != nil {
				return Rendered{}, err
			}
			rows = append(rows, subRow)
		}
	}
	body, err := f.engine.Layout(tier, rows)
	if err != nil {
		return Rendered{}, err
	}

	totalRow, err := tableRow(cs, report.Total, false)
	if err != nil {
		return Rendered{}, err
	}
	total, err := f.engine.Layout(tier, []layout.Row{totalRow})
	if err != nil {
		return Rendered{}, err
	}

	// A terminal too narrow for any field gets labels only and no footer.
	var footer layout.Body
	if cs.Arity() > 0 {
		footer, err = f.engine.Summary(tier, []layout.SummaryItem{
			{Label: "Saved", Value: model.Cost(report.Total.Savings)},
			{Label: "Hit rate", Value: model.Percent(report.Total.HitRate())},
		})
		if err != nil {
			return Rendered{}, err
		}
	}

	overflows := append(append(body.Overflows, total.Overflows...), footer.Overflows...)
	for _, o := range overflows {
		util.LogDebug("Cell overflow", util.F("tier", tier.Name), util.F("row", o.Row),
			util.F("column", string(o.Column)), util.F("error", o.Err.Error()))
	}

	title := fmt.Sprintf("%s - %s", report.Shape.Title(), util.FormatUSD(report.Total.Cost))
	lines := f.border.Frame(tier, title, []string{header}, body.Lines, total.Lines, footer.Lines)
	return Rendered{Tier: tier, Width: f.width, Lines: lines, Overflows: overflows}, nil
}

// Check validates a rendered report against its tier and the terminal
// width it was rendered for.
func Check(r Rendered) []layout.Diagnostic {
	return layout.ValidateFit(r.Tier, r.Lines, r.Width)
}

func tableRow(cs layout.ColumnSet, r model.ReportRow, sub bool) (layout.Row, error) {
	values := make([]model.UsageValue, len(cs.Fields))
	for i, field := range cs.Fields {
		v, ok := columnValue(field.Column, r)
		if !ok {
			return layout.Row{}, fmt.Errorf("%w: no report data for column %q", layout.ErrInvalidColumnSet, field.Column)
		}
		values[i] = v
	}
	return layout.Row{Label: r.Label, Values: values, Sub: sub}, nil
}

func columnValue(col layout.Column, r model.ReportRow) (model.UsageValue, bool) {
	switch col {
	case layout.ColInput:
		return model.Tokens(r.Input), true
	case layout.ColOutput:
		return model.Tokens(r.Output), true
	case layout.ColCache:
		return model.Tokens(r.Cache()), true
	case layout.ColCacheRead:
		return model.Tokens(r.CacheRead), true
	case layout.ColCacheWrite:
		return model.Tokens(r.CacheWrite), true
	case layout.ColTotal:
		return model.Tokens(r.Total()), true
	case layout.ColCost:
		return model.Cost(r.Cost), true
	case layout.ColHitRate:
		return model.Percent(r.HitRate()), true
	case layout.ColMessages:
		return model.Count(r.Messages), true
	}
	return model.UsageValue{}, false
}
