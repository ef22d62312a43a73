package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/presentation/layout"
	"github.com/penwyp/go-claude-usage/internal/util"
)

func sampleReport() model.Report {
	day1 := model.ReportRow{
		Label: "2025-01-01", Models: []string{model.ModelOpus45},
		Input: 20_000_000, Output: 5_000_000, CacheRead: 90_000_000, CacheWrite: 5_000_000,
		Messages: 120, Cost: 180.12, Savings: 40.5,
		Breakdown: []model.ReportRow{{
			Label: model.ModelOpus45, Models: []string{model.ModelOpus45},
			Input: 20_000_000, Output: 5_000_000, CacheRead: 90_000_000, CacheWrite: 5_000_000,
			Messages: 120, Cost: 180.12, Savings: 40.5,
		}},
	}
	day2 := model.ReportRow{
		Label: "2025-01-02", Models: []string{model.ModelOpus45, model.ModelSonnet45},
		Input: 30_000_000, Output: 9_500_000, CacheRead: 140_000_000, CacheWrite: 10_000_000,
		Messages: 230, Cost: 284.10, Savings: 61.3,
	}
	report := model.Report{
		Shape:       model.ShapeDaily,
		GeneratedAt: time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC),
		Timezone:    "UTC",
		Rows:        []model.ReportRow{day1, day2},
		Total:       model.ReportRow{Label: "Total"},
	}
	report.Total.Merge(day1)
	report.Total.Merge(day2)
	report.Total.Models = []string{model.ModelOpus45, model.ModelSonnet45}
	return report
}

func TestBoxFormatterNarrow(t *testing.T) {
	r, err := NewBoxFormatter(nil, 69, false).Render(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "narrow", r.Tier.Name)
	for i, line := range r.Lines {
		assert.Equal(t, 69, util.GetDisplayWidth(line), "line %d: %q", i, line)
	}
	assert.True(t, strings.HasPrefix(r.Lines[0], "╭─ Daily usage - 464.22 USD "))
	assert.True(t, strings.HasPrefix(r.Lines[len(r.Lines)-1], "╰"))
	assert.Empty(t, Check(r))
	assert.Empty(t, r.Overflows)

	joined := strings.Join(r.Lines, "\n")
	assert.Contains(t, joined, "309.5 Mtok")
	assert.Contains(t, joined, "464.22 USD")
	assert.Contains(t, joined, "2025-01-02")
	assert.Contains(t, joined, "Saved")
}

func TestBoxFormatterEveryWidth(t *testing.T) {
	report := sampleReport()
	for w := 30; w <= 200; w += 7 {
		r, err := NewBoxFormatter(nil, w, false).Render(report)
		require.NoError(t, err)
		assert.LessOrEqual(t, r.Tier.Width(), max(w, layout.CompactWidth))
		assert.Empty(t, Check(r), "width %d", w)
	}
}

func TestBoxFormatterBelowFallbackWidth(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		columns []layout.Column
		footer  bool
	}{
		{"drops total", 20, []layout.Column{layout.ColCost}, true},
		{"labels only", 12, []layout.Column{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewBoxFormatter(nil, tt.width, false).Render(sampleReport())
			require.NoError(t, err)

			assert.Equal(t, tt.width, r.Tier.Width())
			assert.Equal(t, tt.columns, r.Tier.Columns.Columns())
			for i, line := range r.Lines {
				assert.Equal(t, tt.width, util.GetDisplayWidth(line), "line %d: %q", i, line)
			}
			assert.Equal(t, tt.footer, strings.Contains(strings.Join(r.Lines, "\n"), "Saved"))
			assert.Empty(t, Check(r))
		})
	}
}

func TestCheckFlagsTierWiderThanTerminal(t *testing.T) {
	r, err := NewBoxFormatter(nil, 40, false).Render(sampleReport())
	require.NoError(t, err)
	require.Empty(t, Check(r))

	r.Width = 20
	diags := Check(r)
	require.Len(t, diags, 1)
	assert.Equal(t, layout.CheckWidth, diags[0].Check)
	assert.Equal(t, 20, diags[0].Column)
}

func TestBoxFormatterDetailedTier(t *testing.T) {
	r, err := NewBoxFormatter(nil, 85, false).Render(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, layout.DetailedWidth, r.Tier.Width())
	assert.Contains(t, strings.Join(r.Lines, "\n"), "Hit")
	assert.Empty(t, Check(r))
}

func TestBoxFormatterBreakdownIndent(t *testing.T) {
	r, err := NewBoxFormatter(nil, 97, false).Render(sampleReport())
	require.NoError(t, err)

	cs := r.Tier.Columns
	var found bool
	for _, line := range r.Lines {
		if i := strings.Index(line, model.ModelOpus45); i >= 0 {
			assert.Equal(t, cs.ContentStart()+cs.SubIndent, util.GetDisplayWidth(line[:i]))
			found = true
		}
	}
	assert.True(t, found)
}

func TestBoxFormatterColor(t *testing.T) {
	enabled := util.ColorEnabled()
	util.SetColorEnabled(true)
	defer util.SetColorEnabled(enabled)

	r, err := NewBoxFormatter(nil, 80, true).Render(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, strings.Join(r.Lines, ""), "\x1b[")
	for _, line := range r.Lines {
		assert.Equal(t, 80, util.GetDisplayWidth(line))
	}
	assert.Empty(t, Check(r))
}

func TestBoxFormatterEmptyReport(t *testing.T) {
	report := model.Report{Shape: model.ShapeToday, Total: model.ReportRow{Label: "Total"}}

	var buf bytes.Buffer
	require.NoError(t, NewBoxFormatter(nil, 74, false).Format(&buf, report))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, 74, util.GetDisplayWidth(line))
	}
	assert.Contains(t, buf.String(), "Today - 0.00 USD")
	assert.Contains(t, buf.String(), "Total")
	assert.Empty(t, layout.Validate(layout.DefaultTierTable().Classify(74), lines))
}

func TestBoxFormatterOverflow(t *testing.T) {
	report := sampleReport()
	report.Total.Cost = 2_000_000

	r, err := NewBoxFormatter(nil, 69, false).Render(report)
	require.NoError(t, err)
	require.Len(t, r.Overflows, 1)
	assert.Equal(t, layout.ColCost, r.Overflows[0].Column)
	assert.Contains(t, strings.Join(r.Lines, "\n"), "##########")
	assert.Empty(t, Check(r))
}

func TestBoxFormatterUnknownColumn(t *testing.T) {
	fallback, _ := layout.DefaultTiers()
	custom := layout.Tier{Name: "custom", Threshold: 50, Columns: layout.ColumnSet{
		Width: 50, LabelWidth: 10,
		Fields: []layout.FieldSpec{{Column: "latency", Kind: model.PlainCount, Width: 6, At: 47}},
	}}
	table, err := layout.NewTierTable(fallback, custom)
	require.NoError(t, err)

	_, err = NewBoxFormatter(table, 60, false).Render(sampleReport())
	assert.ErrorIs(t, err, layout.ErrInvalidColumnSet)
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "table", "JSON", "csv"} {
		f, err := New(name, Options{Width: 80})
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := New("xml", Options{})
	assert.Error(t, err)
}
