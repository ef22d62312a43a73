package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKindRoundTrip(t *testing.T) {
	for _, k := range []ValueKind{TokenCount, CostAmount, Percentage, PlainCount} {
		got, err := ParseValueKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseValueKind("bytes")
	assert.Error(t, err)
	assert.Equal(t, "kind(9)", ValueKind(9).String())
}

func TestUsageValueConstructors(t *testing.T) {
	assert.Equal(t, TokenCount, Tokens(5).Kind())
	assert.Equal(t, int64(5), Tokens(5).Int())
	assert.Equal(t, CostAmount, Cost(1.5).Kind())
	assert.Equal(t, 1.5, Cost(1.5).Float())
	assert.Equal(t, Percentage, Percent(50).Kind())
	assert.Equal(t, PlainCount, Count(3).Kind())
	assert.Equal(t, "cost(1.5)", Cost(1.5).String())
}

func TestReportShapeTitles(t *testing.T) {
	tests := []struct {
		shape ReportShape
		title string
		label string
	}{
		{ShapeToday, "Today", "Model"},
		{ShapeHourly, "Hourly usage", "Hour"},
		{ShapeDaily, "Daily usage", "Date"},
		{ShapeWeekly, "Weekly usage", "Week"},
		{ShapeMonthly, "Monthly usage", "Month"},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			assert.Equal(t, tt.title, tt.shape.Title())
			assert.Equal(t, tt.label, tt.shape.LabelTitle())
		})
	}
	assert.Len(t, Shapes, 5)
}

func TestReportRow(t *testing.T) {
	var row ReportRow
	assert.Zero(t, row.HitRate())

	row.Add(UsageEvent{Input: 100, Output: 50, CacheRead: 300, CacheWrite: 100}, 1.25, 0.5)
	row.Add(UsageEvent{Input: 100, Output: 50}, 0.75, 0)

	assert.Equal(t, int64(700), row.Total())
	assert.Equal(t, int64(400), row.Cache())
	assert.Equal(t, int64(2), row.Messages)
	assert.InDelta(t, 2.0, row.Cost, 1e-9)
	assert.InDelta(t, 0.5, row.Savings, 1e-9)
	assert.InDelta(t, 50.0, row.HitRate(), 1e-9)

	var total ReportRow
	total.Merge(row)
	total.Merge(row)
	assert.Equal(t, int64(1400), total.Total())
	assert.Equal(t, int64(4), total.Messages)
}
