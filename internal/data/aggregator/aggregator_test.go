package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/core/pricing"
	"github.com/penwyp/go-claude-usage/internal/util"
)

var now = time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 5, 0, 0, time.UTC)
}

func sampleEvents() []model.UsageEvent {
	return []model.UsageEvent{
		{Timestamp: at(12, 9), Model: "claude-opus-4-5-20251101", Input: 1_000_000, CacheRead: 1_000_000},
		{Timestamp: at(12, 9), Model: "claude-sonnet-4-5-20250514", Output: 1_000_000},
		{Timestamp: at(12, 15), Model: "claude-sonnet-4-5-20250514", Input: 500_000},
		{Timestamp: at(11, 23), Model: "claude-3-haiku-20240307", Input: 4_000_000},
		{Timestamp: at(3, 10), Model: "claude-opus-4-5-20251101", Output: 100},
		{Timestamp: time.Date(2025, 2, 27, 10, 0, 0, 0, time.UTC), Model: "mystery", Input: 10},
		{Timestamp: at(12, 10), Model: "claude-opus-4-5-20251101"},
	}
}

func newAggregator(opts ...Option) *Aggregator {
	return NewAggregator(pricing.DefaultTable(), util.NewFixedTimeProvider(now), opts...)
}

func labels(rows []model.ReportRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}

func TestAggregateToday(t *testing.T) {
	report := newAggregator().Aggregate(model.ShapeToday, sampleEvents())

	require.Equal(t, []string{model.ModelOpus45, model.ModelSonnet45}, labels(report.Rows))
	opus := report.Rows[0]
	assert.Equal(t, int64(1), opus.Messages)
	assert.InDelta(t, 5.5, opus.Cost, 1e-9)
	assert.InDelta(t, 4.5, opus.Savings, 1e-9)
	assert.InDelta(t, 50.0, opus.HitRate(), 1e-9)

	sonnet := report.Rows[1]
	assert.Equal(t, int64(2), sonnet.Messages)
	assert.InDelta(t, 16.5, sonnet.Cost, 1e-9)

	assert.Equal(t, "Total", report.Total.Label)
	assert.Equal(t, int64(3_500_000), report.Total.Total())
	assert.InDelta(t, 22.0, report.Total.Cost, 1e-9)
	assert.Equal(t, []string{model.ModelOpus45, model.ModelSonnet45}, report.Total.Models)
	assert.Equal(t, "UTC", report.Timezone)
}

func TestAggregateHourly(t *testing.T) {
	report := newAggregator().Aggregate(model.ShapeHourly, sampleEvents())
	assert.Equal(t, []string{"09:00", "15:00"}, labels(report.Rows))
	assert.Equal(t, int64(2), report.Rows[0].Messages)
	assert.Equal(t, []string{model.ModelOpus45, model.ModelSonnet45}, report.Rows[0].Models)
}

func TestAggregatePeriods(t *testing.T) {
	tests := []struct {
		shape model.ReportShape
		want  []string
	}{
		{model.ShapeDaily, []string{"2025-02-27", "2025-03-03", "2025-03-11", "2025-03-12"}},
		{model.ShapeWeekly, []string{"2025-W09", "2025-W10", "2025-W11"}},
		{model.ShapeMonthly, []string{"2025-02", "2025-03"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			report := newAggregator().Aggregate(tt.shape, sampleEvents())
			assert.Equal(t, tt.want, labels(report.Rows))
			assert.Equal(t, int64(6), report.Total.Messages)
			assert.Empty(t, report.Rows[0].Breakdown)
		})
	}
}

func TestAggregateBreakdownAndLimit(t *testing.T) {
	report := newAggregator(WithBreakdown(true), WithLimit(2)).Aggregate(model.ShapeDaily, sampleEvents())

	require.Equal(t, []string{"2025-03-11", "2025-03-12"}, labels(report.Rows))
	assert.Equal(t, []string{model.ModelHaiku}, labels(report.Rows[0].Breakdown))
	assert.Equal(t, []string{model.ModelOpus45, model.ModelSonnet45}, labels(report.Rows[1].Breakdown))

	var sub int64
	for _, b := range report.Rows[1].Breakdown {
		sub += b.Total()
	}
	assert.Equal(t, report.Rows[1].Total(), sub)
	assert.Equal(t, int64(4), report.Total.Messages)
}

func TestAggregateTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	clock := util.NewFixedTimeProvider(now.In(tokyo))

	report := NewAggregator(pricing.DefaultTable(), clock).Aggregate(model.ShapeDaily, []model.UsageEvent{
		{Timestamp: at(11, 23), Model: "sonnet", Input: 1},
	})
	assert.Equal(t, []string{"2025-03-12"}, labels(report.Rows))
}

func TestAggregateEmpty(t *testing.T) {
	report := newAggregator().Aggregate(model.ShapeDaily, nil)
	assert.True(t, report.Empty())
	assert.Zero(t, report.Total.Total())
	assert.Equal(t, "Total", report.Total.Label)
}
