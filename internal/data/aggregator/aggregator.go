package aggregator

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/core/pricing"
	"github.com/penwyp/go-claude-usage/internal/util"
)

// Aggregator groups usage events into report rows for a shape. It is
// stateless apart from its configuration and safe for concurrent use.
type Aggregator struct {
	prices    *pricing.Table
	clock     *util.TimeProvider
	breakdown bool
	limit     int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithBreakdown adds per-model sub-rows to every period row.
func WithBreakdown(enabled bool) Option {
	return func(a *Aggregator) { a.breakdown = enabled }
}

// WithLimit keeps only the most recent n period rows. Zero keeps all.
func WithLimit(n int) Option {
	return func(a *Aggregator) { a.limit = n }
}

// NewAggregator creates an aggregator pricing events with prices and
// bucketing them in the clock's timezone.
func NewAggregator(prices *pricing.Table, clock *util.TimeProvider, opts ...Option) *Aggregator {
	a := &Aggregator{prices: prices, clock: clock}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// priced is an event with its pricing key and cost resolved once.
type priced struct {
	model.UsageEvent
	key     string
	cost    float64
	savings float64
}

// Aggregate builds the report for shape. Rows are ordered oldest first,
// except for today's report which lists models opus, sonnet, haiku.
func (a *Aggregator) Aggregate(shape model.ReportShape, events []model.UsageEvent) model.Report {
	now := a.clock.Now()
	report := model.Report{
		Shape:       shape,
		GeneratedAt: now,
		Timezone:    a.clock.Location().String(),
	}

	items := lo.FilterMap(events, func(ev model.UsageEvent, _ int) (priced, bool) {
		if !ev.HasUsage() {
			return priced{}, false
		}
		if (shape == model.ShapeToday || shape == model.ShapeHourly) && !a.clock.SameDay(ev.Timestamp, now) {
			return priced{}, false
		}
		key := pricing.ModelKey(ev.Model)
		return priced{
			UsageEvent: ev,
			key:        key,
			cost:       a.prices.Cost(key, ev),
			savings:    a.prices.CacheSavings(key, ev.CacheRead),
		}, true
	})

	if shape == model.ShapeToday {
		report.Rows = a.byModel(items)
	} else {
		report.Rows = a.byPeriod(shape, items)
	}

	for _, row := range report.Rows {
		report.Total.Merge(row)
	}
	report.Total.Label = "Total"
	report.Total.Models = util.SortModels(lo.Uniq(lo.FlatMap(report.Rows, func(r model.ReportRow, _ int) []string {
		return r.Models
	})))

	util.LogDebugf("Aggregated %d events into %d %s rows", len(items), len(report.Rows), shape)
	return report
}

func (a *Aggregator) byPeriod(shape model.ReportShape, items []priced) []model.ReportRow {
	groups := lo.GroupBy(items, func(p priced) string {
		return a.bucket(shape, p.Timestamp)
	})
	labels := lo.Keys(groups)
	sort.Strings(labels)
	if a.limit > 0 && len(labels) > a.limit {
		labels = labels[len(labels)-a.limit:]
	}

	rows := make([]model.ReportRow, 0, len(labels))
	for _, label := range labels {
		row := sum(label, groups[label])
		if a.breakdown {
			row.Breakdown = a.byModel(groups[label])
		}
		rows = append(rows, row)
	}
	return rows
}

func (a *Aggregator) byModel(items []priced) []model.ReportRow {
	groups := lo.GroupBy(items, func(p priced) string { return p.key })
	keys := util.SortModels(lo.Keys(groups))
	return lo.Map(keys, func(key string, _ int) model.ReportRow {
		return sum(key, groups[key])
	})
}

func sum(label string, items []priced) model.ReportRow {
	row := model.ReportRow{Label: label}
	for _, p := range items {
		row.Add(p.UsageEvent, p.cost, p.savings)
		if !slices.Contains(row.Models, p.key) {
			row.Models = append(row.Models, p.key)
		}
	}
	row.Models = util.SortModels(row.Models)
	return row
}

// bucket returns the sortable label of the period containing t.
func (a *Aggregator) bucket(shape model.ReportShape, t time.Time) string {
	lt := a.clock.In(t)
	switch shape {
	case model.ShapeHourly:
		return lt.Format("15:00")
	case model.ShapeWeekly:
		year, week := lt.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case model.ShapeMonthly:
		return lt.Format("2006-01")
	default:
		return lt.Format("2006-01-02")
	}
}
