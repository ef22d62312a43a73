package model

import "time"

// ReportRow is one aggregated line of a report. Breakdown holds per-model
// rows when a breakdown was requested.
type ReportRow struct {
	Label      string      `json:"label"`
	Models     []string    `json:"models,omitempty"`
	Input      int64       `json:"input"`
	Output     int64       `json:"output"`
	CacheRead  int64       `json:"cacheRead"`
	CacheWrite int64       `json:"cacheWrite"`
	Messages   int64       `json:"messages"`
	Cost       float64     `json:"cost"`
	Savings    float64     `json:"savings"`
	Breakdown  []ReportRow `json:"breakdown,omitempty"`
}

// Add folds one event and its priced cost into the row.
func (r *ReportRow) Add(ev UsageEvent, cost, savings float64) {
	r.Input += ev.Input
	r.Output += ev.Output
	r.CacheRead += ev.CacheRead
	r.CacheWrite += ev.CacheWrite
	r.Messages++
	r.Cost += cost
	r.Savings += savings
}

// Merge adds the totals of other into r. Labels and breakdowns are kept.
func (r *ReportRow) Merge(other ReportRow) {
	r.Input += other.Input
	r.Output += other.Output
	r.CacheRead += other.CacheRead
	r.CacheWrite += other.CacheWrite
	r.Messages += other.Messages
	r.Cost += other.Cost
	r.Savings += other.Savings
}

// Total is the sum of every token category.
func (r ReportRow) Total() int64 {
	return r.Input + r.Output + r.CacheRead + r.CacheWrite
}

// Cache is the sum of cache reads and writes.
func (r ReportRow) Cache() int64 {
	return r.CacheRead + r.CacheWrite
}

// HitRate is the share of prompt tokens served from cache, in percent.
func (r ReportRow) HitRate() float64 {
	prompt := r.Input + r.CacheRead + r.CacheWrite
	if prompt == 0 {
		return 0
	}
	return float64(r.CacheRead) / float64(prompt) * 100
}

// Report is the aggregated result for one shape.
type Report struct {
	Shape       ReportShape `json:"shape"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Timezone    string      `json:"timezone"`
	Rows        []ReportRow `json:"rows"`
	Total       ReportRow   `json:"total"`
}

// Empty reports whether no usage was found.
func (r Report) Empty() bool {
	return len(r.Rows) == 0
}
