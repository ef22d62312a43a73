package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonRow struct {
	Label       string    `json:"label"`
	Models      []string  `json:"models,omitempty"`
	Input       int64     `json:"inputTokens"`
	Output      int64     `json:"outputTokens"`
	CacheRead   int64     `json:"cacheReadTokens"`
	CacheWrite  int64     `json:"cacheWriteTokens"`
	TotalTokens int64     `json:"totalTokens"`
	Messages    int64     `json:"messages"`
	HitRate     float64   `json:"cacheHitRate"`
	Cost        float64   `json:"costUSD"`
	Savings     float64   `json:"cacheSavingsUSD"`
	Breakdown   []jsonRow `json:"breakdown,omitempty"`
}

type jsonReport struct {
	Shape       string    `json:"report"`
	GeneratedAt time.Time `json:"generatedAt"`
	Timezone    string    `json:"timezone"`
	Rows        []jsonRow `json:"rows"`
	Total       jsonRow   `json:"total"`
}

func toJSONRow(r model.ReportRow) jsonRow {
	row := jsonRow{
		Label:       r.Label,
		Models:      r.Models,
		Input:       r.Input,
		Output:      r.Output,
		CacheRead:   r.CacheRead,
		CacheWrite:  r.CacheWrite,
		TotalTokens: r.Total(),
		Messages:    r.Messages,
		HitRate:     r.HitRate(),
		Cost:        r.Cost,
		Savings:     r.Savings,
	}
	for _, sub := range r.Breakdown {
		row.Breakdown = append(row.Breakdown, toJSONRow(sub))
	}
	return row
}

func (f *JSONFormatter) Format(w io.Writer, report model.Report) error {
	out := jsonReport{
		Shape:       string(report.Shape),
		GeneratedAt: report.GeneratedAt,
		Timezone:    report.Timezone,
		Rows:        make([]jsonRow, 0, len(report.Rows)),
		Total:       toJSONRow(report.Total),
	}
	for _, r := range report.Rows {
		out.Rows = append(out.Rows, toJSONRow(r))
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
