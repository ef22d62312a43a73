package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

var csvHeaders = []string{
	"Period", "Models", "Input", "Output", "Cache Read", "Cache Write",
	"Total Tokens", "Messages", "Hit Rate", "Cost (USD)", "Savings (USD)",
}

// Format writes one record per row, breakdown rows right after their
// parent with the model in the Models column, and a final Total record.
func (f *CSVFormatter) Format(w io.Writer, report model.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := cw.Write(csvRecord(row.Label, row)); err != nil {
			return err
		}
		for _, sub := range row.Breakdown {
			if err := cw.Write(csvRecord(row.Label, sub)); err != nil {
				return err
			}
		}
	}
	if err := cw.Write(csvRecord(report.Total.Label, report.Total)); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(period string, r model.ReportRow) []string {
	return []string{
		period,
		strings.Join(r.Models, " "),
		strconv.FormatInt(r.Input, 10),
		strconv.FormatInt(r.Output, 10),
		strconv.FormatInt(r.CacheRead, 10),
		strconv.FormatInt(r.CacheWrite, 10),
		strconv.FormatInt(r.Total(), 10),
		strconv.FormatInt(r.Messages, 10),
		strconv.FormatFloat(r.HitRate(), 'f', 1, 64),
		strconv.FormatFloat(r.Cost, 'f', 2, 64),
		strconv.FormatFloat(r.Savings, 'f', 2, 64),
	}
}
