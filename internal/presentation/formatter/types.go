package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/presentation/layout"
)

// Formatter writes a report to w.
type Formatter interface {
	Format(w io.Writer, report model.Report) error
}

// Output formats accepted by New.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputCSV   = "csv"
)

// Options configures the table formatter. JSON and CSV ignore them.
type Options struct {
	Tiers *layout.TierTable
	Width int
	Color bool
}

// New returns the formatter for an output name.
func New(output string, opts Options) (Formatter, error) {
	switch strings.ToLower(output) {
	case "", OutputTable:
		return NewBoxFormatter(opts.Tiers, opts.Width, opts.Color), nil
	case OutputJSON:
		return NewJSONFormatter(), nil
	case OutputCSV:
		return NewCSVFormatter(), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table, json or csv)", output)
}
