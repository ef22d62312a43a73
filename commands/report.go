package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

var reportDescriptions = map[model.ReportShape]string{
	model.ShapeToday:   "Today's usage per model",
	model.ShapeHourly:  "Today's usage per hour",
	model.ShapeDaily:   "Usage per day",
	model.ShapeWeekly:  "Usage per ISO week",
	model.ShapeMonthly: "Usage per month",
}

func newReportCmd(opts *options, shape model.ReportShape) *cobra.Command {
	return &cobra.Command{
		Use:   string(shape),
		Short: reportDescriptions[shape],
		Long: fmt.Sprintf(`%s.

Rows are bucketed in the --timezone zone. The table adapts to the terminal width by
switching between fixed layouts; narrower terminals drop or merge columns.`, reportDescriptions[shape]),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, shape)
		},
	}
}
