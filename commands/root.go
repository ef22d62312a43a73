package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-usage/internal/analyzer"
	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/core/pricing"
	"github.com/penwyp/go-claude-usage/internal/data/scanner"
	"github.com/penwyp/go-claude-usage/internal/presentation/display"
	"github.com/penwyp/go-claude-usage/internal/presentation/formatter"
	"github.com/penwyp/go-claude-usage/internal/presentation/layout"
	"github.com/penwyp/go-claude-usage/internal/util"
)

const defaultLogFile = "~/.claude-usage/logs/app.log"

// options holds every flag value. Each command tree gets its own copy so
// tests can execute commands repeatedly.
type options struct {
	// Logging related
	debug bool

	// Data path
	dataDir string

	// Output related
	outputFormat string
	timezone     string
	width        int
	noColor      bool

	// Filtering and grouping
	limit     int
	breakdown bool

	// Layout and pricing files
	layoutConfig string
	pricingFile  string

	check bool
	watch bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "claude-usage [today|hourly|daily|weekly|monthly] [flags]",
		Short: "Claude Code token usage and cost reports",
		Long: `claude-usage reads the Claude Code conversation logs and prints token usage and cost reports
that fit the width of the terminal.

Examples:
  claude-usage                          # Today's usage per model
  claude-usage daily --breakdown        # Usage per day with a per-model breakdown
  claude-usage weekly --limit 4         # The last four ISO weeks
  claude-usage monthly -o json          # Machine readable output
  claude-usage --width 69 --check       # Render for 69 columns and validate the layout
  claude-usage hourly --watch           # Redraw whenever the logs change`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, model.ShapeToday)
		},
	}

	flags := rootCmd.PersistentFlags()

	// Input data configuration
	flags.StringVar(&opts.dataDir, "dir", scanner.DefaultDir,
		"Claude project directory path")

	// Data organization
	flags.IntVar(&opts.limit, "limit", 0,
		"Keep only the most recent N periods (0 = unlimited)")
	flags.BoolVarP(&opts.breakdown, "breakdown", "b", false,
		"Show per-model rows below each period")

	// Output configuration
	flags.StringVarP(&opts.outputFormat, "output", "o", formatter.OutputTable,
		"Output format (table, json, csv)")
	flags.IntVar(&opts.width, "width", 0,
		"Render width in columns (default: COLUMNS, then the terminal size, then 80)")
	flags.BoolVar(&opts.noColor, "no-color", false,
		"Disable coloured output")
	flags.StringVar(&opts.timezone, "timezone", "Local",
		"Timezone used to bucket usage (e.g., Asia/Shanghai, UTC)")
	flags.StringVar(&opts.layoutConfig, "layout-config", "",
		"YAML file replacing the built-in width tiers")
	flags.StringVar(&opts.pricingFile, "pricing", "",
		"YAML file overriding per-model prices (USD per million tokens)")

	// Validation and live mode
	flags.BoolVar(&opts.check, "check", false,
		"Validate the rendered table and fail on any layout defect")
	flags.BoolVar(&opts.watch, "watch", false,
		"Redraw the report whenever the logs change")

	// System and debugging
	flags.BoolVar(&opts.debug, "debug", false,
		"Enable debug mode")

	rootCmd.MarkFlagsMutuallyExclusive("check", "watch")

	for _, shape := range model.Shapes {
		rootCmd.AddCommand(newReportCmd(opts, shape))
	}
	return rootCmd
}

// Execute runs the command line against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func runReport(cmd *cobra.Command, opts *options, shape model.ReportShape) error {
	if err := initLogging(opts.debug); err != nil {
		return err
	}

	term := display.NewTerminal(cmd.OutOrStdout())
	config, err := buildConfig(opts, shape, term)
	if err != nil {
		return err
	}

	a, err := analyzer.New(config)
	if err != nil {
		return err
	}

	if opts.watch {
		return runWatch(cmd.Context(), a, term, opts)
	}

	res, err := a.Run()
	if err != nil {
		return err
	}
	if err := term.WriteLines(res.Lines); err != nil {
		return err
	}
	if opts.check {
		return reportDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
	}
	return nil
}

func initLogging(debug bool) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		// The log file is optional; fall back to debug console output only.
		logFile = ""
	}
	return util.InitLogger(logLevel, logFile, debug)
}

func buildConfig(opts *options, shape model.ReportShape, term *display.Terminal) (*analyzer.Config, error) {
	if opts.limit < 0 {
		return nil, fmt.Errorf("invalid --limit %d: must not be negative", opts.limit)
	}
	if opts.width < 0 {
		return nil, fmt.Errorf("invalid --width %d: must not be negative", opts.width)
	}

	clock, err := util.NewTimeProvider(opts.timezone)
	if err != nil {
		return nil, err
	}

	config := &analyzer.Config{
		DataDir:     expandPath(opts.dataDir),
		Shape:       shape,
		Output:      strings.ToLower(opts.outputFormat),
		Width:       term.Width(opts.width),
		Breakdown:   opts.breakdown,
		Limit:       opts.limit,
		Check:       opts.check,
		Concurrency: runtime.NumCPU(),
		Clock:       clock,
	}
	if config.Check && config.Output != "" && config.Output != formatter.OutputTable {
		return nil, fmt.Errorf("--check validates table output only, got --output %s", config.Output)
	}

	if opts.noColor {
		util.SetColorEnabled(false)
	}
	config.Color = util.ColorEnabled() && term.IsTerminal()

	if opts.layoutConfig != "" {
		tiers, err := layout.LoadTierTable(expandPath(opts.layoutConfig))
		if err != nil {
			return nil, err
		}
		config.Tiers = tiers
	}
	if opts.pricingFile != "" {
		prices, err := pricing.LoadTable(expandPath(opts.pricingFile))
		if err != nil {
			return nil, err
		}
		config.Prices = prices
	}

	util.LogDebugf("Report config: shape=%s output=%s width=%d dir=%s tz=%s",
		shape, config.Output, config.Width, config.DataDir, clock.Location())
	return config, nil
}

// reportDiagnostics prints one line per layout defect and fails when there
// is at least one.
func reportDiagnostics(w io.Writer, diags []layout.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	for _, d := range diags {
		fmt.Fprintln(w, d.String())
	}
	return fmt.Errorf("%w: %d diagnostic(s)", layout.ErrLayoutInvalid, len(diags))
}

// IsLayoutError reports whether err came from a failed --check.
func IsLayoutError(err error) bool {
	return errors.Is(err, layout.ErrLayoutInvalid)
}

// Helper functions

func expandPath(path string) string {
	path = util.ExpandHome(path)
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
