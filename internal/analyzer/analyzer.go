package analyzer

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/core/pricing"
	"github.com/penwyp/go-claude-usage/internal/data/aggregator"
	"github.com/penwyp/go-claude-usage/internal/data/parser"
	"github.com/penwyp/go-claude-usage/internal/data/scanner"
	"github.com/penwyp/go-claude-usage/internal/presentation/formatter"
	"github.com/penwyp/go-claude-usage/internal/presentation/layout"
	"github.com/penwyp/go-claude-usage/internal/util"
)

// Config is everything a report run needs. Width is the already resolved
// terminal width.
type Config struct {
	DataDir     string
	Shape       model.ReportShape
	Output      string
	Width       int
	Color       bool
	Breakdown   bool
	Limit       int
	Check       bool
	Concurrency int
	Clock       *util.TimeProvider
	Tiers       *layout.TierTable
	Prices      *pricing.Table
}

// Result is one rendered report.
type Result struct {
	Report      model.Report
	Lines       []string
	Tier        *layout.Tier // nil unless the output is a table
	Diagnostics []layout.Diagnostic
	Overflows   []layout.Overflow
}

// Analyzer runs the scan, parse, aggregate and render pipeline. The parser
// keeps its per-file cache between runs, so repeated runs in watch mode
// only re-read changed files.
type Analyzer struct {
	config     *Config
	scanner    *scanner.FileScanner
	parser     *parser.Parser
	aggregator *aggregator.Aggregator
	table      *formatter.BoxFormatter
	formatter  formatter.Formatter
}

func New(config *Config) (*Analyzer, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.NumCPU()
	}
	if config.Shape == "" {
		config.Shape = model.ShapeToday
	}
	if config.Clock == nil {
		clock, err := util.NewTimeProvider("Local")
		if err != nil {
			return nil, err
		}
		config.Clock = clock
	}
	if config.Prices == nil {
		config.Prices = pricing.DefaultTable()
	}

	f, err := formatter.New(config.Output, formatter.Options{
		Tiers: config.Tiers,
		Width: config.Width,
		Color: config.Color,
	})
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		config:  config,
		scanner: scanner.NewFileScanner(config.DataDir),
		parser:  parser.NewParser(config.Concurrency),
		aggregator: aggregator.NewAggregator(config.Prices, config.Clock,
			aggregator.WithBreakdown(config.Breakdown),
			aggregator.WithLimit(config.Limit)),
		formatter: f,
	}
	if box, ok := f.(*formatter.BoxFormatter); ok {
		a.table = box
	}
	return a, nil
}

// Collect scans and parses the logs and aggregates them into a report.
func (a *Analyzer) Collect() (model.Report, error) {
	startTime := time.Now()

	files, err := a.scanner.Scan()
	if err != nil {
		return model.Report{}, fmt.Errorf("failed to scan files: %w", err)
	}
	scanDuration := time.Since(startTime)
	if len(files) == 0 {
		util.LogWarnf("No JSONL files found in %s", a.scanner.BaseDir())
	}

	parseStart := time.Now()
	events, err := a.parser.Load(files)
	if err != nil {
		return model.Report{}, err
	}
	parseDuration := time.Since(parseStart)

	report := a.aggregator.Aggregate(a.config.Shape, events)
	util.LogDebugf("Collected %s report: %d files, %d events, %d rows (scan:%v parse:%v total:%v)",
		a.config.Shape, len(files), len(events), len(report.Rows), scanDuration, parseDuration, time.Since(startTime))
	return report, nil
}

// Run collects and renders a report. In check mode table output is
// validated and the diagnostics are returned with the result.
func (a *Analyzer) Run() (Result, error) {
	report, err := a.Collect()
	if err != nil {
		return Result{}, err
	}
	return a.Render(report)
}

// Render formats an already collected report.
func (a *Analyzer) Render(report model.Report) (Result, error) {
	res := Result{Report: report}

	if a.table != nil {
		rendered, err := a.table.Render(report)
		if err != nil {
			return Result{}, fmt.Errorf("rendering %s report: %w", report.Shape, err)
		}
		res.Lines = rendered.Lines
		res.Tier = rendered.Tier
		res.Overflows = rendered.Overflows
		if a.config.Check {
			res.Diagnostics = formatter.Check(rendered)
		}
		return res, nil
	}

	var buf bytes.Buffer
	if err := a.formatter.Format(&buf, report); err != nil {
		return Result{}, err
	}
	res.Lines = strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	return res, nil
}

// SetWidth changes the width later table renders are laid out for. Watch
// mode calls it after the terminal is resized.
func (a *Analyzer) SetWidth(width int) {
	if a.config.Width == width {
		return
	}
	a.config.Width = width
	if a.table != nil {
		a.table = formatter.NewBoxFormatter(a.config.Tiers, width, a.config.Color)
		a.formatter = a.table
	}
}
