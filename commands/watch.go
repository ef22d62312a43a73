package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-claude-usage/internal/analyzer"
	"github.com/penwyp/go-claude-usage/internal/data/watcher"
	"github.com/penwyp/go-claude-usage/internal/presentation/display"
	"github.com/penwyp/go-claude-usage/internal/util"
)

// refreshInterval redraws even without file changes so that a resized
// terminal or a new day is picked up.
const refreshInterval = 30 * time.Second

func runWatch(parent context.Context, a *analyzer.Analyzer, term *display.Terminal, opts *options) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(expandPath(opts.dataDir), watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	term.EnterAlternateScreen()
	defer term.ExitAlternateScreen()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		a.SetWidth(term.Width(opts.width))
		res, err := a.Run()
		if err != nil {
			return err
		}
		if err := term.Redraw(res.Lines); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			util.LogDebug("Watch mode stopped")
			return nil
		case <-fw.Changes():
			util.LogDebug("Logs changed, redrawing")
		case <-ticker.C:
		}
	}
}
