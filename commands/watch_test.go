package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-usage/internal/analyzer"
	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/presentation/display"
	"github.com/penwyp/go-claude-usage/internal/util"
)

func TestRunWatchStopsOnCancel(t *testing.T) {
	dir := setupEnv(t)
	opts := &options{dataDir: dir, width: 69}

	a, err := analyzer.New(&analyzer.Config{DataDir: dir, Shape: model.ShapeDaily, Width: 80})
	require.NoError(t, err)

	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, runWatch(ctx, a, display.NewTerminal(&out), opts))

	lines := outputLines(out.String())
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, 69, util.GetDisplayWidth(line))
	}
}

func TestRunWatchMissingDir(t *testing.T) {
	setupEnv(t)
	missing := filepath.Join(t.TempDir(), "absent")
	opts := &options{dataDir: missing}

	a, err := analyzer.New(&analyzer.Config{DataDir: missing, Shape: model.ShapeDaily})
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Error(t, runWatch(context.Background(), a, display.NewTerminal(&out), opts))
	assert.Empty(t, out.String())
}
