package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-usage/internal/util"
)

func TestBorderTop(t *testing.T) {
	b := NewBorderRenderer()

	tests := []struct {
		name  string
		width int
		title string
		want  string
	}{
		{"plain", 10, "", "╭────────╮"},
		{"titled", 20, "Daily", "╭─ Daily ──────────╮"},
		{"truncated", 12, "Monthly usage", "╭─ Month… ─╮"},
		{"no_room", 5, "Daily", "╭───╮"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Top(tt.width, tt.title)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.width, util.GetDisplayWidth(got))
		})
	}
}

func TestBorderRuleAndBottom(t *testing.T) {
	b := NewBorderRenderer()
	assert.Equal(t, "├──────┤", b.Rule(8))
	assert.Equal(t, "╰──────╯", b.Bottom(8))
}

func TestBorderWrap(t *testing.T) {
	b := NewBorderRenderer()
	assert.Equal(t, "│ ab │", b.Wrap(6, " ab "))
	assert.Equal(t, "│ a  │", b.Wrap(6, " a"))
	assert.Equal(t, 6, util.GetDisplayWidth(b.Wrap(6, " too long for it")))
}

func TestFrameSections(t *testing.T) {
	tier := DefaultTierTable().Fallback()
	b := NewBorderRenderer()
	b.TitleStyle = func(s string) string { return "\x1b[1m" + s + "\x1b[0m" }

	blank := strings.Repeat(" ", tier.Columns.BodyWidth())
	lines := b.Frame(tier, "Today", []string{blank}, nil, []string{blank, blank})
	require.Len(t, lines, 6)

	assert.True(t, strings.HasPrefix(lines[0], "╭─ "))
	assert.Contains(t, lines[0], "\x1b[1mToday")
	assert.True(t, strings.HasPrefix(lines[2], "├"))
	assert.True(t, strings.HasPrefix(lines[5], "╰"))
	for _, line := range lines {
		assert.Equal(t, tier.Width(), util.GetDisplayWidth(line))
	}
	assert.Empty(t, Validate(tier, lines))
}
