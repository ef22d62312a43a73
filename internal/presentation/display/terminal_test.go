package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWidth(t *testing.T) {
	measured := func(w int) func() (int, error) {
		return func() (int, error) { return w, nil }
	}
	failing := func() (int, error) { return 0, errors.New("not a terminal") }

	tests := []struct {
		name     string
		override int
		columns  string
		measure  func() (int, error)
		want     int
	}{
		{"override wins", 69, "120", measured(100), 69},
		{"columns env", 0, "86", measured(100), 86},
		{"columns with spaces", 0, " 97 ", nil, 97},
		{"invalid columns falls through", 0, "wide", measured(100), 100},
		{"measured", 0, "", measured(74), 74},
		{"measure error", 0, "", failing, DefaultWidth},
		{"nothing known", 0, "", nil, DefaultWidth},
		{"capped", 300, "", nil, MaxWidth},
		{"capped env", 0, "1000", nil, MaxWidth},
		{"negative override ignored", -5, "81", nil, 81},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveWidth(tt.override, tt.columns, tt.measure))
		})
	}
}

func TestTerminalNonTTY(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	assert.False(t, term.IsTerminal())

	t.Setenv("COLUMNS", "")
	assert.Equal(t, DefaultWidth, term.Width(0))
	assert.Equal(t, 70, term.Width(70))

	term.EnterAlternateScreen()
	require.NoError(t, term.Redraw([]string{"a", "b"}))
	term.ExitAlternateScreen()
	assert.Equal(t, "a\nb\n", buf.String())
}
