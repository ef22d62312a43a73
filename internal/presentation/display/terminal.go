package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/penwyp/go-claude-usage/internal/util"
)

const (
	DefaultWidth = 80
	MaxWidth     = 200
)

// ResolveWidth picks the render width: an explicit override, then the
// COLUMNS value, then the measured terminal size, then DefaultWidth. The
// result is capped at MaxWidth. Non-positive values count as unset.
func ResolveWidth(override int, columnsEnv string, measure func() (int, error)) int {
	width := override
	if width <= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(columnsEnv)); err == nil && n > 0 {
			width = n
		}
	}
	if width <= 0 && measure != nil {
		if n, err := measure(); err == nil && n > 0 {
			width = n
		} else if err != nil {
			util.LogDebugf("Terminal size unavailable: %v", err)
		}
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return min(width, MaxWidth)
}

// Terminal writes rendered reports to an output stream. When the stream is
// a terminal it can redraw in the alternate screen for watch mode.
type Terminal struct {
	out               io.Writer
	fd                int
	isTTY             bool
	inAlternateScreen bool
}

// NewTerminal wraps out. Only *os.File outputs are checked for a terminal.
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out, fd: -1}
	if f, ok := out.(*os.File); ok {
		t.fd = int(f.Fd())
		t.isTTY = term.IsTerminal(t.fd)
	}
	return t
}

// IsTerminal reports whether the output is an interactive terminal.
func (t *Terminal) IsTerminal() bool {
	return t.isTTY
}

// Width resolves the render width for this output.
func (t *Terminal) Width(override int) int {
	var measure func() (int, error)
	if t.isTTY {
		measure = func() (int, error) {
			w, _, err := term.GetSize(t.fd)
			return w, err
		}
	}
	return ResolveWidth(override, os.Getenv("COLUMNS"), measure)
}

// WriteLines writes each line followed by a newline.
func (t *Terminal) WriteLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(t.out, line); err != nil {
			return err
		}
	}
	return nil
}

// EnterAlternateScreen switches to the alternate screen buffer and hides
// the cursor. It is a no-op when the output is not a terminal.
func (t *Terminal) EnterAlternateScreen() {
	if !t.isTTY || t.inAlternateScreen {
		return
	}
	fmt.Fprint(t.out, ansi.SetAltScreenSaveCursorMode+ansi.EraseEntireScreen+ansi.CursorHomePosition+ansi.HideCursor)
	t.inAlternateScreen = true
}

// ExitAlternateScreen restores the normal screen and cursor.
func (t *Terminal) ExitAlternateScreen() {
	if !t.inAlternateScreen {
		return
	}
	fmt.Fprint(t.out, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode)
	t.inAlternateScreen = false
}

// Redraw replaces the screen contents with lines. Outside the alternate
// screen it simply appends them.
func (t *Terminal) Redraw(lines []string) error {
	if t.inAlternateScreen {
		if _, err := fmt.Fprint(t.out, ansi.EraseEntireScreen+ansi.CursorHomePosition); err != nil {
			return err
		}
	}
	return t.WriteLines(lines)
}
