package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	maxWidth     = 120
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputWidth returns the terminal width of w capped at maxWidth, or
// defaultWidth when w is not a terminal.
func outputWidth(w io.Writer) int {
	if !isTerminal(w) {
		return defaultWidth
	}
	cols, _, err := term.GetSize(int(w.(*os.File).Fd()))
	if err != nil || cols <= 0 {
		return defaultWidth
	}
	return min(cols, maxWidth)
}

// wrapIndented word-wraps s to width and indents every line by pad spaces.
func wrapIndented(s string, width, pad int) string {
	wrapped := wordwrap.String(strings.TrimSpace(s), max(width-pad, 20))
	return indent.String(wrapped, uint(pad))
}

// truncate shortens s to at most w display cells.
func truncate(s string, w int) string {
	return runewidth.Truncate(s, w, "…")
}

// padRight pads s with spaces to w display cells.
func padRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}
