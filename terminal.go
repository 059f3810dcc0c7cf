package termart

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	// MaxWidth caps the default grid width
	MaxWidth = 100
	// BorderMargin is left free for a surrounding panel border and padding
	BorderMargin = 4
	// FallbackTermWidth is used when the terminal width cannot be detected
	FallbackTermWidth = 80
)

// TerminalWidth returns the width of the terminal attached to stdout in
// columns. It falls back to $COLUMNS and then to FallbackTermWidth.
func TerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return FallbackTermWidth
}

// DefaultWidth derives a grid width from a terminal width: the margin for the
// border is removed and the result capped at MaxWidth.
func DefaultWidth(termWidth int) (int, error) {
	width := min(termWidth-BorderMargin, MaxWidth)
	if width < 1 {
		return 0, fmt.Errorf("terminal too narrow (%d columns): %w", termWidth, ErrInvalidWidth)
	}
	return width, nil
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
