// Package base holds the state shared by the checkers subcommands.
package base

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/hailam/checkersplay/internal/app"
	"github.com/hailam/checkersplay/internal/board"
)

// Flags are bound to the root command's persistent flags.
var Flags app.Flags

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
)

// Heading prints a highlighted title line.
func Heading(w io.Writer, format string, args ...any) {
	heading.Fprintf(w, format+"\n", args...)
}

// Good prints a success line.
func Good(w io.Writer, format string, args ...any) {
	good.Fprintf(w, format+"\n", args...)
}

// Bad prints a failure line.
func Bad(w io.Writer, format string, args ...any) {
	bad.Fprintf(w, format+"\n", args...)
}

// Position parses a layout string and side to move given on the command
// line. An empty layout is the starting position.
func Position(layout, toMove string) (*board.Board, board.Color, error) {
	c, ok := board.ParseColor(toMove)
	if !ok {
		return nil, board.NoColor, fmt.Errorf("unknown color %q", toMove)
	}
	if layout == "" {
		return board.New(), c, nil
	}
	b, err := board.ParseLayout(layout)
	if err != nil {
		return nil, board.NoColor, err
	}
	return b, c, nil
}
