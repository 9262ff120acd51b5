package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/hailam/checkersplay/internal/board"
)

// Renderer draws boards as text, optionally with ANSI colors.
type Renderer struct {
	white *color.Color
	black *color.Color
	empty *color.Color
	label *color.Color
}

// NewRenderer creates a renderer. With colored false the output is plain
// text regardless of the terminal.
func NewRenderer(colored bool) *Renderer {
	r := &Renderer{
		white: color.New(color.FgHiWhite, color.Bold),
		black: color.New(color.FgHiRed, color.Bold),
		empty: color.New(color.FgHiBlack),
		label: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.white, r.black, r.empty, r.label} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Board renders b with rank labels on the left and files underneath,
// row 0 at the top.
func (r *Renderer) Board(b *board.Board) string {
	grid := b.DisplayGrid()

	var sb strings.Builder
	for row := 0; row < board.Size; row++ {
		sb.WriteString(r.label.Sprintf("%d", board.Size-row))
		sb.WriteString("  ")
		for col := 0; col < board.Size; col++ {
			sb.WriteString(r.cell(grid[row][col]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   ")
	sb.WriteString(r.label.Sprint("a b c d e f g h"))
	sb.WriteByte('\n')
	return sb.String()
}

func (r *Renderer) cell(c board.Cell) string {
	ch := string(c.Char())
	switch c.Color() {
	case board.White:
		return r.white.Sprint(ch)
	case board.Black:
		return r.black.Sprint(ch)
	}
	return r.empty.Sprint(ch)
}

// Side renders a color name in that color's piece style.
func (r *Renderer) Side(c board.Color) string {
	switch c {
	case board.White:
		return r.white.Sprint(c)
	case board.Black:
		return r.black.Sprint(c)
	}
	return fmt.Sprint(c)
}

// Moves renders a move list on one line.
func (r *Renderer) Moves(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
