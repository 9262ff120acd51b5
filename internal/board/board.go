package board

import (
	"fmt"
	"strings"
)

// DefaultKingWeight is the material value of a king relative to a man.
const DefaultKingWeight = 5

// Board is the 8x8 grid of cells.
// It is a plain value: copying a Board (or calling Clone) yields an
// independent grid, so lookahead never touches the game board.
type Board struct {
	cells [Size][Size]Cell
}

// New creates the starting position: 12 Black men on rows 0-2 and
// 12 White men on rows 5-7, on the dark squares.
func New() *Board {
	b, _ := ParseLayout(StartLayout)
	return b
}

// NewEmpty creates a board with no pieces.
func NewEmpty() *Board {
	return &Board{}
}

// Clone creates a deep copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// At returns the cell at sq. Squares off the board read as Empty.
func (b *Board) At(sq Square) Cell {
	if !sq.IsValid() {
		return Empty
	}
	return b.cells[sq.Row][sq.Col]
}

// Set places c on sq. Squares off the board are ignored.
func (b *Board) Set(sq Square, c Cell) {
	if !sq.IsValid() {
		return
	}
	b.cells[sq.Row][sq.Col] = c
}

// IsEmpty returns true if sq is on the board and holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return sq.IsValid() && b.cells[sq.Row][sq.Col] == Empty
}

// Count returns the number of men and kings of color c.
func (b *Board) Count(c Color) (men, kings int) {
	man, king := NewCell(c, Man), NewCell(c, King)
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			switch b.cells[r][col] {
			case man:
				men++
			case king:
				kings++
			}
		}
	}
	return men, kings
}

// PieceValue counts c's pieces, weighting each king by kingWeight.
func (b *Board) PieceValue(c Color, kingWeight int) int {
	men, kings := b.Count(c)
	return men + kings*kingWeight
}

// NetPieceValue returns PieceValue(c) minus the opponent's PieceValue.
func (b *Board) NetPieceValue(c Color, kingWeight int) int {
	return b.PieceValue(c, kingWeight) - b.PieceValue(c.Other(), kingWeight)
}

// ApplyMove validates m for the piece standing on its origin and then plays it.
// On error the board is unchanged.
func (b *Board) ApplyMove(m Move) error {
	mover := b.At(m.From())
	if mover == Empty {
		if len(m) == 0 {
			return ErrEmptyMove
		}
		return fmt.Errorf("%w: %v", ErrNoPiece, m.From())
	}
	if err := b.ValidateMove(mover.Color(), m); err != nil {
		return err
	}
	b.MakeMove(m)
	return nil
}

// MakeMove plays m without validation. Use it only with moves produced by
// the move generator for this board.
//
// Each step relocates the piece; a step spanning two rows removes the piece
// on its midpoint. Promotion is decided once, by the final resting square.
func (b *Board) MakeMove(m Move) {
	for _, s := range m {
		if s.IsJump() {
			b.Set(s.Captured(), Empty)
		}
		b.Set(s.To, b.At(s.From))
		b.Set(s.From, Empty)
	}

	to := m.To()
	piece := b.At(to)
	if piece.Rank() == Man && to.Row == piece.Color().PromotionRow() {
		b.Set(to, piece.Crowned())
	}
}

// DisplayGrid returns a copy of the cells for rendering.
func (b *Board) DisplayGrid() [Size][Size]Cell {
	return b.cells
}

// String returns a text diagram of the board, row 0 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		fmt.Fprintf(&sb, "%d  ", Size-r)
		for c := 0; c < Size; c++ {
			sb.WriteByte(b.cells[r][c].Char())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
