// Package board implements the checkers board, its move generator and notation.
package board

import "fmt"

// Size is the number of rows and columns on the board.
const Size = 8

// Square identifies a board cell by row and column (both 0-7).
// Row 0 is Black's home edge, row 7 is White's.
type Square struct {
	Row, Col int
}

// NoSquare represents an invalid square.
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// IsDark returns true for the squares pieces may stand on.
func (sq Square) IsDark() bool {
	return (sq.Row+sq.Col)%2 == 1
}

// Offset returns the square shifted by (dr, dc). The result may be off the board.
func (sq Square) Offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// Between returns the midpoint of two squares two diagonals apart.
func Between(a, b Square) Square {
	return Square{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}

// String returns the algebraic name of the square (e.g. "b6").
// Files a-h map to columns 0-7, ranks 1-8 map to rows 7-0.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '1'+(Size-1-sq.Row))
}

// ParseSquare parses algebraic notation (e.g. "c3") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q", ErrBadNotation, s)
	}

	col := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if col < 0 || col >= Size || rank < 0 || rank >= Size {
		return NoSquare, fmt.Errorf("%w: square %q", ErrBadNotation, s)
	}

	return NewSquare(Size-1-rank, col), nil
}
