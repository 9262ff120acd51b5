package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Forward returns the row delta a man of this color moves by.
// White advances toward row 0, Black toward row 7.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PromotionRow returns the row on which a man of this color is crowned.
func (c Color) PromotionRow() int {
	if c == White {
		return 0
	}
	return 7
}

// ParseColor parses "w"/"white"/"b"/"black".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "W", "white", "White":
		return White, true
	case "b", "B", "black", "Black":
		return Black, true
	}
	return NoColor, false
}

// Rank distinguishes men from kings.
type Rank uint8

const (
	Man Rank = iota
	King
	NoRank Rank = 2
)

// String returns the rank name.
func (r Rank) String() string {
	switch r {
	case Man:
		return "Man"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Cell is the content of one board square.
type Cell uint8

const (
	Empty Cell = iota
	WhiteMan
	BlackMan
	WhiteKing
	BlackKing
)

// NewCell creates a Cell from a Color and Rank.
func NewCell(c Color, r Rank) Cell {
	if c >= NoColor || r >= NoRank {
		return Empty
	}
	return Cell(1 + uint8(c) + 2*uint8(r))
}

// Color returns the color of the piece, or NoColor for an empty cell.
func (c Cell) Color() Color {
	if c == Empty || c > BlackKing {
		return NoColor
	}
	return Color((c - 1) % 2)
}

// Rank returns the rank of the piece, or NoRank for an empty cell.
func (c Cell) Rank() Rank {
	if c == Empty || c > BlackKing {
		return NoRank
	}
	return Rank((c - 1) / 2)
}

// IsKing reports whether the cell holds a king.
func (c Cell) IsKing() bool {
	return c == WhiteKing || c == BlackKing
}

// Crowned returns the king of the same color. Kings and empty cells are unchanged.
func (c Cell) Crowned() Cell {
	switch c {
	case WhiteMan:
		return WhiteKing
	case BlackMan:
		return BlackKing
	}
	return c
}

// Char returns the layout character for the cell.
// Lowercase for men, uppercase for kings.
func (c Cell) Char() byte {
	chars := []byte{'.', 'w', 'b', 'W', 'B'}
	if c > BlackKing {
		return '?'
	}
	return chars[c]
}

// String returns the layout character as a string.
func (c Cell) String() string {
	return string(c.Char())
}

// CellFromChar converts a layout character to a Cell.
func CellFromChar(ch byte) (Cell, bool) {
	switch ch {
	case '.', '_', '-':
		return Empty, true
	case 'w':
		return WhiteMan, true
	case 'b':
		return BlackMan, true
	case 'W':
		return WhiteKing, true
	case 'B':
		return BlackKing, true
	default:
		return Empty, false
	}
}
