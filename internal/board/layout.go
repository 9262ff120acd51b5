package board

import (
	"fmt"
	"strings"
)

// StartLayout is the layout string for the starting position.
// Rows are listed from row 0 (Black's home edge) to row 7 (White's).
const StartLayout = ".b.b.b.b/b.b.b.b./.b.b.b.b/......../......../w.w.w.w./.w.w.w.w/w.w.w.w."

// ParseLayout parses a layout string into a Board.
//
// A layout is 8 rows separated by '/', row 0 first. Each row is 8 cells:
// '.' empty, 'w'/'b' men, 'W'/'B' kings. A digit 1-8 may stand for that many
// empty cells. Pieces on light squares are rejected.
func ParseLayout(layout string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(layout), "/")
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: layout needs %d rows, got %d", ErrBadNotation, Size, len(rows))
	}

	b := NewEmpty()
	for r, row := range rows {
		col := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			cell, ok := CellFromChar(ch)
			if !ok {
				return nil, fmt.Errorf("%w: layout row %d: unexpected %q", ErrBadNotation, r, ch)
			}
			if col >= Size {
				return nil, fmt.Errorf("%w: layout row %d is too long", ErrBadNotation, r)
			}
			sq := NewSquare(r, col)
			if cell != Empty && !sq.IsDark() {
				return nil, fmt.Errorf("%w: layout row %d: piece on light square %v", ErrBadNotation, r, sq)
			}
			b.Set(sq, cell)
			col++
		}
		if col != Size {
			return nil, fmt.Errorf("%w: layout row %d has %d cells", ErrBadNotation, r, col)
		}
	}

	return b, nil
}

// Layout returns the layout string of the board, one character per cell.
func (b *Board) Layout() string {
	rows := make([]string, Size)
	for r := 0; r < Size; r++ {
		var sb strings.Builder
		for c := 0; c < Size; c++ {
			sb.WriteByte(b.cells[r][c].Char())
		}
		rows[r] = sb.String()
	}
	return strings.Join(rows, "/")
}
