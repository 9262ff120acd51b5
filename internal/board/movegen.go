package board

import "github.com/samber/lo"

// Rules selects the capture variant used by the move generator.
type Rules struct {
	// MaximalCapture makes captures compulsory and keeps only jump chains
	// that cannot be continued. When false every prefix of a chain is a
	// legal move and slides are allowed even if a capture exists.
	MaximalCapture bool
}

// MovesForColor generates every move for c under the default (relaxed) rules,
// in board scan order.
func (b *Board) MovesForColor(c Color) []Move {
	return b.GenerateMoves(c, Rules{})
}

// GenerateMoves generates every move for c under rules.
// Pieces are visited row by row, then column by column.
func (b *Board) GenerateMoves(c Color, rules Rules) []Move {
	var moves []Move
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			piece := b.cells[r][col]
			if piece == Empty || piece.Color() != c {
				continue
			}
			moves = append(moves, b.pieceMoves(NewSquare(r, col), piece, false, nil)...)
		}
	}

	if rules.MaximalCapture {
		moves = maximalCaptures(moves)
	}
	return moves
}

// MovesForPiece generates the moves of the piece on sq.
//
// When mustJump is true only captures are produced (the piece is mid-chain).
// captured lists pieces already jumped this turn; they may not be jumped again.
// The caller's slice is never modified.
func (b *Board) MovesForPiece(sq Square, mustJump bool, captured []Square) []Move {
	piece := b.At(sq)
	if piece == Empty {
		return nil
	}
	return b.pieceMoves(sq, piece, mustJump, captured)
}

// pieceMoves is the recursive generator. piece is passed explicitly because
// the board is not updated while a chain is explored: the piece still stands
// on its origin and jumped pieces are still on the board.
func (b *Board) pieceMoves(from Square, piece Cell, mustJump bool, captured []Square) []Move {
	them := piece.Color().Other()
	var moves []Move

	for _, dr := range rowDirections(piece) {
		if !mustJump {
			for _, dc := range [2]int{-1, 1} {
				to := from.Offset(dr, dc)
				if b.IsEmpty(to) {
					moves = append(moves, Move{{From: from, To: to}})
				}
			}
		}

		for _, dc := range [2]int{-1, 1} {
			over := from.Offset(dr, dc)
			to := from.Offset(2*dr, 2*dc)
			if !b.IsEmpty(to) || b.At(over).Color() != them || containsSquare(captured, over) {
				continue
			}

			jump := Step{From: from, To: to}
			moves = append(moves, Move{jump})

			// Full slice expression forces append to copy, so sibling
			// branches never share the accumulator.
			next := append(captured[:len(captured):len(captured)], over)
			for _, cont := range b.pieceMoves(to, piece, true, next) {
				moves = append(moves, cont.prepend(jump))
			}
		}
	}

	return moves
}

// HasMoves returns true if c has at least one legal move.
// Cheaper than generating: it stops at the first slide or jump found.
func (b *Board) HasMoves(c Color) bool {
	them := c.Other()
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			piece := b.cells[r][col]
			if piece == Empty || piece.Color() != c {
				continue
			}
			from := NewSquare(r, col)
			for _, dr := range rowDirections(piece) {
				for _, dc := range [2]int{-1, 1} {
					if b.IsEmpty(from.Offset(dr, dc)) {
						return true
					}
					if b.IsEmpty(from.Offset(2*dr, 2*dc)) && b.At(from.Offset(dr, dc)).Color() == them {
						return true
					}
				}
			}
		}
	}
	return false
}

// HasCapture returns true if c can jump with any piece.
func (b *Board) HasCapture(c Color) bool {
	return lo.ContainsBy(b.MovesForColor(c), Move.IsCapture)
}

// rowDirections returns the row deltas a piece may move along.
// Kings try upward (toward row 0) first.
func rowDirections(piece Cell) []int {
	if piece.IsKing() {
		return []int{-1, 1}
	}
	return []int{piece.Color().Forward()}
}

// maximalCaptures applies compulsory capture: if any capture exists, slides
// are dropped, and chains that are a strict prefix of another chain are dropped.
func maximalCaptures(moves []Move) []Move {
	captures := lo.Filter(moves, func(m Move, _ int) bool { return m.IsCapture() })
	if len(captures) == 0 {
		return moves
	}
	return lo.Reject(captures, func(m Move, _ int) bool {
		return lo.ContainsBy(captures, func(o Move) bool {
			return len(o) > len(m) && o.HasPrefix(m)
		})
	})
}

func containsSquare(list []Square, sq Square) bool {
	for _, s := range list {
		if s == sq {
			return true
		}
	}
	return false
}
