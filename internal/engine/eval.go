package engine

import "github.com/hailam/checkersplay/internal/board"

// WinScore is the score of a position whose side to move is blocked.
const WinScore = 1000

// Evaluate scores b from perspective's point of view with toMove to play.
//
// If toMove has no legal move the game is over: the score is -WinScore when
// that side is perspective and WinScore otherwise. Any other position scores
// the net material of perspective, men counting 1 and kings kingWeight.
//
// The result is symmetric: Evaluate(b, p, t, w) == -Evaluate(b, p.Other(), t, w).
func Evaluate(b *board.Board, perspective, toMove board.Color, kingWeight int) int {
	if !b.HasMoves(toMove) {
		if toMove == perspective {
			return -WinScore
		}
		return WinScore
	}
	return b.NetPieceValue(perspective, kingWeight)
}
