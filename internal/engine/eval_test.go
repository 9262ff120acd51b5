package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hailam/checkersplay/internal/board"
)

func TestEvaluateMaterial(t *testing.T) {
	b := board.New()
	assert.Equal(t, 0, Evaluate(b, board.White, board.White, 5))

	b.Set(sq(0, 1), board.Empty)
	assert.Equal(t, 1, Evaluate(b, board.White, board.White, 5))
	assert.Equal(t, -1, Evaluate(b, board.Black, board.White, 5))

	b.Set(sq(7, 0), board.WhiteKing)
	assert.Equal(t, 5, Evaluate(b, board.White, board.Black, 5))
	assert.Equal(t, 4, Evaluate(b, board.White, board.Black, 4))
}

func TestEvaluateTerminal(t *testing.T) {
	b := board.NewEmpty()
	b.Set(sq(2, 3), board.BlackMan)

	assert.Equal(t, -WinScore, Evaluate(b, board.White, board.White, 5))
	assert.Equal(t, WinScore, Evaluate(b, board.Black, board.White, 5))
	// Black can move, so material decides.
	assert.Equal(t, 1, Evaluate(b, board.Black, board.Black, 5))

	eng := New(DefaultOptions(), nil)
	assert.Equal(t, -WinScore, eng.Evaluate(b, board.White, board.White))
}

func TestEvaluateSymmetry(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for game := 0; game < 20; game++ {
		b := board.New()
		side := board.White
		for ply := 0; ply < 60; ply++ {
			for _, toMove := range []board.Color{board.White, board.Black} {
				w := Evaluate(b, board.White, toMove, board.DefaultKingWeight)
				bl := Evaluate(b, board.Black, toMove, board.DefaultKingWeight)
				assert.Equal(t, w, -bl)
			}

			moves := b.MovesForColor(side)
			if len(moves) == 0 {
				break
			}
			b.MakeMove(moves[r.IntN(len(moves))])
			side = side.Other()
		}
	}
}

func TestMoveOrderer(t *testing.T) {
	moves := board.New().MovesForColor(board.White)
	scan := append([]board.Move(nil), moves...)

	NewMoveOrderer(false, 1).Order(moves)
	assert.Equal(t, scan, moves)

	a := append([]board.Move(nil), scan...)
	b := append([]board.Move(nil), scan...)
	NewMoveOrderer(true, 99).Order(a)
	NewMoveOrderer(true, 99).Order(b)
	assert.Equal(t, a, b)
	assert.ElementsMatch(t, scan, a)
	assert.True(t, NewMoveOrderer(true, 0).Shuffling())
}
