package engine

import (
	"math/rand/v2"
	"time"

	"github.com/hailam/checkersplay/internal/board"
)

// MoveOrderer decides the order in which the search visits sibling moves.
//
// Moves come out of the generator in board scan order. When shuffling is
// enabled every list is permuted before it is searched, so equally scored
// moves are picked at random and the engine does not replay the same game.
type MoveOrderer struct {
	shuffle bool
	rng     *rand.Rand
}

// NewMoveOrderer creates an orderer. A zero seed draws one from the clock.
func NewMoveOrderer(shuffle bool, seed uint64) *MoveOrderer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &MoveOrderer{
		shuffle: shuffle,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Shuffling reports whether Order permutes moves.
func (mo *MoveOrderer) Shuffling() bool {
	return mo.shuffle
}

// Order permutes moves in place. Without shuffling it is a no-op and the
// scan order is kept.
func (mo *MoveOrderer) Order(moves []board.Move) {
	if !mo.shuffle || len(moves) < 2 {
		return
	}
	mo.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
}
