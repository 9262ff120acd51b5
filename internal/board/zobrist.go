package board

// Zobrist keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristCell       [5][Size][Size]uint64 // [Cell][Row][Col]; index 0 (Empty) unused
	zobristSideToMove uint64                // XOR when Black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := WhiteMan; c <= BlackKing; c++ {
		for r := 0; r < Size; r++ {
			for col := 0; col < Size; col++ {
				zobristCell[c][r][col] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist key of the board with toMove to play.
// Drivers use it to detect repeated positions.
func (b *Board) Hash(toMove Color) uint64 {
	var h uint64
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			if c := b.cells[r][col]; c != Empty {
				h ^= zobristCell[c][r][col]
			}
		}
	}
	if toMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
