package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// place puts cells on an empty board.
func place(cells map[Square]Cell) *Board {
	b := NewEmpty()
	for sq, c := range cells {
		b.Set(sq, c)
	}
	return b
}

func TestNewBoardLayout(t *testing.T) {
	b := New()
	assert.Equal(t, StartLayout, b.Layout())

	men, kings := b.Count(White)
	assert.Equal(t, 12, men)
	assert.Zero(t, kings)
	men, kings = b.Count(Black)
	assert.Equal(t, 12, men)
	assert.Zero(t, kings)

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sq := NewSquare(r, c)
			if b.At(sq) != Empty {
				assert.True(t, sq.IsDark(), "piece on light square %v", sq)
			}
		}
	}
}

func TestPieceValue(t *testing.T) {
	b := New()
	assert.Equal(t, 12, b.PieceValue(White, DefaultKingWeight))
	assert.Equal(t, 0, b.NetPieceValue(White, DefaultKingWeight))

	b = place(map[Square]Cell{
		NewSquare(0, 1): WhiteKing,
		NewSquare(5, 0): WhiteMan,
		NewSquare(2, 3): BlackMan,
	})
	assert.Equal(t, 6, b.PieceValue(White, DefaultKingWeight))
	assert.Equal(t, 4, b.PieceValue(White, 3))
	assert.Equal(t, 5, b.NetPieceValue(White, DefaultKingWeight))
	assert.Equal(t, -5, b.NetPieceValue(Black, DefaultKingWeight))
}

func TestCloneIsIndependent(t *testing.T) {
	b := New()
	before := b.Layout()

	c := b.Clone()
	moves := c.MovesForColor(White)
	require.NotEmpty(t, moves)
	require.NoError(t, c.ApplyMove(moves[0]))

	assert.Equal(t, before, b.Layout())
	assert.NotEqual(t, before, c.Layout())
}

func TestApplyMoveCapture(t *testing.T) {
	b := place(map[Square]Cell{
		NewSquare(3, 2): WhiteKing,
		NewSquare(4, 3): BlackMan,
		NewSquare(6, 5): BlackMan,
	})

	m, err := ParseMove("c5e3,e3g1")
	require.NoError(t, err)
	require.NoError(t, b.ApplyMove(m))

	assert.Equal(t, Empty, b.At(NewSquare(3, 2)))
	assert.Equal(t, Empty, b.At(NewSquare(4, 3)), "first jumped piece removed")
	assert.Equal(t, Empty, b.At(NewSquare(6, 5)), "second jumped piece removed")
	assert.Equal(t, WhiteKing, b.At(NewSquare(7, 6)))
	assert.Zero(t, b.PieceValue(Black, DefaultKingWeight))
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name  string
		piece Cell
		from  Square
		to    Square
		want  Cell
	}{
		{"white man crowned on row 0", WhiteMan, NewSquare(1, 2), NewSquare(0, 1), WhiteKing},
		{"black man crowned on row 7", BlackMan, NewSquare(6, 1), NewSquare(7, 0), BlackKing},
		{"white man short of row 0", WhiteMan, NewSquare(2, 3), NewSquare(1, 2), WhiteMan},
		{"white king on row 7 stays king", WhiteKing, NewSquare(6, 1), NewSquare(7, 2), WhiteKing},
		{"black king on row 0 stays king", BlackKing, NewSquare(1, 2), NewSquare(0, 3), BlackKing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := place(map[Square]Cell{tc.from: tc.piece})
			m, err := NewMove(Step{From: tc.from, To: tc.to})
			require.NoError(t, err)
			require.NoError(t, b.ApplyMove(m))
			assert.Equal(t, tc.want, b.At(tc.to))
		})
	}
}

func TestPromotionOnlyAtFinalSquare(t *testing.T) {
	// Crowning is decided by where the whole chain comes to rest.
	b := place(map[Square]Cell{
		NewSquare(3, 0): BlackMan,
		NewSquare(4, 1): WhiteMan,
		NewSquare(6, 3): WhiteMan,
	})
	m, err := ParseMove("a5c3,c3e1")
	require.NoError(t, err)
	require.NoError(t, b.ApplyMove(m))
	assert.Equal(t, BlackKing, b.At(NewSquare(7, 4)))

	b = place(map[Square]Cell{
		NewSquare(3, 0): BlackMan,
		NewSquare(4, 1): WhiteMan,
	})
	m, err = ParseMove("a5c3")
	require.NoError(t, err)
	require.NoError(t, b.ApplyMove(m))
	assert.Equal(t, BlackMan, b.At(NewSquare(5, 2)))
}

func TestApplyMoveRejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name string
		move string
		want error
	}{
		{"no piece", "b4c5", ErrNoPiece},
		{"occupied destination", "b2a3", ErrOccupied},
		{"slide then slide", "a3b4,b4c5", ErrChainedSlide},
		{"jump over nothing", "a3c5", ErrIllegalJump},
		{"broken chain", "a3b4,c5d6", ErrBrokenChain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			before := b.Layout()
			m, err := ParseMove(tc.move)
			require.NoError(t, err)
			require.ErrorIs(t, b.ApplyMove(m), tc.want)
			assert.Equal(t, before, b.Layout())
		})
	}
}

func TestValidateMoveColorAndDirection(t *testing.T) {
	b := place(map[Square]Cell{
		NewSquare(4, 3): WhiteMan,
		NewSquare(3, 4): BlackMan,
	})

	back, err := NewMove(Step{From: NewSquare(4, 3), To: NewSquare(5, 2)})
	require.NoError(t, err)
	assert.ErrorIs(t, b.ValidateMove(White, back), ErrBackwardMan)
	assert.ErrorIs(t, b.ValidateMove(Black, back), ErrWrongColor)

	fwd, err := NewMove(Step{From: NewSquare(4, 3), To: NewSquare(3, 2)})
	require.NoError(t, err)
	assert.NoError(t, b.ValidateMove(White, fwd))
}

func TestNewMoveShape(t *testing.T) {
	_, err := NewMove()
	assert.ErrorIs(t, err, ErrEmptyMove)

	_, err = NewMove(Step{From: NewSquare(0, 1), To: NewSquare(-1, 0)})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewMove(Step{From: NewSquare(5, 0), To: NewSquare(4, 0)})
	assert.ErrorIs(t, err, ErrNotDiagonal)

	_, err = NewMove(Step{From: NewSquare(5, 0), To: NewSquare(2, 3)})
	assert.ErrorIs(t, err, ErrNotDiagonal)

	m, err := MoveFromPairs([2]Square{NewSquare(5, 0), NewSquare(4, 1)})
	require.NoError(t, err)
	assert.Equal(t, "a3b4", m.String())

	b := NewEmpty()
	assert.ErrorIs(t, b.ApplyMove(nil), ErrEmptyMove)
}

func TestDisplayGridIsCopy(t *testing.T) {
	b := New()
	grid := b.DisplayGrid()
	assert.Equal(t, BlackMan, grid[0][1])
	assert.Equal(t, WhiteMan, grid[7][0])

	grid[0][1] = Empty
	assert.Equal(t, BlackMan, b.At(NewSquare(0, 1)))
}

func TestHashDistinguishesSideAndCells(t *testing.T) {
	b := New()
	assert.Equal(t, b.Hash(White), New().Hash(White))
	assert.NotEqual(t, b.Hash(White), b.Hash(Black))

	c := b.Clone()
	require.NoError(t, c.ApplyMove(c.MovesForColor(White)[0]))
	assert.NotEqual(t, b.Hash(Black), c.Hash(Black))
}
