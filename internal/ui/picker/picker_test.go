package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/checkersplay/internal/board"
)

func sq(t *testing.T, s string) board.Square {
	t.Helper()
	v, err := board.ParseSquare(s)
	require.NoError(t, err)
	return v
}

// branchingBoard has a white man on b2 that can slide to a3 or jump c3 and
// then continue over c5 or e5.
func branchingBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.NewEmpty()
	b.Set(sq(t, "b2"), board.WhiteMan)
	b.Set(sq(t, "c3"), board.BlackMan)
	b.Set(sq(t, "c5"), board.BlackMan)
	b.Set(sq(t, "e5"), board.BlackMan)
	return b
}

func TestSlideCommitsOnSecondClick(t *testing.T) {
	p := New(board.New().MovesForColor(board.White))

	_, done := p.Click(sq(t, "a3"))
	assert.False(t, done)
	assert.Equal(t, sq(t, "a3"), p.Selected())
	assert.ElementsMatch(t, []board.Square{sq(t, "b4")}, p.Targets())

	m, done := p.Click(sq(t, "b4"))
	require.True(t, done)
	assert.Equal(t, "a3b4", m.String())
	assert.Equal(t, board.NoSquare, p.Selected())
}

func TestClickOnEmptyOrForeignSquareSelectsNothing(t *testing.T) {
	p := New(board.New().MovesForColor(board.White))

	p.Click(sq(t, "d4"))
	assert.Equal(t, board.NoSquare, p.Selected())

	// Black piece.
	p.Click(sq(t, "b6"))
	assert.Equal(t, board.NoSquare, p.Selected())

	// Blocked white piece.
	p.Click(sq(t, "a1"))
	assert.Equal(t, board.NoSquare, p.Selected())
}

func TestClickAnotherPieceSwitchesSelection(t *testing.T) {
	p := New(board.New().MovesForColor(board.White))

	p.Click(sq(t, "a3"))
	p.Click(sq(t, "e3"))
	assert.Equal(t, sq(t, "e3"), p.Selected())

	p.Click(sq(t, "h8"))
	assert.Equal(t, board.NoSquare, p.Selected())
}

func TestChainWaitsWhileExtensionsExist(t *testing.T) {
	b := branchingBoard(t)
	p := New(b.MovesForColor(board.White))

	p.Click(sq(t, "b2"))
	assert.ElementsMatch(t, []board.Square{sq(t, "a3"), sq(t, "d4")}, p.Targets())

	_, done := p.Click(sq(t, "d4"))
	assert.False(t, done)
	assert.Equal(t, sq(t, "d4"), p.Current())
	assert.ElementsMatch(t, []board.Square{sq(t, "b6"), sq(t, "f6")}, p.Targets())
	assert.Len(t, p.Candidates(), 3)

	m, done := p.Click(sq(t, "f6"))
	require.True(t, done)
	assert.Equal(t, "b2d4,d4f6", m.String())
}

func TestClickLandingAgainStopsChain(t *testing.T) {
	p := New(branchingBoard(t).MovesForColor(board.White))

	p.Click(sq(t, "b2"))
	p.Click(sq(t, "d4"))
	m, done := p.Click(sq(t, "d4"))
	require.True(t, done)
	assert.Equal(t, "b2d4", m.String())
}

func TestCommitPartialChain(t *testing.T) {
	p := New(branchingBoard(t).MovesForColor(board.White))

	_, done := p.Commit()
	assert.False(t, done)

	p.Click(sq(t, "b2"))
	_, done = p.Commit()
	assert.False(t, done, "a bare selection is not a move")

	p.Click(sq(t, "d4"))
	m, done := p.Commit()
	require.True(t, done)
	assert.Equal(t, "b2d4", m.String())
}

func TestMaximalCaptureOnlyCommitsFullChains(t *testing.T) {
	b := branchingBoard(t)
	p := New(b.GenerateMoves(board.White, board.Rules{MaximalCapture: true}))

	// The slide is not legal while a capture exists.
	p.Click(sq(t, "b2"))
	assert.ElementsMatch(t, []board.Square{sq(t, "d4")}, p.Targets())

	p.Click(sq(t, "d4"))
	_, done := p.Commit()
	assert.False(t, done)

	_, done = p.Click(sq(t, "d4"))
	assert.False(t, done)

	m, done := p.Click(sq(t, "b6"))
	require.True(t, done)
	assert.Equal(t, "b2d4,d4b6", m.String())
}

func TestIllegalStepKeepsChain(t *testing.T) {
	p := New(branchingBoard(t).MovesForColor(board.White))

	p.Click(sq(t, "b2"))
	p.Click(sq(t, "d4"))
	_, done := p.Click(sq(t, "h8"))
	assert.False(t, done)
	assert.Equal(t, sq(t, "b2"), p.Selected())
	assert.Equal(t, "b2d4", p.Path().String())
}

func TestReset(t *testing.T) {
	p := New(board.New().MovesForColor(board.White))
	p.Click(sq(t, "a3"))

	p.Reset(board.New().MovesForColor(board.Black))
	assert.Equal(t, board.NoSquare, p.Selected())
	assert.Nil(t, p.Candidates())

	p.Click(sq(t, "b6"))
	assert.Equal(t, sq(t, "b6"), p.Selected())
}
