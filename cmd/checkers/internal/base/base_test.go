package base

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/checkersplay/internal/board"
)

func TestPosition(t *testing.T) {
	b, c, err := Position("", "w")
	require.NoError(t, err)
	assert.Equal(t, board.White, c)
	assert.Equal(t, board.StartLayout, b.Layout())

	b, c, err = Position("8/8/3b4/8/8/8/8/8", "black")
	require.NoError(t, err)
	assert.Equal(t, board.Black, c)
	assert.Equal(t, board.BlackMan, b.At(board.NewSquare(2, 3)))

	_, _, err = Position("", "green")
	assert.Error(t, err)

	_, _, err = Position("8/8", "w")
	assert.ErrorIs(t, err, board.ErrBadNotation)
}

func TestPrinters(t *testing.T) {
	var buf bytes.Buffer
	Heading(&buf, "games: %d", 3)
	Good(&buf, "ok")
	Bad(&buf, "failed")
	assert.Contains(t, buf.String(), "games: 3")
	assert.Contains(t, buf.String(), "ok")
	assert.Contains(t, buf.String(), "failed")
}
