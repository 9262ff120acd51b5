package protocol

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
)

func newHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Randomize = false
	var out bytes.Buffer
	return New(engine.New(opts, nil), &out, nil), &out
}

func run(t *testing.T, h *Handler, lines ...string) {
	t.Helper()
	require.NoError(t, h.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n"))))
}

func TestIdentify(t *testing.T) {
	h, out := newHandler(t)
	run(t, h, "uci", "isready")

	text := out.String()
	assert.Contains(t, text, "id name "+Name)
	assert.Contains(t, text, "option name Depth type spin default 3 min 1 max 20")
	assert.Contains(t, text, "option name RootCutoff type combo default prune var prune var rescan")
	assert.True(t, strings.HasSuffix(text, "uciok\nreadyok\n"))
}

func TestGoFromStart(t *testing.T) {
	h, out := newHandler(t)
	run(t, h, "position startpos", "go depth 2", "quit", "go depth 1")

	text := out.String()
	assert.Contains(t, text, "info depth 2 score 0 nodes ")
	assert.Contains(t, text, "pv a3b4")
	assert.True(t, strings.HasSuffix(text, "bestmove a3b4\n"))
	assert.Equal(t, 1, strings.Count(text, "bestmove"))
}

func TestPositionWithMoves(t *testing.T) {
	h, out := newHandler(t)
	run(t, h, "position startpos moves a3b4", "go depth 1")

	assert.Equal(t, board.Black, h.game.ToMove())
	assert.Contains(t, out.String(), "bestmove b6a5")
}

func TestPositionInvalidMove(t *testing.T) {
	h, out := newHandler(t)
	run(t, h, "position startpos moves a3b4 a3a4 b6a5")

	assert.Contains(t, out.String(), "info string invalid move a3a4")
	assert.Equal(t, []string{"a3b4"}, h.game.Moves())
}

func TestPositionLayout(t *testing.T) {
	h, out := newHandler(t)
	run(t, h,
		"position layout 8/8/3b4/8/8/8/8/8 w",
		"go",
		"position layout 8/8/8 w",
		"position layout 8/8/8/8/8/8/8/8 x",
	)

	text := out.String()
	assert.Contains(t, text, "bestmove none")
	assert.Contains(t, text, "info string invalid layout")
	assert.Contains(t, text, "info string invalid side to move x")
	assert.True(t, h.game.Over())
}

func TestSetOption(t *testing.T) {
	h, out := newHandler(t)
	run(t, h,
		"setoption name Depth value 5",
		"setoption name RootCutoff value rescan",
		"setoption name MaximalCapture value true",
		"setoption name KingWeight value 0",
		"setoption name Depth value 50",
		"setoption name Hash value 64",
	)

	opts := h.engine.Options()
	assert.Equal(t, 5, opts.Depth)
	assert.Equal(t, engine.CutoffRescan, opts.RootCutoff)
	assert.True(t, opts.MaximalCapture)
	assert.Equal(t, board.DefaultKingWeight, opts.KingWeight)

	text := out.String()
	assert.Contains(t, text, "info string invalid value for KingWeight")
	assert.Contains(t, text, "info string invalid value for Depth")
	assert.Contains(t, text, "info string unknown option Hash")
}

func TestDebugCommands(t *testing.T) {
	h, out := newHandler(t)
	run(t, h, "d", "perft 3", "frobnicate")

	text := out.String()
	assert.Contains(t, text, board.New().String())
	assert.Contains(t, text, "White to move")
	assert.Contains(t, text, "Nodes: 379")
	assert.Contains(t, text, "info string unknown command frobnicate")
}

func TestNewGameResets(t *testing.T) {
	h, _ := newHandler(t)
	run(t, h, "position startpos moves a3b4 b6a5", "ucinewgame")

	assert.Zero(t, h.game.Ply())
	assert.Equal(t, board.White, h.game.ToMove())
}

func TestRunCancelled(t *testing.T) {
	h, out := newHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Run(ctx, strings.NewReader("uci\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestParseGoOptions(t *testing.T) {
	assert.Equal(t, GoOptions{Depth: 4}, parseGoOptions([]string{"depth", "4"}))
	assert.Equal(t, GoOptions{}, parseGoOptions([]string{"infinite", "depth"}))
}
