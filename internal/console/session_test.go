package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/config"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/storage"
)

type fakeRecorder struct {
	games []storage.GameResult
}

func (r *fakeRecorder) RecordGame(result storage.GameResult) error {
	r.games = append(r.games, result)
	return nil
}

func newSession(t *testing.T, depth int, opts Options) (*Session, *bytes.Buffer) {
	t.Helper()
	eopts := engine.DefaultOptions()
	eopts.Depth = depth
	eopts.Randomize = false

	var out bytes.Buffer
	return New(engine.New(eopts, nil), opts, &out, nil), &out
}

func run(t *testing.T, s *Session, input string) {
	t.Helper()
	require.NoError(t, s.Run(context.Background(), strings.NewReader(input)))
}

func TestHumanVsHumanMoves(t *testing.T) {
	s, out := newSession(t, 1, Options{Mode: config.HumanVsHuman})

	run(t, s, "a3b4\nmove b6a5\nquit\nmove c3d4\n")

	assert.Equal(t, []string{"a3b4", "b6a5"}, s.Moves())
	assert.Equal(t, 2, s.Ply())
	assert.Equal(t, board.White, s.ToMove())
	assert.Equal(t, board.WhiteMan, s.Board().At(board.NewSquare(4, 1)))
	assert.Contains(t, out.String(), "Black to move")
	assert.Nil(t, s.Outcome())
}

func TestRejectsIllegalMoves(t *testing.T) {
	s, out := newSession(t, 1, Options{Mode: config.HumanVsHuman})

	run(t, s, "move a3a4\nb6a5\nmove a3c5\n")

	text := out.String()
	assert.Contains(t, text, "error:")
	assert.Contains(t, text, "illegal move b6a5")
	assert.Contains(t, text, "illegal move a3c5")
	assert.Zero(t, s.Ply())
	assert.Equal(t, board.New().Layout(), s.Board().Layout())
}

func TestEngineReplies(t *testing.T) {
	s, out := newSession(t, 2, Options{Mode: config.HumanVsEngine, HumanColor: board.White})

	run(t, s, "a3b4\n")

	assert.Equal(t, []string{"a3b4", "b6a5"}, s.Moves())
	assert.Contains(t, out.String(), "Black plays b6a5")
	assert.Equal(t, board.White, s.ToMove())

	// Switching sides hands White to the engine, which moves at once.
	s.Execute(context.Background(), "set human black")
	assert.Equal(t, 3, s.Ply(), "the engine now plays White")
}

func TestEngineOpensForBlackHuman(t *testing.T) {
	s, out := newSession(t, 3, Options{Mode: config.HumanVsEngine, HumanColor: board.Black})

	run(t, s, "")

	assert.Equal(t, []string{"a3b4"}, s.Moves())
	assert.Contains(t, out.String(), "White plays a3b4")

	s.Execute(context.Background(), "b6a5")
	assert.Equal(t, 3, s.Ply())
	assert.Equal(t, board.Black, s.ToMove())
}

func TestRefusesMoveForEngine(t *testing.T) {
	s, out := newSession(t, 1, Options{Mode: config.EngineVsEngine})

	s.Execute(context.Background(), "a3b4")
	assert.Contains(t, out.String(), "White is played by the engine")
	assert.Zero(t, s.Ply())
}

func TestEngineVsEngineUntilPlyLimit(t *testing.T) {
	rec := &fakeRecorder{}
	s, out := newSession(t, 2, Options{Mode: config.EngineVsEngine, MaxPlies: 10, Recorder: rec})

	run(t, s, "")

	want := []string{"a3b4", "b6a5", "e3d4", "a7b6", "g3f4", "b8a7", "b2a3", "f6g5", "d2e3", "e7f6"}
	assert.Equal(t, want, s.Moves())
	require.NotNil(t, s.Outcome())
	assert.Equal(t, board.NoColor, s.Outcome().Winner)
	assert.Equal(t, "ply limit", s.Outcome().Reason)
	assert.Contains(t, out.String(), "game over: draw (ply limit)")

	require.Len(t, rec.games, 1)
	g := rec.games[0]
	assert.Equal(t, "engine-vs-engine", g.Mode)
	assert.Equal(t, 10, g.Plies)
	assert.Equal(t, 2, g.Depth)
	assert.False(t, g.HasHuman)
	assert.NotEmpty(t, s.GameID())
}

func TestPlay(t *testing.T) {
	s, _ := newSession(t, 2, Options{Mode: config.HumanVsHuman, MaxPlies: 4})

	outcome, err := s.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ply limit", outcome.Reason)
	assert.Equal(t, 4, s.Ply())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Execute(context.Background(), "new")
	_, err = s.Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayoutGameOver(t *testing.T) {
	rec := &fakeRecorder{}
	s, out := newSession(t, 1, Options{Mode: config.HumanVsEngine, Recorder: rec})

	run(t, s, "layout 8/8/3b4/8/8/8/8/8 w\nmoves\na3b4\n")

	require.NotNil(t, s.Outcome())
	assert.Equal(t, board.Black, s.Outcome().Winner)
	text := out.String()
	assert.Contains(t, text, "game over: Black wins (White has no moves)")
	assert.Contains(t, text, "0 moves:")
	assert.Contains(t, text, "the game is over, type new")

	require.Len(t, rec.games, 1)
	assert.True(t, rec.games[0].HasHuman)
	assert.False(t, rec.games[0].Won())

	s.Execute(context.Background(), "new")
	assert.Nil(t, s.Outcome())
	assert.Equal(t, board.New().Layout(), s.Board().Layout())
}

func TestRepetitionDraw(t *testing.T) {
	s, out := newSession(t, 1, Options{Mode: config.HumanVsHuman})

	run(t, s, strings.Join([]string{
		"layout .W6/8/8/8/8/8/8/6B. w",
		"b8a7", "g1h2", "a7b8", "h2g1",
		"b8a7", "g1h2", "a7b8", "h2g1",
		"b8a7",
	}, "\n"))

	require.NotNil(t, s.Outcome())
	assert.Equal(t, "repetition", s.Outcome().Reason)
	assert.Equal(t, 8, s.Ply())
	assert.Contains(t, out.String(), "the game is over, type new")
}

func TestSettings(t *testing.T) {
	s, out := newSession(t, 1, Options{Mode: config.HumanVsHuman})

	run(t, s, strings.Join([]string{
		"depth 5",
		"set root_cutoff rescan",
		"set maximal_capture true",
		"set king_weight 3",
		"set randomize false",
		"set seed 9",
		"set max_plies 40",
		"set depth 0",
		"set root_cutoff bogus",
		"set colour red",
		"set human green",
		"set",
	}, "\n"))

	opts := s.eng.Options()
	assert.Equal(t, 5, opts.Depth)
	assert.Equal(t, engine.CutoffRescan, opts.RootCutoff)
	assert.True(t, opts.MaximalCapture)
	assert.Equal(t, 3, opts.KingWeight)
	assert.Equal(t, uint64(9), opts.Seed)
	assert.Equal(t, 40, s.opts.MaxPlies)

	text := out.String()
	assert.Contains(t, text, "depth = 5")
	assert.Contains(t, text, "error: depth:")
	assert.Contains(t, text, "error: root_cutoff:")
	assert.Contains(t, text, `unknown option "colour"`)
	assert.Contains(t, text, "error: human:")
	assert.Contains(t, text, "usage: set <name> <value>")
}

func TestInfoCommands(t *testing.T) {
	s, out := newSession(t, 1, Options{Mode: config.HumanVsHuman})

	run(t, s, "moves\neval\nperft 3\nlayout\nshow\nhelp\nfrobnicate\n")

	text := out.String()
	assert.Contains(t, text, "7 moves: a3b4 c3b4 c3d4 e3d4 e3f4 g3f4 g3h4")
	assert.Contains(t, text, "eval White: 0 (material +0 for White)")
	assert.Contains(t, text, "a3b4: ")
	assert.Contains(t, text, "Nodes: 379")
	assert.Contains(t, text, board.StartLayout)
	assert.Contains(t, text, "perft <n>")
	assert.Contains(t, text, `unknown command "frobnicate"`)
}

func TestRunCancelled(t *testing.T) {
	s, _ := newSession(t, 1, Options{Mode: config.HumanVsHuman})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, strings.NewReader("a3b4\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.Ply())
}

func TestRendererPlain(t *testing.T) {
	r := NewRenderer(false)
	text := r.Board(board.New())
	assert.Equal(t, board.New().String(), text)
	assert.Equal(t, "White", r.Side(board.White))

	colored := NewRenderer(true).Board(board.New())
	assert.Contains(t, colored, "\x1b[")
}
