// Package console implements an interactive text driver for checkers games.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/config"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/game"
	"github.com/hailam/checkersplay/internal/storage"
)

// Recorder adds finished games to the statistics.
type Recorder interface {
	RecordGame(result storage.GameResult) error
}

// Options configures a Session.
type Options struct {
	Mode       config.Mode
	HumanColor board.Color
	MaxPlies   int  // 0 = no limit
	Color      bool // ANSI colors in board diagrams
	Prompt     bool // print "> " before reading a command
	Recorder   Recorder
}

// Session is one console game: a board, the side to move and the engine
// that plays the sides not controlled by a human.
type Session struct {
	out  io.Writer
	log  *zap.Logger
	eng  *engine.Engine
	view *Renderer
	opts Options
	game *game.Game
}

// New creates a session with a new game set up. A nil logger disables logging.
func New(eng *engine.Engine, opts Options, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HumanColor != board.Black {
		opts.HumanColor = board.White
	}
	s := &Session{
		out:  out,
		log:  logger.Named("console"),
		eng:  eng,
		view: NewRenderer(opts.Color),
		opts: opts,
	}
	s.game = game.New(opts.MaxPlies)
	return s
}

// Board returns a copy of the current position.
func (s *Session) Board() *board.Board {
	return s.game.Board()
}

// ToMove returns the side to move.
func (s *Session) ToMove() board.Color {
	return s.game.ToMove()
}

// Ply returns the number of moves played in the current game.
func (s *Session) Ply() int {
	return s.game.Ply()
}

// Moves returns the moves played so far in notation.
func (s *Session) Moves() []string {
	return s.game.Moves()
}

// Outcome returns the result of the game, or nil while it is in progress.
func (s *Session) Outcome() *game.Outcome {
	return s.game.Outcome()
}

// GameID returns the identifier of the current game.
func (s *Session) GameID() string {
	return s.game.ID()
}

// Run reads commands from in until "quit", end of input or cancellation.
// The engine first plays any moves it owns in the opening position.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	s.showBoard()
	s.advance(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.Prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if quit := s.Execute(ctx, scanner.Text()); quit {
			return nil
		}
	}

	return scanner.Err()
}

// Play lets the engine play the current game to the end, whoever controls
// the sides. It returns the outcome, or the context error if cancelled.
func (s *Session) Play(ctx context.Context) (*game.Outcome, error) {
	for !s.game.Over() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.engineMove(); err != nil {
			return nil, err
		}
	}
	return s.game.Outcome(), nil
}

// Execute runs one command line. It returns true when the session should end.
func (s *Session) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.handleHelp()
	case "new":
		s.game = game.New(s.opts.MaxPlies)
		fmt.Fprintf(s.out, "new game %s\n", s.game.ID())
		s.showBoard()
		s.advance(ctx)
	case "show", "d":
		s.showBoard()
	case "moves":
		s.handleMoves()
	case "move", "m":
		s.handleMove(ctx, strings.Join(args, ""))
	case "go":
		s.handleGo(ctx)
	case "depth":
		s.handleSet(ctx, []string{"depth", strings.Join(args, "")})
	case "set":
		s.handleSet(ctx, args)
	case "layout":
		s.handleLayout(ctx, args)
	case "eval":
		s.handleEval()
	case "perft":
		s.handlePerft(ctx, args)
	default:
		// A bare move in notation is a move command.
		if _, err := board.ParseMove(line); err == nil {
			s.handleMove(ctx, line)
			return false
		}
		fmt.Fprintf(s.out, "unknown command %q, type help\n", cmd)
	}
	return false
}

func (s *Session) handleHelp() {
	fmt.Fprint(s.out, `commands:
  new                    start a new game
  show | d               print the board
  moves                  list legal moves
  move <m> | <m>         play a move, e.g. a3b4 or c3e5,e5c7 or c3xe5xc7
  go                     let the engine move for the side to move
  depth <n>              set the search depth
  set <name> <value>     depth, king_weight, randomize, seed, root_cutoff,
                         maximal_capture, mode, human, max_plies
  layout <rows> [w|b]    set up a position (8 rows separated by /)
  eval                   static evaluation of the position
  perft <n>              count move paths n plies deep
  quit                   leave
`)
}

func (s *Session) handleMoves() {
	moves := s.game.Legal(s.eng.Rules())
	fmt.Fprintf(s.out, "%d moves: %s\n", len(moves), s.view.Moves(moves))
}

func (s *Session) handleMove(ctx context.Context, notation string) {
	if s.game.Over() {
		fmt.Fprintln(s.out, "the game is over, type new")
		return
	}
	if s.engineTurn() {
		fmt.Fprintf(s.out, "%s is played by the engine\n", s.game.ToMove())
		return
	}

	m, err := board.ParseMove(notation)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	if err := s.play(m); err != nil {
		fmt.Fprintf(s.out, "illegal move %s: %v\n", m, err)
		s.log.Debug("rejected move", zap.Stringer("move", m), zap.Error(err))
		return
	}
	s.showBoard()
	s.advance(ctx)
}

func (s *Session) handleGo(ctx context.Context) {
	if s.game.Over() {
		fmt.Fprintln(s.out, "the game is over, type new")
		return
	}
	if err := s.engineMove(); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.showBoard()
	s.advance(ctx)
}

func (s *Session) handleSet(ctx context.Context, args []string) {
	if len(args) < 2 || args[1] == "" {
		fmt.Fprintln(s.out, "usage: set <name> <value>")
		return
	}
	name, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")
	opts := s.eng.Options()

	var err error
	switch name {
	case "depth":
		opts.Depth, err = positiveInt(value)
	case "king_weight", "kingweight":
		opts.KingWeight, err = positiveInt(value)
	case "randomize":
		opts.Randomize, err = strconv.ParseBool(value)
	case "seed":
		opts.Seed, err = strconv.ParseUint(value, 10, 64)
	case "root_cutoff", "cutoff":
		opts.RootCutoff, err = engine.ParseRootCutoffPolicy(value)
	case "maximal_capture", "maximal":
		opts.MaximalCapture, err = strconv.ParseBool(value)
	case "mode":
		s.opts.Mode, err = config.ParseMode(value)
	case "human":
		c, ok := board.ParseColor(value)
		if !ok || c == board.NoColor {
			err = fmt.Errorf("unknown color %q", value)
		} else {
			s.opts.HumanColor = c
		}
	case "max_plies", "maxplies":
		s.opts.MaxPlies, err = strconv.Atoi(value)
		if err == nil && s.opts.MaxPlies < 0 {
			err = errors.New("must not be negative")
		}
		if err == nil {
			s.game.SetMaxPlies(s.opts.MaxPlies)
		}
	default:
		fmt.Fprintf(s.out, "unknown option %q\n", name)
		return
	}
	if err != nil {
		fmt.Fprintf(s.out, "error: %s: %v\n", name, err)
		return
	}

	s.eng.SetOptions(opts)
	s.log.Info("option changed", zap.String("name", name), zap.String("value", value))
	fmt.Fprintf(s.out, "%s = %s\n", name, value)
	s.advance(ctx)
}

func (s *Session) handleLayout(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.game.Board().Layout())
		return
	}
	b, err := board.ParseLayout(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	toMove := board.White
	if len(args) > 1 {
		c, ok := board.ParseColor(args[1])
		if !ok {
			fmt.Fprintf(s.out, "error: unknown color %q\n", args[1])
			return
		}
		toMove = c
	}

	s.game = game.FromPosition(b, toMove, s.opts.MaxPlies)
	s.showBoard()
	if o := s.game.Outcome(); o != nil {
		s.finish(*o)
	}
	s.advance(ctx)
}

func (s *Session) handleEval() {
	b, toMove := s.game.Board(), s.game.ToMove()
	score := s.eng.Evaluate(b, toMove, toMove)
	fmt.Fprintf(s.out, "eval %s: %s (material %+d for White)\n",
		toMove, engine.ScoreToString(score),
		b.NetPieceValue(board.White, s.eng.Options().KingWeight))
}

func (s *Session) handlePerft(ctx context.Context, args []string) {
	depth := 4
	if len(args) > 0 {
		d, err := positiveInt(args[0])
		if err != nil {
			fmt.Fprintf(s.out, "error: depth: %v\n", err)
			return
		}
		depth = d
	}

	start := time.Now()
	entries, err := s.eng.PerftDivide(ctx, s.game.Board(), s.game.ToMove(), depth)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	elapsed := time.Since(start)

	var nodes uint64
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s: %d\n", e.Move, e.Nodes)
		nodes += e.Nodes
	}
	fmt.Fprintf(s.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(s.out, "Time: %v\n", elapsed)
}

// engineTurn reports whether the engine controls the side to move.
func (s *Session) engineTurn() bool {
	switch s.opts.Mode {
	case config.EngineVsEngine:
		return true
	case config.HumanVsEngine:
		return s.game.ToMove() != s.opts.HumanColor
	}
	return false
}

// advance lets the engine play until a human is to move or the game ends.
func (s *Session) advance(ctx context.Context) {
	moved := false
	for !s.game.Over() && s.engineTurn() && ctx.Err() == nil {
		if err := s.engineMove(); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			return
		}
		moved = true
	}
	if moved {
		s.showBoard()
	}
}

// engineMove searches and plays one move for the side to move.
func (s *Session) engineMove() error {
	toMove := s.game.ToMove()
	res, err := s.eng.BestMove(s.game.Board(), toMove)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s plays %s (score %s, depth %d, %d nodes)\n",
		s.view.Side(toMove), res.Move, engine.ScoreToString(res.Score), res.Depth, res.Nodes)
	return s.play(res.Move)
}

// play validates and commits a move, and reports the end of the game.
func (s *Session) play(m board.Move) error {
	if err := s.game.Apply(m, s.eng.Rules()); err != nil {
		return err
	}
	if o := s.game.Outcome(); o != nil {
		s.finish(*o)
	}
	return nil
}

func (s *Session) finish(o game.Outcome) {
	if o.Draw() {
		fmt.Fprintf(s.out, "game over: draw (%s)\n", o.Reason)
	} else {
		fmt.Fprintf(s.out, "game over: %s wins (%s)\n", s.view.Side(o.Winner), o.Reason)
	}

	result := s.game.Result(game.Record{
		Mode:       s.opts.Mode.String(),
		HumanColor: s.opts.HumanColor,
		HasHuman:   s.opts.Mode == config.HumanVsEngine,
		Depth:      s.eng.Options().Depth,
	})
	s.log.Info("game over",
		zap.String("game", s.game.ID()),
		zap.Stringer("winner", o.Winner),
		zap.String("reason", o.Reason),
		zap.Int("plies", result.Plies),
		zap.Duration("duration", result.Duration),
	)

	if s.opts.Recorder == nil {
		return
	}
	if err := s.opts.Recorder.RecordGame(result); err != nil {
		s.log.Error("failed to record game", zap.String("game", s.game.ID()), zap.Error(err))
	}
}

func (s *Session) showBoard() {
	fmt.Fprint(s.out, s.view.Board(s.game.Board()))
	if !s.game.Over() {
		fmt.Fprintf(s.out, "%s to move\n", s.view.Side(s.game.ToMove()))
	}
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	return n, nil
}
