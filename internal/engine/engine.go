package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
)

// ErrGameOver is returned when the side asked to move has no legal move.
var ErrGameOver = errors.New("engine: no legal moves")

// DefaultDepth is the search depth used when none is configured.
const DefaultDepth = 3

// Options configures an Engine.
type Options struct {
	Depth          int              // Plies searched by BestMove
	KingWeight     int              // Material value of a king; a man is 1
	Randomize      bool             // Shuffle sibling moves before searching them
	Seed           uint64           // Shuffle seed (0 = seed from the clock)
	RootCutoff     RootCutoffPolicy // What the root does on a beta cutoff
	MaximalCapture bool             // Compulsory, maximal captures
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	return Options{
		Depth:      DefaultDepth,
		KingWeight: board.DefaultKingWeight,
		Randomize:  true,
		RootCutoff: CutoffPrune,
	}
}

// Rules returns the move generator rules selected by o.
func (o Options) Rules() board.Rules {
	return board.Rules{MaximalCapture: o.MaximalCapture}
}

// Validate checks that o describes a usable engine.
func (o Options) Validate() error {
	if o.Depth < 1 {
		return fmt.Errorf("engine: depth must be at least 1, got %d", o.Depth)
	}
	if o.KingWeight < 1 {
		return fmt.Errorf("engine: king weight must be positive, got %d", o.KingWeight)
	}
	if o.RootCutoff != CutoffPrune && o.RootCutoff != CutoffRescan {
		return fmt.Errorf("engine: invalid root cutoff policy %v", o.RootCutoff)
	}
	return nil
}

// SearchInfo describes a finished search.
type SearchInfo struct {
	Color board.Color
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// SearchResult is the answer of BestMove.
type SearchResult struct {
	Move  board.Move
	Score int // Root score; -Infinity when every move loses before the horizon
	Depth int
	Nodes uint64
	Time  time.Duration
	// Fallback is set when no move scored above the initial alpha and the
	// first available move was returned instead.
	Fallback bool
}

// Engine is the checkers AI.
// An Engine is not safe for concurrent use; run one search at a time.
type Engine struct {
	opts     Options
	searcher *Searcher
	log      *zap.Logger

	// Callbacks
	OnInfo func(SearchInfo)
}

// New creates an engine. Invalid option fields fall back to their defaults.
// A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{log: logger.Named("engine")}
	e.SetOptions(opts)
	return e
}

// Options returns the current configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// SetOptions replaces the configuration. Invalid fields fall back to their
// defaults. The move orderer is reseeded.
func (e *Engine) SetOptions(opts Options) {
	def := DefaultOptions()
	if opts.Depth < 1 {
		opts.Depth = def.Depth
	}
	if opts.KingWeight < 1 {
		opts.KingWeight = def.KingWeight
	}
	if opts.RootCutoff != CutoffRescan {
		opts.RootCutoff = CutoffPrune
	}
	e.opts = opts
	e.searcher = NewSearcher(opts)
}

// SetDepth sets the search depth used by BestMove.
func (e *Engine) SetDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	e.opts.Depth = depth
}

// Rules returns the move generator rules the engine plays by.
func (e *Engine) Rules() board.Rules {
	return e.opts.Rules()
}

// BestMove searches for color's best move at the configured depth.
func (e *Engine) BestMove(b *board.Board, color board.Color) (SearchResult, error) {
	return e.BestMoveAt(b, color, e.opts.Depth)
}

// BestMoveAt searches for color's best move depth plies deep.
//
// It returns ErrGameOver when color has no legal move. If no root move beats
// the initial alpha, which happens when every line loses before the horizon,
// the first available move is returned. b is never modified.
func (e *Engine) BestMoveAt(b *board.Board, color board.Color, depth int) (SearchResult, error) {
	if depth < 1 {
		depth = 1
	}

	moves := b.GenerateMoves(color, e.Rules())
	if len(moves) == 0 {
		return SearchResult{}, ErrGameOver
	}

	start := time.Now()
	e.searcher.Reset()
	move, score := e.searcher.Search(b.Clone(), color, depth)

	res := SearchResult{
		Move:  move,
		Score: score,
		Depth: depth,
		Nodes: e.searcher.Nodes(),
		Time:  time.Since(start),
	}
	if move == nil {
		res.Move = e.searcher.FirstRootMove()
		if res.Move == nil {
			res.Move = moves[0]
		}
		res.Fallback = true
	}

	e.log.Debug("search finished",
		zap.Stringer("color", color),
		zap.Int("depth", depth),
		zap.Stringer("move", res.Move),
		zap.Int("score", res.Score),
		zap.Uint64("nodes", res.Nodes),
		zap.Duration("time", res.Time),
		zap.Bool("fallback", res.Fallback),
	)

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Color: color,
			Depth: depth,
			Score: res.Score,
			Nodes: res.Nodes,
			Time:  res.Time,
			Move:  res.Move,
		})
	}
	return res, nil
}

// Evaluate returns the static evaluation of b for perspective with toMove
// to play, using the engine's king weight.
func (e *Engine) Evaluate(b *board.Board, perspective, toMove board.Color) int {
	return Evaluate(b, perspective, toMove, e.opts.KingWeight)
}

// Perft counts the leaf nodes of the move tree depth plies below b with c
// to move, under the engine's rules.
func (e *Engine) Perft(b *board.Board, c board.Color, depth int) uint64 {
	return perft(b, c, depth, e.Rules())
}

// PerftDivide is Perft split by root move. Root moves are counted in parallel.
func (e *Engine) PerftDivide(ctx context.Context, b *board.Board, c board.Color, depth int) ([]DivideEntry, error) {
	start := time.Now()
	entries, err := perftDivide(ctx, b, c, depth, e.Rules())
	if err != nil {
		return nil, err
	}
	e.log.Debug("perft divide finished",
		zap.Int("depth", depth),
		zap.Int("root_moves", len(entries)),
		zap.Duration("time", time.Since(start)),
	)
	return entries, nil
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	switch {
	case score >= Infinity:
		return "win (cutoff)"
	case score <= -Infinity:
		return "loss (no escape)"
	case score >= WinScore:
		return "win"
	case score <= -WinScore:
		return "loss"
	case score > 0:
		return fmt.Sprintf("+%d", score)
	}
	return fmt.Sprintf("%d", score)
}
