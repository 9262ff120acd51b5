// Package game tracks one checkers game: the position, the side to move,
// the move record and how the game ended. The console and desktop drivers
// share it so both end games the same way.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/storage"
)

// RepetitionLimit is how often a position may occur before the game is drawn.
const RepetitionLimit = 3

// ErrFinished is returned when a move is played after the game ended.
var ErrFinished = errors.New("game: the game is over")

// Outcome is the result of a finished game.
type Outcome struct {
	Winner board.Color // NoColor for a draw
	Reason string
}

// Draw reports whether nobody won.
func (o Outcome) Draw() bool {
	return o.Winner != board.White && o.Winner != board.Black
}

func (o Outcome) String() string {
	if o.Draw() {
		return fmt.Sprintf("draw (%s)", o.Reason)
	}
	return fmt.Sprintf("%s wins (%s)", o.Winner, o.Reason)
}

// Game is the state of one game. A Game is not safe for concurrent use.
type Game struct {
	board    *board.Board
	toMove   board.Color
	maxPlies int
	moves    []board.Move
	seen     map[uint64]int
	id       string
	started  time.Time
	outcome  *Outcome
}

// New starts a game from the initial position with White to move.
// maxPlies limits the game length; 0 means no limit.
func New(maxPlies int) *Game {
	return FromPosition(board.New(), board.White, maxPlies)
}

// FromPosition starts a game from b with toMove to play. The game is over at
// once if toMove has no moves. b is owned by the game afterwards.
func FromPosition(b *board.Board, toMove board.Color, maxPlies int) *Game {
	g := &Game{
		board:    b,
		toMove:   toMove,
		maxPlies: maxPlies,
		seen:     map[uint64]int{b.Hash(toMove): 1},
		id:       uuid.NewString(),
		started:  time.Now(),
	}
	g.checkEnd()
	return g
}

// Board returns a copy of the current position.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

// ToMove returns the side to move.
func (g *Game) ToMove() board.Color {
	return g.toMove
}

// Ply returns the number of moves played.
func (g *Game) Ply() int {
	return len(g.moves)
}

// Moves returns the moves played so far in notation.
func (g *Game) Moves() []string {
	out := make([]string, len(g.moves))
	for i, m := range g.moves {
		out[i] = m.String()
	}
	return out
}

// LastMove returns the most recent move, or nil before the first one.
func (g *Game) LastMove() board.Move {
	if len(g.moves) == 0 {
		return nil
	}
	return g.moves[len(g.moves)-1]
}

// Outcome returns the result, or nil while the game is in progress.
func (g *Game) Outcome() *Outcome {
	return g.outcome
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.outcome != nil
}

// ID returns the identifier of the game, used to correlate log records.
func (g *Game) ID() string {
	return g.id
}

// Started returns when the game was set up.
func (g *Game) Started() time.Time {
	return g.started
}

// MaxPlies returns the ply limit; 0 means none.
func (g *Game) MaxPlies() int {
	return g.maxPlies
}

// SetMaxPlies changes the ply limit. It takes effect at the next move.
func (g *Game) SetMaxPlies(n int) {
	g.maxPlies = n
}

// Legal returns the moves of the side to move under rules, or nil once the
// game is over.
func (g *Game) Legal(rules board.Rules) []board.Move {
	if g.outcome != nil {
		return nil
	}
	return g.board.GenerateMoves(g.toMove, rules)
}

// Apply validates m for the side to move under rules and plays it.
// On error the game is unchanged.
func (g *Game) Apply(m board.Move, rules board.Rules) error {
	if g.outcome != nil {
		return ErrFinished
	}
	if err := g.board.ApplyMoveRules(g.toMove, m, rules); err != nil {
		return err
	}
	g.moves = append(g.moves, m)
	g.toMove = g.toMove.Other()
	g.seen[g.board.Hash(g.toMove)]++
	g.checkEnd()
	return nil
}

// checkEnd decides whether the position ends the game. A side without moves
// loses; a position seen RepetitionLimit times or reaching the ply limit is
// a draw.
func (g *Game) checkEnd() {
	if g.outcome != nil {
		return
	}
	switch {
	case !g.board.HasMoves(g.toMove):
		g.outcome = &Outcome{Winner: g.toMove.Other(), Reason: g.toMove.String() + " has no moves"}
	case g.seen[g.board.Hash(g.toMove)] >= RepetitionLimit:
		g.outcome = &Outcome{Winner: board.NoColor, Reason: "repetition"}
	case g.maxPlies > 0 && len(g.moves) >= g.maxPlies:
		g.outcome = &Outcome{Winner: board.NoColor, Reason: "ply limit"}
	}
}

// Record describes who played the game, for Result.
type Record struct {
	Mode       string
	HumanColor board.Color
	HasHuman   bool // exactly one side was played by a human
	Depth      int
}

// Result summarizes the game for the statistics. Duration runs until now.
func (g *Game) Result(r Record) storage.GameResult {
	winner := board.NoColor
	if g.outcome != nil {
		winner = g.outcome.Winner
	}
	return storage.GameResult{
		Mode:       r.Mode,
		Winner:     winner,
		HumanColor: r.HumanColor,
		HasHuman:   r.HasHuman,
		Depth:      r.Depth,
		Plies:      g.Ply(),
		Duration:   time.Since(g.started),
	}
}
