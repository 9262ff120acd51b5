package engine

import (
	"fmt"
	"strings"

	"github.com/hailam/checkersplay/internal/board"
)

// Infinity bounds the alpha-beta window at the root.
const Infinity = 100000

// RootCutoffPolicy selects what the root does when a move reaches beta.
//
// Beta is Infinity at the root, so a root cutoff only happens when a line
// wins outright before the horizon.
type RootCutoffPolicy int

const (
	// CutoffPrune returns the cutting move immediately with score beta.
	CutoffPrune RootCutoffPolicy = iota
	// CutoffRescan discards the scan and searches the root again one ply
	// shallower, so the returned score is a real evaluation.
	CutoffRescan
)

func (p RootCutoffPolicy) String() string {
	switch p {
	case CutoffPrune:
		return "prune"
	case CutoffRescan:
		return "rescan"
	}
	return fmt.Sprintf("RootCutoffPolicy(%d)", int(p))
}

// ParseRootCutoffPolicy parses "prune" or "rescan".
func ParseRootCutoffPolicy(s string) (RootCutoffPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prune", "":
		return CutoffPrune, nil
	case "rescan":
		return CutoffRescan, nil
	}
	return CutoffPrune, fmt.Errorf("unknown root cutoff policy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p RootCutoffPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *RootCutoffPolicy) UnmarshalText(text []byte) error {
	v, err := ParseRootCutoffPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Searcher performs the alpha-beta search.
//
// The search is split into a maximizing and a minimizing half instead of
// negamax: color is always the side the root searches for, and every leaf is
// scored from color's point of view. Both halves fail hard, returning the
// bound they were given when no move improves on it, including when the side
// to move has no moves at all.
type Searcher struct {
	rules      board.Rules
	kingWeight int
	rootCutoff RootCutoffPolicy
	orderer    *MoveOrderer

	nodes uint64
	first board.Move // first move of the latest root scan, in search order
}

// NewSearcher creates a searcher for opts.
func NewSearcher(opts Options) *Searcher {
	return &Searcher{
		rules:      opts.Rules(),
		kingWeight: opts.KingWeight,
		rootCutoff: opts.RootCutoff,
		orderer:    NewMoveOrderer(opts.Randomize, opts.Seed),
	}
}

// Reset clears the node counter for a new search.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.first = nil
}

// Nodes returns the number of nodes visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// FirstRootMove returns the move the latest root scan searched first, after
// ordering. It is nil before any root scan with moves.
func (s *Searcher) FirstRootMove() board.Move {
	return s.first
}

// Search runs the root scan for color to depth plies with the full window.
// It returns nil when no root move scored above -Infinity.
func (s *Searcher) Search(b *board.Board, color board.Color, depth int) (board.Move, int) {
	return s.searchRoot(-Infinity, Infinity, color, b, depth)
}

func (s *Searcher) generate(b *board.Board, c board.Color) []board.Move {
	moves := b.GenerateMoves(c, s.rules)
	s.orderer.Order(moves)
	return moves
}

// searchRoot is searchMax at the root: it also tracks the move that raised
// alpha and applies the root cutoff policy.
func (s *Searcher) searchRoot(alpha, beta int, color board.Color, b *board.Board, depth int) (board.Move, int) {
	s.nodes++
	if depth <= 0 {
		return nil, Evaluate(b, color, color, s.kingWeight)
	}

	rootAlpha := alpha
	moves := s.generate(b, color)
	if len(moves) > 0 {
		s.first = moves[0]
	}
	var best board.Move
	for _, m := range moves {
		child := b.Clone()
		child.MakeMove(m)
		score := s.searchMin(alpha, beta, color, child, depth-1)
		if score >= beta {
			if s.rootCutoff == CutoffRescan {
				return s.searchRoot(rootAlpha, beta, color, b, depth-1)
			}
			return m, beta
		}
		if score > alpha {
			alpha = score
			best = m
		}
	}
	return best, alpha
}

// searchMax scores a node where color is to move.
func (s *Searcher) searchMax(alpha, beta int, color board.Color, b *board.Board, depth int) int {
	s.nodes++
	if depth <= 0 {
		return Evaluate(b, color, color, s.kingWeight)
	}

	for _, m := range s.generate(b, color) {
		child := b.Clone()
		child.MakeMove(m)
		score := s.searchMin(alpha, beta, color, child, depth-1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// searchMin scores a node where color's opponent is to move.
func (s *Searcher) searchMin(alpha, beta int, color board.Color, b *board.Board, depth int) int {
	s.nodes++
	if depth <= 0 {
		return Evaluate(b, color, color.Other(), s.kingWeight)
	}

	for _, m := range s.generate(b, color.Other()) {
		child := b.Clone()
		child.MakeMove(m)
		score := s.searchMax(alpha, beta, color, child, depth-1)
		if score <= alpha {
			return alpha
		}
		if score < beta {
			beta = score
		}
	}
	return beta
}
