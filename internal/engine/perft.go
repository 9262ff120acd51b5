package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/checkersplay/internal/board"
)

// DivideEntry is the leaf count below one root move.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// perft counts the leaves of the move tree below b with c to move.
func perft(b *board.Board, c board.Color, depth int, rules board.Rules) uint64 {
	if depth == 0 {
		return 1
	}

	moves := b.GenerateMoves(c, rules)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		child := b.Clone()
		child.MakeMove(m)
		nodes += perft(child, c.Other(), depth-1, rules)
	}
	return nodes
}

// perftDivide counts the leaves below each root move, one goroutine per move.
// The entries are in generator order.
func perftDivide(ctx context.Context, b *board.Board, c board.Color, depth int, rules board.Rules) ([]DivideEntry, error) {
	if depth < 1 {
		return nil, nil
	}

	moves := b.GenerateMoves(c, rules)
	entries := make([]DivideEntry, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	for i, m := range moves {
		child := b.Clone()
		child.MakeMove(m)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = DivideEntry{
				Move:  m,
				Nodes: perft(child, c.Other(), depth-1, rules),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
