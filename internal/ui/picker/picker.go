// Package picker turns successive square clicks into checkers moves.
//
// The first click selects a piece, every following click names the next
// landing square. A move is committed as soon as the clicked path is a legal
// move that no other legal move extends. When a shorter chain is legal on its
// own (relaxed capture rules), clicking the last landing square again or
// calling Commit plays it.
package picker

import (
	"github.com/samber/lo"

	"github.com/hailam/checkersplay/internal/board"
)

// Picker tracks a partially entered move.
type Picker struct {
	legal  []board.Move
	origin board.Square
	path   board.Move
}

// New creates a picker over the legal moves of the side to move.
func New(legal []board.Move) *Picker {
	p := &Picker{}
	p.Reset(legal)
	return p
}

// Reset replaces the legal move list and clears the selection.
func (p *Picker) Reset(legal []board.Move) {
	p.legal = legal
	p.Clear()
}

// Clear drops the selection.
func (p *Picker) Clear() {
	p.origin = board.NoSquare
	p.path = nil
}

// Selected returns the square of the selected piece, or NoSquare.
func (p *Picker) Selected() board.Square {
	return p.origin
}

// Path returns the steps entered so far.
func (p *Picker) Path() board.Move {
	return p.path
}

// Current returns where the selected piece stands after the entered steps.
func (p *Picker) Current() board.Square {
	if len(p.path) > 0 {
		return p.path.To()
	}
	return p.origin
}

// Candidates returns the legal moves that agree with the selection so far.
func (p *Picker) Candidates() []board.Move {
	if p.origin == board.NoSquare {
		return nil
	}
	return lo.Filter(p.legal, func(m board.Move, _ int) bool {
		return m.From() == p.origin && m.HasPrefix(p.path)
	})
}

// Targets returns the squares the next click may land on.
func (p *Picker) Targets() []board.Square {
	n := len(p.path)
	next := lo.FilterMap(p.Candidates(), func(m board.Move, _ int) (board.Square, bool) {
		if len(m) <= n {
			return board.NoSquare, false
		}
		return m[n].To, true
	})
	return lo.Uniq(next)
}

// Click handles a click on sq and returns the move to play once the click
// completes one.
func (p *Picker) Click(sq board.Square) (board.Move, bool) {
	if p.origin == board.NoSquare {
		p.selectAt(sq)
		return nil, false
	}

	// Clicking the current landing square again stops the chain there.
	if len(p.path) > 0 && sq == p.Current() {
		return p.Commit()
	}

	ext := append(p.path[:len(p.path):len(p.path)], board.Step{From: p.Current(), To: sq})
	matches := lo.Filter(p.legal, func(m board.Move, _ int) bool {
		return m.HasPrefix(ext)
	})
	if len(matches) == 0 {
		if len(p.path) == 0 {
			p.selectAt(sq)
		}
		return nil, false
	}

	p.path = ext
	if len(matches) == 1 && len(matches[0]) == len(ext) {
		return p.Commit()
	}
	return nil, false
}

// Commit plays the entered path if it is a legal move by itself.
func (p *Picker) Commit() (board.Move, bool) {
	m, ok := board.FindMove(p.legal, p.path)
	if !ok {
		return nil, false
	}
	p.Clear()
	return m, true
}

// selectAt selects the piece on sq if it has a legal move, and clears the
// selection otherwise.
func (p *Picker) selectAt(sq board.Square) {
	p.Clear()
	if lo.ContainsBy(p.legal, func(m board.Move) bool { return m.From() == sq }) {
		p.origin = sq
	}
}
