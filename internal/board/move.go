package board

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Step is one atomic slide or jump.
type Step struct {
	From, To Square
}

// IsJump returns true if the step spans two rows.
func (s Step) IsJump() bool {
	return abs(s.To.Row-s.From.Row) == 2
}

// Captured returns the square jumped over. Only meaningful for jumps.
func (s Step) Captured() Square {
	return Between(s.From, s.To)
}

// String returns the step in "a3b4" form.
func (s Step) String() string {
	return s.From.String() + s.To.String()
}

// checkShape verifies both endpoints are on the board and the step is a
// one or two square diagonal.
func (s Step) checkShape() error {
	if !s.From.IsValid() || !s.To.IsValid() {
		return fmt.Errorf("%w: %v -> %v", ErrOutOfRange, s.From, s.To)
	}
	dr := abs(s.To.Row - s.From.Row)
	dc := abs(s.To.Col - s.From.Col)
	if dr != dc || dr < 1 || dr > 2 {
		return fmt.Errorf("%w: %s", ErrNotDiagonal, s)
	}
	return nil
}

// Move is one full turn: a single slide or a chain of jumps by one piece.
type Move []Step

// NewMove builds a Move from steps, checking only its structural shape:
// it must be non-empty and every endpoint must be a diagonal on the board.
func NewMove(steps ...Step) (Move, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyMove
	}
	for _, s := range steps {
		if err := s.checkShape(); err != nil {
			return nil, err
		}
	}
	m := make(Move, len(steps))
	copy(m, steps)
	return m, nil
}

// MoveFromPairs builds a Move from (from, to) square pairs.
func MoveFromPairs(pairs ...[2]Square) (Move, error) {
	steps := lo.Map(pairs, func(p [2]Square, _ int) Step {
		return Step{From: p[0], To: p[1]}
	})
	return NewMove(steps...)
}

// From returns the origin square of the moving piece.
func (m Move) From() Square {
	if len(m) == 0 {
		return NoSquare
	}
	return m[0].From
}

// To returns the final resting square of the moving piece.
func (m Move) To() Square {
	if len(m) == 0 {
		return NoSquare
	}
	return m[len(m)-1].To
}

// IsCapture returns true if the move jumps at least once.
func (m Move) IsCapture() bool {
	return len(m) > 0 && m[0].IsJump()
}

// Captures returns the squares of every piece jumped, in order.
func (m Move) Captures() []Square {
	var caps []Square
	for _, s := range m {
		if s.IsJump() {
			caps = append(caps, s.Captured())
		}
	}
	return caps
}

// Path returns every square the piece stands on, origin first.
func (m Move) Path() []Square {
	if len(m) == 0 {
		return nil
	}
	path := make([]Square, 0, len(m)+1)
	path = append(path, m[0].From)
	for _, s := range m {
		path = append(path, s.To)
	}
	return path
}

// Equal reports whether two moves have identical steps.
func (m Move) Equal(o Move) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p is a leading sub-sequence of m.
func (m Move) HasPrefix(p Move) bool {
	return len(p) <= len(m) && m[:len(p)].Equal(p)
}

// prepend returns a new move with s in front. m is left untouched.
func (m Move) prepend(s Step) Move {
	out := make(Move, 0, len(m)+1)
	out = append(out, s)
	return append(out, m...)
}

// String returns the move as comma separated steps, e.g. "a3b4" or "c3e5,e5g7".
func (m Move) String() string {
	if len(m) == 0 {
		return "-"
	}
	parts := lo.Map(m, func(s Step, _ int) string { return s.String() })
	return strings.Join(parts, ",")
}

// ParseMove parses move notation. Accepted forms:
//   - "a3b4,b4c5" comma separated steps
//   - "a3c5e7", "a3-c5-e7", "a3xc5xe7" a path of squares
//
// Only the shape is checked; legality is decided by the board.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, ErrEmptyMove
	}

	if strings.Contains(s, ",") {
		var steps []Step
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if len(part) != 4 {
				return nil, fmt.Errorf("%w: step %q", ErrBadNotation, part)
			}
			from, err := ParseSquare(part[:2])
			if err != nil {
				return nil, err
			}
			to, err := ParseSquare(part[2:])
			if err != nil {
				return nil, err
			}
			steps = append(steps, Step{From: from, To: to})
		}
		return NewMove(steps...)
	}

	compact := strings.NewReplacer("-", "", "x", "", ":", "").Replace(s)
	if len(compact) < 4 || len(compact)%2 != 0 {
		return nil, fmt.Errorf("%w: move %q", ErrBadNotation, s)
	}
	var path []Square
	for i := 0; i < len(compact); i += 2 {
		sq, err := ParseSquare(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		path = append(path, sq)
	}
	steps := make([]Step, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		steps = append(steps, Step{From: path[i-1], To: path[i]})
	}
	return NewMove(steps...)
}

// FindMove returns the move in moves equal to m.
func FindMove(moves []Move, m Move) (Move, bool) {
	return lo.Find(moves, func(c Move) bool { return c.Equal(m) })
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
