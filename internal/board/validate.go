package board

import "fmt"

// ValidateMove checks that m is a legal move for c under the relaxed rules.
// It applies the same conditions as the generator: the board is read as it
// stands before the move, so the moving piece still occupies its origin and
// jumped pieces remain in place until the move is made.
func (b *Board) ValidateMove(c Color, m Move) error {
	if len(m) == 0 {
		return ErrEmptyMove
	}
	for i, s := range m {
		if err := s.checkShape(); err != nil {
			return err
		}
		if i > 0 && s.From != m[i-1].To {
			return fmt.Errorf("%w: step %d %s", ErrBrokenChain, i+1, s)
		}
	}

	piece := b.At(m.From())
	if piece == Empty {
		return fmt.Errorf("%w: %v", ErrNoPiece, m.From())
	}
	if piece.Color() != c {
		return fmt.Errorf("%w: %v holds a %s piece", ErrWrongColor, m.From(), piece.Color())
	}

	var captured []Square
	for _, s := range m {
		if !s.IsJump() && len(m) > 1 {
			return fmt.Errorf("%w: %s", ErrChainedSlide, s)
		}
		if piece.Rank() == Man && sign(s.To.Row-s.From.Row) != c.Forward() {
			return fmt.Errorf("%w: %s", ErrBackwardMan, s)
		}
		if !b.IsEmpty(s.To) {
			return fmt.Errorf("%w: %v", ErrOccupied, s.To)
		}
		if s.IsJump() {
			over := s.Captured()
			if b.At(over).Color() != c.Other() {
				return fmt.Errorf("%w: %s", ErrIllegalJump, s)
			}
			if containsSquare(captured, over) {
				return fmt.Errorf("%w: %v", ErrRecapture, over)
			}
			captured = append(captured, over)
		}
	}
	return nil
}

// ValidateMoveRules checks m against ValidateMove and then against the
// variant in rules.
func (b *Board) ValidateMoveRules(c Color, m Move, rules Rules) error {
	if err := b.ValidateMove(c, m); err != nil {
		return err
	}
	if !rules.MaximalCapture {
		return nil
	}
	if !m.IsCapture() {
		if b.HasCapture(c) {
			return ErrCaptureRequired
		}
		return nil
	}
	if len(b.pieceMoves(m.To(), b.At(m.From()), true, m.Captures())) > 0 {
		return fmt.Errorf("%w: from %v", ErrIncomplete, m.To())
	}
	return nil
}

// ApplyMoveRules validates m for c under rules and plays it.
// On error the board is unchanged.
func (b *Board) ApplyMoveRules(c Color, m Move, rules Rules) error {
	if err := b.ValidateMoveRules(c, m, rules); err != nil {
		return err
	}
	b.MakeMove(m)
	return nil
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
