package board

import "errors"

// Errors returned when a move cannot be built or applied.
// They describe caller input problems; the board is never modified when one is returned.
var (
	ErrEmptyMove       = errors.New("move has no steps")
	ErrOutOfRange      = errors.New("square off the board")
	ErrNotDiagonal     = errors.New("step is not a one or two square diagonal")
	ErrNoPiece         = errors.New("no piece on origin square")
	ErrWrongColor      = errors.New("piece belongs to the other side")
	ErrOccupied        = errors.New("destination is occupied")
	ErrBrokenChain     = errors.New("step does not start where the previous one ended")
	ErrIllegalJump     = errors.New("jump does not cross an opponent piece")
	ErrChainedSlide    = errors.New("a slide must be the whole move")
	ErrBackwardMan     = errors.New("men may only move forward")
	ErrRecapture       = errors.New("piece already captured this turn")
	ErrCaptureRequired = errors.New("a capture is available and must be taken")
	ErrIncomplete      = errors.New("jump chain can continue and must be completed")
	ErrBadNotation     = errors.New("invalid notation")
)
