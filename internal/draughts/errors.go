package draughts

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is returned for a move not among the current legal moves.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvariant marks a board state that contradicts an otherwise legal move.
	ErrInvariant = errors.New("board invariant violated")

	ErrBadPosition = errors.New("bad position")
)

// MoveError is the rejection returned by ApplyMove. Err is ErrIllegalMove or
// ErrInvariant, so callers can use errors.Is.
type MoveError struct {
	Err    error
	Move   Move
	Reason string
}

func (e *MoveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Move)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Move, e.Reason)
}

func (e *MoveError) Unwrap() error { return e.Err }
