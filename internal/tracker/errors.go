package tracker

import "errors"

// Sentinel errors returned by tracker operations. Callers match them with
// errors.Is; returned errors wrap them with context.
var (
	// ErrInvalidInput means the caller supplied an empty or malformed argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIllegalTransition means a phase advance was attempted from the
	// terminal phase.
	ErrIllegalTransition = errors.New("illegal phase transition")
)
