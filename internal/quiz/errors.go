package quiz

import "errors"

// Contract violations from the view layer. They are wrapped with context and
// returned immediately; callers match them with errors.Is.
var (
	// ErrNotFound means the subject ID is not in the question bank.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange means an option index is outside the current question's options.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidState means a command was issued in the wrong session state.
	ErrInvalidState = errors.New("invalid state")
)
