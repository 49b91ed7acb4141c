package history

import (
	"errors"
	"fmt"
)

// ErrPersistence is the sentinel matched by every PersistenceError.
var ErrPersistence = errors.New("history persistence failed")

// PersistenceError reports a failed read or write of the history document.
// It is recoverable: the in-memory store stays usable.
type PersistenceError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrPersistence) true for any PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
