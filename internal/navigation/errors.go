package navigation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned inside Result values. None of them is fatal to the
// page: the worst outcome is an ignored navigation request.
var (
	// ErrUnknownSection indicates an intent named a section that is not registered.
	ErrUnknownSection = errors.New("unknown section")

	// ErrOutOfRange indicates an intent addressed an index outside the registry.
	ErrOutOfRange = errors.New("section index out of range")

	// ErrElementMissing is returned by a View when the section has no element
	// to scroll to. The transition itself still stands.
	ErrElementMissing = errors.New("section element missing")
)

// Error records which operation rejected which target.
type Error struct {
	Op     string // "lookup", "at", "restore"
	Target string // section name or index as text
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("navigation: %s %q: %v", e.Op, e.Target, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
