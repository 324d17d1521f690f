package findup

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when the pattern set is empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnreadable is returned when the starting directory cannot be
	// resolved or accessed.
	ErrUnreadable = errors.New("starting directory is unreadable")
)

// UnreadableError describes a starting directory the search could not use.
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("cannot search from %s: %v", e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUnreadable) match any UnreadableError.
func (e *UnreadableError) Is(target error) bool {
	return target == ErrUnreadable
}

// validatePatterns rejects an empty pattern set. Every pattern string is
// usable: one that is not a well-formed glob is looked up as a file name.
func validatePatterns(patterns []string) error {
	if len(patterns) == 0 {
		return fmt.Errorf("%w: expected at least one pattern", ErrInvalidArgument)
	}
	return nil
}
