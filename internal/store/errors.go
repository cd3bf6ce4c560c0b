// ABOUTME: Error taxonomy shared by the object store and its callers.
// ABOUTME: NotFound, Ambiguous (with candidates) and IO failures.

package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("scribble not found")
	ErrAmbiguous = errors.New("prefix matches multiple scribbles")
	ErrIO        = errors.New("storage failure")
)

// AmbiguousError names the ids a prefix could refer to.
type AmbiguousError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: %q has %d matches", ErrAmbiguous, e.Prefix, len(e.Candidates))
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
