// ABOUTME: Prefix resolution from a user-typed id fragment to one object.
// ABOUTME: Reports absence and ambiguity distinctly so callers can react.

package store

import (
	"fmt"
	"slices"
	"strings"
)

// Resolve expands prefix to the single stored id it designates. The match
// is a case-sensitive string prefix over the hex id.
func (s *Store) Resolve(prefix string) (string, error) {
	// A full id resolves to itself without scanning the directory.
	if ValidID(prefix) {
		ok, err := s.Exists(prefix)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
		}
		return prefix, nil
	}

	ids, err := s.IDs()
	if err != nil {
		return "", err
	}

	var candidates []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			candidates = append(candidates, id)
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: no scribble matches %q", ErrNotFound, prefix)
	case 1:
		return candidates[0], nil
	default:
		slices.Sort(candidates)
		return "", &AmbiguousError{Prefix: prefix, Candidates: candidates}
	}
}
