// ABOUTME: Tests for prefix resolution.
// ABOUTME: Covers unique, missing, ambiguous and full-id lookups.

package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestResolveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	id := mustCreate(t, s, "round trip")

	for _, prefix := range []string{id, id[:6]} {
		got, err := s.Resolve(prefix)
		if err != nil {
			t.Fatalf("Resolve(%s) failed: %v", prefix, err)
		}
		if got != id {
			t.Errorf("Resolve(%s) = %s, want %s", prefix, got, id)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	s := openTestStore(t)
	mustCreate(t, s, "something")

	for _, prefix := range []string{"zzzz", Digest([]byte("missing"))} {
		if _, err := s.Resolve(prefix); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%s) error = %v, want ErrNotFound", prefix, err)
		}
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	s := openTestStore(t)
	id := mustCreate(t, s, "hello")
	if !strings.HasPrefix(id, "2cf24dba") {
		t.Fatalf("unexpected id %s", id)
	}

	if _, err := s.Resolve("2CF24DBA"); !errors.Is(err, ErrNotFound) {
		t.Errorf("upper case prefix error = %v, want ErrNotFound", err)
	}
}

func TestResolveAmbiguityMatchesPrefixCounts(t *testing.T) {
	s := openTestStore(t)

	var ids []string
	for i := range 40 {
		ids = append(ids, mustCreate(t, s, fmt.Sprintf("note-%d", i)))
	}

	for _, prefix := range strings.Split("0123456789abcdef", "") {
		var matching []string
		for _, id := range ids {
			if strings.HasPrefix(id, prefix) {
				matching = append(matching, id)
			}
		}

		got, err := s.Resolve(prefix)
		switch len(matching) {
		case 0:
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("prefix %s: error = %v, want ErrNotFound", prefix, err)
			}
		case 1:
			if err != nil {
				t.Fatalf("prefix %s: %v", prefix, err)
			}
			if got != matching[0] {
				t.Errorf("prefix %s: got %s, want %s", prefix, got, matching[0])
			}
		default:
			if !errors.Is(err, ErrAmbiguous) {
				t.Errorf("prefix %s: error = %v, want ErrAmbiguous", prefix, err)
			}
			var ambiguous *AmbiguousError
			if !errors.As(err, &ambiguous) {
				t.Fatalf("prefix %s: error %v is not an *AmbiguousError", prefix, err)
			}
			if ambiguous.Prefix != prefix {
				t.Errorf("prefix %s: AmbiguousError.Prefix = %s", prefix, ambiguous.Prefix)
			}
			candidates := slices.Clone(ambiguous.Candidates)
			slices.Sort(candidates)
			slices.Sort(matching)
			if !slices.Equal(candidates, matching) {
				t.Errorf("prefix %s: candidates = %v, want %v", prefix, candidates, matching)
			}
		}
	}
}

func TestResolveEmptyStore(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Resolve(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve on empty store error = %v, want ErrNotFound", err)
	}
}
