// ABOUTME: Tag name validation.
// ABOUTME: A tag name becomes a single path component, so separators are banned.

package tags

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTagName = errors.New("invalid tag name")

// MaxNameLength matches the usual NAME_MAX of local filesystems.
const MaxNameLength = 255

// ValidateName reports whether name can be used as a tag container.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidTagName)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrInvalidTagName, len(name), MaxNameLength)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidTagName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidTagName, name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidTagName, name)
	}
	return nil
}
