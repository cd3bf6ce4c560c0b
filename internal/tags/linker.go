// ABOUTME: Linker abstracts how (tag, id) associations are persisted.
// ABOUTME: Backends: symlinks, hard links, or an embedded key-value index.

package tags

import "github.com/harper/scribble/internal/models"

// Linker persists associations between tag names and object ids. Names
// passed to a Linker have already been validated.
type Linker interface {
	// Link records the association. Linking twice is not an error.
	Link(tag, id string) error
	// Unlink drops the association and prunes the tag once it is empty.
	Unlink(tag, id string) error
	Has(tag, id string) (bool, error)
	Members(tag string) ([]string, error)
	// Tags lists every non-empty tag with its member count and the time
	// of its most recent association change. Order is unspecified.
	Tags() ([]*models.Tag, error)
	Close() error
}
