// ABOUTME: Tag index mapping tag names to sets of scribble ids.
// ABOUTME: Validates names and targets, then delegates persistence to a Linker.

package tags

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/store"
)

// ObjectChecker is the part of the object store the index needs: it only
// ever asks whether an id exists, never for content.
type ObjectChecker interface {
	Exists(id string) (bool, error)
}

// Index associates tags with object ids.
type Index struct {
	linker  Linker
	objects ObjectChecker
	strict  bool
	logger  *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithStrict controls whether Tag refuses ids with no stored object.
// Strict is the default; turning it off reproduces older stores that
// allowed dangling tags.
func WithStrict(strict bool) Option {
	return func(x *Index) {
		x.strict = strict
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Index) {
		x.logger = logger
	}
}

func New(linker Linker, objects ObjectChecker, opts ...Option) *Index {
	x := &Index{
		linker:  linker,
		objects: objects,
		strict:  true,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Tag associates name with id. Tagging an id that already carries the
// tag is a no-op.
func (x *Index) Tag(id, name string) error {
	name = models.NormalizeTagName(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	if !store.ValidID(id) {
		return fmt.Errorf("%w: %q", store.ErrNotFound, id)
	}
	if x.strict {
		ok, err := x.objects.Exists(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
	}

	if err := x.linker.Link(name, id); err != nil {
		return err
	}
	x.logger.Debug("tag linked", "tag", name, "id", id)
	return nil
}

// Untag removes the association between name and id.
func (x *Index) Untag(id, name string) error {
	name = models.NormalizeTagName(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	if !store.ValidID(id) {
		return fmt.Errorf("%w: %q", store.ErrNotFound, id)
	}
	if err := x.linker.Unlink(name, id); err != nil {
		return err
	}
	x.logger.Debug("tag unlinked", "tag", name, "id", id)
	return nil
}

// TagsOf returns the tags carried by id in lexicographic order.
func (x *Index) TagsOf(id string) ([]string, error) {
	all, err := x.linker.Tags()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, tag := range all {
		ok, err := x.linker.Has(tag.Name, id)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, tag.Name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// AllTags returns every tag, most recently used first.
func (x *Index) AllTags() ([]*models.Tag, error) {
	all, err := x.linker.Tags()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, b *models.Tag) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return all, nil
}

// Members returns the ids carrying name, sorted.
func (x *Index) Members(name string) ([]string, error) {
	name = models.NormalizeTagName(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	ids, err := x.linker.Members(name)
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

// Association is one (tag, id) pair.
type Association struct {
	Tag string
	ID  string
}

// Dangling lists associations whose object no longer exists.
func (x *Index) Dangling() ([]Association, error) {
	all, err := x.linker.Tags()
	if err != nil {
		return nil, err
	}
	var dangling []Association
	for _, tag := range all {
		ids, err := x.linker.Members(tag.Name)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			ok, err := x.objects.Exists(id)
			if err != nil {
				return nil, err
			}
			if !ok {
				dangling = append(dangling, Association{Tag: tag.Name, ID: id})
			}
		}
	}
	slices.SortFunc(dangling, func(a, b Association) int {
		if c := cmp.Compare(a.Tag, b.Tag); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return dangling, nil
}

// Repair removes every dangling association and returns how many it
// removed.
func (x *Index) Repair() (int, error) {
	dangling, err := x.Dangling()
	if err != nil {
		return 0, err
	}
	for i, a := range dangling {
		if err := x.linker.Unlink(a.Tag, a.ID); err != nil {
			return i, err
		}
		x.logger.Debug("dangling tag removed", "tag", a.Tag, "id", a.ID)
	}
	return len(dangling), nil
}

// Close releases the linker.
func (x *Index) Close() error {
	return x.linker.Close()
}
