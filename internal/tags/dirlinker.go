// ABOUTME: Directory-backed linkers: one directory per tag, one entry per id.
// ABOUTME: Entries are symlinks to ../../objects/<id> or hard links to the object.

package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/store"
)

// TagsDir is the directory under the store root holding tag containers.
const TagsDir = "tags"

type linkMode int

const (
	symbolic linkMode = iota
	hard
)

// DirLinker keeps associations as directory entries under <root>/tags.
// A tag's recency is its directory's modification time, which the
// filesystem bumps whenever an entry is added or removed.
type DirLinker struct {
	dir        string
	objectsDir string
	mode       linkMode
}

// NewSymlinkLinker stores each association as a relative symlink
// <root>/tags/<tag>/<id> -> ../../objects/<id>.
func NewSymlinkLinker(root string) (*DirLinker, error) {
	return newDirLinker(root, symbolic)
}

// NewHardLinkLinker uses the same layout with hard links, for
// filesystems without symlink support. A hard link can only be made to
// an object that exists.
func NewHardLinkLinker(root string) (*DirLinker, error) {
	return newDirLinker(root, hard)
}

func newDirLinker(root string, mode linkMode) (*DirLinker, error) {
	dir := filepath.Join(root, TagsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create tags directory: %w", store.ErrIO, err)
	}
	return &DirLinker{
		dir:        dir,
		objectsDir: filepath.Join(root, store.ObjectsDir),
		mode:       mode,
	}, nil
}

func (l *DirLinker) entryPath(tag, id string) string {
	return filepath.Join(l.dir, tag, id)
}

func (l *DirLinker) Link(tag, id string) error {
	container := filepath.Join(l.dir, tag)
	entry := l.entryPath(tag, id)

	// A concurrent Unlink may prune the container between MkdirAll and
	// the link call, so retry a couple of times.
	var err error
	for range 3 {
		if err = os.MkdirAll(container, 0o755); err != nil {
			return fmt.Errorf("%w: create tag %q: %w", store.ErrIO, tag, err)
		}
		err = l.makeLink(id, entry)
		if err == nil || errors.Is(err, fs.ErrExist) {
			return nil
		}
		if _, statErr := os.Stat(container); !errors.Is(statErr, fs.ErrNotExist) {
			break
		}
	}
	if l.mode == hard && errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return fmt.Errorf("%w: link %s into %q: %w", store.ErrIO, id, tag, err)
}

func (l *DirLinker) makeLink(id, entry string) error {
	if l.mode == hard {
		return os.Link(filepath.Join(l.objectsDir, id), entry)
	}
	return os.Symlink(filepath.Join("..", "..", store.ObjectsDir, id), entry)
}

func (l *DirLinker) Unlink(tag, id string) error {
	err := os.Remove(l.entryPath(tag, id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s is not tagged %q", store.ErrNotFound, id, tag)
	}
	if err != nil {
		return fmt.Errorf("%w: unlink %s from %q: %w", store.ErrIO, id, tag, err)
	}
	// Fails harmlessly while other entries remain.
	_ = os.Remove(filepath.Join(l.dir, tag))
	return nil
}

func (l *DirLinker) Has(tag, id string) (bool, error) {
	_, err := os.Lstat(l.entryPath(tag, id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat tag entry: %w", store.ErrIO, err)
}

func (l *DirLinker) Members(tag string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(l.dir, tag))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read tag %q: %w", store.ErrIO, tag, err)
	}
	var ids []string
	for _, entry := range entries {
		if store.ValidID(entry.Name()) {
			ids = append(ids, entry.Name())
		}
	}
	return ids, nil
}

func (l *DirLinker) Tags() ([]*models.Tag, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read tags directory: %w", store.ErrIO, err)
	}

	var result []*models.Tag
	for _, entry := range entries {
		if !entry.IsDir() || ValidateName(entry.Name()) != nil {
			continue
		}
		info, err := entry.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue // pruned while listing
		}
		if err != nil {
			return nil, fmt.Errorf("%w: stat tag %q: %w", store.ErrIO, entry.Name(), err)
		}
		members, err := l.Members(entry.Name())
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			continue
		}
		result = append(result, &models.Tag{
			Name:      entry.Name(),
			Count:     len(members),
			UpdatedAt: info.ModTime(),
		})
	}
	return result, nil
}

func (l *DirLinker) Close() error {
	return nil
}
