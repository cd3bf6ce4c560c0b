// ABOUTME: Core facade wiring object store, tag index and listing together.
// ABOUTME: This is the surface the CLI and MCP server call into.

package scribble

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/scribble/internal/config"
	"github.com/harper/scribble/internal/listing"
	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/store"
	"github.com/harper/scribble/internal/tags"
)

// Store is a scribble store rooted at one directory.
type Store struct {
	root    string
	objects *store.Store
	index   *tags.Index
	listing *listing.Engine
	logger  *slog.Logger
}

type options struct {
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger passed down to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for creation records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// Open opens (creating if needed) the store described by cfg.
func Open(cfg *config.Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &options{logger: slog.New(slog.DiscardHandler), clock: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	objects, err := store.Open(cfg.Root, store.WithLogger(o.logger), store.WithClock(o.clock))
	if err != nil {
		return nil, err
	}

	var linker tags.Linker
	switch cfg.TagBackend {
	case config.BackendHardLink:
		linker, err = tags.NewHardLinkLinker(cfg.Root)
	case config.BackendKV:
		linker, err = tags.OpenKVLinker(filepath.Join(cfg.Root, tags.KVDir))
	default:
		linker, err = tags.NewSymlinkLinker(cfg.Root)
	}
	if err != nil {
		return nil, err
	}

	o.logger.Debug("store opened", "root", cfg.Root, "tag_backend", cfg.TagBackend, "strict_tags", cfg.StrictTags)
	return &Store{
		root:    cfg.Root,
		objects: objects,
		index:   tags.New(linker, objects, tags.WithStrict(cfg.StrictTags), tags.WithLogger(o.logger)),
		listing: listing.NewEngine(objects),
		logger:  o.logger,
	}, nil
}

// Root returns the store directory.
func (s *Store) Root() string {
	return s.root
}

// ObjectsDir returns the directory objects are written into.
func (s *Store) ObjectsDir() string {
	return filepath.Join(s.root, store.ObjectsDir)
}

// Close releases the tag index.
func (s *Store) Close() error {
	return s.index.Close()
}

// Add stores content and returns its id.
func (s *Store) Add(content []byte) (string, error) {
	return s.objects.Create(content)
}

// Resolve expands an id prefix to a full id.
func (s *Store) Resolve(prefix string) (string, error) {
	return s.objects.Resolve(prefix)
}

// Read returns the content stored under a full id.
func (s *Store) Read(id string) ([]byte, error) {
	return s.objects.Read(id)
}

// Get resolves prefix and returns the scribble with its content.
func (s *Store) Get(prefix string) (*models.Scribble, error) {
	id, err := s.objects.Resolve(prefix)
	if err != nil {
		return nil, err
	}
	meta, err := s.objects.Stat(id)
	if err != nil {
		return nil, err
	}
	meta.Content, err = s.objects.Read(id)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// Tag attaches tag to id.
func (s *Store) Tag(id, tag string) error {
	return s.index.Tag(id, tag)
}

// Untag removes tag from id.
func (s *Store) Untag(id, tag string) error {
	return s.index.Untag(id, tag)
}

// TagsOf returns the tags carried by id.
func (s *Store) TagsOf(id string) ([]string, error) {
	return s.index.TagsOf(id)
}

// AllTags returns every tag, most recently used first.
func (s *Store) AllTags() ([]*models.Tag, error) {
	return s.index.AllTags()
}

// List returns up to limit entries newest first; limit <= 0 means all.
func (s *Store) List(limit int) ([]*models.Entry, error) {
	return s.listing.List(limit)
}

// ListTagged is List restricted to scribbles carrying tag.
func (s *Store) ListTagged(tag string, limit int) ([]*models.Entry, error) {
	members, err := s.index.Members(tag)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	return s.listing.ListMembers(members, limit)
}

// Remove deletes a scribble and its tag associations.
func (s *Store) Remove(id string) error {
	names, err := s.index.TagsOf(id)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := s.index.Untag(id, name); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("untag %q: %w", name, err)
		}
	}
	return s.objects.Remove(id)
}

// Report summarizes a consistency check.
type Report struct {
	Objects   int
	Dangling  []tags.Association
	TempFiles []string
	Repaired  int
}

// Fsck checks for dangling tag associations and abandoned temp files,
// removing both when repair is set.
func (s *Store) Fsck(repair bool) (*Report, error) {
	ids, err := s.objects.IDs()
	if err != nil {
		return nil, err
	}
	report := &Report{Objects: len(ids)}

	report.Dangling, err = s.index.Dangling()
	if err != nil {
		return nil, err
	}

	tmp, err := os.ReadDir(filepath.Join(s.root, store.TmpDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: read tmp directory: %w", store.ErrIO, err)
	}
	for _, entry := range tmp {
		report.TempFiles = append(report.TempFiles, entry.Name())
	}

	if !repair {
		return report, nil
	}

	report.Repaired, err = s.index.Repair()
	if err != nil {
		return report, err
	}
	for _, name := range report.TempFiles {
		if err := os.Remove(filepath.Join(s.root, store.TmpDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return report, fmt.Errorf("%w: remove temp file: %w", store.ErrIO, err)
		}
		report.Repaired++
	}
	s.logger.Info("store repaired", "removed", report.Repaired)
	return report, nil
}
