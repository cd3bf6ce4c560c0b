// ABOUTME: Filesystem object store keyed by content digest.
// ABOUTME: Crash-safe creation via temp file + rename, reads by exact id.

package store

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/harper/scribble/internal/models"
)

// Directory names within the store root.
const (
	ObjectsDir = "objects"
	TmpDir     = "tmp"
)

// Store persists scribble content under its digest. It holds no locks:
// concurrent creators rely on rename atomicity and on identical ids
// implying identical bytes.
type Store struct {
	root   string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the creation-time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open creates the directory structure under root if needed.
func Open(root string, opts ...Option) (*Store, error) {
	s := &Store{
		root:   root,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, dir := range []string{root, s.objectsDir(), filepath.Join(root, TmpDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ioError("create "+dir, err)
		}
	}
	return s, nil
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// ObjectPath returns where the object with the given id lives.
func (s *Store) ObjectPath(id string) string {
	return filepath.Join(s.objectsDir(), id)
}

func (s *Store) objectsDir() string {
	return filepath.Join(s.root, ObjectsDir)
}

func (s *Store) journalPath() string {
	return filepath.Join(s.root, journalFile)
}

// Create stores content and returns its id. Storing content that is
// already present leaves the existing object untouched.
func (s *Store) Create(content []byte) (string, error) {
	id := Digest(content)
	final := s.ObjectPath(id)

	if _, err := os.Lstat(final); err == nil {
		s.logger.Debug("object already stored", "id", id)
		return id, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", ioError("stat object", err)
	}

	tmpPath := filepath.Join(s.root, TmpDir, uuid.NewString()+".tmp")
	if err := writeFileSync(tmpPath, content); err != nil {
		_ = os.Remove(tmpPath)
		return "", ioError("write object", err)
	}
	if err := os.Rename(tmpPath, final); err != nil {
		_ = os.Remove(tmpPath)
		return "", ioError("rename object into place", err)
	}

	if err := s.appendJournal(id, s.now(), false); err != nil {
		return "", err
	}
	s.logger.Debug("object created", "id", id, "size", len(content))
	return id, nil
}

func writeFileSync(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read returns the exact bytes stored under id.
func (s *Store) Read(id string) ([]byte, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	data, err := os.ReadFile(s.ObjectPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, ioError("read object", err)
	}
	return data, nil
}

// ReadHead returns at most n leading bytes of the object and whether the
// object holds more than that.
func (s *Store) ReadHead(id string, n int) ([]byte, bool, error) {
	if !ValidID(id) {
		return nil, false, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	f, err := os.Open(s.ObjectPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, false, ioError("open object", err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, n+1)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, false, ioError("read object", err)
	}
	if read > n {
		return buf[:n], true, nil
	}
	return buf[:read], false, nil
}

// Exists reports whether an object is stored under id.
func (s *Store) Exists(id string) (bool, error) {
	if !ValidID(id) {
		return false, nil
	}
	_, err := os.Stat(s.ObjectPath(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, ioError("stat object", err)
}

// Remove deletes the object stored under id.
func (s *Store) Remove(id string) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	err := os.Remove(s.ObjectPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return ioError("remove object", err)
	}
	if err := s.appendJournal(id, s.now(), true); err != nil {
		return err
	}
	s.logger.Debug("object removed", "id", id)
	return nil
}

// IDs returns every stored object id in directory order.
func (s *Store) IDs() ([]string, error) {
	entries, err := os.ReadDir(s.objectsDir())
	if err != nil {
		return nil, ioError("read objects directory", err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && ValidID(entry.Name()) {
			ids = append(ids, entry.Name())
		}
	}
	return ids, nil
}

// Stat returns the object's metadata without its content.
func (s *Store) Stat(id string) (*models.Scribble, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	info, err := os.Stat(s.ObjectPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, ioError("stat object", err)
	}
	journal, err := s.readJournal()
	if err != nil {
		return nil, err
	}
	created := info.ModTime()
	if rec, ok := journal[id]; ok {
		created = rec.created
	}
	return &models.Scribble{ID: id, CreatedAt: created}, nil
}

// Recent returns metadata for every object, newest first. Creation times
// come from the journal; objects it does not know about (written by older
// tools) fall back to their file modification time.
func (s *Store) Recent() ([]*models.Scribble, error) {
	entries, err := os.ReadDir(s.objectsDir())
	if err != nil {
		return nil, ioError("read objects directory", err)
	}
	journal, err := s.readJournal()
	if err != nil {
		return nil, err
	}

	type ranked struct {
		scribble *models.Scribble
		seq      int
	}
	all := make([]ranked, 0, len(entries))
	for _, entry := range entries {
		id := entry.Name()
		if !entry.Type().IsRegular() || !ValidID(id) {
			continue
		}
		if rec, ok := journal[id]; ok {
			all = append(all, ranked{&models.Scribble{ID: id, CreatedAt: rec.created}, rec.seq})
			continue
		}
		info, err := entry.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue // removed while listing
		}
		if err != nil {
			return nil, ioError("stat object", err)
		}
		all = append(all, ranked{&models.Scribble{ID: id, CreatedAt: info.ModTime()}, 0})
	}

	slices.SortFunc(all, func(a, b ranked) int {
		if c := b.scribble.CreatedAt.Compare(a.scribble.CreatedAt); c != 0 {
			return c
		}
		if c := cmp.Compare(b.seq, a.seq); c != 0 {
			return c
		}
		return cmp.Compare(b.scribble.ID, a.scribble.ID)
	})

	result := make([]*models.Scribble, len(all))
	for i, r := range all {
		result[i] = r.scribble
	}
	return result, nil
}

// IDsByRecency returns every stored id, most recently created first.
func (s *Store) IDsByRecency() ([]string, error) {
	recent, err := s.Recent()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(recent))
	for i, r := range recent {
		ids[i] = r.ID
	}
	return ids, nil
}
