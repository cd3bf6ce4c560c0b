// ABOUTME: Tests for the store facade across tag backends.
// ABOUTME: Exercises add, resolve, tag, list, remove and fsck end to end.

package scribble

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/scribble/internal/config"
	"github.com/harper/scribble/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T, backend string) *Store {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir()
	cfg.TagBackend = backend

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, err := Open(cfg, WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var allBackends = []string{config.BackendSymlink, config.BackendHardLink, config.BackendKV}

func TestAddResolveGet(t *testing.T) {
	s := openTest(t, config.BackendSymlink)

	id, err := s.Add([]byte("# heading\nbody"))
	require.NoError(t, err)
	assert.Equal(t, store.Digest([]byte("# heading\nbody")), id)

	resolved, err := s.Resolve(id[:6])
	require.NoError(t, err)
	assert.Equal(t, id, resolved)

	got, err := s.Get(id[:6])
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, []byte("# heading\nbody"), got.Content)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetUnknownPrefix(t *testing.T) {
	s := openTest(t, config.BackendSymlink)

	_, err := s.Get("ffff")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := openTest(t, config.BackendSymlink)

	for _, content := range []string{"first", "second", "third"} {
		_, err := s.Add([]byte(content))
		require.NoError(t, err)
	}

	entries, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Preview)
	assert.Equal(t, "second", entries[1].Preview)
}

func TestTaggingAcrossBackends(t *testing.T) {
	for _, backend := range allBackends {
		t.Run(backend, func(t *testing.T) {
			s := openTest(t, backend)

			a, err := s.Add([]byte("alpha"))
			require.NoError(t, err)
			b, err := s.Add([]byte("beta"))
			require.NoError(t, err)

			require.NoError(t, s.Tag(a, "work"))
			require.NoError(t, s.Tag(b, "work"))
			require.NoError(t, s.Tag(a, "home"))

			names, err := s.TagsOf(a)
			require.NoError(t, err)
			assert.Equal(t, []string{"home", "work"}, names)

			entries, err := s.ListTagged("work", 0)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "beta", entries[0].Preview)
			assert.Equal(t, "alpha", entries[1].Preview)

			none, err := s.ListTagged("absent", 0)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestRemoveDropsTags(t *testing.T) {
	for _, backend := range allBackends {
		t.Run(backend, func(t *testing.T) {
			s := openTest(t, backend)

			id, err := s.Add([]byte("doomed"))
			require.NoError(t, err)
			require.NoError(t, s.Tag(id, "gone"))

			require.NoError(t, s.Remove(id))

			_, err = s.Resolve(id)
			assert.ErrorIs(t, err, store.ErrNotFound)

			all, err := s.AllTags()
			require.NoError(t, err)
			assert.Empty(t, all)

			report, err := s.Fsck(false)
			require.NoError(t, err)
			assert.Empty(t, report.Dangling)
		})
	}
}

func TestFsckRepairsDanglingAndTempFiles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir()
	cfg.StrictTags = false
	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	kept, err := s.Add([]byte("kept"))
	require.NoError(t, err)
	require.NoError(t, s.Tag(kept, "x"))
	require.NoError(t, s.Tag(store.Digest([]byte("ghost")), "x"))

	stray := filepath.Join(cfg.Root, "tmp", "abandoned.tmp")
	require.NoError(t, os.WriteFile(stray, []byte("partial"), 0o600))

	report, err := s.Fsck(false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Objects)
	assert.Len(t, report.Dangling, 1)
	assert.Equal(t, []string{"abandoned.tmp"}, report.TempFiles)
	assert.Zero(t, report.Repaired)
	assert.FileExists(t, stray)

	report, err = s.Fsck(true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Repaired)
	assert.NoFileExists(t, stray)

	report, err = s.Fsck(false)
	require.NoError(t, err)
	assert.Empty(t, report.Dangling)
	assert.Empty(t, report.TempFiles)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir()
	cfg.TagBackend = "carrier-pigeon"

	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestReopenKeepsKVTags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir()
	cfg.TagBackend = config.BackendKV

	s, err := Open(cfg)
	require.NoError(t, err)
	id, err := s.Add([]byte("persisted"))
	require.NoError(t, err)
	require.NoError(t, s.Tag(id, "durable"))
	require.NoError(t, s.Close())

	s, err = Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	names, err := s.TagsOf(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"durable"}, names)
}
