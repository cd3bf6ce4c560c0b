// ABOUTME: Tests for the listing engine.
// ABOUTME: Covers recency order, limits, tag restriction and vanished objects.

package listing

import (
	"testing"
	"time"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := store.Open(t.TempDir(), store.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	require.NoError(t, err)
	return s
}

func ids(entries []*models.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestListLimit(t *testing.T) {
	s := newStore(t)
	var created []string
	for _, content := range []string{"A", "B", "C", "D", "E"} {
		id, err := s.Create([]byte(content))
		require.NoError(t, err)
		created = append(created, id)
	}
	engine := NewEngine(s)

	entries, err := engine.List(2)
	require.NoError(t, err)
	assert.Equal(t, []string{created[4], created[3]}, ids(entries))
	assert.Equal(t, "E", entries[0].Preview)

	all, err := engine.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestListPreviews(t *testing.T) {
	s := newStore(t)
	_, err := s.Create([]byte("hello\nworld"))
	require.NoError(t, err)
	_, err = s.Create([]byte{0xff, 0xfe})
	require.NoError(t, err)

	entries, err := NewEngine(s).List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Binary)
	assert.Equal(t, `\xff\xfe`, entries[0].Preview)
	assert.False(t, entries[1].Binary)
	assert.Equal(t, "hello", entries[1].Preview)
}

func TestListReadsBoundedWindow(t *testing.T) {
	s := newStore(t)
	big := make([]byte, 10*PreviewWindow)
	for i := range big {
		big[i] = 'x'
	}
	_, err := s.Create(big)
	require.NoError(t, err)

	entries, err := NewEngine(s).List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Preview, PreviewWindow)
}

func TestListMembers(t *testing.T) {
	s := newStore(t)
	a, err := s.Create([]byte("a"))
	require.NoError(t, err)
	_, err = s.Create([]byte("b"))
	require.NoError(t, err)
	c, err := s.Create([]byte("c"))
	require.NoError(t, err)

	entries, err := NewEngine(s).ListMembers([]string{a, c, store.Digest([]byte("gone"))}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{c, a}, ids(entries))
}

// vanishingSource reports an object that disappears before it is read.
type vanishingSource struct {
	*store.Store
	ghost string
}

func (v vanishingSource) Recent() ([]*models.Scribble, error) {
	recent, err := v.Store.Recent()
	if err != nil {
		return nil, err
	}
	return append([]*models.Scribble{{ID: v.ghost, CreatedAt: time.Now()}}, recent...), nil
}

func TestListSkipsVanishedObjects(t *testing.T) {
	s := newStore(t)
	id, err := s.Create([]byte("still here"))
	require.NoError(t, err)

	engine := NewEngine(vanishingSource{Store: s, ghost: store.Digest([]byte("ghost"))})
	entries, err := engine.List(0)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids(entries))
}
