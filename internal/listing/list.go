// ABOUTME: Listing engine enumerating scribbles newest-first with previews.
// ABOUTME: Reads only a bounded window of each object.

package listing

import (
	"errors"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/store"
)

// Source is what the engine reads from; *store.Store satisfies it.
type Source interface {
	Recent() ([]*models.Scribble, error)
	ReadHead(id string, n int) ([]byte, bool, error)
}

type Engine struct {
	src    Source
	window int
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src, window: PreviewWindow}
}

// List returns up to limit entries, newest first. A limit of zero or
// less returns everything.
func (e *Engine) List(limit int) ([]*models.Entry, error) {
	return e.list(nil, limit)
}

// ListMembers is List restricted to the given ids.
func (e *Engine) ListMembers(ids []string, limit int) ([]*models.Entry, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return e.list(set, limit)
}

func (e *Engine) list(only map[string]struct{}, limit int) ([]*models.Entry, error) {
	recent, err := e.src.Recent()
	if err != nil {
		return nil, err
	}

	var entries []*models.Entry
	for _, s := range recent {
		if limit > 0 && len(entries) >= limit {
			break
		}
		if only != nil {
			if _, ok := only[s.ID]; !ok {
				continue
			}
		}
		head, truncated, err := e.src.ReadHead(s.ID, e.window)
		if errors.Is(err, store.ErrNotFound) {
			continue // removed since Recent
		}
		if err != nil {
			return nil, err
		}
		preview, binary := Preview(head, truncated)
		entries = append(entries, &models.Entry{
			ID:        s.ID,
			Preview:   preview,
			Binary:    binary,
			CreatedAt: s.CreatedAt,
		})
	}
	return entries, nil
}
