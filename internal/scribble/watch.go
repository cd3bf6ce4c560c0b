// ABOUTME: Follows the objects directory and reports scribbles as they land.
// ABOUTME: Built on fsnotify; only completed renames into objects/ are seen.

package scribble

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/store"
)

// Watch calls fn for every scribble created after it starts, until ctx
// is done. Writers rename finished objects into place, so a Create event
// always refers to complete content.
func (s *Store) Watch(ctx context.Context, fn func(*models.Entry)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: start watcher: %w", store.ErrIO, err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(s.ObjectsDir()); err != nil {
		return fmt.Errorf("%w: watch objects: %w", store.ErrIO, err)
	}
	s.logger.Debug("watching", "dir", s.ObjectsDir())

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			id := filepath.Base(event.Name)
			if !store.ValidID(id) {
				continue
			}
			entries, err := s.listing.ListMembers([]string{id}, 1)
			if err != nil {
				s.logger.Warn("cannot read new scribble", "id", id, "err", err)
				continue
			}
			if len(entries) == 1 {
				fn(entries[0])
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", "err", err)
		}
	}
}
