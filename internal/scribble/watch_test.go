// ABOUTME: Tests for following new scribbles with Watch.
// ABOUTME: A second writer adds content while the watcher runs.

package scribble

import (
	"context"
	"testing"
	"time"

	"github.com/harper/scribble/internal/config"
	"github.com/harper/scribble/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsNewScribbles(t *testing.T) {
	s := openTest(t, config.BackendSymlink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan *models.Entry, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(e *models.Entry) {
			select {
			case seen <- e:
			default:
			}
		})
	}()

	// Keep adding distinct content until the watcher is up and reports one.
	var got *models.Entry
	deadline := time.After(5 * time.Second)
	for got == nil {
		_, err := s.Add([]byte("watched " + time.Now().Format(time.RFC3339Nano)))
		require.NoError(t, err)
		select {
		case got = <-seen:
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("watcher never reported a new scribble")
		}
	}

	assert.Contains(t, got.Preview, "watched")
	assert.False(t, got.Binary)

	cancel()
	require.NoError(t, <-done)
}
