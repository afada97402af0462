package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/watcher"
)

func draft(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))
	return dir, path
}

func watch(t *testing.T, path string) <-chan watcher.Change {
	t.Helper()
	ch, err := watcher.Watch(t.Context(), path, 50*time.Millisecond)
	require.NoError(t, err)
	return ch
}

func expectChange(t *testing.T, ch <-chan watcher.Change) watcher.Change {
	t.Helper()
	select {
	case c, ok := <-ch:
		require.True(t, ok, "channel closed")
		return c
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}
	return watcher.Change{}
}

func expectQuiet(t *testing.T, ch <-chan watcher.Change, d time.Duration) {
	t.Helper()
	select {
	case c := <-ch:
		t.Fatalf("unexpected notification %+v", c)
	case <-time.After(d):
	}
}

func TestWatch_DebounceMultipleWrites(t *testing.T) {
	_, path := draft(t)
	ch := watch(t, path)

	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("draft %d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	c := expectChange(t, ch)
	require.False(t, c.Removed)
	require.True(t, filepath.IsAbs(c.Path))
	expectQuiet(t, ch, 150*time.Millisecond)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir, path := draft(t)
	ch := watch(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	expectQuiet(t, ch, 200*time.Millisecond)
}

func TestWatch_DetectsAtomicSave(t *testing.T) {
	dir, path := draft(t)
	ch := watch(t, path)

	tmp := filepath.Join(dir, ".draft.md.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("saved"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	require.False(t, expectChange(t, ch).Removed)
}

func TestWatch_ReportsRemoval(t *testing.T) {
	_, path := draft(t)
	ch := watch(t, path)

	require.NoError(t, os.Remove(path))
	require.True(t, expectChange(t, ch).Removed)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	_, path := draft(t)
	ctx, cancel := context.WithCancel(t.Context())
	ch, err := watcher.Watch(ctx, path, 0)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := watcher.Watch(t.Context(), filepath.Join(t.TempDir(), "nope", "draft.md"), 0)
	require.Error(t, err)
}
