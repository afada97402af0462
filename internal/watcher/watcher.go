// Package watcher notifies when the file being edited changes on disk.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/ezwrite/internal/log"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 300 * time.Millisecond

// Change is one debounced burst of activity on the watched file.
type Change struct {
	Path string
	// Removed is set when the file no longer exists once the burst settles.
	Removed bool
}

// Watch reports changes to path until ctx is cancelled, at which point the
// returned channel is closed. The parent directory is watched rather than the
// file, so saves that write a temp file and rename it into place are seen.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan Change, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log.Debug(log.CatWatcher, "watching", "path", abs, "debounce", debounce)

	out := make(chan Change, 1)
	go run(ctx, fsw, abs, debounce, out)
	return out, nil
}

func run(ctx context.Context, fsw *fsnotify.Watcher, path string, debounce time.Duration, out chan<- Change) {
	defer close(out)
	defer func() { _ = fsw.Close() }()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if touches(event, path) {
				timer.Reset(debounce)
			}

		case <-timer.C:
			change := Change{Path: path, Removed: missing(path)}
			log.Debug(log.CatWatcher, "source changed", "path", path, "removed", change.Removed)
			select {
			case out <- change:
			default:
				// A change is already waiting to be read; it covers this one.
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", path)
		}
	}
}

func touches(event fsnotify.Event, path string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	return err == nil && name == path
}

func missing(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
