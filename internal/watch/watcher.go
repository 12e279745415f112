// Package watch reports changes to the directory being browsed.
package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kk-code-lab/raider/internal/logging"
)

// ErrUnavailable is returned when change notification could not be set up.
var ErrUnavailable = errors.New("directory watching unavailable")

// Event is the outcome of a Poll.
type Event int

const (
	NoEvent Event = iota
	// Changed means entries were created, removed or renamed.
	Changed
	// Unavailable means the watched directory itself went away.
	Unavailable
)

func (e Event) String() string {
	switch e {
	case Changed:
		return "changed"
	case Unavailable:
		return "unavailable"
	default:
		return "none"
	}
}

// DirectoryWatcher watches one directory at a time. It is polled from the
// session loop and starts no goroutines of its own.
type DirectoryWatcher struct {
	fsw  *fsnotify.Watcher
	path string
}

// NewDirectoryWatcher starts the notification backend. When that fails the
// watcher still works but never reports events.
func NewDirectoryWatcher() *DirectoryWatcher {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		logging.L().Warn("directory watcher disabled", logging.Err(err))
		return &DirectoryWatcher{}
	}
	return &DirectoryWatcher{fsw: fsw}
}

// Path is the directory currently watched, or "".
func (w *DirectoryWatcher) Path() string {
	return w.path
}

// Subscribe replaces the current watch with one on dir.
func (w *DirectoryWatcher) Subscribe(dir string) error {
	w.Unsubscribe()
	if w.fsw == nil {
		return ErrUnavailable
	}

	dir = filepath.Clean(dir)
	if err := w.fsw.Add(dir); err != nil {
		logging.L().Warn("cannot watch directory", logging.String("path", dir), logging.Err(err))
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.path = dir
	return nil
}

// Unsubscribe drops the current watch.
func (w *DirectoryWatcher) Unsubscribe() {
	if w.fsw == nil || w.path == "" {
		return
	}
	// The kernel drops the watch by itself when the directory is deleted.
	_ = w.fsw.Remove(w.path)
	w.path = ""
}

// Poll waits up to timeout for a change to the watched directory. Events
// already queued behind the first one are folded into the result, so a burst
// of changes is reported once. Unavailable outranks Changed.
func (w *DirectoryWatcher) Poll(timeout time.Duration) Event {
	if w.fsw == nil || w.path == "" {
		return NoEvent
	}
	if timeout <= 0 {
		return w.drain(NoEvent)
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return NoEvent
			}
			if got := w.classify(ev); got != NoEvent {
				return w.drain(got)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return NoEvent
			}
			logging.L().Warn("directory watcher error", logging.String("path", w.path), logging.Err(err))
		case <-t.C:
			return NoEvent
		}
	}
}

func (w *DirectoryWatcher) drain(got Event) Event {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return got
			}
			got = max(got, w.classify(ev))
		default:
			return got
		}
	}
}

func (w *DirectoryWatcher) classify(ev fsnotify.Event) Event {
	name := filepath.Clean(ev.Name)
	switch {
	case name == w.path:
		if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
			return Unavailable
		}
	case filepath.Dir(name) == w.path:
		if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
			return Changed
		}
	}
	return NoEvent
}

// Close releases the notification backend.
func (w *DirectoryWatcher) Close() error {
	if w.fsw == nil {
		return nil
	}
	w.path = ""
	err := w.fsw.Close()
	w.fsw = nil
	return err
}
