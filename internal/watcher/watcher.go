// Package watcher monitors the table file for changes made by other
// programs and notifies the TUI so it can reload.
//
// The parent directory is watched rather than the file itself: editors and
// zgrid's own atomic save replace the file by renaming a temp file over it,
// which drops a watch held on the old inode.
package watcher

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watched file was written, replaced or removed.
type Event struct{}

// Watch monitors path and sends Event values on the returned channel.
// Rapid bursts are coalesced via the debounce window.
//
// Call the returned stop function to tear down the watcher.
func Watch(path string, debounce time.Duration) (<-chan Event, func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, nil, err
	}
	target := filepath.Base(abs)

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter spreads reloads when several instances edit files in the
	// same directory.
	jitterRange := max(debounce/2, 1)

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(ev, target) {
					continue
				}
				jitter := time.Duration(rand.Int64N(int64(jitterRange)))
				d := debounce + jitter
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// relevant reports whether ev touches the watched file. Chmod-only events
// and anything on other files, including save temp files, are ignored.
func relevant(ev fsnotify.Event, target string) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return filepath.Base(ev.Name) == target && !shouldIgnore(ev.Name)
}

// shouldIgnore returns true for editor swap and temp files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, ".lock") {
		return true
	}
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}
	return false
}
