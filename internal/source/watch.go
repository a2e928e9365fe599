package source

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watched directory changed in a way worth a rescan.
type Event struct{}

// Watch monitors dir for entry changes and sends Event values on the
// returned channel. Rapid bursts (an unpack, a build writing many files)
// are coalesced via the debounce window. The watch is non-recursive: rows
// are the direct entries of dir, so only dir itself matters.
//
// Call the returned stop function to tear down the watcher.
func Watch(dir string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, nil, err
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// jitterRange spreads the debounce so several instances watching the
	// same directory don't all rescan at the same instant.
	jitterRange := debounce / 2

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if shouldIgnore(ev.Name) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(int64(jitterRange)))
				}
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

// shouldIgnore returns true for events that should not trigger a rescan:
// editor swap and temp files whose churn says nothing about real entries.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}

	// Atomic-save temp files (editors write foo.txt.tmpXXXX then rename;
	// the rename produces its own event for the real name).
	if strings.Contains(base, ".tmp") {
		return true
	}

	return false
}
