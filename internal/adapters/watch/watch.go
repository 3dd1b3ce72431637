// Package watch implements the optional watch-mode capability (spec §5):
// observe a fixed set of absolute paths and signal, coalesced, whenever any
// of them changes.
package watch

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"go.trai.ch/solcbuild/internal/core/domain"
)

const debounceWindow = 200 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct{}

// New creates a Watcher.
func New() *Watcher {
	return &Watcher{}
}

// Start watches paths and returns a channel that receives one signal per
// coalesced burst of changes. The channel is closed when ctx is done or the
// underlying fsnotify watcher errors unrecoverably.
func (w *Watcher) Start(ctx context.Context, paths []string) (<-chan struct{}, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, domain.ErrIOError
	}

	for _, path := range paths {
		if err := fsWatcher.Add(path); err != nil {
			fsWatcher.Close()
			return nil, domain.ErrIOError
		}
	}

	signals := make(chan struct{}, 1)
	go run(ctx, fsWatcher, signals)

	return signals, nil
}

// run coalesces a burst of fsnotify events into a single send per debounce
// window, matching the teacher's Debouncer shape without needing its
// per-path bookkeeping — watch mode only needs to know "something in the
// watched set changed", not which file.
func run(ctx context.Context, fsWatcher *fsnotify.Watcher, signals chan struct{}) {
	defer fsWatcher.Close()
	defer close(signals)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounceWindow)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case signals <- struct{}{}:
			case <-ctx.Done():
				return
			}
		case _, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}
