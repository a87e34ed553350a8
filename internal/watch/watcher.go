package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"topoorder/pkg/logging"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Root is the directory tree to watch.
	Root string

	// Debounce is how long the tree must stay quiet before a change
	// triggers a rebuild.
	Debounce time.Duration

	// Ignore reports whether events for the given path are dropped. The
	// output file usually lives next to the sources and must be ignored, or
	// every rebuild would trigger the next one.
	Ignore func(path string) bool
}

// Watcher watches a directory tree and coalesces bursts of filesystem events
// into single change notifications.
type Watcher struct {
	mu sync.Mutex

	root     string
	debounce time.Duration
	ignore   func(string) bool

	// watcher is the fsnotify watcher instance
	watcher *fsnotify.Watcher

	// timer is the pending debounce timer, nil when the tree is quiet
	timer *time.Timer

	// pending counts events folded into the next notification
	pending int

	closed bool
}

// New creates a Watcher with watches on Root and every directory below it.
// Watches are in place when New returns, so changes made afterwards are seen.
func New(opts Options) (*Watcher, error) {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     opts.Root,
		debounce: debounce,
		ignore:   opts.Ignore,
		watcher:  fw,
	}
	if err := w.addRecursive(opts.Root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive adds a watch for dir and all directories below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && p != dir {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return err
		}
		logging.Debug("Watch", "Watching directory: %s", p)
		return nil
	})
}

// Run delivers change notifications to onChange until ctx is cancelled.
// onChange runs on a single goroutine, so calls never overlap; events that
// arrive while it runs fold into one follow-up call. Errors returned by
// onChange are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.Close()

	triggers := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.processEvents(ctx, triggers)
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-triggers:
				if err := onChange(ctx); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					logging.Error("Watch", err, "Rebuild failed")
				}
			}
		}
	})

	logging.Info("Watch", "Watching %s for changes", w.root)
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// processEvents handles filesystem events and turns quiet periods after
// changes into triggers.
func (w *Watcher) processEvents(ctx context.Context, triggers chan<- struct{}) error {
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFsEvent(event, triggers)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watch", err, "Filesystem watcher error")
		}
	}
}

// handleFsEvent processes a single filesystem event.
func (w *Watcher) handleFsEvent(event fsnotify.Event, triggers chan<- struct{}) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if w.ignore != nil && w.ignore(event.Name) {
		return
	}

	// New directories need their own watches; files created in them before
	// the watch lands are picked up by the rescan the event triggers anyway.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				logging.Warn("Watch", "Failed to watch new directory %s: %v", event.Name, err)
			}
		}
	}

	logging.Debug("Watch", "%s %s", event.Op, event.Name)
	w.debounceEvent(triggers)
}

// debounceEvent restarts the quiet-period timer.
func (w *Watcher) debounceEvent(triggers chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending++

	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		n := w.pending
		w.pending = 0
		w.timer = nil
		w.mu.Unlock()

		// A full channel already holds a trigger that covers these events.
		select {
		case triggers <- struct{}{}:
			logging.Debug("Watch", "Change detected (%d events)", n)
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = 0
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	return w.watcher.Close()
}
