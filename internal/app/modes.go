package app

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"topoorder/internal/formatting"
	"topoorder/internal/watch"
	"topoorder/pkg/logging"
)

// runOnceMode runs the pipeline a single time. This is the behavior of a
// plain `topoorder` invocation: the order is written and the process exits.
func runOnceMode(ctx context.Context, a *Application) error {
	_, err := a.Order(ctx)
	return err
}

// runWatchMode writes the order once and then again after every change
// under the root, until interrupted.
//
// Behavior:
//   - A failing initial run is logged, not returned, so a tree that
//     currently has a cycle can be fixed while watching
//   - Each rebuild rescans the whole tree; nothing is cached between runs
//   - The output file is ignored by the watcher, otherwise each write
//     would trigger the next rebuild
//
// Signal Handling:
//   - SIGINT (Ctrl+C): stops watching and returns nil
//   - SIGTERM: same as SIGINT
func runWatchMode(ctx context.Context, a *Application) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(watch.Options{
		Root:     a.settings.Root,
		Debounce: a.settings.Watch.Debounce,
		Ignore:   a.outputMatcher(),
	})
	if err != nil {
		logging.Error("Watch", err, "Failed to watch %s", a.settings.Root)
		return err
	}

	rebuild := func(ctx context.Context) error {
		_, err := a.Order(ctx)
		return err
	}
	if err := rebuild(ctx); err != nil {
		logging.Warn("Watch", "Initial run failed, waiting for changes: %v", err)
	}

	logging.Info("Watch", "Press Ctrl+C to stop watching.")
	return w.Run(ctx, rebuild)
}

// outputMatcher reports whether a path is the output file or one of the
// temporary files it is written through.
func (a *Application) outputMatcher() func(string) bool {
	if a.settings.Output == formatting.StdoutPath {
		return nil
	}
	target, err := filepath.Abs(a.settings.Output)
	if err != nil {
		target = filepath.Clean(a.settings.Output)
	}
	dir, base := filepath.Dir(target), filepath.Base(target)
	tmpPattern := "." + base + ".*.tmp"

	return func(p string) bool {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		if abs == target {
			return true
		}
		if filepath.Dir(abs) != dir {
			return false
		}
		ok, _ := filepath.Match(tmpPattern, filepath.Base(abs))
		return ok
	}
}
