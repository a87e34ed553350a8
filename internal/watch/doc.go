// Package watch reruns work when a source tree changes.
//
// A Watcher installs fsnotify watches on a root directory and all of its
// subdirectories, including ones created later. Events are debounced: a
// notification fires only after the tree has been quiet for the debounce
// interval, so saving many files at once (a branch switch, a formatter run)
// results in one rebuild.
//
// # Usage
//
//	w, err := watch.New(watch.Options{Root: "lib", Debounce: 500 * time.Millisecond})
//	if err != nil {
//		return err
//	}
//	return w.Run(ctx, func(ctx context.Context) error {
//		_, err := app.Order(ctx)
//		return err
//	})
//
// Run blocks until the context is cancelled. A failing callback is logged
// and does not stop the watch, which lets a dependency cycle be fixed while
// the watcher keeps running.
package watch
