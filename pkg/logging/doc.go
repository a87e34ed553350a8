// Package logging provides subsystem-tagged structured logging for topoorder.
//
// The package is a thin layer over Go's standard slog package. Every record
// carries a "subsystem" attribute so output can be filtered by component,
// and error records carry the error text in an "error" attribute.
//
// # Log Levels
//   - **Debug**: Per-file detail (each file read, each dependency found)
//   - **Info**: Run summaries (files scanned, output written)
//   - **Warn**: Suspicious input that does not stop the run
//   - **Error**: Failures, logged right before they are returned
//
// # Usage
//
//	logging.Init(logging.Options{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	logging.Info("Scanner", "Scanned %d files under %s", n, root)
//	logging.Error("Order", err, "Failed to write %s", path)
//
// Output goes to stderr unless Options.Output says otherwise, so writing the
// order to stdout with `--output -` is never mixed with log lines.
//
// # Subsystems
//
//   - **Bootstrap**: Configuration loading and validation
//   - **Scanner**: Directory walk and dependency extraction
//   - **Order**: Sorting and writing the result
//   - **Watch**: File change notifications and re-runs
//
// # Thread Safety
//
// Logging functions are safe for concurrent use; Init swaps the logger under
// a lock.
package logging
