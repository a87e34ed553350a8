// Package app provides application bootstrap and the order pipeline for
// topoorder.
//
// It wires the other packages together: settings come from internal/config,
// files from internal/scanner, ordering from internal/dependency and output
// from internal/formatting. The cmd package only parses flags and hands an
// app.Config to NewApplication.
//
// # Bootstrap (bootstrap.go)
//
// NewApplication initializes logging and resolves settings in layers:
//
//  1. Defaults (internal/config.GetDefaultConfig)
//  2. The configuration file (--config, or .topoorder.yaml if present)
//  3. The .env file and TOPOORDER_* environment variables
//  4. Flags that were explicitly set on the command line
//
// The result is validated once; an invalid setting fails before any file
// is read.
//
// # Pipeline (pipeline.go)
//
//   - Analyze: scan the root, build the graph, sort it
//   - Order: Analyze, then render in the configured format and write the
//     output atomically
//   - Render: format a Result in any output format, as an order or as a
//     graph with edges
//
// A dependency cycle surfaces as *dependency.CycleError and nothing is
// written.
//
// # Modes (modes.go)
//
// Run picks between a single run (the default) and watch mode, which keeps
// the output up to date until the process is interrupted.
//
// # Usage
//
//	cfg := app.NewConfig(debug, quiet, configPath)
//	cfg.Overrides.Root = "lib"
//
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//		return err
//	}
//	result, err := application.Order(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(len(result.Order), "files ordered")
package app
