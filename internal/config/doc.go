// Package config provides configuration management for topoorder.
//
// Configuration is resolved in layers, later layers winning:
//
//  1. Built-in defaults (GetDefaultConfig), which reproduce the historical
//     behaviour: scan ./lib, match `package:manim_web/...` imports, write
//     topo_order.txt.
//  2. A YAML file, .topoorder.yaml in the working directory or the file
//     named with --config.
//  3. TOPOORDER_* environment variables, optionally from a .env file.
//  4. Command-line flags (Overrides).
//
// # File Format
//
//	root: lib
//	package: manim_web
//	commentMarker: "// import '"
//	output: topo_order.txt
//	format: lines            # lines, json, yaml or template
//	template: "export '{{ .ID }}';"
//	respectGitignore: true
//	exclude:
//	  - "*.g.dart"
//	  - build
//	watch:
//	  debounce: 500ms
//
// Unknown keys are rejected with a *ConfigurationError that carries the file
// path, the line number when yaml reports one, and suggestions.
//
// # Validation
//
// Validate collects every problem into ValidationErrors and reports them as
// one *ConfigurationError, so a user fixing a config file sees all issues at
// once.
package config
