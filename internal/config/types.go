package config

import "time"

// Config is the top-level configuration structure for topoorder.
type Config struct {
	// Root is the directory scanned for source files.
	Root string `yaml:"root"`
	// Package is the package name in import lines, e.g. "manim_web" for
	// `import 'package:manim_web/util/color.dart';`.
	Package string `yaml:"package"`
	// CommentMarker disables an import when it directly precedes it.
	CommentMarker string `yaml:"commentMarker"`
	// Output is the file the order is written to. "-" means stdout.
	Output string `yaml:"output"`
	// Format is one of lines, json, yaml, template.
	Format string `yaml:"format"`
	// Template is used by the template format, once per file.
	Template string `yaml:"template,omitempty"`

	RespectGitignore bool     `yaml:"respectGitignore,omitempty"`
	Exclude          []string `yaml:"exclude,omitempty"` // glob patterns, matched against path and base name

	Watch WatchConfig `yaml:"watch,omitempty"`
}

// WatchConfig controls the --watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"` // quiet period before a re-run (default: 500ms)
}

// Overrides carries values set explicitly on the command line. Empty strings
// and nil pointers leave the loaded configuration untouched. Fields where an
// empty value is meaningful are pointers.
type Overrides struct {
	Root             string
	Package          string
	CommentMarker    *string
	Output           string
	Format           string
	Template         string
	Exclude          []string
	RespectGitignore *bool
	Debounce         time.Duration
}

// Apply copies every set override onto c.
func (c *Config) Apply(o Overrides) {
	if o.Root != "" {
		c.Root = o.Root
	}
	if o.Package != "" {
		c.Package = o.Package
	}
	if o.CommentMarker != nil {
		c.CommentMarker = *o.CommentMarker
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Template != "" {
		c.Template = o.Template
	}
	if len(o.Exclude) > 0 {
		c.Exclude = append(c.Exclude, o.Exclude...)
	}
	if o.RespectGitignore != nil {
		c.RespectGitignore = *o.RespectGitignore
	}
	if o.Debounce > 0 {
		c.Watch.Debounce = o.Debounce
	}
}
