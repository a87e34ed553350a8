// Package formatting renders a computed file order, or the dependency graph
// behind it, in one of several output formats.
//
// The default "lines" format reproduces the classic output: one file
// identifier per line, joined with "\n" and without a trailing newline, ready
// to be fed to a concatenation step. The other formats exist for tooling
// (json, yaml), for generating source directly (template, with sprig
// functions) and for humans (table).
package formatting

import (
	"fmt"
	"strings"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatLines    OutputFormat = "lines"    // One identifier per line
	FormatJSON     OutputFormat = "json"     // JSON output
	FormatYAML     OutputFormat = "yaml"     // YAML output
	FormatTemplate OutputFormat = "template" // text/template per entry
	FormatTable    OutputFormat = "table"    // Rich table output
)

// Formats lists every supported format, in help-text order.
var Formats = []OutputFormat{FormatLines, FormatJSON, FormatYAML, FormatTemplate, FormatTable}

// ParseFormat validates a user supplied format name. An empty name selects
// FormatLines.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatLines, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown output format %q (supported: %s)", s, strings.Join(names, ", "))
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	// Template is the per-entry template body for FormatTemplate.
	Template string
	// Color enables ANSI styling in table output.
	Color bool
}

// Entry describes one node of the graph at its position in the order.
type Entry struct {
	Index      int      `json:"index" yaml:"index"`
	ID         string   `json:"id" yaml:"id"`
	Discovered bool     `json:"discovered" yaml:"discovered"`
	DependsOn  []string `json:"dependsOn" yaml:"dependsOn"`
	Dependents []string `json:"dependents" yaml:"dependents"`
}

// Formatter renders entries produced from a topological order.
type Formatter interface {
	// FormatOrder renders only the ordering (identifiers in sequence).
	FormatOrder(entries []Entry) ([]byte, error)
	// FormatGraph renders each entry with its edges.
	FormatGraph(entries []Entry) ([]byte, error)
}

// NewFormatter creates the appropriate formatter based on options
func NewFormatter(options Options) (Formatter, error) {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options), nil
	case FormatYAML:
		return NewYAMLFormatter(options), nil
	case FormatTemplate:
		return NewTemplateFormatter(options)
	case FormatTable:
		return NewTableFormatter(options), nil
	case FormatLines, "":
		return NewLinesFormatter(options), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", options.Format)
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
