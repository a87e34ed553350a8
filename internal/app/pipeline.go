package app

import (
	"context"
	"fmt"

	"topoorder/internal/dependency"
	"topoorder/internal/formatting"
	"topoorder/internal/scanner"
	"topoorder/pkg/logging"

	"github.com/google/uuid"
)

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID identifies the run in log output; in watch mode every rebuild
	// gets a new one.
	RunID string
	// Files are the scanned files in walk order.
	Files []scanner.File
	// Graph holds every discovered file and every referenced dependency.
	Graph *dependency.Graph
	// Order lists all graph nodes, dependencies first.
	Order []dependency.NodeID
	// Output is the rendered order, empty for Analyze.
	Output []byte
}

// Entries describes each node of the order with its edges.
func (r *Result) Entries() []formatting.Entry {
	entries := make([]formatting.Entry, 0, len(r.Order))
	for i, id := range r.Order {
		node := r.Graph.Get(id)
		entries = append(entries, formatting.Entry{
			Index:      i,
			ID:         string(id),
			Discovered: node != nil && node.Discovered,
			DependsOn:  toStrings(r.Graph.Dependencies(id)),
			Dependents: toStrings(r.Graph.Dependents(id)),
		})
	}
	return entries
}

// Analyze scans the root, builds the dependency graph and sorts it. Nothing
// is written. A cycle is returned as *dependency.CycleError.
func (a *Application) Analyze(ctx context.Context) (*Result, error) {
	s := a.settings
	runID := uuid.NewString()
	logging.Debug("Order", "Run %s: scanning %s", runID, s.Root)

	files, err := scanner.Scan(ctx, scanner.Options{
		Root:             s.Root,
		Package:          s.Package,
		CommentMarker:    s.CommentMarker,
		Exclude:          s.Exclude,
		RespectGitignore: s.RespectGitignore,
	})
	if err != nil {
		logging.Error("Order", err, "Scan of %s failed", s.Root)
		return nil, err
	}

	graph := BuildGraph(files)
	if missing := graph.Undiscovered(); len(missing) > 0 {
		logging.Warn("Order", "%d imported files were not found under %s and are ordered without dependencies: %v",
			len(missing), s.Root, missing)
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		logging.Error("Order", err, "Cannot order %d files", graph.Len())
		return nil, err
	}

	return &Result{RunID: runID, Files: files, Graph: graph, Order: order}, nil
}

// Order runs the full pipeline: scan, graph, sort, render and write to the
// configured output. On any error nothing is written.
func (a *Application) Order(ctx context.Context) (*Result, error) {
	result, err := a.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	format, err := formatting.ParseFormat(a.settings.Format)
	if err != nil {
		return nil, err
	}
	// Styling is for terminals only; a file always gets plain text.
	color := a.config.Color && a.settings.Output == formatting.StdoutPath
	data, err := a.render(result, format, false, color)
	if err != nil {
		return nil, err
	}
	if err := formatting.WriteOutput(a.settings.Output, data, a.stdout); err != nil {
		logging.Error("Order", err, "Failed to write %s", a.settings.Output)
		return nil, err
	}
	result.Output = data

	if a.settings.Output != formatting.StdoutPath {
		logging.Info("Order", "Run %s: wrote %d entries to %s", result.RunID, len(result.Order), a.settings.Output)
	}
	return result, nil
}

// Render formats a result for printing on stdout. With graph set each entry
// is rendered with its edges, otherwise only the order is rendered.
func (a *Application) Render(r *Result, format formatting.OutputFormat, graph bool) ([]byte, error) {
	return a.render(r, format, graph, a.config.Color)
}

func (a *Application) render(r *Result, format formatting.OutputFormat, graph, color bool) ([]byte, error) {
	f, err := formatting.NewFormatter(formatting.Options{
		Format:   format,
		Template: a.settings.Template,
		Color:    color,
	})
	if err != nil {
		return nil, err
	}

	entries := r.Entries()
	if graph {
		return f.FormatGraph(entries)
	}
	data, err := f.FormatOrder(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to render order: %w", err)
	}
	return data, nil
}

// BuildGraph registers every scanned file and its dependencies, in scan
// order.
func BuildGraph(files []scanner.File) *dependency.Graph {
	graph := dependency.New()
	for _, f := range files {
		deps := make([]dependency.NodeID, len(f.Deps))
		for i, d := range f.Deps {
			deps[i] = dependency.NodeID(d)
		}
		graph.Add(dependency.NodeID(f.ID), deps...)
	}
	return graph
}

func toStrings(ids []dependency.NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
