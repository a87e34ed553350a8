package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"topoorder/pkg/logging"
)

// Options configures a scan.
type Options struct {
	Root             string
	Package          string
	CommentMarker    string
	Exclude          []string
	RespectGitignore bool
}

// File is one scanned file and the identifiers it imports.
type File struct {
	ID   string
	Deps []string
}

// Scan walks opts.Root, reads every file and extracts its dependencies.
// Files are processed one at a time in walk order. The first unreadable file
// aborts the scan.
func Scan(ctx context.Context, opts Options) ([]File, error) {
	extractor, err := NewExtractor(opts.Package, opts.CommentMarker)
	if err != nil {
		return nil, err
	}

	ids, err := Walk(opts)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(ids))
	edges := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(filepath.Join(opts.Root, filepath.FromSlash(id)))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", id, err)
		}
		deps := extractor.Extract(string(content))
		logging.Debug("Scanner", "%s: %d dependencies", id, len(deps))
		edges += len(deps)
		files = append(files, File{ID: id, Deps: deps})
	}

	logging.Info("Scanner", "Scanned %d files under %s (%d imports)", len(files), opts.Root, edges)
	return files, nil
}
