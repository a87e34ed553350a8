package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"topoorder/pkg/logging"

	ignore "github.com/sabhiram/go-gitignore"
)

// Walk recursively collects the identifiers of all regular files under
// opts.Root, in lexical walk order. Identifiers are relative to the root and
// use forward slashes.
func Walk(opts Options) ([]string, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan root %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot scan root %s: not a directory", opts.Root)
	}

	var gitignore *ignore.GitIgnore
	if opts.RespectGitignore {
		gitignore, err = loadGitignore(opts.Root)
		if err != nil {
			return nil, err
		}
	}

	var files []string
	err = filepath.WalkDir(opts.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(opts.Root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		id := filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDir(id, d.Name(), opts, gitignore) {
				logging.Debug("Scanner", "Skipping directory %s", id)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if excluded(id, opts.Exclude) || (gitignore != nil && gitignore.MatchesPath(id)) {
			logging.Debug("Scanner", "Skipping file %s", id)
			return nil
		}
		files = append(files, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func skipDir(id, name string, opts Options, gitignore *ignore.GitIgnore) bool {
	if excluded(id, opts.Exclude) {
		return true
	}
	if gitignore == nil {
		return false
	}
	return name == ".git" || gitignore.MatchesPath(id) || gitignore.MatchesPath(id+"/")
}

// excluded reports whether id, or its base name, matches one of the globs.
func excluded(id string, patterns []string) bool {
	base := path.Base(id)
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, id); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// loadGitignore compiles <root>/.gitignore. A missing file yields an empty
// matcher, so only .git itself is skipped.
func loadGitignore(root string) (*ignore.GitIgnore, error) {
	p := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ignore.CompileIgnoreLines(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	logging.Debug("Scanner", "Using ignore rules from %s", p)
	return gi, nil
}
