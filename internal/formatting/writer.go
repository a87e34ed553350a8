package formatting

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdoutPath is the output path that selects standard output.
const StdoutPath = "-"

// WriteOutput writes data to path, or to stdout when path is StdoutPath.
//
// Files are written to a temporary sibling first and renamed into place, so
// a failure never leaves a truncated or partial output file behind. Data
// sent to stdout gets a trailing newline if it lacks one.
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == StdoutPath {
		if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
			data = append(data, '\n')
		}
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move output into place at %s: %w", path, err)
	}
	committed = true
	return nil
}
