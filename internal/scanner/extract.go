package scanner

import (
	"errors"
	"regexp"
	"strings"
)

// Extractor finds dependency identifiers in file contents.
//
// A dependency is every occurrence of `package:<pkg>/<path>';`, where <path>
// becomes the dependency identifier. An occurrence directly preceded by the
// comment marker (by default `// import '`) is a commented-out import and is
// skipped.
type Extractor struct {
	pattern       *regexp.Regexp
	commentMarker string
}

// NewExtractor compiles the import pattern for the given package name.
func NewExtractor(pkg, commentMarker string) (*Extractor, error) {
	if pkg == "" {
		return nil, errors.New("package name must not be empty")
	}
	// The path is matched lazily so two imports on one line stay separate.
	pattern, err := regexp.Compile(`package:` + regexp.QuoteMeta(pkg) + `/(.+?)';`)
	if err != nil {
		return nil, err
	}
	return &Extractor{pattern: pattern, commentMarker: commentMarker}, nil
}

// Extract returns the dependency identifiers in content, in order of
// appearance. Repeated imports are kept; the graph de-duplicates them.
//
// A skipped commented-out match does not consume its text: scanning resumes
// one byte after where it started, so an import nested inside it is still
// found.
func (e *Extractor) Extract(content string) []string {
	var deps []string
	for pos := 0; pos < len(content); {
		loc := e.pattern.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		if e.commentMarker != "" && strings.HasSuffix(content[:start], e.commentMarker) {
			pos = start + 1
			continue
		}
		deps = append(deps, content[pos+loc[2]:pos+loc[3]])
		pos += loc[1]
	}
	return deps
}
