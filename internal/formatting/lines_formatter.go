package formatting

import (
	"strings"
)

// LinesFormatter writes one identifier per line.
type LinesFormatter struct {
	options Options
}

// NewLinesFormatter creates a new lines formatter
func NewLinesFormatter(options Options) Formatter {
	return &LinesFormatter{options: options}
}

// FormatOrder joins identifiers with "\n". There is no trailing newline, so
// the file holds exactly one identifier per line.
func (f *LinesFormatter) FormatOrder(entries []Entry) ([]byte, error) {
	return []byte(strings.Join(ids(entries), "\n")), nil
}

// FormatGraph writes "id: dep1, dep2" per entry.
func (f *LinesFormatter) FormatGraph(entries []Entry) ([]byte, error) {
	lines := make([]string, len(entries))
	for i, e := range entries {
		if len(e.DependsOn) == 0 {
			lines[i] = e.ID + ":"
			continue
		}
		lines[i] = e.ID + ": " + strings.Join(e.DependsOn, ", ")
	}
	return []byte(strings.Join(lines, "\n")), nil
}
