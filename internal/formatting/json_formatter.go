package formatting

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{options: options}
}

// FormatOrder renders the order as a JSON array of identifiers.
func (f *JSONFormatter) FormatOrder(entries []Entry) ([]byte, error) {
	return marshalJSON(ids(entries))
}

// FormatGraph renders every entry as a JSON object.
func (f *JSONFormatter) FormatGraph(entries []Entry) ([]byte, error) {
	return marshalJSON(normalize(entries))
}

func marshalJSON(v interface{}) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(b, '\n'), nil
}

// normalize replaces nil edge lists with empty ones so encoders emit [] and
// not null.
func normalize(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if e.DependsOn == nil {
			e.DependsOn = []string{}
		}
		if e.Dependents == nil {
			e.Dependents = []string{}
		}
		out[i] = e
	}
	return out
}
