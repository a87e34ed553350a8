package formatting

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{options: options}
}

// FormatOrder renders the order as a YAML sequence of identifiers.
func (f *YAMLFormatter) FormatOrder(entries []Entry) ([]byte, error) {
	return marshalYAML(ids(entries))
}

// FormatGraph renders every entry as a YAML mapping.
func (f *YAMLFormatter) FormatGraph(entries []Entry) ([]byte, error) {
	return marshalYAML(normalize(entries))
}

func marshalYAML(v interface{}) ([]byte, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return b, nil
}
