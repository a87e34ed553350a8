package formatting

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateFormatter executes a user template once per entry and joins the
// results with newlines. Sprig functions are available, so a template such
// as `export 'package:{{ .ID | trimSuffix ".dart" }}.dart';` works.
type TemplateFormatter struct {
	options Options
	tmpl    *template.Template
}

// NewTemplateFormatter parses options.Template.
func NewTemplateFormatter(options Options) (Formatter, error) {
	if options.Template == "" {
		return nil, errors.New("template format requires a template")
	}
	tmpl, err := template.New("entry").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(options.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid output template: %w", err)
	}
	return &TemplateFormatter{options: options, tmpl: tmpl}, nil
}

// FormatOrder executes the template for each entry in order.
func (f *TemplateFormatter) FormatOrder(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if err := f.tmpl.Execute(&buf, e); err != nil {
			return nil, fmt.Errorf("failed to render template for %s: %w", e.ID, err)
		}
	}
	return buf.Bytes(), nil
}

// FormatGraph is the same as FormatOrder; the template decides which edges
// to print through .DependsOn and .Dependents.
func (f *TemplateFormatter) FormatGraph(entries []Entry) ([]byte, error) {
	return f.FormatOrder(entries)
}
