package config

import (
	"fmt"
	"path"
	"strings"

	"topoorder/internal/formatting"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks c and returns a *ConfigurationError describing the first
// problem together with the full list, or nil.
func (c Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Root) == "" {
		errs.Add("root", "is required")
	}
	if strings.TrimSpace(c.Package) == "" {
		errs.Add("package", "is required")
	} else if strings.ContainsAny(c.Package, "/'\" \t\n") {
		errs.Add("package", "must be a bare package name", c.Package)
	}
	if c.Output == "" {
		errs.Add("output", "is required")
	}

	format, err := formatting.ParseFormat(c.Format)
	if err != nil {
		errs.Add("format", err.Error(), c.Format)
	} else if format == formatting.FormatTemplate && strings.TrimSpace(c.Template) == "" {
		errs.Add("template", "is required when format is 'template'")
	}

	for _, pattern := range c.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			errs.Add("exclude", fmt.Sprintf("invalid glob %q: %v", pattern, err), pattern)
		}
	}

	if c.Watch.Debounce < 0 {
		errs.Add("watch.debounce", "must not be negative", c.Watch.Debounce)
	}

	if !errs.HasErrors() {
		return nil
	}
	return &ConfigurationError{
		Field:     errs[0].Field,
		ErrorType: ErrorTypeValidation,
		Message:   errs.Error(),
		Suggestions: []string{
			fmt.Sprintf("Run 'topoorder init' to write a %s with valid defaults", DefaultConfigFile),
		},
	}
}
