package config

import (
	"fmt"
	"strings"
)

// Error types reported in ConfigurationError.ErrorType.
const (
	ErrorTypeIO         = "io"
	ErrorTypeParse      = "parse"
	ErrorTypeValidation = "validation"
)

// ConfigurationError represents a structured error that occurs while loading
// or validating configuration.
type ConfigurationError struct {
	FilePath    string   `json:"filePath"`    // Config file involved, empty for flags/env
	Field       string   `json:"field"`       // Offending field, if known
	ErrorType   string   `json:"errorType"`   // io, parse or validation
	Message     string   `json:"message"`     // Human-readable error message
	LineNumber  int      `json:"lineNumber"`  // Line number where error occurred (if available)
	Suggestions []string `json:"suggestions"` // Actionable suggestions to fix the error
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if ce.FilePath != "" {
		fmt.Fprintf(&b, " in %s", ce.FilePath)
		if ce.LineNumber > 0 {
			fmt.Fprintf(&b, ":%d", ce.LineNumber)
		}
	}
	if ce.Field != "" {
		fmt.Fprintf(&b, " (field '%s')", ce.Field)
	}
	b.WriteString(": ")
	b.WriteString(ce.Message)
	return b.String()
}

// DetailedError returns a detailed error message with all context
func (ce *ConfigurationError) DetailedError() string {
	parts := []string{ce.Error()}
	if ce.ErrorType != "" {
		parts = append(parts, fmt.Sprintf("  Type: %s", ce.ErrorType))
	}
	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}
	return strings.Join(parts, "\n")
}
