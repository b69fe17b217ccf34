package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat selects how command results are rendered.
type OutputFormat string

const (
	// FormatText renders results through their String method (default).
	FormatText OutputFormat = "text"
	// FormatJSON renders results as indented JSON.
	FormatJSON OutputFormat = "json"
)

// Formatter renders a command result to a writer.
type Formatter interface {
	FormatTo(w io.Writer, result any) error
}

// TextFormatter renders results as human-readable text.
type TextFormatter struct{}

func (TextFormatter) FormatTo(w io.Writer, result any) error {
	_, err := fmt.Fprintln(w, result)
	return err
}

// JSONFormatter renders results as indented JSON for machine consumers.
type JSONFormatter struct{}

func (JSONFormatter) FormatTo(w io.Writer, result any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// NewFormatter returns the formatter for format. Unknown formats fall
// back to text.
func NewFormatter(format OutputFormat) Formatter {
	if format == FormatJSON {
		return JSONFormatter{}
	}
	return TextFormatter{}
}
