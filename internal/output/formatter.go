// Package output provides formatting utilities for CLI output.
package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format int

const (
	// FormatText is colored, human-readable output.
	FormatText Format = iota
	// FormatJSON is the JSON envelope.
	FormatJSON
	// FormatYAML is plain YAML of the data.
	FormatYAML
)

// ParseFormat picks the format from the --json and --yaml flags. JSON wins
// when both are set.
func ParseFormat(jsonFlag, yamlFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case yamlFlag:
		return FormatYAML
	}
	return FormatText
}

// Writer handles formatted output to a destination.
type Writer struct {
	dest   io.Writer
	format Format
}

// NewWriterTo creates an output writer with the given format on dest.
func NewWriterTo(dest io.Writer, format Format) *Writer {
	return &Writer{dest: dest, format: format}
}

// Format reports the writer's format.
func (w *Writer) Format() Format { return w.format }

// Dest is the underlying destination, for text renderers.
func (w *Writer) Dest() io.Writer { return w.dest }

// Data writes v as JSON (wrapped in the envelope for command) or YAML. It
// must not be called for FormatText.
func (w *Writer) Data(command string, v interface{}) error {
	switch w.format {
	case FormatJSON:
		return FprintJSON(w.dest, command, v)
	case FormatYAML:
		return w.WriteYAML(v)
	}
	return fmt.Errorf("no structured format selected")
}

// WriteYAML encodes a value as YAML.
func (w *Writer) WriteYAML(v interface{}) error {
	enc := yaml.NewEncoder(w.dest)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("could not encode YAML: %w", err)
	}
	return enc.Close()
}
