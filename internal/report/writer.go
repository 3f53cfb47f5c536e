package report

import (
	"errors"
	"io"

	"github.com/nao1215/mediaredact/internal/model"
)

// ErrUnknownFormat is returned by NewWriter for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format: expected text, json or markdown")

// Writer defines the interface for summary output.
// Implementations write a batch summary in one format.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.Summary) (int, error)
}

// NewWriter returns the writer for format ("text", "json" or "markdown").
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case "text":
		return NewSimpleWriter(output), nil
	case "json":
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case "markdown":
		return NewMarkdownWriter(output), nil
	default:
		return nil, ErrUnknownFormat
	}
}

// MultiWriter writes to multiple Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(summary *model.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
