package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/mediaredact/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// Plain ASCII rules keep the output readable when piped to files.
type SimpleWriter struct {
	baseWriter

	// showEmpty lists notifications in which nothing was redacted.
	showEmpty bool

	// verbose adds the post link of every listed notification.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to list untouched notifications too.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeTotals(&sb, summary)
	w.writeEntries(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the summary header.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      MEDIA REDACTION SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Generated:      %s\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Notifications:  %d\n", summary.Notifications)
	if summary.Failed > 0 {
		fmt.Fprintf(sb, "Failed:         %d\n", summary.Failed)
	}
	sb.WriteString("\n")
}

// writeTotals writes the per-kind totals.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("REDACTED MEDIA\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  IMAGES:   %d\n", summary.Images)
	fmt.Fprintf(sb, "  AUDIO:    %d\n", summary.Audio)
	fmt.Fprintf(sb, "  VIDEO:    %d\n", summary.Video)
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL:    %d placeholders\n", summary.TotalRedacted())
	fmt.Fprintf(sb, "  KEPT:     %d public media\n", summary.Kept)
	sb.WriteString("\n")
}

// writeEntries lists the notifications.
func (w *SimpleWriter) writeEntries(sb *strings.Builder, summary *model.Summary) {
	entries := make([]model.SummaryEntry, 0, len(summary.Entries))
	for _, e := range summary.Entries {
		if w.showEmpty || e.Images+e.Audio+e.Video > 0 || e.Error != "" {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("NOTIFICATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, e := range entries {
		fmt.Fprintf(sb, "  * %s: %d image(s), %d audio, %d video\n", e.Source, e.Images, e.Audio, e.Video)
		if w.verbose && e.PostLink != "" {
			fmt.Fprintf(sb, "    Post: %s\n", e.PostLink)
		}
		if e.Error != "" {
			fmt.Fprintf(sb, "    Error: %s\n", e.Error)
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the summary footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
