package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/mediaredact/internal/model"
)

// MarkdownWriter outputs summaries in Markdown format, built with
// nao1215/markdown so tables and alerts stay well-formed.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeTotals(md, summary)
	w.writeEntries(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and batch information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("Media Redaction Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Notifications", strconv.Itoa(summary.Notifications)},
			{"Failed", strconv.Itoa(summary.Failed)},
		},
	})
	md.PlainText("")
}

// writeTotals writes the per-kind table, chart and alert.
func (w *MarkdownWriter) writeTotals(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Redacted Media")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Placeholders"},
		Rows: [][]string{
			{"Image", strconv.Itoa(summary.Images)},
			{"Audio", strconv.Itoa(summary.Audio)},
			{"Video", strconv.Itoa(summary.Video)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalRedacted()) + "**"},
		},
	})
	md.PlainText("")

	if summary.HasRedactions() {
		w.writePieChart(md, summary)
	}

	switch {
	case summary.Failed > 0:
		md.Warningf("%d notification(s) could not be fully filtered.", summary.Failed)
	case summary.HasRedactions():
		md.Note(fmt.Sprintf("%d media element(s) replaced by links to the original post.", summary.TotalRedacted()))
	default:
		md.Tip("No media needed redaction.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of placeholders per kind.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Redactions by Media Kind"),
		piechart.WithShowData(true),
	)

	for _, kind := range model.AllMediaKinds() {
		if count := summary.Redacted(kind); count > 0 {
			chart.LabelAndIntValue(kind.String(), uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeEntries writes one table row per notification.
func (w *MarkdownWriter) writeEntries(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Notifications")
	md.PlainText("")

	if len(summary.Entries) == 0 {
		md.PlainText("No notifications processed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.Entries))
	for i, e := range summary.Entries {
		status := "ok"
		if e.Error != "" {
			status = truncateString(e.Error, 40)
		}
		link := e.PostLink
		if link == "" {
			link = "-"
		}
		rows[i] = []string{
			"`" + e.Source + "`",
			truncateString(link, 50),
			strconv.Itoa(e.Images),
			strconv.Itoa(e.Audio),
			strconv.Itoa(e.Video),
			status,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Source", "Post", "Images", "Audio", "Video", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
