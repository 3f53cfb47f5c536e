// Package report writes summaries of redaction batches.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text for the terminal
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with a mermaid pie chart, for sharing
//
// Writers implement the Writer interface and can be combined with
// MultiWriter. The summary itself is model.Summary.
package report
