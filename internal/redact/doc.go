// Package redact removes embedded media from HTML email bodies.
//
// A redaction pass parses the HTML, finds every element of one media kind
// (img, audio or video), asks a Predicate whether each one must go, and
// replaces the ones that must with a plain link back to the original post:
//
//	<a href="https://example.org/post/1">View this image by visiting the original post.</a>
//
// Presentational wrappers that would be left broken are cleaned up as well:
// a link wrapping the media inside a <figure> is removed, and the figure's
// <figcaption> elements are dropped since they describe content the reader
// can no longer see.
//
// # Usage
//
//	out := redact.Redact(body, model.MediaImage, postURL, checker.Predicate(ctx))
//	out = redact.Redact(out, model.MediaAudio, postURL, redact.Always)
//
// # Parsing
//
// Input goes through golang.org/x/net/html, which never rejects markup: it
// builds a best-effort tree from anything. Fragments are parsed in a <body>
// context and serialized back as fragments; input that carries its own
// <html> or doctype is handled as a full document.
//
// Matches are snapshotted before any mutation and processed last to first,
// so moving or replacing one element never changes which elements the
// remaining iterations see.
package redact
