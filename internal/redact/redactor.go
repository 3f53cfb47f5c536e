package redact

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/mediaredact/internal/model"
)

// DefaultLink is the placeholder href used when no post link is known.
const DefaultLink = "#"

// Predicate decides whether a matched media element must be redacted.
// It is called at most once per element.
type Predicate func(n *html.Node) bool

// Always redacts every matched element.
func Always(*html.Node) bool { return true }

// Never keeps every matched element.
func Never(*html.Node) bool { return false }

// Result is the outcome of one redaction pass.
type Result struct {
	// HTML is the rewritten content.
	HTML string

	// Stats counts what happened to the matched elements.
	Stats model.PassStats
}

// Option configures a redaction pass.
type Option func(*options)

type options struct {
	messages Messages
	logger   *slog.Logger
}

// WithMessages sets the placeholder texts.
func WithMessages(m Messages) Option {
	return func(o *options) {
		o.messages = m
	}
}

// WithLogger sets the logger used for parse and skip diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Redact replaces the media elements of kind in content that shouldRedact
// selects with placeholder links to link, and returns the rewritten HTML.
// A nil shouldRedact redacts everything. An empty link becomes DefaultLink.
func Redact(content string, kind model.MediaKind, link string, shouldRedact Predicate, opts ...Option) string {
	return Run(content, kind, link, shouldRedact, opts...).HTML
}

// Run is Redact with statistics.
//
// It never fails: unparsable input and serialization errors leave the
// content unchanged, and elements that are no longer part of the document
// when their turn comes are skipped.
func Run(content string, kind model.MediaKind, link string, shouldRedact Predicate, opts ...Option) Result {
	o := options{
		messages: DefaultMessages(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	result := Result{HTML: content, Stats: model.PassStats{Kind: kind}}
	if content == "" || kind.Tag() == "" {
		return result
	}
	if link == "" {
		link = DefaultLink
	}
	if shouldRedact == nil {
		shouldRedact = Always
	}

	doc, err := parseDocument(content)
	if err != nil {
		o.logger.Debug("html parse failed, content left unchanged", "kind", kind, "error", err)
		return result
	}

	matches := elementsByTag(doc.root, kind.Tag())
	result.Stats.Matched = len(matches)

	for i := len(matches) - 1; i >= 0; i-- {
		media := matches[i]
		if media.Parent == nil || !attachedTo(media, doc.root) {
			o.logger.Debug("skipping detached media element", "kind", kind, "src", Src(media))
			result.Stats.Skipped++
			continue
		}
		if !shouldRedact(media) {
			result.Stats.Kept++
			continue
		}
		replaceMedia(media, newPlaceholder(link, o.messages.For(kind)))
		result.Stats.Redacted++
	}

	if result.Stats.Redacted == 0 {
		return result
	}

	out, err := doc.render()
	if err != nil {
		o.logger.Debug("html render failed, content left unchanged", "kind", kind, "error", err)
		result.Stats.Redacted = 0
		return result
	}
	result.HTML = out
	return result
}

// replaceMedia swaps media for placeholder and cleans up its wrappers.
func replaceMedia(media, placeholder *html.Node) {
	parent := media.Parent

	// <figure><a><media></a>...</figure>: a link wrapping nothing but the
	// media goes away and the media takes its place. A link holding other
	// content stays, and the media is replaced inside it.
	if isElement(parent, atom.A) && isElement(parent.Parent, atom.Figure) && onlyContent(parent, media) {
		link := parent
		figure := link.Parent
		link.RemoveChild(media)
		figure.InsertBefore(media, link)
		figure.RemoveChild(link)
		parent = figure
	}

	if isElement(parent, atom.Figure) {
		removeChildren(parent, atom.Figcaption)
	}

	parent.InsertBefore(placeholder, media)
	parent.RemoveChild(media)
}

// onlyContent reports whether child is the only meaningful node of parent:
// every sibling is a comment or whitespace-only text.
func onlyContent(parent, child *html.Node) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c == child, c.Type == html.CommentNode:
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		default:
			return false
		}
	}
	return true
}

// removeChildren removes every direct child element of parent with tag a.
func removeChildren(parent *html.Node, a atom.Atom) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		if isElement(c, a) {
			parent.RemoveChild(c)
		}
		c = next
	}
}

// newPlaceholder builds <a href="link">text</a>.
func newPlaceholder(link, text string) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.A.String(),
		DataAtom: atom.A,
		Attr:     []html.Attribute{{Key: "href", Val: link}},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return a
}
