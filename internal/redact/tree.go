package redact

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// document is a parsed HTML input together with how to serialize it back.
type document struct {
	// root is the node every parsed node hangs from. For fragments it is a
	// synthetic DocumentNode holding the fragment's top-level nodes.
	root *html.Node

	// fragment is true when root only wraps a fragment and must not be
	// rendered itself.
	fragment bool
}

// leadingSpace is the whitespace allowed before the first tag, byte order
// mark included.
const leadingSpace = " \t\r\n\f\ufeff"

// isFullDocument reports whether s starts with a doctype or an html tag,
// ignoring leading whitespace and comments.
func isFullDocument(s string) bool {
	rest := strings.TrimLeft(s, leadingSpace)
	for strings.HasPrefix(rest, "<!--") {
		end := strings.Index(rest, "-->")
		if end < 0 {
			return false
		}
		rest = strings.TrimLeft(rest[end+len("-->"):], leadingSpace)
	}
	return hasTagPrefix(rest, "<!doctype") || hasTagPrefix(rest, "<html")
}

// hasTagPrefix reports whether s opens with tag, case-insensitively, and
// the tag name ends there.
func hasTagPrefix(s, tag string) bool {
	if len(s) < len(tag) || !strings.EqualFold(s[:len(tag)], tag) {
		return false
	}
	if len(s) == len(tag) {
		return true
	}
	switch s[len(tag)] {
	case ' ', '\t', '\r', '\n', '\f', '/', '>':
		return true
	}
	return false
}

// parseDocument builds a tree from s.
func parseDocument(s string) (*document, error) {
	if isFullDocument(s) {
		root, err := html.Parse(strings.NewReader(s))
		if err != nil {
			return nil, err
		}
		return &document{root: root}, nil
	}

	body := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Body.String(),
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		// ParseFragment returns detached nodes, but be safe if that ever changes.
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		root.AppendChild(n)
	}
	return &document{root: root, fragment: true}, nil
}

// render serializes the document.
func (d *document) render() (string, error) {
	var buf bytes.Buffer
	if !d.fragment {
		if err := html.Render(&buf, d.root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// elementsByTag returns every element named tag under root, in document order.
func elementsByTag(root *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// attachedTo reports whether n still hangs from root.
func attachedTo(n, root *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// isElement reports whether n is an element with the given tag.
func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// Src returns the src attribute of a media element, or "" when absent.
func Src(n *html.Node) string {
	if n == nil {
		return ""
	}
	return getAttr(n, "src")
}
