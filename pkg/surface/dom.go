// Package surface implements the visual editing surface: a forgiving HTML
// document tree, block-level editing on top of it, and a terminal renderer.
package surface

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOM is an editable document rooted at an implicit <div>. SetHTML and HTML
// behave like an element's innerHTML: markup is parsed with the HTML5
// algorithm, so malformed input is repaired rather than rejected, and the
// serialization may differ from what was set.
type DOM struct {
	root *html.Node
}

// NewDOM returns an empty document.
func NewDOM() *DOM {
	return &DOM{root: newRoot()}
}

func newRoot() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// Root returns the editable root element.
func (d *DOM) Root() *html.Node { return d.root }

// SetHTML replaces the document.
func (d *DOM) SetHTML(markup string) {
	root := newRoot()
	nodes, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		// The parser only fails on reader errors; keep the text rather than
		// lose it.
		root.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		d.root = root
		return
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	d.root = root
}

// HTML serializes the children of the root.
func (d *DOM) HTML() string {
	var b strings.Builder
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			break
		}
	}
	return b.String()
}

// TextContent returns the concatenated text of the document.
func (d *DOM) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
