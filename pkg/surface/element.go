package surface

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/pluqqy/inline-editor/pkg/editor"
)

// Element exposes a DOM element to the editor's click handling. Its parent
// chain stops below the editable root.
type Element struct {
	node *html.Node
	root *html.Node
}

var (
	_ editor.Element = Element{}
	_ editor.Surface = (*DOM)(nil)
)

// TagName returns the upper-case tag name.
func (e Element) TagName() string { return strings.ToUpper(e.node.Data) }

// Attr returns the named attribute, or "".
func (e Element) Attr(name string) string { return attr(e.node, name) }

// Parent implements editor.Element.
func (e Element) Parent() editor.Element {
	p := e.node.Parent
	if p == nil || p == e.root || p.Type != html.ElementNode {
		return nil
	}
	return Element{node: p, root: e.root}
}

// ElementAt returns the element under the cursor: the atom or the element
// holding the text at pos. It returns nil when the cursor is on bare root
// text or outside the document.
func (d *DOM) ElementAt(pos Cursor) editor.Element {
	blocks := d.Blocks()
	if pos.Block < 0 || pos.Block >= len(blocks) {
		return nil
	}
	b := blocks[pos.Block]
	segs := b.segments()
	if len(segs) == 0 {
		return d.element(b.Node)
	}

	at := 0
	hit := segs[len(segs)-1]
	for _, sg := range segs {
		n := utf8.RuneCountInString(sg.text)
		if pos.Offset < at+n {
			hit = sg
			break
		}
		at += n
	}
	if hit.node.Type == html.TextNode {
		return d.element(hit.node.Parent)
	}
	return d.element(hit.node)
}

func (d *DOM) element(n *html.Node) editor.Element {
	if n == nil || n == d.root || n.Type != html.ElementNode {
		return nil
	}
	return Element{node: n, root: d.root}
}
