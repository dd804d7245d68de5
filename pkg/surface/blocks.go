package surface

import (
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pluqqy/inline-editor/pkg/mathcodec"
)

var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Figure: true,
	atom.Footer: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tbody: true, atom.Td: true,
	atom.Th: true, atom.Thead: true, atom.Tr: true, atom.Ul: true,
}

// Cursor addresses a rune offset within a block.
type Cursor struct {
	Block  int
	Offset int
}

// Block is one line-level unit of the document: a leaf block element, or a
// run of inline content sitting directly in a container.
type Block struct {
	// Node is the block element. For anonymous blocks it is the container.
	Node      *html.Node
	Anonymous bool

	first, last *html.Node
}

// Tag returns the element name, "math" for block math and "" for anonymous
// runs.
func (b Block) Tag() string {
	switch {
	case b.Anonymous:
		return ""
	case isMathBlock(b.Node):
		return "math"
	}
	return b.Node.Data
}

// Text returns the block's visible text. Atomic content (math, images, line
// breaks) contributes its display text.
func (b Block) Text() string {
	var out []byte
	for _, s := range b.segments() {
		out = append(out, s.text...)
	}
	return string(out)
}

// Len is the length of Text in runes.
func (b Block) Len() int {
	return utf8.RuneCountInString(b.Text())
}

func (b Block) children() (first, last *html.Node) {
	if b.Anonymous {
		return b.first, b.last
	}
	return b.Node.FirstChild, b.Node.LastChild
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && (blockTags[n.DataAtom] || isMathBlock(n))
}

func isMathBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && hasClass(n, mathcodec.ClassBlock) && attr(n, mathcodec.AttrLatex) != ""
}

func isMathInline(n *html.Node) bool {
	return n.Type == html.ElementNode && hasClass(n, mathcodec.ClassInline) && attr(n, mathcodec.AttrLatex) != ""
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			return true
		}
	}
	return false
}

// Blocks lists the document's blocks in order.
func (d *DOM) Blocks() []Block {
	var out []Block
	collectBlocks(d.root, &out)
	return out
}

func collectBlocks(parent *html.Node, out *[]Block) {
	var first, last *html.Node
	flush := func() {
		if first != nil && !blankRun(first, last) {
			*out = append(*out, Block{Node: parent, Anonymous: true, first: first, last: last})
		}
		first, last = nil, nil
	}

	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			flush()
			if isMathBlock(c) || !hasBlockChild(c) {
				*out = append(*out, Block{Node: c})
			} else {
				collectBlocks(c, out)
			}
			continue
		}
		if first == nil {
			first = c
		}
		last = c
	}
	flush()
}

func blankRun(first, last *html.Node) bool {
	for n := first; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			for _, r := range n.Data {
				if r != ' ' && r != '\n' && r != '\t' && r != '\r' && r != '\f' {
					return false
				}
			}
		case html.ElementNode:
			return false
		}
		if n == last {
			break
		}
	}
	return true
}

// Clamp moves pos onto an existing block and offset.
func (d *DOM) Clamp(pos Cursor) Cursor {
	blocks := d.Blocks()
	if len(blocks) == 0 {
		return Cursor{}
	}
	if pos.Block < 0 {
		pos.Block = 0
	}
	if pos.Block >= len(blocks) {
		pos.Block = len(blocks) - 1
	}
	n := blocks[pos.Block].Len()
	if pos.Offset < 0 {
		pos.Offset = 0
	}
	if pos.Offset > n {
		pos.Offset = n
	}
	return pos
}

// InsertText inserts s at pos and returns the cursor after it. Block math is
// not editable.
func (d *DOM) InsertText(pos Cursor, s string) Cursor {
	blocks := d.Blocks()
	if len(blocks) == 0 {
		d.root.AppendChild(&html.Node{Type: html.TextNode, Data: s})
		return Cursor{Offset: utf8.RuneCountInString(s)}
	}
	if pos.Block < 0 || pos.Block >= len(blocks) {
		return pos
	}
	b := blocks[pos.Block]
	if b.Tag() == "math" || s == "" {
		return pos
	}

	segs := b.segments()
	at := 0
	for _, sg := range segs {
		n := utf8.RuneCountInString(sg.text)
		if sg.editable && pos.Offset >= at && pos.Offset <= at+n {
			sg.node.Data = insertRunes(sg.node.Data, pos.Offset-at, s)
			return Cursor{Block: pos.Block, Offset: pos.Offset + utf8.RuneCountInString(s)}
		}
		at += n
	}

	d.insertNode(b, segs, pos.Offset, &html.Node{Type: html.TextNode, Data: s})
	return Cursor{Block: pos.Block, Offset: pos.Offset + utf8.RuneCountInString(s)}
}

// insertNode places n before the segment starting at offset, or after the
// last segment.
func (d *DOM) insertNode(b Block, segs []segment, offset int, n *html.Node) {
	at := 0
	for _, sg := range segs {
		if at >= offset {
			sg.node.Parent.InsertBefore(n, sg.node)
			return
		}
		at += utf8.RuneCountInString(sg.text)
	}
	if len(segs) > 0 {
		last := segs[len(segs)-1].node
		last.Parent.InsertBefore(n, last.NextSibling)
		return
	}
	if b.Anonymous {
		b.Node.InsertBefore(n, b.last.NextSibling)
		return
	}
	b.Node.AppendChild(n)
}

// DeleteBackward removes the rune or atomic item before pos. At the start of
// a block it joins the block onto the previous one.
func (d *DOM) DeleteBackward(pos Cursor) Cursor {
	blocks := d.Blocks()
	if pos.Block < 0 || pos.Block >= len(blocks) {
		return pos
	}
	b := blocks[pos.Block]

	if b.Tag() == "math" && pos.Offset > 0 {
		removeNode(b.Node)
		return d.Clamp(Cursor{Block: pos.Block - 1, Offset: 1 << 30})
	}
	if pos.Offset <= 0 {
		return d.joinPrevious(blocks, pos.Block)
	}

	at := 0
	for _, sg := range b.segments() {
		n := utf8.RuneCountInString(sg.text)
		if pos.Offset-1 >= at && pos.Offset-1 < at+n {
			if !sg.editable {
				removeNode(sg.node)
				return Cursor{Block: pos.Block, Offset: at}
			}
			sg.node.Data = deleteRune(sg.node.Data, pos.Offset-1-at)
			if sg.node.Data == "" {
				removeNode(sg.node)
			}
			return Cursor{Block: pos.Block, Offset: pos.Offset - 1}
		}
		at += n
	}
	return pos
}

func (d *DOM) joinPrevious(blocks []Block, i int) Cursor {
	pos := Cursor{Block: i}
	if i == 0 {
		return pos
	}
	prev, cur := blocks[i-1], blocks[i]
	if prev.Tag() == "math" {
		removeNode(prev.Node)
		return Cursor{Block: i - 1}
	}
	if prev.Anonymous || cur.Anonymous || cur.Tag() == "math" {
		return pos
	}

	offset := prev.Len()
	for c := cur.Node.FirstChild; c != nil; {
		next := c.NextSibling
		cur.Node.RemoveChild(c)
		prev.Node.AppendChild(c)
		c = next
	}
	removeNode(cur.Node)
	return Cursor{Block: i - 1, Offset: offset}
}

// SplitBlock breaks the block at pos, like pressing Enter. Preformatted
// blocks get a newline and anonymous runs a <br>.
func (d *DOM) SplitBlock(pos Cursor) Cursor {
	blocks := d.Blocks()
	if len(blocks) == 0 {
		d.root.AppendChild(newElement(atom.P))
		return Cursor{}
	}
	if pos.Block < 0 || pos.Block >= len(blocks) {
		return pos
	}
	b := blocks[pos.Block]

	switch {
	case b.Tag() == "math":
		p := newElement(atom.P)
		b.Node.Parent.InsertBefore(p, b.Node.NextSibling)
		return Cursor{Block: pos.Block + 1}
	case b.Tag() == "pre":
		return d.InsertText(pos, "\n")
	case b.Anonymous:
		d.insertAtOffset(b, pos.Offset, newElement(atom.Br))
		return Cursor{Block: pos.Block, Offset: pos.Offset + 1}
	}

	boundary := d.splitPoint(b, pos.Offset)
	clone := &html.Node{
		Type:     html.ElementNode,
		Data:     b.Node.Data,
		DataAtom: b.Node.DataAtom,
		Attr:     append([]html.Attribute(nil), b.Node.Attr...),
	}
	for c := boundary; c != nil; {
		next := c.NextSibling
		b.Node.RemoveChild(c)
		clone.AppendChild(c)
		c = next
	}
	b.Node.Parent.InsertBefore(clone, b.Node.NextSibling)
	return Cursor{Block: pos.Block + 1}
}

// splitPoint returns the first direct child of b that belongs after offset,
// splitting a text node when needed. Offsets inside nested inline elements
// split after that element.
func (d *DOM) splitPoint(b Block, offset int) *html.Node {
	at := 0
	for _, sg := range b.segments() {
		n := utf8.RuneCountInString(sg.text)
		if offset <= at {
			return topChild(b.Node, sg.node)
		}
		if offset < at+n {
			if sg.editable && sg.node.Parent == b.Node {
				return splitText(sg.node, offset-at)
			}
			return topChild(b.Node, sg.node).NextSibling
		}
		at += n
	}
	return nil
}

// insertAtOffset places n at offset, splitting a text node when needed.
func (d *DOM) insertAtOffset(b Block, offset int, n *html.Node) {
	segs := b.segments()
	at := 0
	for _, sg := range segs {
		l := utf8.RuneCountInString(sg.text)
		if sg.editable && offset > at && offset < at+l {
			rest := splitText(sg.node, offset-at)
			rest.Parent.InsertBefore(n, rest)
			return
		}
		at += l
	}
	d.insertNode(b, segs, offset, n)
}

func topChild(container, n *html.Node) *html.Node {
	for n.Parent != nil && n.Parent != container {
		n = n.Parent
	}
	return n
}

// splitText cuts t at rune offset i and returns the new second half, which
// follows t.
func splitText(t *html.Node, i int) *html.Node {
	head, tail := splitRunes(t.Data, i)
	t.Data = head
	rest := &html.Node{Type: html.TextNode, Data: tail}
	t.Parent.InsertBefore(rest, t.NextSibling)
	return rest
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func splitRunes(s string, i int) (string, string) {
	idx := 0
	for n := 0; n < i && idx < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[idx:])
		idx += size
	}
	return s[:idx], s[idx:]
}

func insertRunes(s string, i int, ins string) string {
	head, tail := splitRunes(s, i)
	return head + ins + tail
}

func deleteRune(s string, i int) string {
	head, tail := splitRunes(s, i)
	if tail == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(tail)
	return head + tail[size:]
}
