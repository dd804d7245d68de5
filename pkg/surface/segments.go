package surface

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inline is the formatting in effect for a run of text.
type inline uint16

const (
	styleBold inline = 1 << iota
	styleItalic
	styleCode
	styleLink
	styleSub
	styleSup
	styleUnderline
	styleStrike
	styleMath
	styleAtom
)

// segment is a piece of block text. Text segments map to one text node and
// are editable; atoms (math, images, line breaks) are edited as a unit.
type segment struct {
	node     *html.Node
	text     string
	editable bool
	style    inline
}

func (b Block) segments() []segment {
	if !b.Anonymous && isMathBlock(b.Node) {
		return []segment{{node: b.Node, text: MathText(b.Node), style: styleMath | styleAtom}}
	}
	var out []segment
	first, last := b.children()
	for n := first; n != nil; n = n.NextSibling {
		walkInline(n, 0, &out)
		if n == last {
			break
		}
	}
	return out
}

func walkInline(n *html.Node, style inline, out *[]segment) {
	switch n.Type {
	case html.TextNode:
		if n.Data != "" {
			*out = append(*out, segment{node: n, text: n.Data, editable: true, style: style})
		}
		return
	case html.ElementNode:
	default:
		return
	}

	if isMathInline(n) || isMathBlock(n) {
		*out = append(*out, segment{node: n, text: MathText(n), style: style | styleMath | styleAtom})
		return
	}

	switch n.DataAtom {
	case atom.Br:
		*out = append(*out, segment{node: n, text: "\n", style: style | styleAtom})
		return
	case atom.Img:
		label := "[image]"
		if alt := attr(n, "alt"); alt != "" {
			label = "[image: " + alt + "]"
		}
		*out = append(*out, segment{node: n, text: label, style: style | styleAtom})
		return
	case atom.Script, atom.Style, atom.Template:
		return
	case atom.Strong, atom.B:
		style |= styleBold
	case atom.Em, atom.I:
		style |= styleItalic
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		style |= styleCode
	case atom.A:
		style |= styleLink
	case atom.Sub:
		style |= styleSub
	case atom.Sup:
		style |= styleSup
	case atom.U, atom.Ins:
		style |= styleUnderline
	case atom.S, atom.Del, atom.Strike:
		style |= styleStrike
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkInline(c, style, out)
	}
}
