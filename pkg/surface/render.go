package surface

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pluqqy/inline-editor/pkg/models"
)

const linkColor = "#0066cc"

// Renderer draws a DOM for the terminal.
type Renderer struct {
	Width int
	Theme models.Theme
	// Cursor, when set, is drawn in reverse video.
	Cursor *Cursor
	// Plain disables all styling.
	Plain bool
}

// Rendered is the output of Renderer.Render.
type Rendered struct {
	Text string
	// CursorLine is the zero-based line holding the cursor, or -1.
	CursorLine int
}

// Render lays the document out block by block.
func (r Renderer) Render(d *DOM) Rendered {
	width := r.Width
	if width <= 0 {
		width = 80
	}

	out := Rendered{CursorLine: -1}
	var lines []string
	var prev *Block
	for i, b := range d.Blocks() {
		if prev != nil && needsGap(*prev, b) {
			lines = append(lines, "")
		}
		cursor := -1
		if r.Cursor != nil && r.Cursor.Block == i {
			cursor = r.Cursor.Offset
		}
		block := r.block(b, width, cursor)
		if cursor >= 0 {
			out.CursorLine = len(lines) + block.cursorLine
		}
		lines = append(lines, block.lines...)
		b := b
		prev = &b
	}
	if len(lines) == 0 && r.Cursor != nil {
		lines = append(lines, r.style(0).Reverse(true).Render(" "))
		out.CursorLine = 0
	}
	out.Text = strings.Join(lines, "\n")
	return out
}

type renderedBlock struct {
	lines      []string
	cursorLine int
}

func needsGap(prev, cur Block) bool {
	if isListItem(prev) && isListItem(cur) {
		return prev.Node != cur.Node && prev.Node.Parent != cur.Node.Parent
	}
	return true
}

func isListItem(b Block) bool {
	return b.Node.DataAtom == atom.Li
}

func (r Renderer) block(b Block, width, cursor int) renderedBlock {
	if !b.Anonymous && b.Node.DataAtom == atom.Hr {
		return renderedBlock{lines: []string{r.style(0).Foreground(lipgloss.Color(r.Theme.Border)).Render(strings.Repeat("─", width))}}
	}

	prefix := r.prefix(b)
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	avail := width - lipgloss.Width(prefix)
	if avail < 10 {
		avail = 10
	}

	body, caretMark := r.inline(b, cursor)
	body = renderLines(r.blockStyle(b), body)

	var wrapped string
	switch b.Tag() {
	case "pre":
		wrapped = body
	case "math":
		wrapped = lipgloss.PlaceHorizontal(avail, lipgloss.Center, body)
	default:
		wrapped = wordwrap.String(body, avail)
	}

	res := renderedBlock{}
	for i, line := range strings.Split(wrapped, "\n") {
		if caretMark != "" && strings.Contains(line, caretMark) {
			res.cursorLine = i
			line = strings.Replace(line, caretMark, "", 1)
		}
		if i == 0 {
			res.lines = append(res.lines, prefix+line)
		} else {
			res.lines = append(res.lines, indent+line)
		}
	}
	return res
}

// caretMarker is spliced in next to the cursor so the wrapped line holding it
// can be found, then removed.
const caretMarker = "\x00"

func (r Renderer) inline(b Block, cursor int) (string, string) {
	var sb strings.Builder
	at := 0
	placed := cursor < 0
	mark := ""
	if !placed {
		mark = caretMarker
	}

	for _, sg := range b.segments() {
		text := sg.text
		if b.Tag() != "pre" && !(sg.style&styleAtom != 0 && text == "\n") {
			text = strings.NewReplacer("\n", " ", "\t", " ", "\r", " ").Replace(text)
		}
		n := utf8.RuneCountInString(text)
		st := r.style(sg.style)

		if !placed && cursor >= at && cursor < at+n {
			head, tail := splitRunes(text, cursor-at)
			caret, rest := splitRunes(tail, 1)
			if caret == "\n" {
				sb.WriteString(r.decorate(head, sg.style, st))
				sb.WriteString(caretMarker + r.style(0).Reverse(true).Render(" ") + "\n")
			} else {
				sb.WriteString(r.decorate(head, sg.style, st))
				sb.WriteString(caretMarker + st.Reverse(true).Render(r.shift(caret, sg.style)))
				sb.WriteString(r.decorate(rest, sg.style, st))
			}
			placed = true
		} else {
			sb.WriteString(r.decorate(text, sg.style, st))
		}
		at += n
	}
	if !placed {
		sb.WriteString(caretMarker + r.style(0).Reverse(true).Render(" "))
	}
	return sb.String(), mark
}

func (r Renderer) decorate(text string, s inline, st lipgloss.Style) string {
	if text == "" {
		return ""
	}
	if s&styleAtom != 0 && text == "\n" {
		return "\n"
	}
	return renderLines(st, r.shift(text, s))
}

// renderLines styles each line on its own. lipgloss pads multi-line input to
// a common width, which would break preformatted text and the caret marker.
func renderLines(st lipgloss.Style, s string) string {
	if !strings.Contains(s, "\n") {
		return st.Render(s)
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = st.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// shift raises or lowers sub/sup text with Unicode script characters where
// possible.
func (r Renderer) shift(text string, s inline) string {
	switch {
	case s&styleSup != 0:
		return script(text, superscripts, "^")
	case s&styleSub != 0:
		return script(text, subscripts, "_")
	}
	return text
}

func (r Renderer) style(s inline) lipgloss.Style {
	st := lipgloss.NewStyle()
	if r.Plain {
		return st
	}
	if r.Theme.Foreground != "" {
		st = st.Foreground(lipgloss.Color(r.Theme.Foreground))
	}
	if s&styleBold != 0 {
		st = st.Bold(true)
	}
	if s&styleItalic != 0 || s&styleMath != 0 {
		st = st.Italic(true)
	}
	if s&styleUnderline != 0 {
		st = st.Underline(true)
	}
	if s&styleStrike != 0 {
		st = st.Strikethrough(true)
	}
	if s&styleCode != 0 && r.Theme.Border != "" {
		st = st.Background(lipgloss.Color(r.Theme.Border))
	}
	if s&styleLink != 0 {
		st = st.Foreground(lipgloss.Color(linkColor)).Underline(true)
	}
	return st
}

func (r Renderer) blockStyle(b Block) lipgloss.Style {
	st := lipgloss.NewStyle()
	if r.Plain || b.Anonymous {
		return st
	}
	switch b.Node.DataAtom {
	case atom.H1:
		return st.Bold(true).Underline(true)
	case atom.H2:
		return st.Bold(true)
	case atom.H3, atom.H4, atom.H5, atom.H6:
		return st.Bold(true).Faint(true)
	}
	return st
}

// prefix builds list markers and quote bars from the block's ancestors.
func (r Renderer) prefix(b Block) string {
	var parts []string
	item := b.Node
	if b.Anonymous && b.Node.DataAtom != atom.Li {
		item = nil
	}

	depth := 0
	for n := b.Node; n != nil; n = n.Parent {
		switch n.DataAtom {
		case atom.Blockquote:
			parts = append([]string{"│ "}, parts...)
		case atom.Ul, atom.Ol:
			depth++
		}
	}

	var marker string
	if item != nil && item.DataAtom == atom.Li && (!b.Anonymous || leadsItem(item, b.first)) {
		marker = "• "
		if item.Parent != nil && item.Parent.DataAtom == atom.Ol {
			marker = strconv.Itoa(itemNumber(item)) + ". "
		}
	} else if item != nil && item.DataAtom == atom.Li {
		marker = "  "
	}
	if depth > 1 {
		parts = append(parts, strings.Repeat("  ", depth-1))
	}
	if marker != "" {
		parts = append(parts, marker)
	}
	return strings.Join(parts, "")
}

// leadsItem reports whether no block precedes first inside the list item.
func leadsItem(li, first *html.Node) bool {
	for c := li.FirstChild; c != nil && c != first; c = c.NextSibling {
		if isBlock(c) {
			return false
		}
	}
	return true
}

func itemNumber(li *html.Node) int {
	n := 1
	if start, err := strconv.Atoi(attr(li.Parent, "start")); err == nil {
		n = start
	}
	for s := li.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.DataAtom == atom.Li {
			n++
		}
	}
	return n
}
