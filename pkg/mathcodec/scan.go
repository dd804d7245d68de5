package mathcodec

import (
	"strings"

	"golang.org/x/net/html"
)

// span is a byte range [start, end) of the scanned input.
type span struct {
	start, end int
}

// located is a rendered fragment found by findFragments.
type located struct {
	span
	kind     Kind
	notation string
}

// rawTextElements hold text that is not markup content.
var rawTextElements = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"textarea":  true,
	"title":     true,
	"xmp":       true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// textRuns returns the maximal runs of markup text content in s, skipping
// raw text elements and the insides of rendered fragments.
//
// The tokenizer's raw bytes partition the input, so a running sum of their
// lengths gives each token's offset.
func textRuns(s string) []span {
	z := html.NewTokenizer(strings.NewReader(s))

	var (
		runs      []span
		pos       int
		rawTag    string
		fragDepth int
	)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		start := pos
		pos += len(z.Raw())

		switch tt {
		case html.TextToken:
			if rawTag != "" || fragDepth > 0 {
				continue
			}
			if n := len(runs); n > 0 && runs[n-1].end == start {
				runs[n-1].end = pos
				continue
			}
			runs = append(runs, span{start: start, end: pos})

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if fragDepth > 0 {
				if !voidElements[tag] {
					fragDepth++
				}
				continue
			}
			if rawTextElements[tag] {
				rawTag = tag
				continue
			}
			if hasAttr && !voidElements[tag] {
				if _, ok := readFragment(z); ok {
					fragDepth = 1
				}
			}

		case html.EndTagToken:
			if fragDepth > 0 {
				fragDepth--
				continue
			}
			name, _ := z.TagName()
			if string(name) == rawTag {
				rawTag = ""
			}
		}
	}
	return runs
}

// findFragments locates rendered math fragments in document order. A fragment
// is any element whose class list carries a math marker and whose data-latex
// attribute (or data-latex-source, when present) is non-empty. Nested
// fragments are consumed by their outermost ancestor. An element left open at
// the end of input is not replaced.
func findFragments(s string) []located {
	z := html.NewTokenizer(strings.NewReader(s))

	var (
		found []located
		pos   int
		depth int
		cur   located
	)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		start := pos
		pos += len(z.Raw())

		if depth > 0 {
			switch tt {
			case html.StartTagToken:
				name, _ := z.TagName()
				if !voidElements[string(name)] {
					depth++
				}
			case html.EndTagToken:
				depth--
				if depth == 0 {
					cur.end = pos
					found = append(found, cur)
				}
			}
			continue
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if !hasAttr {
			continue
		}
		tag := string(name)
		f, ok := readFragment(z)
		if !ok {
			continue
		}
		f.start = start
		if tt == html.SelfClosingTagToken || voidElements[tag] {
			f.end = pos
			found = append(found, f)
			continue
		}
		cur = f
		depth = 1
	}
	return found
}

// readFragment consumes the attributes of the current tag and reports whether
// it marks a rendered math fragment. Attribute values arrive already
// unescaped, which reverses EscapeNotation.
func readFragment(z *html.Tokenizer) (located, bool) {
	var (
		class     string
		latex     string
		source    string
		hasLatex  bool
		hasSource bool
	)
	for {
		key, val, more := z.TagAttr()
		switch string(key) {
		case "class":
			class = string(val)
		case AttrLatex:
			latex, hasLatex = string(val), true
		case AttrSource:
			source, hasSource = string(val), true
		}
		if !more {
			break
		}
	}
	if !hasLatex {
		return located{}, false
	}

	var f located
	switch {
	case hasClass(class, ClassBlock):
		f.kind = Block
	case hasClass(class, ClassInline):
		f.kind = Inline
	default:
		return located{}, false
	}

	f.notation = latex
	if hasSource && source != "" {
		f.notation = source
	}
	if f.notation == "" {
		return located{}, false
	}
	return f, true
}

func hasClass(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}
