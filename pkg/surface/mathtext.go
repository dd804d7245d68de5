package surface

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶',
	'7': '⁷', '8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽',
	')': '⁾', 'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆',
	'7': '₇', '8': '₈', '9': '₉', '+': '₊', '-': '₋', '=': '₌', '(': '₍',
	')': '₎', 'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ', 'x': 'ₓ', 'i': 'ᵢ', 'j': 'ⱼ',
	'n': 'ₙ', 'k': 'ₖ', 'm': 'ₘ',
}

// MathText renders a math fragment as a single line of plain text. MathML
// content is linearized; a fragment without MathML falls back to its
// notation.
func MathText(n *html.Node) string {
	if m := findMath(n); m != nil {
		if s := strings.TrimSpace(linearize(m)); s != "" {
			return s
		}
	}
	return attr(n, "data-latex")
}

func findMath(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "math" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findMath(c); m != nil {
			return m
		}
	}
	return nil
}

func linearize(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type != html.ElementNode {
		return ""
	}

	kids := elementChildren(n)
	arg := func(i int) string {
		if i < len(kids) {
			return linearize(kids[i])
		}
		return ""
	}

	switch n.Data {
	case "msup":
		return arg(0) + script(arg(1), superscripts, "^")
	case "msub":
		return arg(0) + script(arg(1), subscripts, "_")
	case "msubsup":
		return arg(0) + script(arg(1), subscripts, "_") + script(arg(2), superscripts, "^")
	case "mfrac":
		return group(arg(0)) + "/" + group(arg(1))
	case "msqrt":
		return "√" + group(linearizeAll(n))
	case "mroot":
		return script(arg(1), superscripts, "^") + "√" + group(arg(0))
	case "mover":
		return arg(0) + arg(1)
	case "mspace":
		return " "
	case "mo":
		op := linearizeAll(n)
		if op == "⁡" {
			return ""
		}
		switch op {
		case "+", "-", "=", "<", ">", "≤", "≥", "≠", "×", "⋅", "→", "←", "≈", "±", "∈":
			return " " + op + " "
		}
		return op
	}
	return linearizeAll(n)
}

func linearizeAll(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(linearize(c))
	}
	return b.String()
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// script uses Unicode sub/superscript characters when every rune has one,
// and falls back to TeX-like markers otherwise.
func script(s string, table map[rune]rune, marker string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			return marker + group(s)
		}
		b.WriteRune(m)
	}
	return b.String()
}

func group(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= 1 {
		return s
	}
	return "(" + s + ")"
}
