package mathcodec

import (
	"fmt"
	"strings"

	"github.com/go-latex/latex/ast"
	"golang.org/x/net/html"
)

const mathMLNamespace = "http://www.w3.org/1998/Math/MathML"

// renderMathML emits presentation MathML for a parsed expression.
func renderMathML(node ast.Node, display bool) string {
	mode := "inline"
	if display {
		mode = "block"
	}
	var w mathWriter
	return fmt.Sprintf(`<math xmlns="%s" display="%s"><mrow>%s</mrow></math>`,
		mathMLNamespace, mode, w.items(flatten(node)))
}

// flatten unwraps top-level lists and math expressions.
func flatten(node ast.Node) ast.List {
	switch n := node.(type) {
	case ast.List:
		var out ast.List
		for _, c := range n {
			out = append(out, flatten(c)...)
		}
		return out
	case *ast.MathExpr:
		return n.List
	case nil:
		return nil
	default:
		return ast.List{n}
	}
}

// script collects a base with its optional sub- and superscript.
type script struct {
	base, sub, sup string
}

func (s script) String() string {
	switch {
	case s.sub != "" && s.sup != "":
		return "<msubsup>" + s.base + s.sub + s.sup + "</msubsup>"
	case s.sub != "":
		return "<msub>" + s.base + s.sub + "</msub>"
	case s.sup != "":
		return "<msup>" + s.base + s.sup + "</msup>"
	}
	return s.base
}

type mathWriter struct{}

// items renders a sequence, attaching ^ and _ to the preceding element.
func (w mathWriter) items(nodes ast.List) string {
	var out []script
	attach := func(sup bool, markup string) {
		if len(out) == 0 || (sup && out[len(out)-1].sup != "") || (!sup && out[len(out)-1].sub != "") {
			out = append(out, script{base: "<mrow/>"})
		}
		last := &out[len(out)-1]
		if sup {
			last.sup = markup
		} else {
			last.sub = markup
		}
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Sup:
			attach(true, w.group(n.Node))
		case *ast.Sub:
			attach(false, w.group(n.Node))
		case *ast.Word:
			// TeX sets each letter of a word as its own identifier.
			for _, r := range n.Text {
				out = append(out, script{base: "<mi>" + html.EscapeString(string(r)) + "</mi>"})
			}
		default:
			if markup := w.node(n); markup != "" {
				out = append(out, script{base: markup})
			}
		}
	}

	var b strings.Builder
	for _, s := range out {
		b.WriteString(s.String())
	}
	return b.String()
}

// group renders a node as a single MathML element.
func (w mathWriter) group(node ast.Node) string {
	nodes := flatten(node)
	if arg, ok := node.(*ast.Arg); ok {
		nodes = arg.List
	}
	if opt, ok := node.(*ast.OptArg); ok {
		nodes = opt.List
	}
	if len(nodes) == 1 {
		if _, isWord := nodes[0].(*ast.Word); !isWord || len(nodes[0].(*ast.Word).Text) == 1 {
			return w.items(nodes)
		}
	}
	return "<mrow>" + w.items(nodes) + "</mrow>"
}

func (w mathWriter) node(node ast.Node) string {
	switch n := node.(type) {
	case ast.List:
		return w.group(n)
	case *ast.MathExpr:
		return w.group(n)
	case *ast.Arg, *ast.OptArg:
		return w.group(n)
	case *ast.Literal:
		return "<mn>" + html.EscapeString(n.Text) + "</mn>"
	case *ast.Symbol:
		return "<mo>" + html.EscapeString(n.Text) + "</mo>"
	case *ast.Word:
		return w.group(n)
	case *ast.Macro:
		return w.macro(n)
	case nil:
		return ""
	}
	panic(fmt.Errorf("unsupported node %T", node))
}

func (w mathWriter) arg(m *ast.Macro, i int) string {
	if i >= len(m.Args) {
		panic(fmt.Errorf("%s: missing argument %d", m.Name.Name, i+1))
	}
	return w.group(m.Args[i])
}

func (w mathWriter) macro(m *ast.Macro) string {
	name := m.Name.Name
	switch name {
	case `\frac`, `\dfrac`, `\tfrac`:
		return "<mfrac>" + w.arg(m, 0) + w.arg(m, 1) + "</mfrac>"
	case `\binom`:
		return `<mrow><mo>(</mo><mfrac linethickness="0">` + w.arg(m, 0) + w.arg(m, 1) + `</mfrac><mo>)</mo></mrow>`
	case `\stackrel`:
		return "<mover>" + w.arg(m, 1) + w.arg(m, 0) + "</mover>"
	case `\sqrt`:
		if len(m.Args) == 2 {
			return "<mroot>" + w.arg(m, 1) + w.arg(m, 0) + "</mroot>"
		}
		return "<msqrt>" + w.arg(m, 0) + "</msqrt>"
	case `\overline`:
		return `<mover accent="true">` + w.arg(m, 0) + "<mo>¯</mo></mover>"
	case `\operatorname`:
		return `<mi mathvariant="normal">` + html.EscapeString(plainText(m.Args[0])) + "</mi>"
	case `\hspace`, `\quad`:
		return `<mspace width="1em"/>`
	case `\qquad`:
		return `<mspace width="2em"/>`
	case `\exp`:
		// go-latex declares \exp with one argument.
		out := `<mi>exp</mi><mo>&#x2061;</mo>`
		if len(m.Args) > 0 {
			out += w.arg(m, 0)
		}
		return "<mrow>" + out + "</mrow>"
	}

	short := strings.TrimPrefix(name, `\`)
	if variant, ok := fontVariants[short]; ok {
		return `<mstyle mathvariant="` + variant + `">` + w.arg(m, 0) + "</mstyle>"
	}
	if fontSwitches[short] {
		return ""
	}
	if functionNames[short] {
		return `<mi>` + short + `</mi><mo>&#x2061;</mo>`
	}
	if r, ok := identifiers[short]; ok {
		return "<mi>" + html.EscapeString(r) + "</mi>"
	}
	if r, ok := operators[short]; ok {
		return "<mo>" + html.EscapeString(r) + "</mo>"
	}
	return `<mi mathvariant="normal">` + html.EscapeString(short) + "</mi>"
}

// plainText concatenates the textual leaves of a node.
func plainText(node ast.Node) string {
	var b strings.Builder
	ast.Walk(textCollector{&b}, node)
	return b.String()
}

type textCollector struct{ b *strings.Builder }

func (c textCollector) Visit(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case *ast.Word:
		c.b.WriteString(n.Text)
	case *ast.Literal:
		c.b.WriteString(n.Text)
	case *ast.Symbol:
		c.b.WriteString(n.Text)
	}
	return c
}
