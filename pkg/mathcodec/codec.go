// Package mathcodec converts between source math notation ($...$ inline,
// $$...$$ block) and rendered math fragments that carry the original notation
// in a data attribute.
//
// Both directions are total: they never fail, and a span that cannot be
// rendered or recovered is left exactly as it was.
package mathcodec

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/pluqqy/inline-editor/internal/logging"
)

const (
	// ClassInline marks a rendered inline math fragment.
	ClassInline = "math-inline"
	// ClassBlock marks a rendered block math fragment.
	ClassBlock = "math-block"
	// AttrLatex holds the trimmed, escaped original notation. Tooling may read
	// it directly without calling Collapse.
	AttrLatex = "data-latex"
	// AttrSource holds the untrimmed notation when it differs from AttrLatex.
	AttrSource = "data-latex-source"
)

var (
	blockPattern  = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	inlinePattern = regexp.MustCompile(`\$([^$\n]+?)\$`)
)

// Kind tags a math span as inline or block.
type Kind int

const (
	Inline Kind = iota
	Block
)

// Delimiter returns the source delimiter for the kind.
func (k Kind) Delimiter() string {
	if k == Block {
		return "$$"
	}
	return "$"
}

// Class returns the structural marker class of the rendered fragment.
func (k Kind) Class() string {
	if k == Block {
		return ClassBlock
	}
	return ClassInline
}

func (k Kind) String() string {
	if k == Block {
		return "block"
	}
	return "inline"
}

// Codec expands and collapses math notation. The zero value is not usable;
// construct one with New.
type Codec struct {
	typesetter Typesetter
	logger     *slog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithTypesetter replaces the default TeX typesetter.
func WithTypesetter(t Typesetter) Option {
	return func(c *Codec) {
		if t != nil {
			c.typesetter = t
		}
	}
}

// WithLogger sets the logger used for rendering failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Codec.
func New(opts ...Option) *Codec {
	c := &Codec{
		typesetter: NewTeXTypesetter(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = New()

// Expand renders math notation using the default codec.
func Expand(text string) string { return defaultCodec.Expand(text) }

// Collapse recovers math notation using the default codec.
func Collapse(text string) string { return defaultCodec.Collapse(text) }

// Expand replaces every $$...$$ and $...$ span found in text content with a
// rendered fragment. Block spans are resolved before inline spans and no two
// substitutions overlap. Spans never straddle markup, and text inside
// script, style and already-rendered fragments is left alone.
func (c *Codec) Expand(text string) string {
	runs := textRuns(text)
	if len(runs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, r := range runs {
		b.WriteString(text[last:r.start])
		b.WriteString(c.expandRun(text[r.start:r.end]))
		last = r.end
	}
	b.WriteString(text[last:])
	return b.String()
}

func (c *Codec) expandRun(run string) string {
	if !strings.Contains(run, "$") {
		return run
	}

	var b strings.Builder
	cursor := 0
	for _, m := range blockPattern.FindAllStringSubmatchIndex(run, -1) {
		b.WriteString(c.expandInline(run[cursor:m[0]]))
		b.WriteString(c.fragment(Block, run[m[2]:m[3]], run[m[0]:m[1]]))
		cursor = m[1]
	}
	b.WriteString(c.expandInline(run[cursor:]))
	return b.String()
}

func (c *Codec) expandInline(s string) string {
	return inlinePattern.ReplaceAllStringFunc(s, func(match string) string {
		return c.fragment(Inline, match[1:len(match)-1], match)
	})
}

// fragment renders one span. On any failure the original match is returned.
func (c *Codec) fragment(kind Kind, notation, original string) string {
	tex := strings.TrimSpace(notation)
	if tex == "" {
		return original
	}

	// Source text is markup, so entities are decoded before typesetting.
	rendered, err := c.typesetter.Typeset(html.UnescapeString(tex), kind == Block)
	if err != nil {
		c.logger.Debug("math span left unrendered", "kind", kind.String(), "latex", tex, "err", err)
		return original
	}

	tag := "span"
	if kind == Block {
		tag = "div"
	}

	var b strings.Builder
	b.WriteString("<" + tag + ` class="` + kind.Class() + `" ` + AttrLatex + `="`)
	b.WriteString(EscapeNotation(tex))
	b.WriteString(`"`)
	if notation != tex {
		b.WriteString(" " + AttrSource + `="`)
		b.WriteString(EscapeNotation(notation))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(rendered)
	b.WriteString("</" + tag + ">")
	return b.String()
}

// Collapse replaces every rendered fragment, located by its marker class and
// data attribute, with its original notation wrapped in the delimiter pair
// for its kind. Everything outside the replaced fragments is preserved byte
// for byte.
func (c *Codec) Collapse(text string) string {
	frags := findFragments(text)
	if len(frags) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, f := range frags {
		b.WriteString(text[last:f.start])
		b.WriteString(f.kind.Delimiter())
		b.WriteString(f.notation)
		b.WriteString(f.kind.Delimiter())
		last = f.end
	}
	b.WriteString(text[last:])
	return b.String()
}

var notationEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
	"\r", "&#13;",
)

// EscapeNotation escapes the five markup-significant characters so the
// notation can live inside an attribute value. Carriage returns are escaped
// too, since parsers fold a raw CR in an attribute into a newline.
func EscapeNotation(s string) string {
	return notationEscaper.Replace(s)
}

// UnescapeNotation reverses EscapeNotation.
func UnescapeNotation(s string) string {
	return html.UnescapeString(s)
}
