package mathcodec

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTypesetter renders a marker and rejects anything containing "bad".
func stubTypesetter() Typesetter {
	return TypesetterFunc(func(tex string, display bool) (string, error) {
		if strings.Contains(tex, "bad") {
			return "", errors.New("rejected")
		}
		if display {
			return "[B:" + tex + "]", nil
		}
		return "[I:" + tex + "]", nil
	})
}

func TestExpand_EndToEnd(t *testing.T) {
	got := Expand("<p>Hello $x^2$ world</p>")

	want := `<p>Hello <span class="math-inline" data-latex="x^2">` +
		`<math xmlns="http://www.w3.org/1998/Math/MathML" display="inline">` +
		`<mrow><msup><mi>x</mi><mn>2</mn></msup></mrow></math></span> world</p>`
	assert.Equal(t, want, got)
	assert.Equal(t, "<p>Hello $x^2$ world</p>", Collapse(got))
}

func TestExpand_BlockPrecedence(t *testing.T) {
	c := New(WithTypesetter(stubTypesetter()))

	got := c.Expand("$$a+b$$ and $c$")

	assert.Equal(t,
		`<div class="math-block" data-latex="a+b">[B:a+b]</div> and `+
			`<span class="math-inline" data-latex="c">[I:c]</span>`,
		got)
}

func TestExpand_FailureIsolation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		keep  string
		valid string
	}{
		{
			name:  "unknown macro inline",
			input: `<p>$\invalidcmd$ and $y$</p>`,
			keep:  `$\invalidcmd$`,
			valid: `data-latex="y"`,
		},
		{
			name:  "unknown macro block",
			input: `<p>$$\invalidcmd{x}$$</p><p>$z$</p>`,
			keep:  `$$\invalidcmd{x}$$`,
			valid: `data-latex="z"`,
		},
		{
			name:  "unsupported character",
			input: `$a|b$ then $\alpha$`,
			keep:  `$a|b$`,
			valid: `data-latex="\alpha"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.input)
			assert.Contains(t, got, tt.keep)
			assert.Contains(t, got, tt.valid)
			assert.Equal(t, tt.input, Collapse(got))
		})
	}
}

func TestExpand_FailedBlockIsNotRescannedAsInline(t *testing.T) {
	c := New(WithTypesetter(stubTypesetter()))

	got := c.Expand("$$bad$$")

	assert.Equal(t, "$$bad$$", got)
}

func TestExpand_SpansDoNotStraddleMarkup(t *testing.T) {
	c := New(WithTypesetter(stubTypesetter()))

	tests := []struct {
		name  string
		input string
	}{
		{"across tags", "<p>$a</p><p>b$</p>"},
		{"inside attribute", `<a title="$x$">link</a>`},
		{"inside script", "<script>var s = '$x$';</script>"},
		{"inside style", "<style>p::after { content: '$y$' }</style>"},
		{"empty notation", "<p>$ $ and $$  $$</p>"},
		{"newline in inline", "<p>$a\nb$</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, c.Expand(tt.input))
		})
	}
}

func TestExpand_EscapesNotation(t *testing.T) {
	c := New(WithTypesetter(stubTypesetter()))

	got := c.Expand(`<p>$a &lt; b's "c"$</p>`)

	assert.Contains(t, got, `data-latex="a &amp;lt; b&#039;s &quot;c&quot;"`)
}

func TestExpand_TypesetsDecodedText(t *testing.T) {
	var seen string
	c := New(WithTypesetter(TypesetterFunc(func(tex string, display bool) (string, error) {
		seen = tex
		return "r", nil
	})))

	c.Expand(`$a &lt; b$`)

	assert.Equal(t, "a < b", seen)
}

func TestExpand_LeavesRenderedFragmentsAlone(t *testing.T) {
	c := New(WithTypesetter(stubTypesetter()))

	once := c.Expand("<p>$x$ and $$y$$</p>")
	twice := c.Expand(once)

	assert.Equal(t, once, twice)
}

func TestRoundTrip(t *testing.T) {
	c := New(WithTypesetter(stubTypesetter()))

	inputs := []string{
		"",
		"plain text without math",
		"<p>Hello $x^2$ world</p>",
		"$$a+b$$ and $c$",
		"<p>$ padded $ and $$\n  \\sum x\n$$</p>",
		`<p>$a &lt; b$ &amp; $c &gt; d$</p>`,
		`<p class='x'>$it's$ "quoted" $a"b$</p>`,
		"<p>$$a$b$$ then $5 and $10</p>",
		"<ul><li>$\\alpha$</li><li>$bad$</li></ul>",
		"<p>unterminated $x and <b>bold</b></p>",
		"<P>Upper <BR> $q$</P>",
		"<!-- $c$ --><p>$d$</p>",
		"$$a\r\nb$$",
		"<p>$a\rb$</p>",
		"$$ x\r\n $$ then $y\r$",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, c.Collapse(c.Expand(in)))
		})
	}
}

func TestRoundTrip_DefaultTypesetter(t *testing.T) {
	inputs := []string{
		`<p>Euler: $e^{i\pi} + 1 = 0$</p>`,
		`<p>$$\frac{a}{b} + \sqrt[3]{x_1^2}$$</p>`,
		`<p>$\sum_{i=0}^{n} i$ and $\mathbf{v}$</p>`,
		`<h2>$\alpha \leq \beta$</h2><p>$\sin x$</p>`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			out := Expand(in)
			assert.NotEqual(t, in, out)
			assert.Equal(t, in, Collapse(out))
		})
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline fragment",
			input: `<p>a <span class="math-inline" data-latex="x">X</span> b</p>`,
			want:  "<p>a $x$ b</p>",
		},
		{
			name:  "block fragment with nested markup",
			input: `<div class="math-block" data-latex="a+b"><math><mrow><mi>a</mi><mspace/><br></mrow></math></div>tail`,
			want:  "$$a+b$$tail",
		},
		{
			name:  "attribute entities reversed",
			input: `<span class="math-inline" data-latex="a &amp;lt; b&#039;s &quot;c&quot;">r</span>`,
			want:  `$a &lt; b's "c"$`,
		},
		{
			name:  "renderer-normalized attributes",
			input: `<span data-latex="a&lt;b" class="other math-inline">r</span>`,
			want:  `$a<b$`,
		},
		{
			name:  "untrimmed source preferred",
			input: `<span class="math-inline" data-latex="x" data-latex-source=" x ">r</span>`,
			want:  "$ x $",
		},
		{
			name:  "missing data attribute",
			input: `<span class="math-inline">r</span>`,
			want:  `<span class="math-inline">r</span>`,
		},
		{
			name:  "empty data attribute",
			input: `<div class="math-block" data-latex="">r</div>`,
			want:  `<div class="math-block" data-latex="">r</div>`,
		},
		{
			name:  "marker class absent",
			input: `<span class="math" data-latex="x">r</span>`,
			want:  `<span class="math" data-latex="x">r</span>`,
		},
		{
			name:  "unclosed fragment",
			input: `<p><span class="math-inline" data-latex="x">r`,
			want:  `<p><span class="math-inline" data-latex="x">r`,
		},
		{
			name:  "nested fragment consumed by outer",
			input: `<div class="math-block" data-latex="outer"><span class="math-inline" data-latex="inner">i</span></div>`,
			want:  "$$outer$$",
		},
		{
			name:  "document order",
			input: `<span class="math-inline" data-latex="1">a</span><div class="math-block" data-latex="2">b</div><span class="math-inline" data-latex="3">c</span>`,
			want:  "$1$$$2$$$3$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collapse(tt.input))
		})
	}
}

func TestCollapse_IsTotal(t *testing.T) {
	inputs := []string{"<", "</", "<span class=", `<span class="math-inline" data-latex="`, "&", "<<>>", "\x00"}
	for _, in := range inputs {
		require.NotPanics(t, func() { Collapse(in) })
		require.NotPanics(t, func() { Expand(in) })
	}
}

func TestEscapeNotation(t *testing.T) {
	in := `a & b < c > d "e" 'f'`

	escaped := EscapeNotation(in)

	assert.Equal(t, "a &amp; b &lt; c &gt; d &quot;e&quot; &#039;f&#039;", escaped)
	assert.Equal(t, in, UnescapeNotation(escaped))
}

func TestTeXTypesetter_RejectsUnsupportedCharacters(t *testing.T) {
	tests := []struct {
		name    string
		tex     string
		wantErr bool
	}{
		{"plain", "x^2", false},
		{"whitespace controls", "a\t+\r\nb", false},
		{"quote", `a"b`, true},
		{"nul", "a\x00b", true},
		{"escape", "a\x1bb", true},
		{"delete", "a\x7fb", true},
	}

	ts := NewTeXTypesetter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Typeset(tt.tex, false)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported character")
				return
			}
			assert.NoError(t, err)
		})
	}

	in := "<p>$a\x00b$ and $x^2$</p>"
	out := Expand(in)
	assert.Contains(t, out, "$a\x00b$")
	assert.Contains(t, out, `data-latex="x^2"`)
	assert.Equal(t, in, Collapse(out))
}
