package mathcodec

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-latex/latex"
)

// Typesetter renders one math expression to markup. display is true for block
// math. A non-nil error means the expression could not be rendered; the codec
// then leaves the span untouched.
type Typesetter interface {
	Typeset(tex string, display bool) (string, error)
}

// TypesetterFunc adapts a function to the Typesetter interface.
type TypesetterFunc func(tex string, display bool) (string, error)

// Typeset calls f.
func (f TypesetterFunc) Typeset(tex string, display bool) (string, error) {
	return f(tex, display)
}

// TeXTypesetter parses TeX math with go-latex and emits presentation MathML.
// Unknown macros and unsupported characters are reported as errors.
type TeXTypesetter struct{}

// NewTeXTypesetter returns the default typesetter.
func NewTeXTypesetter() *TeXTypesetter {
	return &TeXTypesetter{}
}

// Typeset implements Typesetter.
func (t *TeXTypesetter) Typeset(tex string, display bool) (out string, err error) {
	// The go-latex parser reports syntax errors by panicking.
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("typeset %q: %v", tex, r)
		}
	}()

	// The underlying scanner prints a diagnostic to stderr for these before
	// the parser rejects them, so they are refused up front.
	if i := strings.IndexFunc(tex, unsupportedRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(tex[i:])
		return "", fmt.Errorf("typeset %q: unsupported character %q", tex, r)
	}

	node, err := latex.ParseExpr("$" + tex + "$")
	if err != nil {
		return "", fmt.Errorf("typeset %q: %w", tex, err)
	}
	return renderMathML(node, display), nil
}

// unsupportedRune reports quotes, which open a string literal in the
// scanner, and control characters other than whitespace.
func unsupportedRune(r rune) bool {
	switch r {
	case '"':
		return true
	case '\t', '\n', '\r':
		return false
	}
	return unicode.IsControl(r)
}
