package ast

import (
	"strconv"
	"strings"

	"github.com/cfs-lang/cfscript/internal/token"
)

// FragmentKind tags a Fragment's variant (spec.md §3 "Str is a sequence of
// string fragments", GLOSSARY "Fragment").
type FragmentKind int

const (
	// FragLiteral is a plain run of source text.
	FragLiteral FragmentKind = iota
	// FragEscapedChar is one of \n \r \t \b \f \\ \/ \" or \u{HEX}.
	FragEscapedChar
	// FragEscapedWS is a backslash followed by whitespace, collapsing to
	// nothing at evaluation.
	FragEscapedWS
	// FragInterpolation is a `{expr}` hole inside a template literal.
	FragInterpolation
)

// Fragment is one piece of a Str/template literal.
type Fragment struct {
	Kind FragmentKind
	// Text holds the source text for FragLiteral/FragEscapedWS, and the
	// decoded rune for FragEscapedChar (a string so multi-byte code
	// points round-trip cleanly).
	Text string
	// Expr is populated only for FragInterpolation.
	Expr Expression
}

// String renders a fragment back to the way it appeared in the source
// (round-trip property, spec.md §8), not its evaluated rendering.
func (f Fragment) String() string {
	switch f.Kind {
	case FragEscapedChar:
		return escapeRune(f.Text)
	case FragEscapedWS:
		return "\\" + f.Text
	case FragInterpolation:
		return "{" + f.Expr.String() + "}"
	default:
		return f.Text
	}
}

func escapeRune(decoded string) string {
	switch decoded {
	case "\n":
		return `\n`
	case "\r":
		return `\r`
	case "\t":
		return `\t`
	case "\b":
		return `\b`
	case "\f":
		return `\f`
	case `\`:
		return `\\`
	case `/`:
		return `\/`
	case `"`:
		return `\"`
	default:
		r := []rune(decoded)
		if len(r) == 1 {
			return `\u{` + strconv.FormatInt(int64(r[0]), 16) + `}`
		}
		return decoded
	}
}

// StringLiteral is a single/double-quoted string (spec.md §3 "Literal"
// payload for Str values, §4.1 "String").
type StringLiteral struct {
	Position  token.Position
	Fragments []Fragment
	Raw       string // source spelling including quotes
	Quote     rune
}

func (s *StringLiteral) Pos() token.Position { return s.Position }
func (s *StringLiteral) String() string      { return s.Raw }
func (*StringLiteral) expressionNode()       {}

// TemplateLiteral is `#"…{expr}…"` (spec.md §3 "TemplateLiteral").
type TemplateLiteral struct {
	Position  token.Position
	Fragments []Fragment
	Raw       string
}

func (t *TemplateLiteral) Pos() token.Position { return t.Position }
func (t *TemplateLiteral) String() string {
	var b strings.Builder
	b.WriteString(`#"`)
	for _, f := range t.Fragments {
		b.WriteString(f.String())
	}
	b.WriteString(`"`)
	return b.String()
}
func (*TemplateLiteral) expressionNode() {}
