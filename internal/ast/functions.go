package ast

import (
	"strings"

	"github.com/cfs-lang/cfscript/internal/token"
)

// Param is one `name [: type]` entry of a function's parameter list
// (spec.md §3 "FnExpression" payload, §4.1 "Function declaration").
type Param struct {
	Name         string
	DeclaredType string // empty if absent
}

func (p Param) String() string {
	if p.DeclaredType == "" {
		return p.Name
	}
	return p.Name + ": " + p.DeclaredType
}

// FnExpression is an anonymous function value: either a block body or, for
// the `-> expr` shortcut form, a single expression body (spec.md §3
// "FnExpression", §4.3 "Call": "a single-expression body (shortcut `fn
// name(…) -> …`) is evaluated directly").
type FnExpression struct {
	Position    token.Position
	Params      []Param
	Body        Statement // *BlockStatement, or an ExpressionStatement-wrapped expr for IsShortcut
	IsShortcut  bool
	ReturnType  string // empty if absent
}

func (f *FnExpression) Pos() token.Position { return f.Position }
func (f *FnExpression) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	var b strings.Builder
	b.WriteString("fn(")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(")")
	if f.ReturnType != "" {
		b.WriteString(" -> " + f.ReturnType)
	}
	if f.IsShortcut {
		b.WriteString(" -> ")
		b.WriteString(f.Body.String())
	} else {
		b.WriteString(" ")
		b.WriteString(f.Body.String())
	}
	return b.String()
}
func (*FnExpression) expressionNode() {}
