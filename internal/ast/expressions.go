package ast

import (
	"strings"

	"github.com/cfs-lang/cfscript/internal/token"
)

// ArrayLiteral is `[e, e, …]` (spec.md §3 "Array").
type ArrayLiteral struct {
	Position token.Position
	Elements []Expression
}

func (a *ArrayLiteral) Pos() token.Position { return a.Position }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*ArrayLiteral) expressionNode() {}

// PropertyKind distinguishes normal, get and set object properties.
type PropertyKind string

const (
	PropNormal PropertyKind = "normal"
	PropGet    PropertyKind = "get"
	PropSet    PropertyKind = "set"
)

// Property is one `key: value` entry of an ObjectLiteral (spec.md §3
// "Object" payload).
type Property struct {
	Key       string
	Value     Expression
	IsMethod  bool
	Shorthand bool
	Kind      PropertyKind
}

func (p Property) String() string {
	if p.Shorthand {
		return p.Key
	}
	return p.Key + ": " + p.Value.String()
}

// ObjectLiteral is `{k: e, k: e, …}` (spec.md §3 "Object"). Key uniqueness
// is not enforced at parse time, per spec.md's explicit invariant.
type ObjectLiteral struct {
	Position   token.Position
	Properties []Property
}

func (o *ObjectLiteral) Pos() token.Position { return o.Position }
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*ObjectLiteral) expressionNode() {}

// RangeKind distinguishes `..` (exclusive) from `..=` (inclusive).
type RangeKind int

const (
	RangeExclusive RangeKind = iota
	RangeInclusive
)

// RangeExpr is `start..end` / `start..=end`; either endpoint may be absent
// (spec.md §3 "Range"). A Range with both endpoints absent is only a parse
// error "at the point of use", so the node itself must be constructible.
type RangeExpr struct {
	Position token.Position
	Start    Expression // nil if absent
	Kind     RangeKind
	End      Expression // nil if absent
}

func (r *RangeExpr) Pos() token.Position { return r.Position }
func (r *RangeExpr) String() string {
	var b strings.Builder
	if r.Start != nil {
		b.WriteString(r.Start.String())
	}
	if r.Kind == RangeInclusive {
		b.WriteString("..=")
	} else {
		b.WriteString("..")
	}
	if r.End != nil {
		b.WriteString(r.End.String())
	}
	return b.String()
}
func (*RangeExpr) expressionNode() {}

// ParenExpr preserves a parenthesized expression for pretty-printing
// (spec.md §3 "Parenthesized").
type ParenExpr struct {
	Position token.Position
	Inner    Expression
}

func (p *ParenExpr) Pos() token.Position { return p.Position }
func (p *ParenExpr) String() string      { return "(" + p.Inner.String() + ")" }
func (*ParenExpr) expressionNode()       {}

// BinaryExpr is a flat binary operation; precedence was already applied
// when the tree was built (spec.md §3 "Binary": "flat; precedence applied
// at build time").
type BinaryExpr struct {
	Position token.Position
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (b *BinaryExpr) Pos() token.Position { return b.Position }
func (b *BinaryExpr) String() string {
	return b.Left.String() + " " + b.Operator.String() + " " + b.Right.String()
}
func (*BinaryExpr) expressionNode() {}

// CallExpr is `callee(args…)` (spec.md §3 "Call").
type CallExpr struct {
	Position  token.Position
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpr) Pos() token.Position { return c.Position }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (*CallExpr) expressionNode() {}

// MemberExpr is `a.b` (Computed == false) or `a[b]` (Computed == true),
// spec.md §3 "Member".
type MemberExpr struct {
	Position token.Position
	Object   Expression
	Property Expression
	Computed bool
}

func (m *MemberExpr) Pos() token.Position { return m.Position }
func (m *MemberExpr) String() string {
	if m.Computed {
		return m.Object.String() + "[" + m.Property.String() + "]"
	}
	return m.Object.String() + "." + m.Property.String()
}
func (*MemberExpr) expressionNode() {}

// AssignmentExpr is `target op= source` (spec.md §3 "Assignment"). Target
// is always an *Identifier or *MemberExpr.
type AssignmentExpr struct {
	Position token.Position
	Operator token.Type
	Target   Expression
	Source   Expression
}

func (a *AssignmentExpr) Pos() token.Position { return a.Position }
func (a *AssignmentExpr) String() string {
	return a.Target.String() + " " + a.Operator.String() + " " + a.Source.String()
}
func (*AssignmentExpr) expressionNode() {}

// FallibleExpr is `expr?` (spec.md §3 "FallibleExpression", §4.1, GLOSSARY
// "Fallibility").
type FallibleExpr struct {
	Position token.Position
	Inner    Expression
}

func (f *FallibleExpr) Pos() token.Position { return f.Position }
func (f *FallibleExpr) String() string      { return f.Inner.String() + "?" }
func (*FallibleExpr) expressionNode()       {}

// OkExpr is `Ok(inner)` (spec.md §3 "Ok").
type OkExpr struct {
	Position token.Position
	Inner    Expression
}

func (o *OkExpr) Pos() token.Position { return o.Position }
func (o *OkExpr) String() string      { return "Ok(" + o.Inner.String() + ")" }
func (*OkExpr) expressionNode()       {}

// ErrExpr is `Err(inner)` (spec.md §3 "Err"; payload is "inner expression
// or string" — cfscript always stores an Expression, since a bare string
// literal is itself an Expression).
type ErrExpr struct {
	Position token.Position
	Inner    Expression
}

func (e *ErrExpr) Pos() token.Position { return e.Position }
func (e *ErrExpr) String() string      { return "Err(" + e.Inner.String() + ")" }
func (*ErrExpr) expressionNode()       {}
