// Package ast defines cfscript's tagged AST (spec.md §3, §4.2). Nodes are
// pure data: the only behaviour is Pos (source location), String (a
// concrete-syntax rendering used for round-tripping and the `fmt`
// subcommand) and structural equality for tests. This mirrors the
// teacher's pkg/ast package, trimmed to cfscript's dynamically-typed,
// class-free grammar.
package ast

import (
	"strings"

	"github.com/cfs-lang/cfscript/internal/token"
)

// Node is the root of every AST type.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that appears in a Block/Program body.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node produced by the statement parser (spec.md §2.3).
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	var b strings.Builder
	for i, s := range p.Statements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Identifier is a bare name reference (spec.md §3 "Identifier").
type Identifier struct {
	Position token.Position
	Name     string
}

func (i *Identifier) Pos() token.Position { return i.Position }
func (i *Identifier) String() string      { return i.Name }
func (*Identifier) expressionNode()       {}

// NumberLiteral is a 64-bit float literal (spec.md §3 "Literal", Open
// Question #1 in SPEC_FULL.md: 64-bit throughout).
type NumberLiteral struct {
	Position token.Position
	Raw      string
	Value    float64
}

func (n *NumberLiteral) Pos() token.Position { return n.Position }
func (n *NumberLiteral) String() string      { return n.Raw }
func (*NumberLiteral) expressionNode()       {}

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	Position token.Position
	Value    bool
}

func (b *BoolLiteral) Pos() token.Position { return b.Position }
func (b *BoolLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (*BoolLiteral) expressionNode() {}

// NilLiteral is `nil`.
type NilLiteral struct {
	Position token.Position
}

func (n *NilLiteral) Pos() token.Position { return n.Position }
func (n *NilLiteral) String() string      { return "nil" }
func (*NilLiteral) expressionNode()       {}

// Comment is preserved purely for pretty-printing (spec.md §3, §4.2). The
// parser wraps each comment in its own ExpressionStatement, in source
// order, and the evaluator treats it as a no-op.
type Comment struct {
	Position token.Position
	Raw      string
	IsLine   bool
}

func (c *Comment) Pos() token.Position { return c.Position }
func (c *Comment) String() string      { return c.Raw }
func (*Comment) expressionNode()       {}
