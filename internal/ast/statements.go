package ast

import (
	"strings"

	"github.com/cfs-lang/cfscript/internal/token"
)

// VarDecl is one `name [: type] = expr` entry of a VariableDeclaration.
type VarDecl struct {
	Name         string
	DeclaredType string
	Value        Expression
}

func (v VarDecl) String() string {
	var b strings.Builder
	b.WriteString(v.Name)
	if v.DeclaredType != "" {
		b.WriteString(": " + v.DeclaredType)
	}
	b.WriteString(" = ")
	b.WriteString(v.Value.String())
	return b.String()
}

// VariableDeclaration is `let`/`var` followed by one or more declarations
// (spec.md §3 "VariableDeclaration", §4.1 "Variable declaration").
type VariableDeclaration struct {
	Position     token.Position
	Keyword      token.Type // LET or VAR
	Declarations []VarDecl
}

func (v *VariableDeclaration) Pos() token.Position { return v.Position }
func (v *VariableDeclaration) String() string {
	parts := make([]string, len(v.Declarations))
	for i, d := range v.Declarations {
		parts[i] = d.String()
	}
	return v.Keyword.String() + " " + strings.Join(parts, ", ")
}
func (*VariableDeclaration) statementNode() {}

// ExpressionStatement wraps an expression used as a statement (reassignment,
// bare call, etc).
type ExpressionStatement struct {
	Position   token.Position
	Expression Expression
}

func (e *ExpressionStatement) Pos() token.Position { return e.Position }
func (e *ExpressionStatement) String() string      { return e.Expression.String() }
func (*ExpressionStatement) statementNode()        {}

// FunctionDeclaration is a named function (spec.md §3 "FunctionDeclaration",
// §4.1 "Function declaration").
type FunctionDeclaration struct {
	Position   token.Position
	IsAnon     bool
	Name       string
	Params     []Param
	ReturnType string
	Body       *BlockStatement
}

func (f *FunctionDeclaration) Pos() token.Position { return f.Position }
func (f *FunctionDeclaration) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	var b strings.Builder
	if f.IsAnon {
		b.WriteString("anon ")
	}
	b.WriteString("fn ")
	b.WriteString(f.Name)
	b.WriteString("(")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(")")
	if f.ReturnType != "" {
		b.WriteString(" -> " + f.ReturnType)
	}
	b.WriteString(" ")
	b.WriteString(f.Body.String())
	return b.String()
}
func (*FunctionDeclaration) statementNode() {}

// BlockStatement is `{ stmt… }` (spec.md §3 "Block").
type BlockStatement struct {
	Position token.Position
	Body     []Statement
}

func (b *BlockStatement) Pos() token.Position { return b.Position }
func (b *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Body {
		sb.WriteString("  " + s.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}
func (*BlockStatement) statementNode() {}

// ForStatement is `for [let|var] id[, id…] in expr block` (spec.md §3
// "For", §4.1 "For").
type ForStatement struct {
	Position   token.Position
	Keyword    token.Type // LET, VAR, or token.ILLEGAL if neither was given
	Names      []string
	Source     Expression
	Body       *BlockStatement
}

func (f *ForStatement) Pos() token.Position { return f.Position }
func (f *ForStatement) String() string {
	var b strings.Builder
	b.WriteString("for ")
	if f.Keyword != token.ILLEGAL {
		b.WriteString(f.Keyword.String() + " ")
	}
	b.WriteString(strings.Join(f.Names, ", "))
	b.WriteString(" in ")
	b.WriteString(f.Source.String())
	b.WriteString(" ")
	b.WriteString(f.Body.String())
	return b.String()
}
func (*ForStatement) statementNode() {}

// WhileStatement is `while cond block` (spec.md §3 "While").
type WhileStatement struct {
	Position token.Position
	Test     Expression
	Body     *BlockStatement
}

func (w *WhileStatement) Pos() token.Position { return w.Position }
func (w *WhileStatement) String() string {
	return "while " + w.Test.String() + " " + w.Body.String()
}
func (*WhileStatement) statementNode() {}

// IfStatement is `if cond block [else (if-chain | block)]` (spec.md §3
// "If": "alternate ... is itself a block or another If"). Alternate is nil,
// a *BlockStatement, or an *IfStatement.
type IfStatement struct {
	Position  token.Position
	Test      Expression
	Body      *BlockStatement
	Alternate Statement
}

func (i *IfStatement) Pos() token.Position { return i.Position }
func (i *IfStatement) String() string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(i.Test.String())
	b.WriteString(" ")
	b.WriteString(i.Body.String())
	if i.Alternate != nil {
		b.WriteString(" else ")
		b.WriteString(i.Alternate.String())
	}
	return b.String()
}
func (*IfStatement) statementNode() {}

// PatternKind tags a match-arm pattern variant (spec.md §4.1 "Match").
type PatternKind int

const (
	PatternLiteral PatternKind = iota
	PatternIdent
	PatternOk
	PatternErr
)

// Pattern is one match-arm pattern. Literal patterns compare by value;
// Ident patterns always match and bind; Ok/Err patterns match a Result
// value's variant and bind its payload. Err(id) is deliberately its own
// variant (SPEC_FULL.md Open Question #3 — the source's "Ok(box inner)"
// construction of Err patterns is treated as a bug).
type Pattern struct {
	Kind    PatternKind
	Literal Expression // PatternLiteral
	Name    string     // PatternIdent, PatternOk, PatternErr
}

func (p Pattern) String() string {
	switch p.Kind {
	case PatternLiteral:
		return p.Literal.String()
	case PatternOk:
		return "Ok(" + p.Name + ")"
	case PatternErr:
		return "Err(" + p.Name + ")"
	default:
		return p.Name
	}
}

// MatchCase is one `pattern => block` arm.
type MatchCase struct {
	Pattern Pattern
	Body    *BlockStatement
}

// MatchStatement is `match expr { pattern => block, … }` (spec.md §3
// "Match", §4.1 "Match": "Arm order is tried top-down; first match wins").
type MatchStatement struct {
	Position token.Position
	Test     Expression
	Cases    []MatchCase
}

func (m *MatchStatement) Pos() token.Position { return m.Position }
func (m *MatchStatement) String() string {
	var b strings.Builder
	b.WriteString("match ")
	b.WriteString(m.Test.String())
	b.WriteString(" {\n")
	for _, c := range m.Cases {
		b.WriteString("  " + c.Pattern.String() + " => " + c.Body.String() + ",\n")
	}
	b.WriteString("}")
	return b.String()
}
func (*MatchStatement) statementNode() {}

// ReturnStatement is `return expr` or the `>>` shortcut (spec.md §3
// "Return", GLOSSARY "Shortcut return").
type ReturnStatement struct {
	Position   token.Position
	Argument   Expression // nil for a bare `return`
	IsShortcut bool
}

func (r *ReturnStatement) Pos() token.Position { return r.Position }
func (r *ReturnStatement) String() string {
	kw := "return"
	if r.IsShortcut {
		kw = ">>"
	}
	if r.Argument == nil {
		return kw
	}
	return kw + " " + r.Argument.String()
}
func (*ReturnStatement) statementNode() {}

// ImportSpecifier is one `name [as local]` entry of an import list (spec.md
// §4.1 "Import").
type ImportSpecifier struct {
	Name  string
	Local string // equals Name if no alias given
}

// ImportDeclaration is `import spec[, spec…] from "source"` or
// `import * [as local] from "source"` (spec.md §3 "ImportDeclaration").
type ImportDeclaration struct {
	Position     token.Position
	Specifiers   []ImportSpecifier
	IsStarImport bool
	StarLocal    string // alias for `import * as local from …`; empty if none
	Source       string
}

func (i *ImportDeclaration) Pos() token.Position { return i.Position }
func (i *ImportDeclaration) String() string {
	var b strings.Builder
	b.WriteString("import ")
	if i.IsStarImport {
		b.WriteString("*")
		if i.StarLocal != "" {
			b.WriteString(" as " + i.StarLocal)
		}
	} else {
		parts := make([]string, len(i.Specifiers))
		for idx, s := range i.Specifiers {
			if s.Local != "" && s.Local != s.Name {
				parts[idx] = s.Name + " as " + s.Local
			} else {
				parts[idx] = s.Name
			}
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteString(" from \"" + i.Source + "\"")
	return b.String()
}
func (*ImportDeclaration) statementNode() {}
