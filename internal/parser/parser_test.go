package parser

import (
	"testing"

	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %s", err.Error())
	}
	return prog
}

func singleExpr(t *testing.T, prog *ast.Program) ast.Expression {
	t.Helper()
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", prog.Statements[0])
	}
	return stmt.Expression
}

// Precedence tiers per the four-level table (comparisons tightest, then
// `==`/`!=`/`**`, then `*`/`/`/`%`, `+`/`-` loosest): `*` out-binds `+`, and
// `==` out-binds both, so `1 + 2 * 3 == 7` parses as `1 + (2 * (3 == 7))`.
func TestPrecedenceArithmeticBindsTighterThanAdditive(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3 == 7")
	expr := singleExpr(t, prog)
	top, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level BinaryExpr, got %T", expr)
	}
	if top.Operator != token.PLUS {
		t.Fatalf("expected top operator +, got %s", top.Operator)
	}
	mul, ok := top.Right.(*ast.BinaryExpr)
	if !ok || mul.Operator != token.STAR {
		t.Fatalf("expected right side of + to be a * expression, got %#v", top.Right)
	}
	eq, ok := mul.Right.(*ast.BinaryExpr)
	if !ok || eq.Operator != token.EQ {
		t.Fatalf("expected right side of * to be `3 == 7`, got %#v", mul.Right)
	}
}

func TestPowerIsLeftAssociative(t *testing.T) {
	prog := mustParse(t, "2 ** 3 ** 2")
	expr := singleExpr(t, prog)
	top, ok := expr.(*ast.BinaryExpr)
	if !ok || top.Operator != token.POW {
		t.Fatalf("expected top-level ** BinaryExpr, got %#v", expr)
	}
	// Left-associative means the outer node's Left is itself `2 ** 3`,
	// i.e. this parses as (2 ** 3) ** 2 == 64, not 2 ** (3 ** 2) == 512.
	left, ok := top.Left.(*ast.BinaryExpr)
	if !ok || left.Operator != token.POW {
		t.Fatalf("expected (2 ** 3) ** 2 shape, got left=%#v", top.Left)
	}
}

func TestMatchOkAndErrPatternsAreDistinctVariants(t *testing.T) {
	prog := mustParse(t, `match r {
		Ok(v) => { print(v) },
		Err(e) => { print(e) },
	}`)
	stmt, ok := prog.Statements[0].(*ast.MatchStatement)
	if !ok {
		t.Fatalf("expected MatchStatement, got %T", prog.Statements[0])
	}
	if len(stmt.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(stmt.Cases))
	}
	if stmt.Cases[0].Pattern.Kind != ast.PatternOk || stmt.Cases[0].Pattern.Name != "v" {
		t.Errorf("case 0: got %#v", stmt.Cases[0].Pattern)
	}
	if stmt.Cases[1].Pattern.Kind != ast.PatternErr || stmt.Cases[1].Pattern.Name != "e" {
		t.Errorf("case 1: got %#v", stmt.Cases[1].Pattern)
	}
}

func TestForLoopMultiNameDestructuring(t *testing.T) {
	prog := mustParse(t, `for let a, b in pairs { print(a) }`)
	stmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected ForStatement, got %T", prog.Statements[0])
	}
	if len(stmt.Names) != 2 || stmt.Names[0] != "a" || stmt.Names[1] != "b" {
		t.Errorf("got names %v", stmt.Names)
	}
}

func TestFallibleAndOkErrExpressions(t *testing.T) {
	prog := mustParse(t, `let x = maybe()?`)
	decl, ok := prog.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected VariableDeclaration, got %T", prog.Statements[0])
	}
	if _, ok := decl.Declarations[0].Value.(*ast.FallibleExpr); !ok {
		t.Fatalf("expected FallibleExpr, got %#v", decl.Declarations[0].Value)
	}
}

func TestImportStarWithLocalNamespace(t *testing.T) {
	prog := mustParse(t, `import * as m from "math"`)
	decl, ok := prog.Statements[0].(*ast.ImportDeclaration)
	if !ok {
		t.Fatalf("expected ImportDeclaration, got %T", prog.Statements[0])
	}
	if !decl.IsStarImport || decl.StarLocal != "m" || decl.Source != "math" {
		t.Errorf("got %#v", decl)
	}
}

func TestImportNamedSpecifiersWithAlias(t *testing.T) {
	prog := mustParse(t, `import sqrt as root, pow from "math"`)
	decl, ok := prog.Statements[0].(*ast.ImportDeclaration)
	if !ok {
		t.Fatalf("expected ImportDeclaration, got %T", prog.Statements[0])
	}
	if len(decl.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(decl.Specifiers))
	}
	if decl.Specifiers[0].Name != "sqrt" || decl.Specifiers[0].Local != "root" {
		t.Errorf("got %#v", decl.Specifiers[0])
	}
	if decl.Specifiers[1].Name != "pow" || decl.Specifiers[1].Local != "pow" {
		t.Errorf("got %#v", decl.Specifiers[1])
	}
}

// Round-trip property (spec.md §8): re-rendering a parsed program and
// parsing the rendering again should produce a structurally identical
// program (a fixed point), even though the re-render may not byte-match
// the original formatting.
func TestRoundTripIsAFixedPoint(t *testing.T) {
	src := `fn add(a, b) { return a + b }
let total = add(1, 2) * 3
if total > 0 {
	print("positive")
} else {
	print("non-positive")
}`
	first := mustParse(t, src)
	rendered := first.String()
	second := mustParse(t, rendered)
	if rendered2 := second.String(); rendered2 != rendered {
		t.Errorf("round-trip not a fixed point:\nfirst:\n%s\nsecond:\n%s", rendered, rendered2)
	}
}

func TestSyntaxErrorIsStructured(t *testing.T) {
	p := New(`let x = `)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if err.Kind != ErrKindUnexpected && err.Kind != ErrKindMissing {
		t.Errorf("expected an unexpected/missing-token error, got kind %s", err.Kind)
	}
}
