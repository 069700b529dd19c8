package ast

import (
	"testing"

	"github.com/cfs-lang/cfscript/internal/token"
)

// These tests build nodes by hand rather than through the parser, so a
// rendering regression in one node type is pinned to that type instead
// of showing up only in the parser's aggregate round-trip test.

func TestProgramStringJoinsStatementsWithNewlines(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&VariableDeclaration{Keyword: token.LET, Declarations: []VarDecl{
			{Name: "x", Value: &NumberLiteral{Raw: "1"}},
		}},
		&ExpressionStatement{Expression: &Identifier{Name: "x"}},
	}}
	want := "let x = 1\nx"
	if got := prog.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestProgramPosFallsBackToOriginWhenEmpty(t *testing.T) {
	prog := &Program{}
	pos := prog.Pos()
	if pos.Line != 1 || pos.Column != 1 {
		t.Errorf("got %+v, want {1 1}", pos)
	}
}

func TestProgramPosDelegatesToFirstStatement(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&ExpressionStatement{
			Position:   token.Position{Line: 7, Column: 3},
			Expression: &Identifier{Name: "x"},
		},
	}}
	pos := prog.Pos()
	if pos.Line != 7 || pos.Column != 3 {
		t.Errorf("got %+v, want {7 3}", pos)
	}
}

func TestBoolLiteralStringRendersLowercase(t *testing.T) {
	if (&BoolLiteral{Value: true}).String() != "true" {
		t.Error("expected \"true\"")
	}
	if (&BoolLiteral{Value: false}).String() != "false" {
		t.Error("expected \"false\"")
	}
}

func TestNilLiteralStringIsNil(t *testing.T) {
	if (&NilLiteral{}).String() != "nil" {
		t.Error(`expected "nil"`)
	}
}

func TestIdentifierStringIsItsName(t *testing.T) {
	id := &Identifier{Name: "counter"}
	if id.String() != "counter" {
		t.Errorf("got %q", id.String())
	}
}

func TestBinaryExprStringInfixesTheOperator(t *testing.T) {
	expr := &BinaryExpr{
		Left:     &NumberLiteral{Raw: "1"},
		Operator: token.PLUS,
		Right:    &NumberLiteral{Raw: "2"},
	}
	if got := expr.String(); got != "1 + 2" {
		t.Errorf("got %q", got)
	}
}

func TestArrayLiteralStringCommaJoinsElements(t *testing.T) {
	arr := &ArrayLiteral{Elements: []Expression{
		&NumberLiteral{Raw: "1"},
		&NumberLiteral{Raw: "2"},
		&NumberLiteral{Raw: "3"},
	}}
	if got := arr.String(); got != "[1, 2, 3]" {
		t.Errorf("got %q", got)
	}
}

func TestCallExprStringRendersCalleeAndArgs(t *testing.T) {
	call := &CallExpr{
		Callee: &Identifier{Name: "add"},
		Arguments: []Expression{
			&NumberLiteral{Raw: "1"},
			&NumberLiteral{Raw: "2"},
		},
	}
	if got := call.String(); got != "add(1, 2)" {
		t.Errorf("got %q", got)
	}
}

func TestOkAndErrExprStringWrapTheirPayload(t *testing.T) {
	if got := (&OkExpr{Inner: &Identifier{Name: "v"}}).String(); got != "Ok(v)" {
		t.Errorf("Ok: got %q", got)
	}
	if got := (&ErrExpr{Inner: &Identifier{Name: "v"}}).String(); got != "Err(v)" {
		t.Errorf("Err: got %q", got)
	}
}

func TestFallibleExprStringAppendsQuestionMark(t *testing.T) {
	expr := &FallibleExpr{Inner: &CallExpr{Callee: &Identifier{Name: "fails"}, Arguments: nil}}
	if got := expr.String(); got != "fails()?" {
		t.Errorf("got %q", got)
	}
}

func TestBlockStatementStringIndentsEachStatement(t *testing.T) {
	block := &BlockStatement{Body: []Statement{
		&ExpressionStatement{Expression: &Identifier{Name: "x"}},
		&ExpressionStatement{Expression: &Identifier{Name: "y"}},
	}}
	want := "{\n  x\n  y\n}"
	if got := block.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIfStatementStringIncludesElseWhenPresent(t *testing.T) {
	ifStmt := &IfStatement{
		Test: &Identifier{Name: "ok"},
		Body: &BlockStatement{Body: []Statement{
			&ExpressionStatement{Expression: &Identifier{Name: "a"}},
		}},
		Alternate: &BlockStatement{Body: []Statement{
			&ExpressionStatement{Expression: &Identifier{Name: "b"}},
		}},
	}
	got := ifStmt.String()
	want := "if ok {\n  a\n} else {\n  b\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIfStatementStringOmitsElseWhenAbsent(t *testing.T) {
	ifStmt := &IfStatement{
		Test: &Identifier{Name: "ok"},
		Body: &BlockStatement{Body: []Statement{
			&ExpressionStatement{Expression: &Identifier{Name: "a"}},
		}},
	}
	if got := ifStmt.String(); got != "if ok {\n  a\n}" {
		t.Errorf("got %q", got)
	}
}
