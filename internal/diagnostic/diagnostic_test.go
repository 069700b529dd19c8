package diagnostic

import (
	"strings"
	"testing"

	"github.com/cfs-lang/cfscript/internal/evaluator"
	"github.com/cfs-lang/cfscript/internal/parser"
	"github.com/cfs-lang/cfscript/internal/token"
)

func TestFromParseErrorCarriesCodeAndLabels(t *testing.T) {
	p := parser.New(`let x = `)
	_, perr := p.ParseProgram()
	if perr == nil {
		t.Fatal("expected a parse error")
	}
	d := FromParseError(perr)
	if d.Kind != "parse" {
		t.Errorf("kind: got %s", d.Kind)
	}
	if !strings.Contains(d.Code, string(perr.Kind)) {
		t.Errorf("code %q should contain error kind %q", d.Code, perr.Kind)
	}
	if d.Message == "" {
		t.Error("expected a non-empty message")
	}
}

func TestFromRuntimeErrorCarriesPosition(t *testing.T) {
	rerr := &evaluator.RuntimeError{
		Kind:    evaluator.ErrName,
		Message: "undefined name: x",
		Pos:     token.Position{Line: 3, Column: 5},
	}
	d := FromRuntimeError(rerr)
	if d.Kind != "runtime" {
		t.Errorf("kind: got %s", d.Kind)
	}
	if d.Pos.Line != 3 || d.Pos.Column != 5 {
		t.Errorf("pos: got %+v", d.Pos)
	}
	if d.Code != string(evaluator.ErrName) {
		t.Errorf("code: got %s, want %s", d.Code, evaluator.ErrName)
	}
}

func TestRenderIncludesSourceLineAndCaret(t *testing.T) {
	source := "let x = 1\nlet y = \nlet z = 3"
	d := &Diagnostic{
		Kind:    "parse",
		Code:    "missing/missing-token",
		Message: "missing expression",
		Pos:     token.Position{Line: 2, Column: 9},
		Labels:  []Label{{Line: 2, Column: 9, Message: "expected expression here"}},
		Notes:   []string{"try adding a value after `=`"},
	}
	rendered := d.Render("example.cfs", source)

	if !strings.Contains(rendered, "example.cfs:2:9") {
		t.Errorf("rendering should reference the error location:\n%s", rendered)
	}
	if !strings.Contains(rendered, "let y = ") {
		t.Errorf("rendering should quote the offending source line:\n%s", rendered)
	}
	if !strings.Contains(rendered, "^") {
		t.Errorf("rendering should include a caret:\n%s", rendered)
	}
	if !strings.Contains(rendered, "expected expression here") {
		t.Errorf("rendering should include the label message:\n%s", rendered)
	}
	if !strings.Contains(rendered, "try adding a value after") {
		t.Errorf("rendering should include the note:\n%s", rendered)
	}
}

func TestRenderWithContextShowsParsingTrail(t *testing.T) {
	d := &Diagnostic{
		Kind:    "parse",
		Code:    "missing/missing-token",
		Message: "missing )",
		Pos:     token.Position{Line: 1, Column: 1},
		Context: []string{"program", "function declaration", "block"},
	}
	rendered := d.Render("f.cfs", "fn broken(")
	if !strings.Contains(rendered, "block > function declaration > program") {
		t.Errorf("expected innermost-first context trail, got:\n%s", rendered)
	}
}

func TestRenderOutOfRangePositionDoesNotPanic(t *testing.T) {
	d := &Diagnostic{
		Kind:    "runtime",
		Code:    "name",
		Message: "undefined name: x",
		Pos:     token.Position{Line: 99, Column: 1},
	}
	rendered := d.Render("f.cfs", "let x = 1")
	if !strings.Contains(rendered, "undefined name: x") {
		t.Errorf("got %q", rendered)
	}
}
