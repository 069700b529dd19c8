package diagnostic

import (
	"github.com/cfs-lang/cfscript/internal/evaluator"
	"github.com/cfs-lang/cfscript/internal/parser"
)

// FromParseError converts a *parser.ParseError into the unified Diagnostic
// shape (spec.md §4.5 "converts the structured error into a rendered
// diagnostic").
func FromParseError(e *parser.ParseError) *Diagnostic {
	d := &Diagnostic{
		Kind:    "parse",
		Code:    string(e.Kind) + "/" + e.Code,
		Message: e.Message,
		Pos:     e.Pos,
		Notes:   e.Notes,
		Context: reverse(e.Context), // parser order is innermost first
	}
	for _, l := range e.Labels {
		d.Labels = append(d.Labels, Label{Line: l.Pos.Line, Column: l.Pos.Column, Length: l.Length, Message: l.Message})
	}
	return d
}

// FromRuntimeError converts an *evaluator.RuntimeError into the unified
// Diagnostic shape (spec.md §4.5 "runtime errors are rendered identically").
func FromRuntimeError(e *evaluator.RuntimeError) *Diagnostic {
	return &Diagnostic{
		Kind:    "runtime",
		Code:    string(e.Kind),
		Message: e.Error(),
		Pos:     e.Pos,
	}
}
