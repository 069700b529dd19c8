package parser

import (
	"fmt"

	"github.com/cfs-lang/cfscript/internal/token"
)

// ErrorKind categorizes parse errors (spec.md §4.1 "Errors carry an
// error-code, a one-line message, zero or more labels ..., and notes"),
// trimmed from the teacher's five-kind StructuredParserError to the four
// spec.md actually distinguishes.
type ErrorKind string

const (
	ErrKindSyntax     ErrorKind = "syntax"
	ErrKindUnexpected ErrorKind = "unexpected"
	ErrKindMissing    ErrorKind = "missing"
	ErrKindInvalid    ErrorKind = "invalid"
)

// Label points at a byte range in the source with an explanatory note,
// the same "(byte-range into source)" shape spec.md §4.1 calls for.
type Label struct {
	Pos     token.Position
	Length  int
	Message string
}

// ParseError is cfscript's single structured parse diagnostic. Context
// accumulates as parsers nest ("while parsing function declaration", "while
// parsing block"), mirroring the teacher's ParsePhase field.
type ParseError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Pos     token.Position
	Labels  []Label
	Notes   []string
	Context []string // innermost first, e.g. ["block", "function declaration", "program"]
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
}

// WithContext pushes a parsing-phase name onto the error's context stack;
// used when unwinding out of nested parse functions so the outermost
// caller can note what it was doing when the inner parser failed.
func (e *ParseError) WithContext(phase string) *ParseError {
	e.Context = append(e.Context, phase)
	return e
}

// pushContext records the current parse phase on the first (and only)
// recorded error, called as each nested parse function returns up the
// stack after a failure was detected deeper inside it.
func (p *Parser) pushContext(phase string) {
	if p.err != nil {
		p.err.WithContext(phase)
	}
}

func (p *Parser) fail(err *ParseError) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) failMissing(expected token.Type) {
	p.fail(&ParseError{
		Kind:    ErrKindMissing,
		Code:    "missing-token",
		Message: fmt.Sprintf("missing %s", expected),
		Pos:     p.peekToken.Pos,
		Labels: []Label{{
			Pos: p.peekToken.Pos, Length: len(p.peekToken.Literal),
			Message: fmt.Sprintf("expected %s here", expected),
		}},
	})
}

func (p *Parser) failUnexpected(expected, actualDesc string) {
	p.fail(&ParseError{
		Kind:    ErrKindUnexpected,
		Code:    "unexpected-token",
		Message: fmt.Sprintf("expected %s, got %s", expected, actualDesc),
		Pos:     p.curToken.Pos,
		Labels: []Label{{
			Pos: p.curToken.Pos, Length: len(p.curToken.Literal),
			Message: "unexpected token",
		}},
	})
}

func (p *Parser) failInvalid(code, message string) {
	p.fail(&ParseError{
		Kind:    ErrKindInvalid,
		Code:    code,
		Message: message,
		Pos:     p.curToken.Pos,
		Labels: []Label{{
			Pos: p.curToken.Pos, Length: len(p.curToken.Literal),
		}},
	})
}

func (p *Parser) failSyntax(code, message string, pos token.Position) {
	p.fail(&ParseError{
		Kind:    ErrKindSyntax,
		Code:    code,
		Message: message,
		Pos:     pos,
		Labels:  []Label{{Pos: pos}},
	})
}
