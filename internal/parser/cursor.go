// Package parser implements cfscript's combinator-style recursive-descent
// parser (spec.md §4.1). The split mirrors the teacher's internal/parser:
// a token cursor (this file) advances over a token stream with one-token
// lookahead plus arbitrary peek(n), and a combinator library
// (combinators.go) builds higher-level parsing patterns on top of it.
package parser

import (
	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/lexer"
	"github.com/cfs-lang/cfscript/internal/token"
)

// Parser walks a token stream built lazily from a lexer.Lexer, producing an
// *ast.Program or a single fatal *ParseError (spec.md §4.1 "Failure
// semantics": "Parse errors are fatal: the parser emits a single
// structured diagnostic ... and aborts the script").
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
	lookahead []token.Token // extra buffered tokens for peek(n)

	pendingComments []ast.Comment

	err *ParseError
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{l: lexer.New(src)}
	p.nextToken()
	p.nextToken()
	return p
}

// recordComments moves whatever the lexer just skipped as trivia into
// pendingComments, in source order. Called right after every l.Next() call
// (in nextToken and peek) so each comment is captured exactly once,
// regardless of how far ahead peek(n) has buffered.
func (p *Parser) recordComments() {
	for _, c := range p.l.LeadingComments() {
		isLine := len(c.Literal) >= 2 && c.Literal[:2] == "//"
		p.pendingComments = append(p.pendingComments, ast.Comment{
			Position: c.Pos, Raw: c.Literal, IsLine: isLine,
		})
	}
}

// takeCommentsBefore removes and returns every pending comment that starts
// strictly before pos, leaving comments that precede tokens further ahead
// (already buffered by peek(n)) queued for later. Used at the top of
// statement parsing, called with curToken's position, to recover spec.md's
// "comments preserved in the AST" without the lexer emitting them as
// tokens.
func (p *Parser) takeCommentsBefore(pos token.Position) []ast.Comment {
	i := 0
	for i < len(p.pendingComments) && p.pendingComments[i].Position.Offset < pos.Offset {
		i++
	}
	out := p.pendingComments[:i:i]
	p.pendingComments = p.pendingComments[i:]
	return out
}

// nextToken advances cur/peek by one token, pulling from the lookahead
// buffer first if populated by peek(n).
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if len(p.lookahead) > 0 {
		p.peekToken = p.lookahead[0]
		p.lookahead = p.lookahead[1:]
	} else {
		p.peekToken = p.l.Next()
		p.recordComments()
	}
}

// peek returns the token n positions beyond peekToken (peek(0) is the
// token directly after peekToken), buffering as needed. Mirrors the
// teacher's combinators.go peek(n) used by Peek2Is/Peek3Is/PeekNIs.
func (p *Parser) peek(n int) token.Token {
	for len(p.lookahead) <= n {
		p.lookahead = append(p.lookahead, p.l.Next())
		p.recordComments()
	}
	return p.lookahead[n]
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, else records a fatal
// "missing token" diagnostic and returns false.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.failMissing(t)
	return false
}

// Errors returns the single fatal parse error, if any.
func (p *Parser) Errors() *ParseError { return p.err }

// Failed reports whether a fatal error has already been recorded; once set,
// parsing should unwind without doing further work (spec.md's "aborts the
// script").
func (p *Parser) Failed() bool { return p.err != nil }
