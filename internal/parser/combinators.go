// Combinator helpers ported from the teacher's internal/parser/combinators.go:
// Optional/Many/ManyUntil/Choice/Between/SeparatedList/Guard. These
// make the grammar in expressions.go/statements.go declarative instead of a
// wall of hand-rolled token-matching, the same role they play in the
// teacher.
package parser

import (
	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

type exprParserFunc func() ast.Expression
type stmtParserFunc func() ast.Statement
type parserFunc func() bool

// optional consumes peekToken if it matches t, reporting whether it did.
func (p *Parser) optional(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	return false
}

// choice consumes peekToken if it matches any of ts.
func (p *Parser) choice(ts ...token.Type) bool {
	for _, t := range ts {
		if p.peekTokenIs(t) {
			p.nextToken()
			return true
		}
	}
	return false
}

// many repeatedly applies fn until it returns false.
func (p *Parser) many(fn parserFunc) int {
	count := 0
	for fn() {
		count++
	}
	return count
}

// manyUntil repeatedly applies fn until the peek token is term or EOF.
func (p *Parser) manyUntil(term token.Type, fn parserFunc) int {
	count := 0
	for !p.peekTokenIs(term) && !p.peekTokenIs(token.EOF) && !p.Failed() {
		if !fn() {
			break
		}
		count++
	}
	return count
}

// between parses `opening content closing`.
func (p *Parser) between(opening, closing token.Type, fn exprParserFunc) ast.Expression {
	if !p.expectPeek(opening) {
		return nil
	}
	result := fn()
	if result == nil {
		return nil
	}
	if !p.expectPeek(closing) {
		return nil
	}
	return result
}

// separatorConfig configures separatedList, mirroring the teacher's
// SeparatorConfig.
type separatorConfig struct {
	Sep           token.Type
	Term          token.Type
	ParseItem     parserFunc
	AllowEmpty    bool
	AllowTrailing bool
}

// separatedList parses `item (sep item)* [sep]?` up to (not consuming) Term.
// Returns the item count, or -1 on failure.
func (p *Parser) separatedList(cfg separatorConfig) int {
	if p.peekTokenIs(cfg.Term) {
		if cfg.AllowEmpty {
			return 0
		}
		p.failUnexpected("at least one item", p.peekToken.Type.String())
		return -1
	}

	count := 0
	for {
		if !cfg.ParseItem() {
			return -1
		}
		count++

		if p.peekTokenIs(cfg.Sep) {
			p.nextToken()
			if cfg.AllowTrailing && p.peekTokenIs(cfg.Term) {
				return count
			}
			continue
		}
		break
	}
	return count
}

// guard applies fn only if cond holds, leaving state untouched otherwise.
func (p *Parser) guard(cond func() bool, fn parserFunc) bool {
	if !cond() {
		return false
	}
	return fn()
}
