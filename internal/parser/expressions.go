package parser

import (
	"strconv"
	"strings"

	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

// parseExpression is the single entry point spec.md §4.1 describes:
// "parse_expression parses a basic expression ..., then greedily consumes
// (binary-op, basic-expression) pairs. The resulting flat sequence is
// folded into a tree using operator precedence". cfscript folds during the
// walk (standard precedence climbing) rather than as a separate pass; the
// two are observationally identical for a left-associative grammar with no
// right-associative operators (precedence.go).
//
// Assignment sits below every binary operator (spec.md lists it as its own
// Expression variant, always `target op= source`), so it is handled here
// rather than in the precedence table.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parseBinary(1)
	if left == nil {
		return nil
	}

	switch p.peekToken.Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
		op := p.peekToken.Type
		p.nextToken()
		p.nextToken()
		source := p.parseExpression()
		if source == nil {
			return nil
		}
		return &ast.AssignmentExpr{Position: left.Pos(), Operator: op, Target: left, Source: source}
	}
	return left
}

func (p *Parser) parseBinary(minPrec int) ast.Expression {
	left := p.parseFallible()
	if left == nil {
		return nil
	}

	for isBinaryOperator(p.peekToken.Type) && precedence(p.peekToken.Type) >= minPrec {
		op := p.peekToken.Type
		pos := p.peekToken.Pos
		p.nextToken()
		p.nextToken()

		nextMin := precedence(op) + 1
		if rightAssociative(op) {
			nextMin = precedence(op)
		}
		right := p.parseBinary(nextMin)
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{Position: pos, Left: left, Operator: op, Right: right}
	}
	return left
}

// parseFallible wraps the `?` postfix (spec.md §4.1 "Fallible expressions").
func (p *Parser) parseFallible() ast.Expression {
	e := p.parseRangeOperand()
	for e != nil && p.peekTokenIs(token.QUESTION) {
		p.nextToken()
		e = &ast.FallibleExpr{Position: e.Pos(), Inner: e}
	}
	return e
}

// parseRangeOperand handles `start..end`/`start..=end` with either bound
// optional (spec.md §3 "Range"). It is not part of the binary-operator
// precedence table — ranges are their own grammatical level sitting just
// above postfix/primary expressions.
func (p *Parser) parseRangeOperand() ast.Expression {
	if p.curTokenIs(token.RANGE_EXCL) || p.curTokenIs(token.RANGE_INCL) {
		kind := rangeKindOf(p.curToken.Type)
		pos := p.curToken.Pos
		var end ast.Expression
		if p.canStartExpression(p.peekToken.Type) {
			p.nextToken()
			end = p.parsePostfix(p.parsePrimary())
			if end == nil {
				return nil
			}
		}
		return &ast.RangeExpr{Position: pos, Kind: kind, End: end}
	}

	left := p.parsePostfix(p.parsePrimary())
	if left == nil {
		return nil
	}

	if p.peekTokenIs(token.RANGE_EXCL) || p.peekTokenIs(token.RANGE_INCL) {
		kind := rangeKindOf(p.peekToken.Type)
		p.nextToken()
		var end ast.Expression
		if p.canStartExpression(p.peekToken.Type) {
			p.nextToken()
			end = p.parsePostfix(p.parsePrimary())
			if end == nil {
				return nil
			}
		}
		return &ast.RangeExpr{Position: left.Pos(), Start: left, Kind: kind, End: end}
	}
	return left
}

func rangeKindOf(t token.Type) ast.RangeKind {
	if t == token.RANGE_INCL {
		return ast.RangeInclusive
	}
	return ast.RangeExclusive
}

func (p *Parser) canStartExpression(t token.Type) bool {
	switch t {
	case token.NUMBER, token.STRING, token.TEMPLATE_STRING, token.TRUE, token.FALSE, token.NIL,
		token.IDENT, token.LPAREN, token.LBRACKET, token.LBRACE, token.MINUS, token.PLUS,
		token.FN, token.ANON, token.OK, token.ERR:
		return true
	default:
		return false
	}
}

// parsePostfix chains call/member/index onto base (spec.md §3 "Call",
// "Member").
func (p *Parser) parsePostfix(base ast.Expression) ast.Expression {
	if base == nil {
		return nil
	}
	for {
		switch p.peekToken.Type {
		case token.DOT:
			p.nextToken() // '.'
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			prop := &ast.Identifier{Position: p.curToken.Pos, Name: p.curToken.Literal}
			base = &ast.MemberExpr{Position: base.Pos(), Object: base, Property: prop, Computed: false}
		case token.LBRACKET:
			pos := p.peekToken.Pos
			p.nextToken() // '['
			p.nextToken()
			idx := p.parseExpression()
			if idx == nil {
				return nil
			}
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
			base = &ast.MemberExpr{Position: pos, Object: base, Property: idx, Computed: true}
		case token.LPAREN:
			pos := p.peekToken.Pos
			p.nextToken() // '('
			args := p.parseArgumentList()
			if args == nil && p.Failed() {
				return nil
			}
			base = &ast.CallExpr{Position: pos, Callee: base, Arguments: args}
		default:
			return base
		}
	}
}

func (p *Parser) parseArgumentList() []ast.Expression {
	var args []ast.Expression
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	for {
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RPAREN) { // trailing comma
				break
			}
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return args
}

// parsePrimary parses the innermost, non-composable expressions (spec.md
// §4.1 "Lexical primitives" + composite literals), including folding a
// leading unary sign into a numeric literal ("Unary +/- is folded into the
// numeric literal at parse time").
func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.MINUS, token.PLUS:
		sign := p.curToken.Type
		if !p.expectPeek(token.NUMBER) {
			p.failInvalid("invalid-unary", "unary operator requires a numeric literal")
			return nil
		}
		n := p.parseNumberLiteral()
		if sign == token.MINUS {
			n.Value = -n.Value
			n.Raw = "-" + n.Raw
		} else {
			n.Raw = "+" + n.Raw
		}
		return n
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.TEMPLATE_STRING:
		return p.parseTemplateLiteral()
	case token.TRUE:
		return &ast.BoolLiteral{Position: p.curToken.Pos, Value: true}
	case token.FALSE:
		return &ast.BoolLiteral{Position: p.curToken.Pos, Value: false}
	case token.NIL:
		return &ast.NilLiteral{Position: p.curToken.Pos}
	case token.IDENT:
		return &ast.Identifier{Position: p.curToken.Pos, Name: p.curToken.Literal}
	case token.LPAREN:
		pos := p.curToken.Pos
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.ParenExpr{Position: pos, Inner: inner}
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FN, token.ANON:
		return p.parseFnExpression()
	case token.OK:
		return p.parseOkExpr()
	case token.ERR:
		return p.parseErrExpr()
	default:
		p.failUnexpected("expression", describeToken(p.curToken))
		return nil
	}
}

func describeToken(t token.Token) string {
	if t.Literal != "" {
		return t.Type.String() + " (" + t.Literal + ")"
	}
	return t.Type.String()
}

func (p *Parser) parseNumberLiteral() *ast.NumberLiteral {
	raw := p.curToken.Literal
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.failInvalid("invalid-number", "invalid numeric literal "+strconv.Quote(raw))
		return nil
	}
	return &ast.NumberLiteral{Position: p.curToken.Pos, Raw: raw, Value: v}
}

func (p *Parser) parseOkExpr() ast.Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.OkExpr{Position: pos, Inner: inner}
}

func (p *Parser) parseErrExpr() ast.Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.ErrExpr{Position: pos, Inner: inner}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.curToken.Pos
	var elements []ast.Expression
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ArrayLiteral{Position: pos, Elements: elements}
	}
	p.nextToken()
	for {
		el := p.parseExpression()
		if el == nil {
			return nil
		}
		elements = append(elements, el)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACKET) {
				break
			}
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayLiteral{Position: pos, Elements: elements}
}

// parseObjectLiteral parses `{k: e, k, …}`. Keys are identifiers, not
// arbitrary expressions (spec.md §4.1 "Composite values"). A value that is
// an FnExpression is flagged IsMethod at parse time.
func (p *Parser) parseObjectLiteral() ast.Expression {
	pos := p.curToken.Pos
	var props []ast.Property
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.ObjectLiteral{Position: pos, Properties: props}
	}
	p.nextToken()
	for {
		prop, ok := p.parseObjectProperty()
		if !ok {
			return nil
		}
		props = append(props, prop)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACE) {
				break
			}
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.ObjectLiteral{Position: pos, Properties: props}
}

func (p *Parser) parseObjectProperty() (ast.Property, bool) {
	if !p.curTokenIs(token.IDENT) {
		p.failUnexpected("object key", describeToken(p.curToken))
		return ast.Property{}, false
	}
	key := p.curToken.Literal

	if p.peekTokenIs(token.COLON) {
		p.nextToken() // ':'
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			return ast.Property{}, false
		}
		_, isMethod := value.(*ast.FnExpression)
		return ast.Property{Key: key, Value: value, IsMethod: isMethod, Kind: ast.PropNormal}, true
	}

	// shorthand { x } == { x: x }
	return ast.Property{
		Key:       key,
		Value:     &ast.Identifier{Position: p.curToken.Pos, Name: key},
		Shorthand: true,
		Kind:      ast.PropNormal,
	}, true
}

// parseFnExpression parses an anonymous function value: `[anon] fn
// (params) [-> Type] block` or the shortcut form `[anon] fn (params) ->
// expr` with no block. The two uses of `->` are disambiguated by looking
// one token past a plausible type name: if a `{` follows, `-> Type` was a
// declared return type and a block body follows; otherwise the arrow
// introduces the shortcut expression body directly.
func (p *Parser) parseFnExpression() ast.Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList()
	if params == nil && p.Failed() {
		return nil
	}

	var returnType string
	isShortcut := false
	var body ast.Statement

	if p.peekTokenIs(token.ARROW) {
		p.nextToken() // '->'
		if p.peekTokenIs(token.IDENT) && p.peek(0).Type == token.LBRACE {
			p.nextToken()
			returnType = p.curToken.Literal
		} else {
			isShortcut = true
			p.nextToken()
			expr := p.parseExpression()
			if expr == nil {
				return nil
			}
			body = &ast.ExpressionStatement{Position: expr.Pos(), Expression: expr}
			return &ast.FnExpression{Position: pos, Params: params, Body: body, IsShortcut: true, ReturnType: returnType}
		}
	}

	block := p.parseBlockStatement()
	if block == nil {
		return nil
	}
	return &ast.FnExpression{Position: pos, Params: params, Body: block, IsShortcut: isShortcut, ReturnType: returnType}
}

// parseParamList parses `(name [: type], …)`, leaving curToken on `)`.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		if !p.curTokenIs(token.IDENT) {
			p.failUnexpected("parameter name", describeToken(p.curToken))
			return nil
		}
		param := ast.Param{Name: p.curToken.Literal}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			param.DeclaredType = p.curToken.Literal
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RPAREN) {
				break
			}
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	fragments, err := parseStringFragments(tok.Literal, tok.Pos)
	if err != "" {
		p.failInvalid("invalid-string", err)
		return nil
	}
	quote := rune('"')
	raw := strings.Builder{}
	raw.WriteRune(quote)
	raw.WriteString(tok.Literal)
	raw.WriteRune(quote)
	return &ast.StringLiteral{Position: tok.Pos, Fragments: fragments, Raw: raw.String(), Quote: quote}
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.curToken
	fragments, err := parseTemplateFragments(p, tok.Literal, tok.Pos)
	if err != "" {
		p.failInvalid("invalid-template", err)
		return nil
	}
	return &ast.TemplateLiteral{Position: tok.Pos, Fragments: fragments, Raw: `#"` + tok.Literal + `"`}
}
