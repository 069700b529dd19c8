package parser

import (
	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

// ParseProgram is the parser's sole entry point (spec.md §2.3, §4.1).
// curToken sits on the first real token (or EOF) by construction (New calls
// nextToken twice).
func (p *Parser) ParseProgram() (*ast.Program, *ParseError) {
	prog := &ast.Program{}
	for !p.curTokenIs(token.EOF) && !p.Failed() {
		prog.Statements = append(prog.Statements, p.commentStatements()...)
		if p.curTokenIs(token.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.Failed() {
			p.pushContext("program")
			return prog, p.err
		}
		p.nextToken()
	}
	prog.Statements = append(prog.Statements, p.commentStatements()...)
	return prog, p.err
}

// commentStatements turns any comments pending before curToken into
// synthetic ExpressionStatement{Comment} nodes (spec.md §4.2 "every node
// preserves enough original text to round-trip"). The evaluator treats
// these as no-ops.
func (p *Parser) commentStatements() []ast.Statement {
	comments := p.takeCommentsBefore(p.curToken.Pos)
	if len(comments) == 0 {
		return nil
	}
	out := make([]ast.Statement, len(comments))
	for i := range comments {
		c := comments[i]
		out[i] = &ast.ExpressionStatement{Position: c.Position, Expression: &c}
	}
	return out
}

// parseStatement dispatches on curToken and leaves curToken on the
// statement's LAST consumed token, same convention as expression parsing.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET, token.VAR:
		return p.parseVariableDeclaration()
	case token.FN, token.ANON:
		return p.parseFunctionDeclaration()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.MATCH:
		return p.parseMatchStatement()
	case token.RETURN:
		return p.parseReturnStatement(false)
	case token.SHORTCUT:
		return p.parseReturnStatement(true)
	case token.IMPORT:
		return p.parseImportDeclaration()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

// atStatementEnd reports whether peekToken terminates the current statement
// (spec.md §4.1 "Terminated by newline, `;`, a comment start, or
// end-of-input"). A comment start is implicit: any comment pending before
// peekToken was already skipped as trivia, so its presence surfaces as a
// line break (comments always run to end of line or are block comments)
// rather than needing a separate check here.
func (p *Parser) atStatementEnd() bool {
	switch p.peekToken.Type {
	case token.SEMICOLON, token.EOF, token.RBRACE:
		return true
	}
	return p.peekToken.Pos.Line != p.curToken.Pos.Line
}

func (p *Parser) consumeStatementEnd() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// parseVariableDeclaration parses `let`/`var` followed by a comma-separated
// list of `identifier [: type] = expression` (spec.md §4.1 "Variable
// declaration").
func (p *Parser) parseVariableDeclaration() ast.Statement {
	pos := p.curToken.Pos
	keyword := p.curToken.Type

	var decls []ast.VarDecl
	for {
		if !p.expectPeek(token.IDENT) {
			p.pushContext("variable declaration")
			return nil
		}
		name := p.curToken.Literal

		var declaredType string
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				p.pushContext("variable declaration")
				return nil
			}
			declaredType = p.curToken.Literal
		}

		if !p.expectPeek(token.ASSIGN) {
			p.pushContext("variable declaration")
			return nil
		}
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			p.pushContext("variable declaration")
			return nil
		}
		decls = append(decls, ast.VarDecl{Name: name, DeclaredType: declaredType, Value: value})

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.atStatementEnd() {
		p.failUnexpected("end of statement", describeToken(p.peekToken))
		p.pushContext("variable declaration")
		return nil
	}
	p.consumeStatementEnd()

	return &ast.VariableDeclaration{Position: pos, Keyword: keyword, Declarations: decls}
}

// parseFunctionDeclaration parses a named function (spec.md §4.1 "Function
// declaration"). curToken is FN or ANON on entry.
func (p *Parser) parseFunctionDeclaration() ast.Statement {
	pos := p.curToken.Pos
	isAnon := false
	if p.curTokenIs(token.ANON) {
		isAnon = true
		if !p.expectPeek(token.FN) {
			p.pushContext("function declaration")
			return nil
		}
	}

	if !p.expectPeek(token.IDENT) {
		p.pushContext("function declaration")
		return nil
	}
	name := p.curToken.Literal
	if token.IsKeyword(name) {
		p.failInvalid("reserved-name", "function name must not be a reserved keyword")
		p.pushContext("function declaration")
		return nil
	}

	if !p.expectPeek(token.LPAREN) {
		p.pushContext("function declaration")
		return nil
	}
	params := p.parseParamList()
	if params == nil && p.Failed() {
		p.pushContext("function declaration")
		return nil
	}

	var returnType string
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			p.pushContext("function declaration")
			return nil
		}
		returnType = p.curToken.Literal
	}

	if !p.expectPeek(token.LBRACE) {
		p.pushContext("function declaration")
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		p.pushContext("function declaration")
		return nil
	}

	return &ast.FunctionDeclaration{
		Position: pos, IsAnon: isAnon, Name: name, Params: params, ReturnType: returnType, Body: body,
	}
}

// parseBlockStatement parses `{ stmt… }`. curToken must be LBRACE on entry;
// curToken is RBRACE on a successful return.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	pos := p.curToken.Pos
	block := &ast.BlockStatement{Position: pos}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		block.Body = append(block.Body, p.commentStatements()...)
		if p.curTokenIs(token.RBRACE) || p.curTokenIs(token.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		if p.Failed() {
			p.pushContext("block")
			return block
		}
	}
	block.Body = append(block.Body, p.commentStatements()...)

	if !p.expectPeek(token.RBRACE) {
		p.pushContext("block")
		return nil
	}
	return block
}

// parseIfStatement parses `if cond block [else (if | block)]` (spec.md
// §4.1 "If").
func (p *Parser) parseIfStatement() ast.Statement {
	pos := p.curToken.Pos
	p.nextToken()
	test := p.parseExpression()
	if test == nil {
		p.pushContext("if statement")
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		p.pushContext("if statement")
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		p.pushContext("if statement")
		return nil
	}

	var alt ast.Statement
	if p.peekTokenIs(token.ELSE) {
		p.nextToken() // curToken = ELSE
		switch p.peekToken.Type {
		case token.IF:
			p.nextToken() // curToken = IF
			alt = p.parseIfStatement()
		default:
			if !p.expectPeek(token.LBRACE) {
				p.pushContext("if statement")
				return nil
			}
			alt = p.parseBlockStatement()
		}
		if alt == nil {
			p.pushContext("if statement")
			return nil
		}
	}

	return &ast.IfStatement{Position: pos, Test: test, Body: body, Alternate: alt}
}

// parseWhileStatement parses `while cond block` (spec.md §4.1 "While").
func (p *Parser) parseWhileStatement() ast.Statement {
	pos := p.curToken.Pos
	p.nextToken()
	test := p.parseExpression()
	if test == nil {
		p.pushContext("while statement")
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		p.pushContext("while statement")
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		p.pushContext("while statement")
		return nil
	}
	return &ast.WhileStatement{Position: pos, Test: test, Body: body}
}

// parseForStatement parses `for [let|var] id[, id…] in expr block`
// (spec.md §4.1 "For").
func (p *Parser) parseForStatement() ast.Statement {
	pos := p.curToken.Pos
	keyword := token.ILLEGAL
	if p.peekTokenIs(token.LET) || p.peekTokenIs(token.VAR) {
		p.nextToken()
		keyword = p.curToken.Type
	}

	if !p.expectPeek(token.IDENT) {
		p.pushContext("for statement")
		return nil
	}
	names := []string{p.curToken.Literal}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			p.pushContext("for statement")
			return nil
		}
		names = append(names, p.curToken.Literal)
	}

	if !p.expectPeek(token.IN) {
		p.pushContext("for statement")
		return nil
	}
	p.nextToken()
	source := p.parseExpression()
	if source == nil {
		p.pushContext("for statement")
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		p.pushContext("for statement")
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		p.pushContext("for statement")
		return nil
	}

	return &ast.ForStatement{Position: pos, Keyword: keyword, Names: names, Source: source, Body: body}
}

// parseMatchStatement parses `match expr { pattern => block, … }` (spec.md
// §4.1 "Match").
func (p *Parser) parseMatchStatement() ast.Statement {
	pos := p.curToken.Pos
	p.nextToken()
	test := p.parseExpression()
	if test == nil {
		p.pushContext("match statement")
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		p.pushContext("match statement")
		return nil
	}

	var cases []ast.MatchCase
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		c, ok := p.parseMatchCase()
		if !ok {
			p.pushContext("match statement")
			return nil
		}
		cases = append(cases, c)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		p.pushContext("match statement")
		return nil
	}

	return &ast.MatchStatement{Position: pos, Test: test, Cases: cases}
}

func (p *Parser) parseMatchCase() (ast.MatchCase, bool) {
	pattern, ok := p.parsePattern()
	if !ok {
		return ast.MatchCase{}, false
	}
	if !p.expectPeek(token.FAT_ARROW) {
		return ast.MatchCase{}, false
	}
	if !p.expectPeek(token.LBRACE) {
		return ast.MatchCase{}, false
	}
	body := p.parseBlockStatement()
	if body == nil {
		return ast.MatchCase{}, false
	}
	return ast.MatchCase{Pattern: pattern, Body: body}, true
}

// parsePattern parses one match-arm pattern: a literal, a plain identifier
// (binds), or `Ok(id)`/`Err(id)` (spec.md §4.1 "Match").
func (p *Parser) parsePattern() (ast.Pattern, bool) {
	switch p.curToken.Type {
	case token.OK:
		if !p.expectPeek(token.LPAREN) {
			return ast.Pattern{}, false
		}
		if !p.expectPeek(token.IDENT) {
			return ast.Pattern{}, false
		}
		name := p.curToken.Literal
		if !p.expectPeek(token.RPAREN) {
			return ast.Pattern{}, false
		}
		return ast.Pattern{Kind: ast.PatternOk, Name: name}, true
	case token.ERR:
		if !p.expectPeek(token.LPAREN) {
			return ast.Pattern{}, false
		}
		if !p.expectPeek(token.IDENT) {
			return ast.Pattern{}, false
		}
		name := p.curToken.Literal
		if !p.expectPeek(token.RPAREN) {
			return ast.Pattern{}, false
		}
		return ast.Pattern{Kind: ast.PatternErr, Name: name}, true
	case token.IDENT:
		return ast.Pattern{Kind: ast.PatternIdent, Name: p.curToken.Literal}, true
	default:
		lit := p.parsePrimary()
		if lit == nil {
			return ast.Pattern{}, false
		}
		return ast.Pattern{Kind: ast.PatternLiteral, Literal: lit}, true
	}
}

// parseReturnStatement parses `return expr`, bare `return`, or the `>>`
// shortcut (spec.md §4.1 "Return").
func (p *Parser) parseReturnStatement(isShortcut bool) ast.Statement {
	pos := p.curToken.Pos
	if p.atStatementEnd() {
		p.consumeStatementEnd()
		return &ast.ReturnStatement{Position: pos, IsShortcut: isShortcut}
	}
	p.nextToken()
	arg := p.parseExpression()
	if arg == nil {
		p.pushContext("return statement")
		return nil
	}
	if !p.atStatementEnd() {
		p.failUnexpected("end of statement", describeToken(p.peekToken))
		p.pushContext("return statement")
		return nil
	}
	p.consumeStatementEnd()
	return &ast.ReturnStatement{Position: pos, Argument: arg, IsShortcut: isShortcut}
}

// parseImportDeclaration parses `import spec[, spec…] from "source"` or
// `import * [as local] from "source"` (spec.md §4.1 "Import").
func (p *Parser) parseImportDeclaration() ast.Statement {
	pos := p.curToken.Pos

	decl := &ast.ImportDeclaration{Position: pos}

	if p.peekTokenIs(token.STAR) || p.peekTokenIs(token.STAR_IMPORT) {
		p.nextToken()
		decl.IsStarImport = true
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				p.pushContext("import declaration")
				return nil
			}
			decl.StarLocal = p.curToken.Literal
		}
	} else {
		for {
			if !p.expectPeek(token.IDENT) {
				p.pushContext("import declaration")
				return nil
			}
			spec := ast.ImportSpecifier{Name: p.curToken.Literal, Local: p.curToken.Literal}
			if p.peekTokenIs(token.AS) {
				p.nextToken()
				if !p.expectPeek(token.IDENT) {
					p.pushContext("import declaration")
					return nil
				}
				spec.Local = p.curToken.Literal
			}
			decl.Specifiers = append(decl.Specifiers, spec)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}

	if !p.expectPeek(token.FROM) {
		p.pushContext("import declaration")
		return nil
	}
	if !p.expectPeek(token.STRING) {
		p.pushContext("import declaration")
		return nil
	}
	src, errMsg := parseStringFragments(p.curToken.Literal, p.curToken.Pos)
	if errMsg != "" {
		p.failInvalid("invalid-string", errMsg)
		p.pushContext("import declaration")
		return nil
	}
	decl.Source = rawFragmentText(src)

	if !p.atStatementEnd() {
		p.failUnexpected("end of statement", describeToken(p.peekToken))
		p.pushContext("import declaration")
		return nil
	}
	p.consumeStatementEnd()
	return decl
}

// rawFragmentText concatenates fragments assuming no interpolation — import
// sources are plain strings, never templates.
func rawFragmentText(frags []ast.Fragment) string {
	var out string
	for _, f := range frags {
		out += f.Text
	}
	return out
}

// parseExpressionStatement parses reassignment, bare calls, or any other
// expression used as a statement.
func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.curToken.Pos
	expr := p.parseExpression()
	if expr == nil {
		p.pushContext("expression statement")
		return nil
	}
	if !p.atStatementEnd() {
		p.failUnexpected("end of statement", describeToken(p.peekToken))
		p.pushContext("expression statement")
		return nil
	}
	p.consumeStatementEnd()
	return &ast.ExpressionStatement{Position: pos, Expression: expr}
}
