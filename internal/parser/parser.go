// Package parser implements a hand-written recursive-descent, Pratt-
// style parser for the Seal surface syntax, producing an internal/ast
// tree from an internal/lexer token stream. Grounded on the
// precedence-climbing shape used throughout funvibe-funxy's own
// internal/parser/expressions_*.go files.
package parser

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/token"
)

// Parser consumes a flat token stream and produces an *ast.Program.
type Parser struct {
	toks  []token.Token
	pos   int
	errs  []*diagnostics.ParseError
	scope []symbols.Scope
}

// New returns a Parser over toks (as produced by internal/lexer).
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks, scope: []symbols.Scope{symbols.NewScope()}}
}

func span(lo, hi int) ast.Base {
	return ast.Base{Sp: token.Span{Lo: lo, Hi: hi}}
}

// Parse runs the parser to completion and returns the resulting
// program along with any parse errors. A parse error is recorded and
// parsing carries on from the token where it was found, so a single
// file can report more than one error in one pass.
func (p *Parser) Parse() (*ast.Program, []*diagnostics.ParseError) {
	lo := p.cur().Span.Lo
	var stmts []ast.Statement
	for !p.at(token.EOF) {
		stmt := p.parseStatementRecovering()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	hi := p.cur().Span.Hi
	prog := &ast.Program{Base: span(lo, hi), Statements: stmts}
	return prog, p.errs
}

func (p *Parser) curScope() symbols.Scope {
	return p.scope[len(p.scope)-1]
}

func (p *Parser) pushScope() symbols.Scope {
	s := symbols.NewScope()
	p.scope = append(p.scope, s)
	return s
}

func (p *Parser) popScope() {
	p.scope = p.scope[:len(p.scope)-1]
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(kind token.Kind, context string) token.Token {
	if !p.at(kind) {
		p.errorf(p.cur().Span, "unexpected token %q in %s", p.cur().Lexeme, context)
		return p.cur()
	}
	return p.advance()
}

func (p *Parser) errorf(sp token.Span, format string, args ...interface{}) {
	p.errs = append(p.errs, diagnostics.NewParseError(sp, format, args...))
}

// synchronize skips tokens until the next statement boundary (a `;` or
// the start of a recognizable statement keyword), so one malformed
// statement doesn't prevent reporting errors in the rest of the file.
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.at(token.SEMI) {
			p.advance()
			return
		}
		switch p.cur().Kind {
		case token.VAR, token.LET, token.CONST, token.FUNCTION, token.CLASS,
			token.IF, token.WHILE, token.FOR, token.RETURN, token.RBRACE:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStatementRecovering() (stmt ast.Statement) {
	startPos := p.pos
	defer func() {
		if r := recover(); r != nil {
			if p.pos == startPos {
				p.advance()
			}
			p.synchronize()
			stmt = nil
		}
	}()
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDeclStatement()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.INTERFACE:
		return p.parseInterfaceDecl()
	case token.TYPE:
		return p.parseTypeAliasDecl()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.BREAK:
		lo := p.advance().Span.Lo
		hi := p.cur().Span.Hi
		p.consumeSemi()
		return &ast.BreakStmt{Base: span(lo, hi)}
	case token.CONTINUE:
		lo := p.advance().Span.Lo
		hi := p.cur().Span.Hi
		p.consumeSemi()
		return &ast.ContinueStmt{Base: span(lo, hi)}
	case token.SWITCH:
		return p.parseSwitch()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.RETURN:
		return p.parseReturn()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) consumeSemi() {
	if p.at(token.SEMI) {
		p.advance()
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	lo := p.expect(token.LBRACE, "block").Span.Lo
	p.pushScope()
	defer p.popScope()
	var stmts []ast.Statement
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		s := p.parseStatementRecovering()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	hi := p.expect(token.RBRACE, "block").Span.Hi
	return &ast.BlockStmt{Base: span(lo, hi), Statements: stmts}
}

func (p *Parser) parseIdentifier(context string) *ast.Identifier {
	tok := p.expect(token.IDENT, context)
	return &ast.Identifier{Base: span(tok.Span.Lo, tok.Span.Hi), Name: tok.Lexeme, Scope: p.curScope()}
}

func (p *Parser) parseVarDeclStatement() ast.Statement {
	d := p.parseVarDecl()
	p.consumeSemi()
	return d
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	kindTok := p.advance()
	var kind ast.DeclKind
	switch kindTok.Kind {
	case token.VAR:
		kind = ast.DeclVar
	case token.LET:
		kind = ast.DeclLet
	case token.CONST:
		kind = ast.DeclConst
	}
	name := p.parseIdentifier("variable declaration")
	var typeAnn ast.TypeExpr
	if p.at(token.COLON) {
		p.advance()
		typeAnn = p.parseTypeExpr()
	}
	var init ast.Expression
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}
	hi := p.cur().Span.Lo
	return &ast.VarDecl{Base: span(kindTok.Span.Lo, hi), Kind: kind, Name: name, TypeAnn: typeAnn, Init: init}
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN, "parameter list")
	var params []ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT, "parameter")
		name := &ast.Identifier{Base: span(nameTok.Span.Lo, nameTok.Span.Hi), Name: nameTok.Lexeme, Scope: p.curScope()}
		var typeAnn ast.TypeExpr
		if p.at(token.COLON) {
			p.advance()
			typeAnn = p.parseTypeExpr()
		}
		params = append(params, ast.Param{Name: name, TypeAnn: typeAnn, Span: token.Span{Lo: nameTok.Span.Lo, Hi: p.cur().Span.Lo}})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "parameter list")
	return params
}

func (p *Parser) parseFunctionDecl() ast.Statement {
	lo := p.expect(token.FUNCTION, "function declaration").Span.Lo
	name := p.parseIdentifier("function declaration")
	p.pushScope()
	defer p.popScope()
	params := p.parseParamList()
	var ret ast.TypeExpr
	if p.at(token.COLON) {
		p.advance()
		ret = p.parseTypeExpr()
	}
	var body *ast.BlockStmt
	if p.at(token.LBRACE) {
		body = p.parseBlock()
	} else {
		p.errorf(p.cur().Span, "function %q is missing a body", name.Name)
	}
	hi := p.cur().Span.Lo
	return &ast.FunctionDecl{Base: span(lo, hi), Name: name, Params: params, ReturnType: ret, Body: body}
}

func (p *Parser) parseClassDecl() ast.Statement {
	lo := p.expect(token.CLASS, "class declaration").Span.Lo
	name := p.parseIdentifier("class declaration")
	var extends *ast.Identifier
	if p.at(token.EXTENDS) {
		p.advance()
		extends = p.parseIdentifier("extends clause")
	}
	p.pushScope()
	defer p.popScope()
	p.expect(token.LBRACE, "class body")
	var members []ast.ClassMember
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		members = append(members, p.parseClassMember())
	}
	hi := p.expect(token.RBRACE, "class body").Span.Hi
	return &ast.ClassDecl{Base: span(lo, hi), Name: name, Extends: extends, Members: members}
}

func (p *Parser) parseClassMember() ast.ClassMember {
	lo := p.cur().Span.Lo
	if p.at(token.IDENT) && p.cur().Lexeme == "constructor" {
		p.advance()
		params := p.parseParamList()
		body := p.parseBlock()
		return ast.ClassMember{Kind: ast.MemberConstructor, Params: params, Body: body, Span: token.Span{Lo: lo, Hi: p.cur().Span.Lo}}
	}
	nameTok := p.expect(token.IDENT, "class member")
	if p.at(token.LPAREN) {
		params := p.parseParamList()
		var ret ast.TypeExpr
		if p.at(token.COLON) {
			p.advance()
			ret = p.parseTypeExpr()
		}
		body := p.parseBlock()
		return ast.ClassMember{Kind: ast.MemberMethod, Name: nameTok.Lexeme, Params: params, ReturnType: ret, Body: body, Span: token.Span{Lo: lo, Hi: p.cur().Span.Lo}}
	}
	var typeAnn ast.TypeExpr
	if p.at(token.COLON) {
		p.advance()
		typeAnn = p.parseTypeExpr()
	}
	var init ast.Expression
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}
	p.consumeSemi()
	return ast.ClassMember{Kind: ast.MemberProperty, Name: nameTok.Lexeme, TypeAnn: typeAnn, Init: init, Span: token.Span{Lo: lo, Hi: p.cur().Span.Lo}}
}

func (p *Parser) parseInterfaceDecl() ast.Statement {
	lo := p.expect(token.INTERFACE, "interface declaration").Span.Lo
	name := p.parseIdentifier("interface declaration")
	p.expect(token.LBRACE, "interface body")
	var fields []ast.InterfaceField
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fieldLo := p.cur().Span.Lo
		fieldName := p.expect(token.IDENT, "interface field")
		p.expect(token.COLON, "interface field")
		typeAnn := p.parseTypeExpr()
		if p.at(token.SEMI) || p.at(token.COMMA) {
			p.advance()
		}
		fields = append(fields, ast.InterfaceField{Name: fieldName.Lexeme, TypeAnn: typeAnn, Span: token.Span{Lo: fieldLo, Hi: p.cur().Span.Lo}})
	}
	hi := p.expect(token.RBRACE, "interface body").Span.Hi
	return &ast.InterfaceDecl{Base: span(lo, hi), Name: name, Fields: fields}
}

func (p *Parser) parseTypeAliasDecl() ast.Statement {
	lo := p.expect(token.TYPE, "type alias").Span.Lo
	name := p.parseIdentifier("type alias")
	p.expect(token.ASSIGN, "type alias")
	ty := p.parseTypeExpr()
	hi := p.cur().Span.Lo
	p.consumeSemi()
	return &ast.TypeAliasDecl{Base: span(lo, hi), Name: name, Type: ty}
}

func (p *Parser) parseIf() ast.Statement {
	lo := p.expect(token.IF, "if statement").Span.Lo
	p.expect(token.LPAREN, "if condition")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "if condition")
	then := p.parseStatement()
	var elseStmt ast.Statement
	if p.at(token.ELSE) {
		p.advance()
		elseStmt = p.parseStatement()
	}
	hi := p.cur().Span.Lo
	return &ast.IfStmt{Base: span(lo, hi), Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhile() ast.Statement {
	lo := p.expect(token.WHILE, "while statement").Span.Lo
	p.expect(token.LPAREN, "while condition")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "while condition")
	body := p.parseStatement()
	return &ast.WhileStmt{Base: span(lo, p.cur().Span.Lo), Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Statement {
	lo := p.expect(token.DO, "do-while statement").Span.Lo
	body := p.parseStatement()
	p.expect(token.WHILE, "do-while statement")
	p.expect(token.LPAREN, "do-while condition")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "do-while condition")
	p.consumeSemi()
	return &ast.DoWhileStmt{Base: span(lo, p.cur().Span.Lo), Body: body, Cond: cond}
}

func (p *Parser) parseFor() ast.Statement {
	lo := p.expect(token.FOR, "for statement").Span.Lo
	p.pushScope()
	defer p.popScope()
	p.expect(token.LPAREN, "for statement")
	var init ast.Statement
	if !p.at(token.SEMI) {
		if p.at(token.VAR) || p.at(token.LET) || p.at(token.CONST) {
			init = p.parseVarDecl()
		} else {
			init = &ast.ExprStmt{Expr: p.parseExpression()}
		}
	}
	p.expect(token.SEMI, "for statement")
	var cond ast.Expression
	if !p.at(token.SEMI) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMI, "for statement")
	var post ast.Expression
	if !p.at(token.RPAREN) {
		post = p.parseExpression()
	}
	p.expect(token.RPAREN, "for statement")
	body := p.parseStatement()
	return &ast.ForStmt{Base: span(lo, p.cur().Span.Lo), Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseSwitch() ast.Statement {
	lo := p.expect(token.SWITCH, "switch statement").Span.Lo
	p.expect(token.LPAREN, "switch subject")
	subject := p.parseExpression()
	p.expect(token.RPAREN, "switch subject")
	p.expect(token.LBRACE, "switch body")
	p.pushScope()
	defer p.popScope()
	var cases []ast.SwitchCase
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		var test ast.Expression
		if p.at(token.CASE) {
			p.advance()
			test = p.parseExpression()
		} else {
			p.expect(token.DEFAULT, "switch case")
		}
		p.expect(token.COLON, "switch case")
		var stmts []ast.Statement
		for !p.at(token.CASE) && !p.at(token.DEFAULT) && !p.at(token.RBRACE) && !p.at(token.EOF) {
			s := p.parseStatementRecovering()
			if s != nil {
				stmts = append(stmts, s)
			}
		}
		cases = append(cases, ast.SwitchCase{Test: test, Statements: stmts})
	}
	hi := p.expect(token.RBRACE, "switch body").Span.Hi
	return &ast.SwitchStmt{Base: span(lo, hi), Subject: subject, Cases: cases}
}

func (p *Parser) parseThrow() ast.Statement {
	lo := p.expect(token.THROW, "throw statement").Span.Lo
	val := p.parseExpression()
	hi := p.cur().Span.Lo
	p.consumeSemi()
	return &ast.ThrowStmt{Base: span(lo, hi), Value: val}
}

func (p *Parser) parseTry() ast.Statement {
	lo := p.expect(token.TRY, "try statement").Span.Lo
	block := p.parseBlock()
	var catch *ast.CatchClause
	if p.at(token.CATCH) {
		p.advance()
		p.pushScope()
		var param *ast.Identifier
		if p.at(token.LPAREN) {
			p.advance()
			param = p.parseIdentifier("catch parameter")
			if p.at(token.COLON) {
				p.errorf(p.cur().Span, "catch clause variable %q cannot have a type annotation", param.Name)
				p.advance()
				p.parseTypeExpr()
			}
			p.expect(token.RPAREN, "catch clause")
		}
		catchBody := p.parseBlock()
		p.popScope()
		catch = &ast.CatchClause{Param: param, Body: catchBody}
	}
	var finally *ast.BlockStmt
	if p.at(token.FINALLY) {
		p.advance()
		finally = p.parseBlock()
	}
	if catch == nil && finally == nil {
		p.errorf(token.Span{Lo: lo, Hi: lo}, "try statement must have a catch or finally clause")
	}
	return &ast.TryStmt{Base: span(lo, p.cur().Span.Lo), Block: block, Catch: catch, Finally: finally}
}

func (p *Parser) parseReturn() ast.Statement {
	lo := p.expect(token.RETURN, "return statement").Span.Lo
	var val ast.Expression
	if !p.at(token.SEMI) && !p.at(token.RBRACE) && !p.at(token.EOF) {
		val = p.parseExpression()
	}
	hi := p.cur().Span.Lo
	p.consumeSemi()
	return &ast.ReturnStmt{Base: span(lo, hi), Value: val}
}

func (p *Parser) parseExprStatement() ast.Statement {
	lo := p.cur().Span.Lo
	expr := p.parseExpression()
	hi := p.cur().Span.Lo
	p.consumeSemi()
	return &ast.ExprStmt{Base: span(lo, hi), Expr: expr}
}
