package parser

import (
	"strconv"

	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/lexer"
	"github.com/funvibe/sealcheck/internal/token"
)

// lexInline tokenizes a `${...}` interpolation body extracted from a
// template string. Lex errors are returned alongside the tokens and
// folded into the outer parser's error list by the caller.
func lexInline(src string) ([]token.Token, []*diagnostics.ParseError) {
	return lexer.New(src).Lex()
}

// parseExpression parses a full expression, including the lowest-
// precedence forms: assignment, satisfies/as-const suffixes, and
// comma sequences.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseSequence()
}

func (p *Parser) parseSequence() ast.Expression {
	first := p.parseAssignment()
	if !p.at(token.COMMA) {
		return first
	}
	exprs := []ast.Expression{first}
	for p.at(token.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseAssignment())
	}
	return &ast.SequenceExpr{Exprs: exprs}
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseSatisfies()
	if p.at(token.ASSIGN) {
		p.advance()
		value := p.parseAssignment()
		return &ast.AssignExpr{Target: left, Value: value}
	}
	return left
}

func (p *Parser) parseSatisfies() ast.Expression {
	expr := p.parseLogicalOr()
	for {
		switch {
		case p.at(token.SATISFIES):
			p.advance()
			ty := p.parseTypeExpr()
			expr = &ast.SatisfiesExpr{Value: expr, Type: ty}
		case p.at(token.AS):
			p.advance()
			tok := p.expect(token.IDENT, "as expression")
			if tok.Lexeme != "const" {
				p.errorf(tok.Span, "unsupported 'as' cast to %q; only 'as const' is supported", tok.Lexeme)
			}
			expr = &ast.AsConstExpr{Value: expr}
		default:
			return expr
		}
	}
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.at(token.OR_OR) {
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpr{Op: ast.BinOrOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for p.at(token.AND_AND) {
		p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Op: ast.BinAndAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NOT_EQ) {
		op := ast.BinEqEq
		if p.at(token.NOT_EQ) {
			op = ast.BinNotEq
		}
		p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.LT_EQ) || p.at(token.GT) || p.at(token.GT_EQ) {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.LT:
			op = ast.BinLt
		case token.LT_EQ:
			op = ast.BinLtEq
		case token.GT:
			op = ast.BinGt
		case token.GT_EQ:
			op = ast.BinGtEq
		}
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := ast.BinAdd
		if p.at(token.MINUS) {
			op = ast.BinSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := ast.BinMul
		if p.at(token.SLASH) {
			op = ast.BinDiv
		}
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur().Kind {
	case token.BANG:
		lo := p.advance().Span.Lo
		operand := p.parseUnary()
		return &ast.UnaryExpr{Base: span(lo, p.cur().Span.Lo), Op: ast.UnaryNot, Operand: operand}
	case token.MINUS:
		lo := p.advance().Span.Lo
		operand := p.parseUnary()
		return &ast.UnaryExpr{Base: span(lo, p.cur().Span.Lo), Op: ast.UnaryNeg, Operand: operand}
	case token.TYPEOF:
		lo := p.advance().Span.Lo
		operand := p.parseUnary()
		return &ast.UnaryExpr{Base: span(lo, p.cur().Span.Lo), Op: ast.UnaryTypeof, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(token.DOT):
			p.advance()
			nameTok := p.expect(token.IDENT, "member access")
			expr = &ast.MemberExpr{Base: span(expr.Span().Lo, nameTok.Span.Hi), Object: expr, Name: nameTok.Lexeme}
		case p.at(token.LBRACKET):
			p.advance()
			key := p.parseExpression()
			hi := p.expect(token.RBRACKET, "indexed access").Span.Hi
			expr = &ast.MemberExpr{Base: span(expr.Span().Lo, hi), Object: expr, Key: key, Computed: true}
		case p.at(token.LPAREN):
			args := p.parseArgs()
			expr = &ast.CallExpr{Base: span(expr.Span().Lo, p.cur().Span.Lo), Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expression {
	p.expect(token.LPAREN, "argument list")
	var args []ast.Expression
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseAssignment())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "argument list")
	return args
}

// isArrowAhead reports whether the token stream starting at the
// current LPAREN is a parenthesized parameter list followed by `=>`,
// distinguishing an arrow function from a plain parenthesized
// expression without committing to either parse.
func (p *Parser) isArrowAhead() bool {
	depth := 0
	i := p.pos
	for i < len(p.toks) {
		switch p.toks[i].Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].Kind == token.ARROW
			}
		case token.EOF:
			return false
		}
		i++
	}
	return false
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorf(tok.Span, "%q is not a valid number literal", tok.Lexeme)
		}
		return &ast.NumberLiteral{Base: span(tok.Span.Lo, tok.Span.Hi), Value: f, Raw: tok.Lexeme}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Base: span(tok.Span.Lo, tok.Span.Hi), Value: tok.Lexeme}
	case token.TEMPLATE_STRING:
		p.advance()
		return p.parseTemplateLiteral(tok)
	case token.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Base: span(tok.Span.Lo, tok.Span.Hi), Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Base: span(tok.Span.Lo, tok.Span.Hi), Value: false}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Base: span(tok.Span.Lo, tok.Span.Hi)}
	case token.UNDEFINED:
		p.advance()
		return &ast.UndefinedLiteral{Base: span(tok.Span.Lo, tok.Span.Hi)}
	case token.NEW:
		return p.parseNewExpr()
	case token.IDENT:
		return p.parseIdentifier("expression")
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.LPAREN:
		if p.isArrowAhead() {
			return p.parseArrowFunction()
		}
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN, "parenthesized expression")
		return expr
	default:
		p.errorf(tok.Span, "unexpected token %q; expected an expression", tok.Lexeme)
		p.advance()
		return &ast.NullLiteral{Base: span(tok.Span.Lo, tok.Span.Hi)}
	}
}

func (p *Parser) parseNewExpr() ast.Expression {
	lo := p.expect(token.NEW, "new expression").Span.Lo
	callee := p.parseIdentifier("new expression")
	var args []ast.Expression
	if p.at(token.LPAREN) {
		args = p.parseArgs()
	}
	return &ast.NewExpr{Base: span(lo, p.cur().Span.Lo), Callee: callee, Args: args}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lo := p.expect(token.LBRACKET, "array literal").Span.Lo
	var elems []ast.Expression
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseAssignment())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	hi := p.expect(token.RBRACKET, "array literal").Span.Hi
	return &ast.ArrayLiteral{Base: span(lo, hi), Elements: elems}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	lo := p.expect(token.LBRACE, "object literal").Span.Lo
	var props []ast.ObjectProperty
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		propLo := p.cur().Span.Lo
		nameTok := p.expect(token.IDENT, "object literal property")
		p.expect(token.COLON, "object literal property")
		value := p.parseAssignment()
		props = append(props, ast.ObjectProperty{Name: nameTok.Lexeme, Value: value, Span: token.Span{Lo: propLo, Hi: p.cur().Span.Lo}})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	hi := p.expect(token.RBRACE, "object literal").Span.Hi
	return &ast.ObjectLiteral{Base: span(lo, hi), Properties: props}
}

func (p *Parser) parseArrowFunction() ast.Expression {
	lo := p.cur().Span.Lo
	scope := p.pushScope()
	defer p.popScope()
	params := p.parseParamList()
	var ret ast.TypeExpr
	if p.at(token.COLON) {
		p.advance()
		ret = p.parseTypeExpr()
	}
	p.expect(token.ARROW, "arrow function")
	if p.at(token.LBRACE) {
		body := p.parseBlock()
		return &ast.ArrowFunction{Base: span(lo, p.cur().Span.Lo), Params: params, ReturnType: ret, BodyBlock: body, Scope: scope}
	}
	expr := p.parseAssignment()
	return &ast.ArrowFunction{Base: span(lo, p.cur().Span.Lo), Params: params, ReturnType: ret, BodyExpr: expr, Scope: scope}
}

// parseTemplateLiteral re-lexes the raw backtick-delimited lexeme the
// Lexer captured whole, splitting literal chunks from `${expr}`
// interpolations, mirroring how the teacher's own parser (rather than
// its lexer) handles string interpolation.
func (p *Parser) parseTemplateLiteral(tok token.Token) ast.Expression {
	raw := tok.Lexeme
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	var parts []ast.Expression
	i := 0
	lit := ""
	for i < len(inner) {
		if inner[i] == '$' && i+1 < len(inner) && inner[i+1] == '{' {
			if lit != "" {
				parts = append(parts, &ast.StringLiteral{Base: span(tok.Span.Lo, tok.Span.Hi), Value: lit})
				lit = ""
			}
			depth := 1
			j := i + 2
			for j < len(inner) && depth > 0 {
				if inner[j] == '{' {
					depth++
				} else if inner[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			exprSrc := inner[i+2 : j]
			toks, lexErrs := lexInline(exprSrc)
			p.errs = append(p.errs, lexErrs...)
			sub := New(toks)
			sub.scope = p.scope
			parts = append(parts, sub.parseExpression())
			p.errs = append(p.errs, sub.errs...)
			i = j + 1
			continue
		}
		lit += string(inner[i])
		i++
	}
	if lit != "" {
		parts = append(parts, &ast.StringLiteral{Base: span(tok.Span.Lo, tok.Span.Hi), Value: lit})
	}
	return &ast.TemplateLiteral{Base: span(tok.Span.Lo, tok.Span.Hi), Parts: parts}
}
