package parser

import (
	"strconv"

	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/token"
)

// parseTypeExpr parses a full type annotation, including union arms.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	first := p.parsePrimaryType()
	if !p.at(token.PIPE) {
		return first
	}
	members := []ast.TypeExpr{first}
	for p.at(token.PIPE) {
		p.advance()
		members = append(members, p.parsePrimaryType())
	}
	return &ast.UnionType{Members: members}
}

// parsePrimaryType parses one type expression together with any
// trailing `[]` array suffixes, which bind tighter than `|`.
func (p *Parser) parsePrimaryType() ast.TypeExpr {
	t := p.parseAtomType()
	for p.at(token.LBRACKET) && p.peekAt(1).Kind == token.RBRACKET {
		p.advance()
		p.advance()
		t = &ast.ArrayType{Element: t}
	}
	return t
}

func (p *Parser) parseAtomType() ast.TypeExpr {
	tok := p.cur()
	switch tok.Kind {
	case token.STRING:
		p.advance()
		return &ast.LiteralType{Base: span(tok.Span.Lo, tok.Span.Hi), Kind: ast.LiteralTypeString, StringValue: tok.Lexeme}
	case token.NUMBER:
		p.advance()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorf(tok.Span, "%q is not a valid number literal", tok.Lexeme)
		}
		return &ast.LiteralType{Base: span(tok.Span.Lo, tok.Span.Hi), Kind: ast.LiteralTypeNumber, NumberValue: f}
	case token.TRUE:
		p.advance()
		return &ast.LiteralType{Base: span(tok.Span.Lo, tok.Span.Hi), Kind: ast.LiteralTypeBoolean, BooleanValue: true}
	case token.FALSE:
		p.advance()
		return &ast.LiteralType{Base: span(tok.Span.Lo, tok.Span.Hi), Kind: ast.LiteralTypeBoolean, BooleanValue: false}
	case token.LBRACKET:
		return p.parseTupleType()
	case token.LBRACE:
		return p.parseObjectType()
	case token.LPAREN:
		return p.parseFunctionType()
	case token.IDENT, token.VOID, token.UNKNOWN, token.NULL:
		p.advance()
		return &ast.TypeRef{Base: span(tok.Span.Lo, tok.Span.Hi), Name: tok.Lexeme}
	default:
		p.errorf(tok.Span, "unexpected token %q; expected a type", tok.Lexeme)
		p.advance()
		return &ast.TypeRef{Base: span(tok.Span.Lo, tok.Span.Hi), Name: "unknown"}
	}
}

func (p *Parser) parseTupleType() ast.TypeExpr {
	lo := p.expect(token.LBRACKET, "tuple type").Span.Lo
	var elems []ast.TypeExpr
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseTypeExpr())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	hi := p.expect(token.RBRACKET, "tuple type").Span.Hi
	return &ast.TupleType{Base: span(lo, hi), Elements: elems}
}

func (p *Parser) parseObjectType() ast.TypeExpr {
	lo := p.expect(token.LBRACE, "object type").Span.Lo
	var fields []ast.ObjectTypeField
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT, "object type field")
		p.expect(token.COLON, "object type field")
		ty := p.parseTypeExpr()
		if p.at(token.SEMI) || p.at(token.COMMA) {
			p.advance()
		}
		fields = append(fields, ast.ObjectTypeField{Name: nameTok.Lexeme, TypeAnn: ty})
	}
	hi := p.expect(token.RBRACE, "object type").Span.Hi
	return &ast.ObjectType{Base: span(lo, hi), Fields: fields}
}

func (p *Parser) parseFunctionType() ast.TypeExpr {
	lo := p.expect(token.LPAREN, "function type").Span.Lo
	var params []ast.FunctionTypeParam
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT, "function type parameter")
		p.expect(token.COLON, "function type parameter")
		ty := p.parseTypeExpr()
		params = append(params, ast.FunctionTypeParam{Name: nameTok.Lexeme, TypeAnn: ty})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "function type")
	p.expect(token.ARROW, "function type")
	ret := p.parseTypeExpr()
	hi := p.cur().Span.Lo
	return &ast.FunctionType{Base: span(lo, hi), Params: params, Ret: ret}
}
