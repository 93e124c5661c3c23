// Package lexer implements a hand-written single-pass scanner for the
// Seal surface syntax, grounded on funvibe-funxy/internal/lexer's
// table-driven keyword lookup and NextToken-loop shape.
package lexer

import (
	"strings"

	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/token"
)

// Lexer scans a single file's source into a flat token stream.
type Lexer struct {
	src    string
	pos    int
	tokens []token.Token
	errs   []*diagnostics.ParseError
}

// New returns a Lexer ready to scan src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Lex scans the entire source and returns the resulting token stream
// (always terminated by an EOF token) along with any lexical errors
// encountered. Scanning continues past an illegal character so the
// caller can see every lex error in one pass, matching the teacher's
// own recover-and-continue scanning loop.
func (l *Lexer) Lex() ([]token.Token, []*diagnostics.ParseError) {
	for {
		l.skipTrivia()
		if l.pos >= len(l.src) {
			l.emit(token.EOF, "", l.pos, l.pos)
			break
		}
		l.scanOne()
	}
	return l.tokens, l.errs
}

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peek(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peek(1) == '/') {
				l.pos++
			}
			if l.pos < len(l.src) {
				l.pos += 2
			}
		default:
			return
		}
	}
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) emit(kind token.Kind, lexeme string, lo, hi int) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: lexeme, Span: token.Span{Lo: lo, Hi: hi}})
}

func (l *Lexer) errorf(lo, hi int, format string, args ...interface{}) {
	l.errs = append(l.errs, diagnostics.NewLexError(token.Span{Lo: lo, Hi: hi}, format, args...))
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentCont(c byte) bool  { return isIdentStart(c) || isDigit(c) }

func (l *Lexer) scanOne() {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case isIdentStart(c):
		l.scanIdent(start)
		return
	case isDigit(c):
		l.scanNumber(start)
		return
	case c == '"' || c == '\'':
		l.scanString(start, c)
		return
	case c == '`':
		l.scanTemplateString(start)
		return
	}

	two := l.src[l.pos:min(l.pos+2, len(l.src))]
	switch two {
	case "==":
		if strings.HasPrefix(l.src[l.pos:], "===") {
			l.pos += 3
			l.emit(token.EQ, "===", start, l.pos)
			return
		}
	case "!=":
		if strings.HasPrefix(l.src[l.pos:], "!==") {
			l.pos += 3
			l.emit(token.NOT_EQ, "!==", start, l.pos)
			return
		}
	case "<=":
		l.pos += 2
		l.emit(token.LT_EQ, "<=", start, l.pos)
		return
	case ">=":
		l.pos += 2
		l.emit(token.GT_EQ, ">=", start, l.pos)
		return
	case "&&":
		l.pos += 2
		l.emit(token.AND_AND, "&&", start, l.pos)
		return
	case "||":
		l.pos += 2
		l.emit(token.OR_OR, "||", start, l.pos)
		return
	case "=>":
		l.pos += 2
		l.emit(token.ARROW, "=>", start, l.pos)
		return
	}

	single := map[byte]token.Kind{
		'(': token.LPAREN, ')': token.RPAREN,
		'{': token.LBRACE, '}': token.RBRACE,
		'[': token.LBRACKET, ']': token.RBRACKET,
		',': token.COMMA, ';': token.SEMI, ':': token.COLON,
		'.': token.DOT, '?': token.QUESTION,
		'=': token.ASSIGN, '<': token.LT, '>': token.GT,
		'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
		'!': token.BANG, '|': token.PIPE,
	}
	if kind, ok := single[c]; ok {
		l.pos++
		l.emit(kind, string(c), start, l.pos)
		return
	}

	l.pos++
	l.errorf(start, l.pos, "invalid character: %q", c)
	l.emit(token.ILLEGAL, string(c), start, l.pos)
}

func (l *Lexer) scanIdent(start int) {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	lit := l.src[start:l.pos]
	l.emit(token.LookupIdent(lit), lit, start, l.pos)
}

func (l *Lexer) scanNumber(start int) {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && isDigit(l.peek(1)) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	l.emit(token.NUMBER, l.src[start:l.pos], start, l.pos)
}

func (l *Lexer) scanString(start int, quote byte) {
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) && l.src[l.pos] != quote {
		if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			b.WriteByte(unescape(l.src[l.pos+1]))
			l.pos += 2
			continue
		}
		b.WriteByte(l.src[l.pos])
		l.pos++
	}
	if l.pos >= len(l.src) {
		l.errorf(start, l.pos, "unterminated string literal")
	} else {
		l.pos++ // closing quote
	}
	l.emit(token.STRING, b.String(), start, l.pos)
}

// scanTemplateString scans the whole `...` literal as one raw token;
// the parser re-lexes its contents to split literal chunks from
// `${expr}` interpolations, mirroring how the teacher's own parser
// handles string interpolation rather than doing it in the lexer.
func (l *Lexer) scanTemplateString(start int) {
	l.pos++ // opening backtick
	depth := 0
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == '`' && depth == 0 {
			l.pos++
			break
		}
		if c == '$' && l.peek(1) == '{' {
			depth++
			l.pos += 2
			continue
		}
		if c == '}' && depth > 0 {
			depth--
		}
		l.pos++
	}
	l.emit(token.TEMPLATE_STRING, l.src[start:l.pos], start, l.pos)
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '\\':
		return '\\'
	default:
		return c
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
