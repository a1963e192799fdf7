package parser

import (
	"github.com/lhaig/minilang/internal/diagnostic"
	"github.com/lhaig/minilang/internal/lexer"
)

// syncTokens are tokens the parser can synchronize to after an error
var syncTokens = map[lexer.TokenType]bool{
	lexer.CONST:       true,
	lexer.INT_TYPE:    true,
	lexer.FLOAT_TYPE:  true,
	lexer.DOUBLE_TYPE: true,
	lexer.STRING_TYPE: true,
	lexer.VOID_TYPE:   true,
	lexer.IF:          true,
	lexer.WHILE:       true,
	lexer.FOR:         true,
	lexer.RETURN:      true,
	lexer.RBRACE:      true,
	lexer.SEMICOLON:   true,
	lexer.EOF:         true,
}

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.Diagnostics
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.eof()
	}
	return p.tokens[p.pos]
}

// peekAt returns the token n positions ahead without consuming
func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.eof()
	}
	return p.tokens[p.pos+n]
}

// peek returns the next token without consuming
func (p *Parser) peek() lexer.Token {
	return p.peekAt(1)
}

func (p *Parser) eof() lexer.Token {
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1]
	}
	return lexer.Token{Type: lexer.EOF, Line: 1, Column: 1}
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise reports an error
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if tok.Type != tt {
		p.errorAt(tok, diagnostic.MsgExpected, tt, tok.Type)
		return tok
	}
	return p.advance()
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...any) {
	p.diags.Errorf(diagnostic.Syntax, tok.Line, tok.Column, format, args...)
}

// synchronize skips tokens until a sync point is found, consuming a
// semicolon sync point.
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.current().Type == lexer.SEMICOLON {
			p.advance()
			return
		}
		if syncTokens[p.current().Type] {
			return
		}
		p.advance()
	}
}
