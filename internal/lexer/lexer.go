package lexer

import (
	"github.com/dlclark/regexp2"

	"github.com/lhaig/minilang/internal/diagnostic"
)

// numberPattern accepts an int or float literal only when it is not followed
// by more identifier characters, digits, or a dot. "12abc" and "1.5.3" fail
// to match as a whole and are reported as malformed.
var numberPattern = regexp2.MustCompile(`^[0-9]+(?:\.[0-9]+)?(?![A-Za-z_0-9.])`, regexp2.None)

// Lexer scans MiniLang source code and produces tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
	diags        *diagnostic.Diagnostics
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
		diags:  diagnostic.New(),
	}
	l.readChar()
	return l
}

// Diagnostics returns the lexical errors found so far
func (l *Lexer) Diagnostics() *diagnostic.Diagnostics {
	return l.diags
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

// skipSingleLineComment skips a single-line comment (//)
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

// skipMultiLineComment skips a multi-line comment (/* */)
func (l *Lexer) skipMultiLineComment(line, col int) {
	// Already read '/*', now skip until '*/'
	for {
		if l.atEOF() {
			l.diags.Errorf(diagnostic.Lexical, line, col, diagnostic.MsgUnterminatedComment)
			return
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume '*'
			l.readChar() // consume '/'
			return
		}
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a numeric literal (integer or float). ok is false when
// the literal runs into characters that cannot follow a number.
func (l *Lexer) readNumber() (string, TokenType, bool) {
	position := l.position

	m, err := numberPattern.FindStringMatch(l.input[position:])
	if err != nil || m == nil {
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' {
			l.readChar()
		}
		return l.input[position:l.position], ILLEGAL, false
	}

	literal := m.String()
	for i := 0; i < len(literal); i++ {
		l.readChar()
	}

	tokenType := INT_LIT
	for i := 0; i < len(literal); i++ {
		if literal[i] == '.' {
			tokenType = FLOAT_LIT
			break
		}
	}
	return literal, tokenType, true
}

// readString reads a string literal, returning it with its quotes
func (l *Lexer) readString() (string, bool) {
	// Already at opening quote
	position := l.position

	for {
		l.readChar()
		if l.atEOF() || l.ch == '\n' {
			return "", false
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' && (l.peekChar() == '"' || l.peekChar() == '\\') {
			l.readChar()
		}
	}

	literal := l.input[position : l.position+1]
	return literal, true
}

// NextToken returns the next token from the input. Characters that cannot
// start a token are reported as lexical errors and skipped.
func (l *Lexer) NextToken() Token {
	for {
		tok, ok := l.scan()
		if ok {
			return tok
		}
	}
}

func (l *Lexer) scan() (Token, bool) {
	var tok Token

	l.skipWhitespace()

	// Save position before processing token
	line, col := l.line, l.column

	single := func(tt TokenType) Token {
		return Token{Type: tt, Literal: string(l.ch), Line: line, Column: col}
	}
	double := func(tt TokenType) Token {
		ch := l.ch
		l.readChar()
		return Token{Type: tt, Literal: string(ch) + string(l.ch), Line: line, Column: col}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = double(EQ)
		} else {
			tok = single(ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = double(NEQ)
		} else {
			tok = single(NOT)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = double(LEQ)
		} else {
			tok = single(LT)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = double(GEQ)
		} else {
			tok = single(GT)
		}
	case '&':
		if l.peekChar() != '&' {
			return l.illegal(line, col)
		}
		tok = double(AND)
	case '|':
		if l.peekChar() != '|' {
			return l.illegal(line, col)
		}
		tok = double(OR)
	case '+':
		tok = single(PLUS)
	case '-':
		tok = single(MINUS)
	case '*':
		tok = single(STAR)
	case '/':
		if l.peekChar() == '/' {
			l.skipSingleLineComment()
			return tok, false
		} else if l.peekChar() == '*' {
			l.readChar() // consume '/'
			l.readChar() // consume '*'
			l.skipMultiLineComment(line, col)
			return tok, false
		}
		tok = single(SLASH)
	case '%':
		tok = single(PERCENT)
	case '(':
		tok = single(LPAREN)
	case ')':
		tok = single(RPAREN)
	case '{':
		tok = single(LBRACE)
	case '}':
		tok = single(RBRACE)
	case ',':
		tok = single(COMMA)
	case ';':
		tok = single(SEMICOLON)
	case '"':
		str, ok := l.readString()
		if !ok {
			l.diags.Errorf(diagnostic.Lexical, line, col, diagnostic.MsgUnterminatedString)
			return tok, false
		}
		tok = Token{Type: STRING_LIT, Literal: str, Line: line, Column: col}
	default:
		if l.atEOF() {
			return Token{Type: EOF, Literal: "", Line: line, Column: col}, true
		}
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return Token{Type: LookupIdent(ident), Literal: ident, Line: line, Column: col}, true
		}
		if isDigit(l.ch) {
			literal, tokenType, ok := l.readNumber()
			if !ok {
				l.diags.Errorf(diagnostic.Lexical, line, col, diagnostic.MsgMalformedNumber, literal)
				return tok, false
			}
			return Token{Type: tokenType, Literal: literal, Line: line, Column: col}, true
		}
		return l.illegal(line, col)
	}

	l.readChar()
	return tok, true
}

func (l *Lexer) illegal(line, col int) (Token, bool) {
	l.diags.Errorf(diagnostic.Lexical, line, col, diagnostic.MsgIllegalChar, string(l.ch))
	l.readChar()
	return Token{Type: ILLEGAL, Line: line, Column: col}, false
}

// Tokenize returns all tokens from the input, ending with EOF
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
