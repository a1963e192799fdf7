package lexer

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT      // x, y, myVariable
	INT_LIT    // 123
	FLOAT_LIT  // 123.45
	STRING_LIT // "hello"

	// Keywords
	CONST
	IF
	ELSE
	WHILE
	FOR
	RETURN

	// Type keywords
	INT_TYPE
	FLOAT_TYPE
	DOUBLE_TYPE
	STRING_TYPE
	VOID_TYPE

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	EQ      // ==
	NEQ     // !=
	LT      // <
	GT      // >
	LEQ     // <=
	GEQ     // >=
	AND     // &&
	OR      // ||
	NOT     // !
	ASSIGN  // =

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String renders the token as <TYPE, text, line>
func (t Token) String() string {
	text := strings.ReplaceAll(t.Literal, "\n", "\\n")
	return fmt.Sprintf("<%s, %s, %d>", t.Type, text, t.Line)
}

var tokenNames = map[TokenType]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENT:       "IDENT",
	INT_LIT:     "INT_LIT",
	FLOAT_LIT:   "FLOAT_LIT",
	STRING_LIT:  "STRING_LIT",
	CONST:       "CONST",
	IF:          "IF",
	ELSE:        "ELSE",
	WHILE:       "WHILE",
	FOR:         "FOR",
	RETURN:      "RETURN",
	INT_TYPE:    "INT_TYPE",
	FLOAT_TYPE:  "FLOAT_TYPE",
	DOUBLE_TYPE: "DOUBLE_TYPE",
	STRING_TYPE: "STRING_TYPE",
	VOID_TYPE:   "VOID_TYPE",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	SLASH:       "SLASH",
	PERCENT:     "PERCENT",
	EQ:          "EQ",
	NEQ:         "NEQ",
	LT:          "LT",
	GT:          "GT",
	LEQ:         "LEQ",
	GEQ:         "GEQ",
	AND:         "AND",
	OR:          "OR",
	NOT:         "NOT",
	ASSIGN:      "ASSIGN",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	COMMA:       "COMMA",
	SEMICOLON:   "SEMICOLON",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsType reports whether the token names a declarable type
func (t TokenType) IsType() bool {
	switch t {
	case INT_TYPE, FLOAT_TYPE, DOUBLE_TYPE, STRING_TYPE, VOID_TYPE:
		return true
	default:
		return false
	}
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"const":  CONST,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"return": RETURN,
	"int":    INT_TYPE,
	"float":  FLOAT_TYPE,
	"double": DOUBLE_TYPE,
	"string": STRING_TYPE,
	"void":   VOID_TYPE,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
