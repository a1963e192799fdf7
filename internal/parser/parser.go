package parser

import (
	"github.com/lhaig/minilang/internal/ast"
	"github.com/lhaig/minilang/internal/diagnostic"
	"github.com/lhaig/minilang/internal/lexer"
)

// New creates a new parser. Lexical errors found while tokenizing are the
// first entries of Diagnostics.
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()
	p := &Parser{
		tokens: tokens,
		pos:    0,
		diags:  diagnostic.New(),
	}
	p.diags.Append(l.Diagnostics())
	return p
}

// Diagnostics returns the lexical and syntax errors, in that order
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Tokens returns the token stream the parser consumed, EOF included
func (p *Parser) Tokens() []lexer.Token {
	return p.tokens
}

// Parse parses the token stream into a Program AST. The tree is returned
// even when errors were reported.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}

	for !p.check(lexer.EOF) {
		tok := p.current()
		switch {
		case tok.Type == lexer.CONST:
			prog.Decls = append(prog.Decls, p.parseVarDecl())
		case tok.Type.IsType() && p.peek().Type == lexer.IDENT && p.peekAt(2).Type == lexer.LPAREN:
			retType := p.parseTypeRef()
			prog.Decls = append(prog.Decls, p.parseFuncDecl(retType, tok))
		case tok.Type == lexer.IDENT && p.peek().Type == lexer.LPAREN:
			prog.Decls = append(prog.Decls, p.parseFuncDecl(nil, tok))
		case tok.Type.IsType():
			prog.Decls = append(prog.Decls, p.parseVarDecl())
		default:
			p.errorAt(tok, diagnostic.MsgUnexpectedTopLevel, tok.Type)
			startPos := p.pos
			p.synchronize()
			if p.pos == startPos {
				p.advance() // ensure forward progress to avoid infinite loop
			}
		}
	}

	prog.EndLine = p.current().Line
	return prog
}

// parseTypeRef parses one of the type keywords
func (p *Parser) parseTypeRef() *ast.TypeRef {
	tok := p.current()
	if !tok.Type.IsType() {
		p.errorAt(tok, diagnostic.MsgExpected, "type", tok.Type)
		return &ast.TypeRef{Name: "<error>", Line: tok.Line, Column: tok.Column}
	}
	p.advance()
	return &ast.TypeRef{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
}

// parseFuncDecl parses: [type] <name>(<params>) { ... }
func (p *Parser) parseFuncDecl(retType *ast.TypeRef, start lexer.Token) *ast.FuncDecl {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()

	return &ast.FuncDecl{
		ReturnType: retType,
		Name:       name.Literal,
		Params:     params,
		Body:       body,
		Line:       start.Line,
		Column:     start.Column,
	}
}

// parseParamList parses a comma-separated parameter list
func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.check(lexer.RPAREN) {
		return params
	}
	params = append(params, p.parseParam())
	for p.match(lexer.COMMA) {
		params = append(params, p.parseParam())
	}
	return params
}

// parseParam parses: <type> <name>
func (p *Parser) parseParam() *ast.Param {
	tok := p.current()
	paramType := p.parseTypeRef()
	name := p.expect(lexer.IDENT)
	if paramType.Name == "void" {
		p.errorAt(tok, diagnostic.MsgVoidNotAllowed, name.Literal)
	}
	return &ast.Param{
		Type:   paramType,
		Name:   name.Literal,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseVarDecl parses: [const] <type> <name> [= <expr>];
func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.current()
	isConst := p.match(lexer.CONST)
	varType := p.parseTypeRef()
	name := p.expect(lexer.IDENT)
	if varType.Name == "void" {
		p.errorAt(tok, diagnostic.MsgVoidNotAllowed, name.Literal)
	}

	var value ast.Expression
	if p.match(lexer.ASSIGN) {
		value = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)

	return &ast.VarDecl{
		Const:  isConst,
		Type:   varType,
		Name:   name.Literal,
		Value:  value,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseBlock parses: { <statements> }
func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	block := &ast.Block{
		Line:   tok.Line,
		Column: tok.Column,
	}
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		startPos := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	end := p.expect(lexer.RBRACE)
	block.EndLine = end.Line
	return block
}

// parseStatement parses a statement
func (p *Parser) parseStatement() ast.Statement {
	tok := p.current()
	switch {
	case tok.Type == lexer.CONST || tok.Type.IsType():
		return p.parseVarDecl()
	case tok.Type == lexer.IF:
		return p.parseIfStmt()
	case tok.Type == lexer.WHILE:
		return p.parseWhileStmt()
	case tok.Type == lexer.FOR:
		return p.parseForStmt()
	case tok.Type == lexer.RETURN:
		return p.parseReturnStmt()
	case tok.Type == lexer.LBRACE:
		return p.parseBlock()
	case tok.Type == lexer.SEMICOLON:
		p.advance()
		return nil
	default:
		return p.parseExprStmt()
	}
}

// parseExprStmt parses: <expr>;
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	tok := p.current()
	expr := p.parseExpression()
	p.expect(lexer.SEMICOLON)
	return &ast.ExprStmt{
		Expr:   expr,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseReturnStmt parses: return [expr];
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.expect(lexer.RETURN)
	var value ast.Expression
	if !p.check(lexer.SEMICOLON) {
		value = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)

	return &ast.ReturnStmt{
		Value:  value,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseIfStmt parses: if (<expr>) { ... } [else { ... } | else if ...]
func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	condition := p.parseExpression()
	p.expect(lexer.RPAREN)
	then := p.parseBlock()

	stmt := &ast.IfStmt{
		Condition: condition,
		Then:      then,
		Line:      tok.Line,
		Column:    tok.Column,
		EndLine:   then.EndLine,
	}

	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			nested := p.parseIfStmt()
			stmt.Else = &ast.Block{
				Statements: []ast.Statement{nested},
				Line:       nested.Line,
				Column:     nested.Column,
				EndLine:    nested.EndLine,
			}
		} else {
			stmt.Else = p.parseBlock()
		}
		stmt.EndLine = stmt.Else.EndLine
	}

	return stmt
}

// parseWhileStmt parses: while (<expr>) { ... }
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	condition := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()

	return &ast.WhileStmt{
		Condition: condition,
		Body:      body,
		Line:      tok.Line,
		Column:    tok.Column,
		EndLine:   body.EndLine,
	}
}

// parseForStmt parses: for ([init]; [cond]; [post]) { ... }
func (p *Parser) parseForStmt() *ast.ForStmt {
	tok := p.expect(lexer.FOR)
	p.expect(lexer.LPAREN)

	var init ast.Statement
	switch {
	case p.match(lexer.SEMICOLON):
	case p.check(lexer.CONST) || p.current().Type.IsType():
		init = p.parseVarDecl()
	default:
		init = p.parseExprStmt()
	}

	var condition ast.Expression
	if !p.check(lexer.SEMICOLON) {
		condition = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)

	var post ast.Expression
	if !p.check(lexer.RPAREN) {
		post = p.parseExpression()
	}
	p.expect(lexer.RPAREN)

	body := p.parseBlock()

	return &ast.ForStmt{
		Init:      init,
		Condition: condition,
		Post:      post,
		Body:      body,
		Line:      tok.Line,
		Column:    tok.Column,
		EndLine:   body.EndLine,
	}
}

// Expression parsing - precedence climbing

// Precedence levels (lowest to highest):
// 0. =            (right-associative, identifier target only)
// 1. ||
// 2. &&
// 3. == !=
// 4. < > <= >=
// 5. + -
// 6. * / %
// 7. unary !
// 8. call

const (
	precNone       = 0
	precOr         = 1
	precAnd        = 2
	precEquality   = 3
	precComparison = 4
	precAdditive   = 5
	precMulti      = 6
)

func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.EQ, lexer.NEQ:
		return precEquality
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return precComparison
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return precMulti
	default:
		return precNone
	}
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	if p.check(lexer.IDENT) && p.peek().Type == lexer.ASSIGN {
		name := p.advance()
		p.advance() // consume '='
		value := p.parseAssignment()
		return &ast.AssignExpr{
			Name:   name.Literal,
			Value:  value,
			Line:   name.Line,
			Column: name.Column,
		}
	}

	left := p.parsePrecedence(precOr)
	if p.check(lexer.ASSIGN) {
		tok := p.advance()
		p.errorAt(tok, diagnostic.MsgInvalidAssignTarget)
		p.parseAssignment()
	}
	return left
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		prec := tokenPrecedence(p.current().Type)
		if prec == precNone || prec < minPrec {
			break
		}

		op := p.advance()
		right := p.parsePrecedence(prec + 1)
		left = &ast.BinaryExpr{
			Left:   left,
			Op:     op.Type,
			Right:  right,
			Line:   op.Line,
			Column: op.Column,
		}
	}

	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.NOT) {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{
			Op:      op.Type,
			Operand: operand,
			Line:    op.Line,
			Column:  op.Column,
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	if ident, ok := expr.(*ast.Identifier); ok && p.check(lexer.LPAREN) {
		p.advance()
		args := p.parseArgList()
		p.expect(lexer.RPAREN)
		return &ast.CallExpr{
			Function: ident.Name,
			Args:     args,
			Line:     ident.Line,
			Column:   ident.Column,
		}
	}

	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()

	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		return &ast.IntLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.FLOAT_LIT:
		p.advance()
		return &ast.FloatLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.STRING_LIT:
		p.advance()
		return &ast.StringLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return &ast.ParenExpr{Expr: expr, Line: tok.Line, Column: tok.Column}
	default:
		p.errorAt(tok, diagnostic.MsgUnexpectedInExpr, tok.Type)
		// Leave statement terminators for the caller to consume.
		switch tok.Type {
		case lexer.SEMICOLON, lexer.RPAREN, lexer.RBRACE, lexer.EOF:
		default:
			p.advance()
		}
		return &ast.BadExpr{Line: tok.Line, Column: tok.Column}
	}
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.check(lexer.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}
