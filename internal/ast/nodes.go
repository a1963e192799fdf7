package ast

import "github.com/lhaig/minilang/internal/lexer"

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
}

// Decl is a top-level declaration: *FuncDecl or *VarDecl
type Decl interface {
	Node
	declNode()
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// Program represents an entire MiniLang source file
type Program struct {
	Decls   []Decl
	EndLine int // line of the EOF token
}

func (p *Program) Pos() (int, int) { return 1, 1 }

// Functions returns the function declarations in source order
func (p *Program) Functions() []*FuncDecl {
	var fns []*FuncDecl
	for _, d := range p.Decls {
		if fn, ok := d.(*FuncDecl); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Globals returns the top-level variable declarations in source order
func (p *Program) Globals() []*VarDecl {
	var vars []*VarDecl
	for _, d := range p.Decls {
		if v, ok := d.(*VarDecl); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// TypeRef represents a type keyword: int, float, double, string or void
type TypeRef struct {
	Name   string
	Line   int
	Column int
}

func (t *TypeRef) Pos() (int, int) { return t.Line, t.Column }

// FuncDecl represents a function declaration. ReturnType is nil when the
// return type was omitted, which means void.
type FuncDecl struct {
	ReturnType *TypeRef
	Name       string
	Params     []*Param
	Body       *Block
	Line       int
	Column     int
}

func (f *FuncDecl) Pos() (int, int) { return f.Line, f.Column }
func (f *FuncDecl) declNode()       {}

// Param represents a function parameter
type Param struct {
	Type   *TypeRef
	Name   string
	Line   int
	Column int
}

func (p *Param) Pos() (int, int) { return p.Line, p.Column }

// VarDecl represents a variable declaration, global or local.
// Value is nil when there is no initializer.
type VarDecl struct {
	Const  bool
	Type   *TypeRef
	Name   string
	Value  Expression
	Line   int
	Column int
}

func (v *VarDecl) Pos() (int, int) { return v.Line, v.Column }
func (v *VarDecl) declNode()       {}
func (v *VarDecl) stmtNode()       {}

// Block represents a braced statement list
type Block struct {
	Statements []Statement
	Line       int
	Column     int
	EndLine    int // line of the closing brace
}

func (b *Block) Pos() (int, int) { return b.Line, b.Column }
func (b *Block) stmtNode()       {}

// ExprStmt represents an expression used as a statement (calls, assignments)
type ExprStmt struct {
	Expr   Expression
	Line   int
	Column int
}

func (e *ExprStmt) Pos() (int, int) { return e.Line, e.Column }
func (e *ExprStmt) stmtNode()       {}

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Value  Expression // nil for a bare return
	Line   int
	Column int
}

func (r *ReturnStmt) Pos() (int, int) { return r.Line, r.Column }
func (r *ReturnStmt) stmtNode()       {}

// IfStmt represents if/else. An else-if chain is an Else block holding a
// single nested IfStmt.
type IfStmt struct {
	Condition Expression
	Then      *Block
	Else      *Block
	Line      int
	Column    int
	EndLine   int
}

func (i *IfStmt) Pos() (int, int) { return i.Line, i.Column }
func (i *IfStmt) stmtNode()       {}

// WhileStmt represents a while loop
type WhileStmt struct {
	Condition Expression
	Body      *Block
	Line      int
	Column    int
	EndLine   int
}

func (w *WhileStmt) Pos() (int, int) { return w.Line, w.Column }
func (w *WhileStmt) stmtNode()       {}

// ForStmt represents for (init; cond; post) body. Any of the three header
// parts may be nil.
type ForStmt struct {
	Init      Statement // *VarDecl or *ExprStmt
	Condition Expression
	Post      Expression
	Body      *Block
	Line      int
	Column    int
	EndLine   int
}

func (f *ForStmt) Pos() (int, int) { return f.Line, f.Column }
func (f *ForStmt) stmtNode()       {}

// Expressions

// BinaryExpr represents a binary operation
type BinaryExpr struct {
	Left   Expression
	Op     lexer.TokenType
	Right  Expression
	Line   int
	Column int
}

func (b *BinaryExpr) Pos() (int, int) { return b.Line, b.Column }
func (b *BinaryExpr) exprNode()       {}

// UnaryExpr represents logical negation
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expression
	Line    int
	Column  int
}

func (u *UnaryExpr) Pos() (int, int) { return u.Line, u.Column }
func (u *UnaryExpr) exprNode()       {}

// ParenExpr represents a parenthesized expression
type ParenExpr struct {
	Expr   Expression
	Line   int
	Column int
}

func (p *ParenExpr) Pos() (int, int) { return p.Line, p.Column }
func (p *ParenExpr) exprNode()       {}

// AssignExpr represents name = value. Assignments are expressions and may nest.
type AssignExpr struct {
	Name   string
	Value  Expression
	Line   int
	Column int
}

func (a *AssignExpr) Pos() (int, int) { return a.Line, a.Column }
func (a *AssignExpr) exprNode()       {}

// CallExpr represents a function call
type CallExpr struct {
	Function string
	Args     []Expression
	Line     int
	Column   int
}

func (c *CallExpr) Pos() (int, int) { return c.Line, c.Column }
func (c *CallExpr) exprNode()       {}

// Identifier represents a variable reference
type Identifier struct {
	Name   string
	Line   int
	Column int
}

func (i *Identifier) Pos() (int, int) { return i.Line, i.Column }
func (i *Identifier) exprNode()       {}

// IntLit represents an integer literal
type IntLit struct {
	Value  string
	Line   int
	Column int
}

func (i *IntLit) Pos() (int, int) { return i.Line, i.Column }
func (i *IntLit) exprNode()       {}

// FloatLit represents a floating-point literal
type FloatLit struct {
	Value  string
	Line   int
	Column int
}

func (f *FloatLit) Pos() (int, int) { return f.Line, f.Column }
func (f *FloatLit) exprNode()       {}

// StringLit represents a string literal, quotes included
type StringLit struct {
	Value  string
	Line   int
	Column int
}

func (s *StringLit) Pos() (int, int) { return s.Line, s.Column }
func (s *StringLit) exprNode()       {}

// BadExpr stands in for an expression the parser could not read
type BadExpr struct {
	Line   int
	Column int
}

func (b *BadExpr) Pos() (int, int) { return b.Line, b.Column }
func (b *BadExpr) exprNode()       {}
