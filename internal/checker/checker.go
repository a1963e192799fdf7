package checker

import (
	"github.com/lhaig/minilang/internal/ast"
	"github.com/lhaig/minilang/internal/diagnostic"
)

// Checker performs semantic analysis on the AST
type Checker struct {
	prog      *ast.Program
	diag      *diagnostic.Diagnostics
	scope     *Scope
	functions map[string]*FunctionSymbol
	decls     map[*ast.FuncDecl]*FunctionSymbol

	// Context tracking
	current *FunctionSymbol

	globals []*Symbol
	reports []*FunctionReport
}

// CheckResult holds the results of semantic analysis for reporting
type CheckResult struct {
	Diagnostics *diagnostic.Diagnostics
	Globals     []*Symbol
	Functions   []*FunctionReport
}

// CheckWithResult performs semantic analysis and returns the diagnostics,
// the global variables and one report per analyzed function
func CheckWithResult(prog *ast.Program) *CheckResult {
	c := &Checker{
		prog:      prog,
		diag:      diagnostic.New(),
		scope:     NewScope(),
		functions: make(map[string]*FunctionSymbol),
		decls:     make(map[*ast.FuncDecl]*FunctionSymbol),
	}

	c.registerFunctions()
	c.checkDecls()
	c.checkMain()

	return &CheckResult{
		Diagnostics: c.diag,
		Globals:     c.globals,
		Functions:   c.reports,
	}
}

// Check performs semantic analysis on an AST program
func Check(prog *ast.Program) *diagnostic.Diagnostics {
	return CheckWithResult(prog).Diagnostics
}

// checkDecls walks the top-level declarations in source order. A global
// is visible only to declarations that follow it.
func (c *Checker) checkDecls() {
	for _, decl := range c.prog.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			c.checkVarDecl(d)
		case *ast.FuncDecl:
			c.checkFunction(d)
		}
	}
}

// checkMain requires exactly one function named main
func (c *Checker) checkMain() {
	mains := 0
	for _, fn := range c.functions {
		if fn.IsMain {
			mains++
		}
	}
	switch {
	case mains == 0:
		c.diag.Errorf(diagnostic.MissingMain, c.prog.EndLine, 1, diagnostic.MsgMissingMain)
	case mains > 1:
		c.diag.Errorf(diagnostic.DuplicateMain, c.prog.EndLine, 1, diagnostic.MsgDuplicateMain, mains)
	}
}

// checkFunction checks a single function
func (c *Checker) checkFunction(fn *ast.FuncDecl) {
	sym, registered := c.decls[fn]
	if !registered {
		// A redeclared function is still walked for nested errors, but
		// against a detached symbol that never reaches the report.
		sym = c.signature(fn, false)
	}

	c.current = sym
	c.scope.Push()

	for _, p := range sym.Params {
		if err := c.scope.Declare(p.Name, p); err != nil {
			c.diag.Errorf(diagnostic.DuplicateDeclaration, p.Line, p.Column, diagnostic.MsgParamDuplicated, p.Name)
		}
	}

	// The body shares the parameter frame, so a local cannot redeclare a
	// parameter.
	if fn.Body != nil {
		for _, stmt := range fn.Body.Statements {
			c.checkStatement(stmt)
		}
	}

	if sym.Type != Void && !sym.HasReturn {
		c.diag.Errorf(diagnostic.MissingReturn, fn.Line, fn.Column, diagnostic.MsgMissingReturn, sym.Name, sym.Type)
	}

	c.scope.Pop()
	c.current = nil

	if registered {
		c.reports = append(c.reports, sym.report())
	}
}

// checkVarDecl handles global and local declarations alike. The
// initializer is typed before the name is bound, so it cannot refer to
// the variable being declared.
func (c *Checker) checkVarDecl(v *ast.VarDecl) {
	declared := ResolveType(v.Type)
	sym := &Symbol{
		Name:     v.Name,
		Type:     declared,
		Const:    v.Const,
		InitText: "null",
		Line:     v.Line,
		Column:   v.Column,
	}

	if v.Value != nil {
		sym.InitText = ast.Text(v.Value)
		valueType := c.checkExpression(v.Value)
		if declared != Unknown && !Compatible(declared, valueType) {
			c.diag.Errorf(diagnostic.TypeMismatch, v.Line, v.Column, diagnostic.MsgDeclTypeMismatch, v.Name, declared, valueType)
		}
	}

	if err := c.scope.Declare(v.Name, sym); err != nil {
		msg := diagnostic.MsgLocalRedeclared
		if c.current == nil {
			msg = diagnostic.MsgGlobalRedeclared
		}
		c.diag.Errorf(diagnostic.DuplicateDeclaration, v.Line, v.Column, msg, v.Name)
		return
	}

	if c.current != nil {
		c.current.Locals = append(c.current.Locals, sym)
	} else {
		c.globals = append(c.globals, sym)
	}
}

// checkBlock checks a block in its own frame
func (c *Checker) checkBlock(block *ast.Block) {
	if block == nil {
		return
	}
	c.scope.Push()
	for _, stmt := range block.Statements {
		c.checkStatement(stmt)
	}
	c.scope.Pop()
}

// record appends a control structure to the current function
func (c *Checker) record(kind ControlKind, start, end int) {
	if c.current == nil {
		return
	}
	c.current.Controls = append(c.current.Controls, ControlRecord{
		Kind:      kind,
		StartLine: start,
		EndLine:   end,
	})
}

// checkStatement checks a single statement
func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s)

	case *ast.ExprStmt:
		c.checkExpression(s.Expr)

	case *ast.Block:
		c.checkBlock(s)

	case *ast.IfStmt:
		c.record(ControlIf, s.Line, s.EndLine)
		c.checkExpression(s.Condition)
		c.checkBlock(s.Then)
		if s.Else != nil {
			c.checkBlock(s.Else)
		}

	case *ast.WhileStmt:
		c.record(ControlWhile, s.Line, s.EndLine)
		c.checkExpression(s.Condition)
		c.checkBlock(s.Body)

	case *ast.ForStmt:
		c.record(ControlFor, s.Line, s.EndLine)
		c.scope.Push()
		if s.Init != nil {
			c.checkStatement(s.Init)
		}
		if s.Condition != nil {
			c.checkExpression(s.Condition)
		}
		if s.Post != nil {
			c.checkExpression(s.Post)
		}
		c.checkBlock(s.Body)
		c.scope.Pop()

	case *ast.ReturnStmt:
		c.checkReturn(s)
	}
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	if c.current == nil {
		return
	}
	c.current.HasReturn = true

	valueType := Void
	if s.Value != nil {
		valueType = c.checkExpression(s.Value)
	}
	if !Compatible(c.current.Type, valueType) {
		c.diag.Errorf(diagnostic.TypeMismatch, s.Line, s.Column, diagnostic.MsgReturnMismatch, c.current.Name, c.current.Type, valueType)
	}
}
