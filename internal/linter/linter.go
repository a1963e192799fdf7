package linter

import (
	"strings"
	"unicode"

	"github.com/lhaig/minilang/internal/ast"
	"github.com/lhaig/minilang/internal/diagnostic"
)

// Linter performs style and best-practice checks on an AST program.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	prog *ast.Program
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on the given program and returns diagnostics.
func Lint(prog *ast.Program) *diagnostic.Diagnostics {
	l := &Linter{
		prog: prog,
		diag: diagnostic.New(),
	}

	l.lintFunctions()
	l.lintGlobals()

	return l.diag
}

// lintFunctions checks all top-level functions.
func (l *Linter) lintFunctions() {
	for _, fn := range l.prog.Functions() {
		l.checkEmptyFunctionBody(fn)
		l.checkFunctionNaming(fn.Name, fn.Line, fn.Column)

		if fn.Body != nil {
			usedNames := l.collectUsedNames(fn.Body.Statements)
			assigned := l.collectAssignedNames(fn.Body.Statements)
			l.checkUnusedParams(fn, usedNames)
			l.checkLocals(fn.Name, fn.Body.Statements, usedNames, assigned)
		}
	}
}

// lintGlobals warns about constants nothing reads. Reads are collected
// from every function body and every global initializer.
func (l *Linter) lintGlobals() {
	used := make(map[string]bool)
	for _, decl := range l.prog.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			l.collectUsedNamesFromExpr(d.Value, used)
		case *ast.FuncDecl:
			if d.Body != nil {
				for _, stmt := range d.Body.Statements {
					l.collectUsedNamesFromStmt(stmt, used)
				}
			}
		}
	}

	for _, v := range l.prog.Globals() {
		if v.Const && !used[v.Name] {
			l.diag.Warningf(diagnostic.Lint, v.Line, v.Column, diagnostic.MsgUnusedConst, v.Name)
		}
	}
}

// --- Lint rules ---

// checkEmptyFunctionBody warns if a function body has no statements.
func (l *Linter) checkEmptyFunctionBody(fn *ast.FuncDecl) {
	if fn.Body == nil || len(fn.Body.Statements) == 0 {
		l.diag.Warningf(diagnostic.Lint, fn.Line, fn.Column, diagnostic.MsgEmptyBody, fn.Name)
	}
}

// checkFunctionNaming warns if a function name is not lowerCamelCase.
func (l *Linter) checkFunctionNaming(name string, line, col int) {
	if !isLowerCamelCase(name) {
		l.diag.Warningf(diagnostic.Lint, line, col, diagnostic.MsgFunctionNaming, name)
	}
}

// checkUnusedParams warns about parameters that are never read in the body.
func (l *Linter) checkUnusedParams(fn *ast.FuncDecl, usedNames map[string]bool) {
	for _, p := range fn.Params {
		if !usedNames[p.Name] {
			l.diag.Warningf(diagnostic.Lint, p.Line, p.Column, diagnostic.MsgUnusedParam, p.Name, fn.Name)
		}
	}
}

// checkLocals warns about locals that are never read, and about
// initialized locals that are never reassigned.
func (l *Linter) checkLocals(fnName string, stmts []ast.Statement, usedNames, assigned map[string]bool) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			l.checkLocal(fnName, s, usedNames, assigned)
		case *ast.Block:
			l.checkLocals(fnName, s.Statements, usedNames, assigned)
		case *ast.IfStmt:
			l.checkLocals(fnName, s.Then.Statements, usedNames, assigned)
			if s.Else != nil {
				l.checkLocals(fnName, s.Else.Statements, usedNames, assigned)
			}
		case *ast.WhileStmt:
			l.checkLocals(fnName, s.Body.Statements, usedNames, assigned)
		case *ast.ForStmt:
			if v, ok := s.Init.(*ast.VarDecl); ok {
				l.checkLocal(fnName, v, usedNames, assigned)
			}
			l.checkLocals(fnName, s.Body.Statements, usedNames, assigned)
		}
	}
}

func (l *Linter) checkLocal(fnName string, v *ast.VarDecl, usedNames, assigned map[string]bool) {
	if !usedNames[v.Name] {
		l.diag.Warningf(diagnostic.Lint, v.Line, v.Column, diagnostic.MsgUnusedLocal, v.Name, fnName)
		return
	}
	if !v.Const && v.Value != nil && !assigned[v.Name] {
		l.diag.Warningf(diagnostic.Lint, v.Line, v.Column, diagnostic.MsgCouldBeConst, v.Name)
	}
}

// --- Name collection helpers ---

// collectUsedNames walks all expressions in a slice of statements and collects
// all identifier names that are read (referenced). This is used to detect
// unused variables and parameters.
func (l *Linter) collectUsedNames(stmts []ast.Statement) map[string]bool {
	used := make(map[string]bool)
	for _, stmt := range stmts {
		l.collectUsedNamesFromStmt(stmt, used)
	}
	return used
}

func (l *Linter) collectUsedNamesFromStmt(stmt ast.Statement, used map[string]bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		// The initializer reads names, the declared name is not a read
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.ReturnStmt:
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.IfStmt:
		l.collectUsedNamesFromExpr(s.Condition, used)
		l.collectUsedNamesFromStmt(s.Then, used)
		if s.Else != nil {
			l.collectUsedNamesFromStmt(s.Else, used)
		}
	case *ast.WhileStmt:
		l.collectUsedNamesFromExpr(s.Condition, used)
		l.collectUsedNamesFromStmt(s.Body, used)
	case *ast.ForStmt:
		if s.Init != nil {
			l.collectUsedNamesFromStmt(s.Init, used)
		}
		l.collectUsedNamesFromExpr(s.Condition, used)
		l.collectUsedNamesFromExpr(s.Post, used)
		l.collectUsedNamesFromStmt(s.Body, used)
	case *ast.ExprStmt:
		l.collectUsedNamesFromExpr(s.Expr, used)
	case *ast.Block:
		if s == nil {
			return
		}
		for _, inner := range s.Statements {
			l.collectUsedNamesFromStmt(inner, used)
		}
	}
}

func (l *Linter) collectUsedNamesFromExpr(expr ast.Expression, used map[string]bool) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		used[e.Name] = true
	case *ast.BinaryExpr:
		l.collectUsedNamesFromExpr(e.Left, used)
		l.collectUsedNamesFromExpr(e.Right, used)
	case *ast.UnaryExpr:
		l.collectUsedNamesFromExpr(e.Operand, used)
	case *ast.ParenExpr:
		l.collectUsedNamesFromExpr(e.Expr, used)
	case *ast.AssignExpr:
		// The target is a write
		l.collectUsedNamesFromExpr(e.Value, used)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			l.collectUsedNamesFromExpr(arg, used)
		}
	}
}

// collectAssignedNames collects names that appear as assignment targets
// (not declaration initializers) anywhere in the statements.
func (l *Linter) collectAssignedNames(stmts []ast.Statement) map[string]bool {
	assigned := make(map[string]bool)
	for _, stmt := range stmts {
		l.collectAssignedFromStmt(stmt, assigned)
	}
	return assigned
}

func (l *Linter) collectAssignedFromStmt(stmt ast.Statement, assigned map[string]bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		l.collectAssignedFromExpr(s.Value, assigned)
	case *ast.ExprStmt:
		l.collectAssignedFromExpr(s.Expr, assigned)
	case *ast.ReturnStmt:
		l.collectAssignedFromExpr(s.Value, assigned)
	case *ast.IfStmt:
		l.collectAssignedFromExpr(s.Condition, assigned)
		l.collectAssignedFromStmt(s.Then, assigned)
		if s.Else != nil {
			l.collectAssignedFromStmt(s.Else, assigned)
		}
	case *ast.WhileStmt:
		l.collectAssignedFromExpr(s.Condition, assigned)
		l.collectAssignedFromStmt(s.Body, assigned)
	case *ast.ForStmt:
		if s.Init != nil {
			l.collectAssignedFromStmt(s.Init, assigned)
		}
		l.collectAssignedFromExpr(s.Condition, assigned)
		l.collectAssignedFromExpr(s.Post, assigned)
		l.collectAssignedFromStmt(s.Body, assigned)
	case *ast.Block:
		if s == nil {
			return
		}
		for _, inner := range s.Statements {
			l.collectAssignedFromStmt(inner, assigned)
		}
	}
}

func (l *Linter) collectAssignedFromExpr(expr ast.Expression, assigned map[string]bool) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		assigned[e.Name] = true
		l.collectAssignedFromExpr(e.Value, assigned)
	case *ast.BinaryExpr:
		l.collectAssignedFromExpr(e.Left, assigned)
		l.collectAssignedFromExpr(e.Right, assigned)
	case *ast.UnaryExpr:
		l.collectAssignedFromExpr(e.Operand, assigned)
	case *ast.ParenExpr:
		l.collectAssignedFromExpr(e.Expr, assigned)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			l.collectAssignedFromExpr(arg, assigned)
		}
	}
}

// --- Naming convention helpers ---

// isLowerCamelCase returns true if the name starts with a lowercase letter
// and contains no underscores.
func isLowerCamelCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsLower(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}
