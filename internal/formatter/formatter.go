package formatter

import (
	"fmt"
	"strings"

	"github.com/lhaig/minilang/internal/ast"
)

// Format takes an AST Program and returns canonical MiniLang source code.
func Format(prog *ast.Program) string {
	f := &formatter{}
	f.formatProgram(prog)
	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

// --- helpers ---

func (f *formatter) emit(s string) {
	f.sb.WriteString(s)
}

func (f *formatter) emitf(format string, args ...any) {
	f.sb.WriteString(fmt.Sprintf(format, args...))
}

func (f *formatter) emitLine(s string) {
	if s == "" {
		f.sb.WriteString("\n")
	} else {
		f.sb.WriteString(f.indentStr())
		f.sb.WriteString(s)
		f.sb.WriteString("\n")
	}
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(fmt.Sprintf(format, args...))
	f.sb.WriteString("\n")
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

func (f *formatter) blankLine() {
	f.sb.WriteString("\n")
}

// --- program-level ---

// formatProgram keeps declarations in source order. Runs of globals stay
// together and every function is set off by a blank line.
func (f *formatter) formatProgram(prog *ast.Program) {
	for i, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			if i > 0 {
				if _, prevFunc := prog.Decls[i-1].(*ast.FuncDecl); prevFunc {
					f.blankLine()
				}
			}
			f.emitLine(varDecl(d) + ";")
		case *ast.FuncDecl:
			if i > 0 {
				f.blankLine()
			}
			f.formatFuncDecl(d)
		}
	}
}

func (f *formatter) formatFuncDecl(fn *ast.FuncDecl) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s %s", typeName(p.Type), p.Name)
	}
	f.emitLinef("%s %s(%s) {", typeName(fn.ReturnType), fn.Name, strings.Join(params, ", "))
	f.incIndent()
	f.formatBlock(fn.Body)
	f.decIndent()
	f.emitLine("}")
}

// typeName renders a type reference. An omitted return type prints as void.
func typeName(t *ast.TypeRef) string {
	if t == nil {
		return "void"
	}
	return t.Name
}

func varDecl(v *ast.VarDecl) string {
	var sb strings.Builder
	if v.Const {
		sb.WriteString("const ")
	}
	sb.WriteString(typeName(v.Type))
	sb.WriteString(" ")
	sb.WriteString(v.Name)
	if v.Value != nil {
		sb.WriteString(" = ")
		sb.WriteString(ast.Text(v.Value))
	}
	return sb.String()
}

// --- statements ---

func (f *formatter) formatBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		f.formatStmt(stmt)
	}
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		f.emitLine(varDecl(stmt) + ";")

	case *ast.ExprStmt:
		f.emitLinef("%s;", ast.Text(stmt.Expr))

	case *ast.ReturnStmt:
		if stmt.Value != nil {
			f.emitLinef("return %s;", ast.Text(stmt.Value))
		} else {
			f.emitLine("return;")
		}

	case *ast.IfStmt:
		f.emit(f.indentStr())
		f.formatIfStmt(stmt)

	case *ast.WhileStmt:
		f.emitLinef("while (%s) {", ast.Text(stmt.Condition))
		f.incIndent()
		f.formatBlock(stmt.Body)
		f.decIndent()
		f.emitLine("}")

	case *ast.ForStmt:
		f.emitLinef("for (%s) {", forHeader(stmt))
		f.incIndent()
		f.formatBlock(stmt.Body)
		f.decIndent()
		f.emitLine("}")

	case *ast.Block:
		f.emitLine("{")
		f.incIndent()
		f.formatBlock(stmt)
		f.decIndent()
		f.emitLine("}")
	}
}

// formatIfStmt expects the indentation for its first line to be written
// already, so else-if chains continue on the closing brace line.
func (f *formatter) formatIfStmt(stmt *ast.IfStmt) {
	f.emitf("if (%s) {\n", ast.Text(stmt.Condition))
	f.incIndent()
	f.formatBlock(stmt.Then)
	f.decIndent()

	if stmt.Else == nil {
		f.emitLine("}")
		return
	}
	if elseIf := asElseIf(stmt.Else); elseIf != nil {
		f.emit(f.indentStr() + "} else ")
		f.formatIfStmt(elseIf)
		return
	}
	f.emitLine("} else {")
	f.incIndent()
	f.formatBlock(stmt.Else)
	f.decIndent()
	f.emitLine("}")
}

// asElseIf returns the nested if of an else-if wrapper block
func asElseIf(b *ast.Block) *ast.IfStmt {
	if len(b.Statements) != 1 {
		return nil
	}
	nested, ok := b.Statements[0].(*ast.IfStmt)
	if !ok || nested.Line != b.Line || nested.Column != b.Column {
		return nil
	}
	return nested
}

func forHeader(stmt *ast.ForStmt) string {
	var sb strings.Builder
	switch init := stmt.Init.(type) {
	case *ast.VarDecl:
		sb.WriteString(varDecl(init))
	case *ast.ExprStmt:
		sb.WriteString(ast.Text(init.Expr))
	}
	sb.WriteString(";")
	if stmt.Condition != nil {
		sb.WriteString(" " + ast.Text(stmt.Condition))
	}
	sb.WriteString(";")
	if stmt.Post != nil {
		sb.WriteString(" " + ast.Text(stmt.Post))
	}
	return sb.String()
}
