package ast

import (
	"strings"

	"github.com/lhaig/minilang/internal/lexer"
)

// Text renders an expression back to source form, e.g. "a + f(b, 2)".
// Parentheses appear only where the source had them.
func Text(expr Expression) string {
	var sb strings.Builder
	writeExpr(&sb, expr)
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr Expression) {
	switch e := expr.(type) {
	case nil:
	case *IntLit:
		sb.WriteString(e.Value)
	case *FloatLit:
		sb.WriteString(e.Value)
	case *StringLit:
		sb.WriteString(e.Value)
	case *Identifier:
		sb.WriteString(e.Name)
	case *ParenExpr:
		sb.WriteByte('(')
		writeExpr(sb, e.Expr)
		sb.WriteByte(')')
	case *UnaryExpr:
		sb.WriteString(OpString(e.Op))
		writeExpr(sb, e.Operand)
	case *BinaryExpr:
		writeExpr(sb, e.Left)
		sb.WriteByte(' ')
		sb.WriteString(OpString(e.Op))
		sb.WriteByte(' ')
		writeExpr(sb, e.Right)
	case *AssignExpr:
		sb.WriteString(e.Name)
		sb.WriteString(" = ")
		writeExpr(sb, e.Value)
	case *CallExpr:
		sb.WriteString(e.Function)
		sb.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, arg)
		}
		sb.WriteByte(')')
	case *BadExpr:
		sb.WriteString("<error>")
	}
}

// OpString returns the source spelling of an operator token
func OpString(op lexer.TokenType) string {
	switch op {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.STAR:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.PERCENT:
		return "%"
	case lexer.EQ:
		return "=="
	case lexer.NEQ:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LEQ:
		return "<="
	case lexer.GEQ:
		return ">="
	case lexer.AND:
		return "&&"
	case lexer.OR:
		return "||"
	case lexer.NOT:
		return "!"
	case lexer.ASSIGN:
		return "="
	default:
		return op.String()
	}
}
