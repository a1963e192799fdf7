package checker

import (
	"github.com/lhaig/minilang/internal/ast"
	"github.com/lhaig/minilang/internal/diagnostic"
	"github.com/lhaig/minilang/internal/lexer"
)

// checkExpression type-checks an expression and returns its type
func (c *Checker) checkExpression(expr ast.Expression) Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return Int
	case *ast.FloatLit:
		return Float
	case *ast.StringLit:
		return String

	case *ast.Identifier:
		sym, ok := c.scope.Resolve(e.Name)
		if !ok {
			c.diag.Errorf(diagnostic.UndeclaredIdentifier, e.Line, e.Column, diagnostic.MsgUndeclaredVariable, e.Name)
			return Unknown
		}
		return sym.Type

	case *ast.ParenExpr:
		return c.checkExpression(e.Expr)

	case *ast.UnaryExpr:
		c.checkExpression(e.Operand)
		return Int

	case *ast.BinaryExpr:
		return c.checkBinaryExpr(e)

	case *ast.AssignExpr:
		return c.checkAssignment(e)

	case *ast.CallExpr:
		return c.checkCall(e)

	default:
		// *ast.BadExpr: the parser already reported it
		return Unknown
	}
}

// checkBinaryExpr types both operands first so nested errors surface.
// Comparisons and logical operators yield int whatever the operands are.
func (c *Checker) checkBinaryExpr(e *ast.BinaryExpr) Type {
	left := c.checkExpression(e.Left)
	right := c.checkExpression(e.Right)

	switch e.Op {
	case lexer.PLUS, lexer.MINUS:
		return AdditiveResult(left, right)
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return MultiplicativeResult(left, right)
	default:
		return Int
	}
}

// checkAssignment checks name = value. Assigning to a constant is reported
// and checking continues. The result is the target's declared type.
func (c *Checker) checkAssignment(e *ast.AssignExpr) Type {
	sym, ok := c.scope.Resolve(e.Name)
	if !ok {
		c.diag.Errorf(diagnostic.UndeclaredIdentifier, e.Line, e.Column, diagnostic.MsgUndeclaredVariable, e.Name)
		if e.Value != nil {
			c.checkExpression(e.Value)
		}
		return Unknown
	}

	if sym.Const {
		c.diag.Errorf(diagnostic.ConstAssignment, e.Line, e.Column, diagnostic.MsgConstAssignment, e.Name)
	}

	if e.Value != nil {
		valueType := c.checkExpression(e.Value)
		if !Compatible(sym.Type, valueType) {
			c.diag.Errorf(diagnostic.TypeMismatch, e.Line, e.Column, diagnostic.MsgAssignTypeMismatch, valueType, sym.Type)
		}
	}
	return sym.Type
}

// checkCall resolves the callee in the function table, never in scope.
// Arguments are always typed, even when the call itself is wrong.
func (c *Checker) checkCall(e *ast.CallExpr) Type {
	fn, ok := c.functions[e.Function]
	if !ok {
		c.diag.Errorf(diagnostic.UndeclaredFunction, e.Line, e.Column, diagnostic.MsgUndeclaredFunction, e.Function)
		for _, arg := range e.Args {
			c.checkExpression(arg)
		}
		return Unknown
	}

	if fn.IsMain {
		c.diag.Errorf(diagnostic.IllegalMainCall, e.Line, e.Column, diagnostic.MsgIllegalMainCall)
	}
	if c.current != nil && c.current.Name == e.Function {
		c.current.IsRecursive = true
	}

	argTypes := make([]Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = c.checkExpression(arg)
	}

	if len(e.Args) != len(fn.Params) {
		c.diag.Errorf(diagnostic.ArityMismatch, e.Line, e.Column, diagnostic.MsgArityMismatch, e.Function, len(fn.Params), len(e.Args))
		return fn.Type
	}

	for i, param := range fn.Params {
		if !Compatible(param.Type, argTypes[i]) {
			c.diag.Errorf(diagnostic.TypeMismatch, e.Line, e.Column, diagnostic.MsgArgTypeMismatch, i+1, e.Function, param.Type, argTypes[i])
		}
	}
	return fn.Type
}
