package checker

import (
	"github.com/lhaig/minilang/internal/ast"
	"github.com/lhaig/minilang/internal/diagnostic"
)

// registerFunctions records every function signature before any body is
// checked, so calls resolve regardless of declaration order. The first
// declaration of a name wins.
func (c *Checker) registerFunctions() {
	for _, fn := range c.prog.Functions() {
		if _, exists := c.functions[fn.Name]; exists {
			c.diag.Errorf(diagnostic.DuplicateDeclaration, fn.Line, fn.Column, diagnostic.MsgFunctionRedeclared, fn.Name)
			continue
		}

		sym := c.signature(fn, true)
		c.functions[fn.Name] = sym
		c.decls[fn] = sym
	}
}

// signature builds the FunctionSymbol for a declaration. Duplicate
// parameter names are reported when report is set but still kept in the
// list, so arity follows the declaration as written.
func (c *Checker) signature(fn *ast.FuncDecl, report bool) *FunctionSymbol {
	sym := &FunctionSymbol{
		Symbol: Symbol{
			Name:   fn.Name,
			Type:   ResolveType(fn.ReturnType),
			Line:   fn.Line,
			Column: fn.Column,
		},
		IsMain: fn.Name == "main",
	}

	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		if seen[p.Name] && report {
			c.diag.Errorf(diagnostic.DuplicateDeclaration, p.Line, p.Column, diagnostic.MsgParamDuplicated, p.Name)
		}
		seen[p.Name] = true
		sym.Params = append(sym.Params, &Symbol{
			Name:   p.Name,
			Type:   ResolveType(p.Type),
			Line:   p.Line,
			Column: p.Column,
		})
	}
	return sym
}
