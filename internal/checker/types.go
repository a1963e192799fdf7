package checker

import "github.com/lhaig/minilang/internal/ast"

// Type is the static type of a declaration or expression
type Type int

const (
	// Unknown marks an expression that already produced an error. It is
	// compatible with nothing so errors never validate downstream.
	Unknown Type = iota
	Int
	Float
	Double
	String
	Void
	// Null is the type of an omitted initializer. Every target accepts it.
	Null
)

var typeNames = [...]string{
	Unknown: "unknown",
	Int:     "int",
	Float:   "float",
	Double:  "double",
	String:  "string",
	Void:    "void",
	Null:    "null",
}

// String returns the source spelling of the type
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsNumeric reports whether t is one of int, float, double
func (t Type) IsNumeric() bool {
	return t == Int || t == Float || t == Double
}

// TypeFromName maps a type keyword to its Type. Anything else is Unknown.
func TypeFromName(name string) Type {
	switch name {
	case "int":
		return Int
	case "float":
		return Float
	case "double":
		return Double
	case "string":
		return String
	case "void":
		return Void
	default:
		return Unknown
	}
}

// ResolveType converts a type reference from the AST. A nil reference is
// an omitted function return type, which means void.
func ResolveType(ref *ast.TypeRef) Type {
	if ref == nil {
		return Void
	}
	return TypeFromName(ref.Name)
}

// Compatible reports whether a value of type value may be stored into a
// target of type target. Widening follows int -> float -> double and
// narrowing is never allowed.
func Compatible(target, value Type) bool {
	switch {
	case value == Unknown:
		return false
	case value == Null:
		return true
	case target == value:
		return true
	case target == Double:
		return value == Float || value == Int
	case target == Float:
		return value == Int
	default:
		return false
	}
}

// AdditiveResult returns the type of l + r or l - r. A string operand
// makes the result a string.
func AdditiveResult(l, r Type) Type {
	if l == String || r == String {
		return String
	}
	return MultiplicativeResult(l, r)
}

// MultiplicativeResult returns the type of l * r, l / r or l % r
func MultiplicativeResult(l, r Type) Type {
	switch {
	case l == Float || r == Float || l == Double || r == Double:
		return Float
	case l == Int && r == Int:
		return Int
	default:
		return Unknown
	}
}
