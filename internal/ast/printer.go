package ast

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func typeName(t *TypeRef) string {
	if t == nil {
		return "void"
	}
	return t.Name
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Program:
		sb.WriteString(prefix + "Program\n")
		for _, d := range n.Decls {
			printNode(sb, d, indent+1)
		}

	case *FuncDecl:
		sb.WriteString(fmt.Sprintf("%sFunction: %s returns %s [line %d]\n", prefix, n.Name, typeName(n.ReturnType), n.Line))
		if len(n.Params) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Params:\n", prefix))
			for _, p := range n.Params {
				printNode(sb, p, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		}
		if n.Body != nil {
			sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
			printNode(sb, n.Body, indent+2)
		}

	case *Param:
		sb.WriteString(fmt.Sprintf("%s%s %s\n", prefix, typeName(n.Type), n.Name))

	case *VarDecl:
		modifier := ""
		if n.Const {
			modifier = "const "
		}
		sb.WriteString(fmt.Sprintf("%sVar: %s%s %s [line %d]\n", prefix, modifier, typeName(n.Type), n.Name, n.Line))
		if n.Value != nil {
			printNode(sb, n.Value, indent+1)
		}

	case *Block:
		sb.WriteString(fmt.Sprintf("%sBlock [lines %d-%d]\n", prefix, n.Line, n.EndLine))
		for _, s := range n.Statements {
			printNode(sb, s, indent+1)
		}

	case *ExprStmt:
		sb.WriteString(prefix + "ExprStmt\n")
		printNode(sb, n.Expr, indent+1)

	case *ReturnStmt:
		sb.WriteString(fmt.Sprintf("%sReturn [line %d]\n", prefix, n.Line))
		if n.Value != nil {
			printNode(sb, n.Value, indent+1)
		}

	case *IfStmt:
		sb.WriteString(fmt.Sprintf("%sIf [lines %d-%d]\n", prefix, n.Line, n.EndLine))
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, n.Condition, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Then:\n", prefix))
		printNode(sb, n.Then, indent+2)
		if n.Else != nil {
			sb.WriteString(fmt.Sprintf("%s  Else:\n", prefix))
			printNode(sb, n.Else, indent+2)
		}

	case *WhileStmt:
		sb.WriteString(fmt.Sprintf("%sWhile [lines %d-%d]\n", prefix, n.Line, n.EndLine))
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, n.Condition, indent+2)
		printNode(sb, n.Body, indent+1)

	case *ForStmt:
		sb.WriteString(fmt.Sprintf("%sFor [lines %d-%d]\n", prefix, n.Line, n.EndLine))
		if n.Init != nil {
			sb.WriteString(fmt.Sprintf("%s  Init:\n", prefix))
			printNode(sb, n.Init, indent+2)
		}
		if n.Condition != nil {
			sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
			printNode(sb, n.Condition, indent+2)
		}
		if n.Post != nil {
			sb.WriteString(fmt.Sprintf("%s  Post:\n", prefix))
			printNode(sb, n.Post, indent+2)
		}
		printNode(sb, n.Body, indent+1)

	case *BinaryExpr:
		sb.WriteString(fmt.Sprintf("%sBinary: %s\n", prefix, OpString(n.Op)))
		printNode(sb, n.Left, indent+1)
		printNode(sb, n.Right, indent+1)

	case *UnaryExpr:
		sb.WriteString(fmt.Sprintf("%sUnary: %s\n", prefix, OpString(n.Op)))
		printNode(sb, n.Operand, indent+1)

	case *ParenExpr:
		sb.WriteString(prefix + "Paren\n")
		printNode(sb, n.Expr, indent+1)

	case *AssignExpr:
		sb.WriteString(fmt.Sprintf("%sAssign: %s\n", prefix, n.Name))
		printNode(sb, n.Value, indent+1)

	case *CallExpr:
		sb.WriteString(fmt.Sprintf("%sCall: %s\n", prefix, n.Function))
		for _, arg := range n.Args {
			printNode(sb, arg, indent+1)
		}

	case *Identifier:
		sb.WriteString(fmt.Sprintf("%sIdent: %s\n", prefix, n.Name))

	case *IntLit:
		sb.WriteString(fmt.Sprintf("%sInt: %s\n", prefix, n.Value))

	case *FloatLit:
		sb.WriteString(fmt.Sprintf("%sFloat: %s\n", prefix, n.Value))

	case *StringLit:
		sb.WriteString(fmt.Sprintf("%sString: %s\n", prefix, n.Value))

	case *BadExpr:
		sb.WriteString(prefix + "BadExpr\n")
	}
}
