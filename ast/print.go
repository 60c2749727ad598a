package ast

import (
	"fmt"
	"strings"
)

// Print renders node back into Lox source text. Unary, binary, logical and
// assignment expressions are fully parenthesised so that the grouping the
// parser chose is visible in the output (used by the parser tests to check
// precedence and associativity). Re-parsing the result groups every
// expression the same way, but each added pair of parentheses comes back as
// an extra GroupingExpr, so the re-parsed AST is not identical to the original.
func Print(node Node) string {
	switch node := node.(type) {
	case Program:
		var b strings.Builder
		for _, stmt := range node.Stmts {
			b.WriteString(printStmt(stmt))
			b.WriteString("\n")
		}
		return b.String()
	case Stmt:
		return printStmt(node)
	case Expr:
		return printExpr(node)
	default:
		panic(fmt.Sprintf("ast.Print: unexpected node type %T", node))
	}
}

func printStmt(stmt Stmt) string {
	switch stmt := stmt.(type) {
	case ExprStmt:
		return printExpr(stmt.Expr) + ";"
	case PrintStmt:
		return "print " + printExpr(stmt.Expr) + ";"
	case VarDecl:
		if stmt.Initialiser == nil {
			return "var " + stmt.Name.Lexeme + ";"
		}
		return "var " + stmt.Name.Lexeme + " = " + printExpr(stmt.Initialiser) + ";"
	case Block:
		var b strings.Builder
		b.WriteString("{\n")
		for _, s := range stmt.Stmts {
			b.WriteString(printStmt(s))
			b.WriteString("\n")
		}
		b.WriteString("}")
		return b.String()
	case If:
		s := "if (" + printExpr(stmt.Cond) + ") " + printStmt(stmt.Then)
		if stmt.Else != nil {
			s += " else " + printStmt(stmt.Else)
		}
		return s
	case While:
		return "while (" + printExpr(stmt.Cond) + ") " + printStmt(stmt.Body)
	case Function:
		params := make([]string, len(stmt.Params))
		for i, p := range stmt.Params {
			params[i] = p.Lexeme
		}
		var b strings.Builder
		fmt.Fprintf(&b, "fun %s(%s) {\n", stmt.Name.Lexeme, strings.Join(params, ", "))
		for _, s := range stmt.Body {
			b.WriteString(printStmt(s))
			b.WriteString("\n")
		}
		b.WriteString("}")
		return b.String()
	case Return:
		if stmt.Value == nil {
			return "return;"
		}
		return "return " + printExpr(stmt.Value) + ";"
	default:
		panic(fmt.Sprintf("ast.Print: unexpected statement type %T", stmt))
	}
}

func printExpr(expr Expr) string {
	switch expr := expr.(type) {
	case LiteralExpr:
		return expr.Value.Lexeme
	case GroupingExpr:
		return "(" + printExpr(expr.Expr) + ")"
	case UnaryExpr:
		return "(" + expr.Op.Lexeme + printExpr(expr.Operand) + ")"
	case BinaryExpr:
		return "(" + printExpr(expr.Left) + " " + expr.Op.Lexeme + " " + printExpr(expr.Right) + ")"
	case LogicalExpr:
		return "(" + printExpr(expr.Left) + " " + expr.Op.Lexeme + " " + printExpr(expr.Right) + ")"
	case VariableExpr:
		return expr.Name.Lexeme
	case AssignExpr:
		return "(" + expr.Name.Lexeme + " = " + printExpr(expr.Value) + ")"
	case CallExpr:
		args := make([]string, len(expr.Args))
		for i, a := range expr.Args {
			args[i] = printExpr(a)
		}
		return printExpr(expr.Callee) + "(" + strings.Join(args, ", ") + ")"
	default:
		panic(fmt.Sprintf("ast.Print: unexpected expression type %T", expr))
	}
}
