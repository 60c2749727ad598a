// Package ast defines the types used to represent the abstract syntax tree
// of a Lox program.
package ast

import "github.com/loxlang/golox/token"

// Node is implemented by every AST node.
type Node interface {
	// Pos returns the position of the token that best represents this node
	// for diagnostic purposes (e.g. the operator of a binary expression, the
	// closing paren of a call).
	Pos() token.Position
}

// Program is the root node produced by a complete parse.
type Program struct {
	Stmts []Stmt
}

// Pos returns the position of the first statement, or the zero Position for
// an empty program.
func (p Program) Pos() token.Position {
	if len(p.Stmts) == 0 {
		return token.Position{}
	}
	return p.Stmts[0].Pos()
}

// Expr is implemented by every expression node.
//
//go-sumtype:decl Expr
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
//
//go-sumtype:decl Stmt
type Stmt interface {
	Node
	stmtNode()
}

// Expressions.

// LiteralExpr is a number, string, boolean, or nil literal.
type LiteralExpr struct {
	Value token.Token
}

// GroupingExpr is a parenthesised expression, e.g. (a + b).
type GroupingExpr struct {
	LeftParen token.Token
	Expr      Expr
}

// UnaryExpr is a prefix unary operator expression, e.g. -a or !a.
type UnaryExpr struct {
	Op      token.Token
	Operand Expr
}

// BinaryExpr is an arithmetic, comparison, or equality expression, e.g. a + b.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// LogicalExpr is an `and`/`or` expression. It is distinct from BinaryExpr
// because it short-circuits: the right operand is only evaluated when its
// value can change the result.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// VariableExpr reads the value bound to Name.
type VariableExpr struct {
	Name token.Token
}

// AssignExpr assigns Value to Name and evaluates to the assigned value.
type AssignExpr struct {
	Name  token.Token
	Value Expr
}

// CallExpr calls Callee with Args. ClosingParen is used to attribute runtime
// errors (bad callee, wrong arity) to the call site.
type CallExpr struct {
	Callee       Expr
	Args         []Expr
	ClosingParen token.Token
}

func (LiteralExpr) exprNode()  {}
func (GroupingExpr) exprNode() {}
func (UnaryExpr) exprNode()    {}
func (BinaryExpr) exprNode()   {}
func (LogicalExpr) exprNode()  {}
func (VariableExpr) exprNode() {}
func (AssignExpr) exprNode()   {}
func (CallExpr) exprNode()     {}

func (e LiteralExpr) Pos() token.Position  { return e.Value.Pos }
func (e GroupingExpr) Pos() token.Position { return e.LeftParen.Pos }
func (e UnaryExpr) Pos() token.Position    { return e.Op.Pos }
func (e BinaryExpr) Pos() token.Position   { return e.Op.Pos }
func (e LogicalExpr) Pos() token.Position  { return e.Op.Pos }
func (e VariableExpr) Pos() token.Position { return e.Name.Pos }
func (e AssignExpr) Pos() token.Position   { return e.Name.Pos }
func (e CallExpr) Pos() token.Position     { return e.ClosingParen.Pos }

// Statements.

// ExprStmt is an expression evaluated for its side effect, e.g. a call.
type ExprStmt struct {
	Expr Expr
}

// PrintStmt prints the display form of Expr followed by a newline.
type PrintStmt struct {
	Print token.Token
	Expr  Expr
}

// VarDecl declares Name in the current scope, bound to Initialiser's value
// if present, otherwise nil.
type VarDecl struct {
	Var         token.Token
	Name        token.Token
	Initialiser Expr // nil if not provided
}

// Block pushes one fresh scope, executes Stmts in it, then pops the scope.
type Block struct {
	LeftBrace token.Token
	Stmts     []Stmt
}

// If executes Then if Cond is truthy, otherwise Else if present.
type If struct {
	If   token.Token
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else branch
}

// While executes Body repeatedly while Cond is truthy.
type While struct {
	While token.Token
	Cond  Expr
	Body  Stmt
}

// Function declares a named function, binding Name in the current scope to
// a closure over the scope present at the point of declaration.
type Function struct {
	Fun    token.Token
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// Return unwinds to the nearest enclosing call frame, yielding Value (or nil
// if absent) as the call's result.
type Return struct {
	Keyword token.Token
	Value   Expr // nil if no value given
}

func (ExprStmt) stmtNode()  {}
func (PrintStmt) stmtNode() {}
func (VarDecl) stmtNode()   {}
func (Block) stmtNode()     {}
func (If) stmtNode()        {}
func (While) stmtNode()     {}
func (Function) stmtNode()  {}
func (Return) stmtNode()    {}

func (s ExprStmt) Pos() token.Position  { return s.Expr.Pos() }
func (s PrintStmt) Pos() token.Position { return s.Print.Pos }
func (s VarDecl) Pos() token.Position   { return s.Var.Pos }
func (s Block) Pos() token.Position     { return s.LeftBrace.Pos }
func (s If) Pos() token.Position        { return s.If.Pos }
func (s While) Pos() token.Position     { return s.While.Pos }
func (s Function) Pos() token.Position  { return s.Fun.Pos }
func (s Return) Pos() token.Position    { return s.Keyword.Pos }
