// Package interpreter implements a tree-walking evaluator for parsed Lox
// programs.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/internal/loxerr"
	"github.com/loxlang/golox/token"
)

// Interpreter executes Lox programs against a persistent global scope. A
// single Interpreter may be fed multiple programs in sequence (as the REPL
// does, one statement at a time); variables, functions, and closures created
// by an earlier call remain visible to later ones.
type Interpreter struct {
	globals *environment
	stdout  io.Writer

	// replMode causes a top-level bare expression statement to print its
	// value, the way a REPL echoes what was just typed, rather than
	// discarding it. Nested expression statements (inside a block, loop, or
	// function body) are never echoed.
	replMode bool
}

// Option configures an Interpreter constructed by New.
type Option func(*Interpreter)

// REPLMode causes top-level expression statements to print their result.
func REPLMode() Option {
	return func(i *Interpreter) { i.replMode = true }
}

// Stdout redirects print output away from os.Stdout, for tests.
func Stdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// New constructs an Interpreter with the global scope pre-populated with the
// native functions (clock, type, str).
func New(opts ...Option) *Interpreter {
	globals := newEnvironment()
	registerBuiltins(globals)
	i := &Interpreter{globals: globals, stdout: os.Stdout}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret executes each of program's top-level statements against the
// persistent global scope. A runtime error abandons only the statement that
// raised it: execution resumes with the next top-level statement, which is
// what lets a file with a bad statement halfway through still run the rest
// and a REPL session keep going after a mistake. If any statements failed,
// Interpret returns their errors joined as a loxerr.List; it still runs
// every statement regardless of earlier failures.
func (i *Interpreter) Interpret(program ast.Program) error {
	var errs loxerr.List
	for _, stmt := range program.Stmts {
		if err := i.runStmt(i.globals, stmt); err != nil {
			errs = append(errs, err)
		}
	}
	return errs.Err()
}

// runStmt executes one top-level statement, recovering a runtime error
// raised anywhere underneath it so that it doesn't unwind past this point.
// In REPL mode, a bare expression statement at this level echoes its value;
// the same expression nested inside a block, loop, or function body does
// not, since execStmt (used everywhere below the top level) never echoes.
func (i *Interpreter) runStmt(env *environment, stmt ast.Stmt) (err *loxerr.Error) {
	defer func() {
		if r := recover(); r != nil {
			runtimeErr, ok := r.(*loxerr.Error)
			if !ok {
				panic(r)
			}
			err = runtimeErr
		}
	}()
	if exprStmt, ok := stmt.(ast.ExprStmt); ok && i.replMode {
		value := i.evalExpr(env, exprStmt.Expr)
		fmt.Fprintln(i.stdout, value.String())
		return nil
	}
	i.execStmt(env, stmt)
	return nil
}

// stmtResultKind distinguishes a statement that ran to completion from one
// that is unwinding a return. There is no break/continue variant: this
// language has no loop-control statements.
type stmtResultKind int

const (
	stmtNormal stmtResultKind = iota
	stmtReturn
)

type stmtResult struct {
	kind  stmtResultKind
	value Value // meaningful only when kind == stmtReturn
}

var normalResult = stmtResult{kind: stmtNormal}

func returnResult(v Value) stmtResult { return stmtResult{kind: stmtReturn, value: v} }

// execStmt executes stmt in env and reports whether a return is unwinding
// through it. Return produces a non-normal result, and Block, If, and While
// propagate one from the statements they contain; every other statement
// always returns normalResult.
func (i *Interpreter) execStmt(env *environment, stmt ast.Stmt) stmtResult {
	switch stmt := stmt.(type) {
	case ast.VarDecl:
		i.execVarDecl(env, stmt)
	case ast.ExprStmt:
		i.execExprStmt(env, stmt)
	case ast.PrintStmt:
		i.execPrintStmt(env, stmt)
	case ast.Block:
		return i.execBlock(env.child(), stmt.Stmts)
	case ast.If:
		return i.execIf(env, stmt)
	case ast.While:
		return i.execWhile(env, stmt)
	case ast.Function:
		i.execFunctionDecl(env, stmt)
	case ast.Return:
		return i.execReturn(env, stmt)
	default:
		panic(fmt.Sprintf("interpreter: unexpected statement type %T", stmt))
	}
	return normalResult
}

func (i *Interpreter) execVarDecl(env *environment, stmt ast.VarDecl) {
	value := Value(Nil{})
	if stmt.Initialiser != nil {
		value = i.evalExpr(env, stmt.Initialiser)
	}
	env.Define(stmt.Name.Lexeme, value)
}

// execExprStmt evaluates stmt for its side effects. It never echoes the
// result: only a bare expression statement at the top level does, handled by
// runStmt before it reaches here.
func (i *Interpreter) execExprStmt(env *environment, stmt ast.ExprStmt) {
	i.evalExpr(env, stmt.Expr)
}

func (i *Interpreter) execPrintStmt(env *environment, stmt ast.PrintStmt) {
	value := i.evalExpr(env, stmt.Expr)
	fmt.Fprintln(i.stdout, value.String())
}

// execBlock runs stmts in env (already a fresh child scope) and stops early
// if one of them unwinds a return.
func (i *Interpreter) execBlock(env *environment, stmts []ast.Stmt) stmtResult {
	for _, stmt := range stmts {
		if result := i.execStmt(env, stmt); result.kind != stmtNormal {
			return result
		}
	}
	return normalResult
}

func (i *Interpreter) execIf(env *environment, stmt ast.If) stmtResult {
	if i.evalExpr(env, stmt.Cond).Truthy() {
		return i.execStmt(env, stmt.Then)
	} else if stmt.Else != nil {
		return i.execStmt(env, stmt.Else)
	}
	return normalResult
}

func (i *Interpreter) execWhile(env *environment, stmt ast.While) stmtResult {
	for i.evalExpr(env, stmt.Cond).Truthy() {
		if result := i.execStmt(env, stmt.Body); result.kind != stmtNormal {
			return result
		}
	}
	return normalResult
}

func (i *Interpreter) execFunctionDecl(env *environment, stmt ast.Function) {
	env.Define(stmt.Name.Lexeme, newFunction(stmt, env))
}

func (i *Interpreter) execReturn(env *environment, stmt ast.Return) stmtResult {
	value := Value(Nil{})
	if stmt.Value != nil {
		value = i.evalExpr(env, stmt.Value)
	}
	return returnResult(value)
}

func (i *Interpreter) evalExpr(env *environment, expr ast.Expr) Value {
	switch expr := expr.(type) {
	case ast.LiteralExpr:
		return i.evalLiteralExpr(expr)
	case ast.GroupingExpr:
		return i.evalExpr(env, expr.Expr)
	case ast.UnaryExpr:
		return i.evalUnaryExpr(env, expr)
	case ast.BinaryExpr:
		return i.evalBinaryExpr(env, expr)
	case ast.LogicalExpr:
		return i.evalLogicalExpr(env, expr)
	case ast.VariableExpr:
		return env.Get(expr.Name)
	case ast.AssignExpr:
		return i.evalAssignExpr(env, expr)
	case ast.CallExpr:
		return i.evalCallExpr(env, expr)
	default:
		panic(fmt.Sprintf("interpreter: unexpected expression type %T", expr))
	}
}

func (i *Interpreter) evalLiteralExpr(expr ast.LiteralExpr) Value {
	tok := expr.Value
	switch tok.Type {
	case token.Number:
		return Number(tok.Literal.(float64))
	case token.String:
		return String(tok.Literal.(string))
	case token.True:
		return Bool(true)
	case token.False:
		return Bool(false)
	case token.Nil:
		return Nil{}
	default:
		panic(fmt.Sprintf("interpreter: unexpected literal token type %s", tok.Type))
	}
}

func (i *Interpreter) evalUnaryExpr(env *environment, expr ast.UnaryExpr) Value {
	operand := i.evalExpr(env, expr.Operand)
	if expr.Op.Type == token.Bang {
		// ! is independent of the operand's type: it just negates truthiness.
		return Bool(!operand.Truthy())
	}
	return operand.UnaryOp(expr.Op)
}

func (i *Interpreter) evalBinaryExpr(env *environment, expr ast.BinaryExpr) Value {
	left := i.evalExpr(env, expr.Left)
	right := i.evalExpr(env, expr.Right)
	switch expr.Op.Type {
	case token.EqualEqual:
		return Bool(Equal(left, right))
	case token.BangEqual:
		return Bool(!Equal(left, right))
	default:
		return left.BinaryOp(expr.Op, right)
	}
}

func (i *Interpreter) evalLogicalExpr(env *environment, expr ast.LogicalExpr) Value {
	left := i.evalExpr(env, expr.Left)
	switch expr.Op.Type {
	case token.Or:
		if left.Truthy() {
			return left
		}
	case token.And:
		if !left.Truthy() {
			return left
		}
	}
	// The right operand is only reached when it can change the result, so
	// its side effects are skipped on the short-circuiting path above.
	return i.evalExpr(env, expr.Right)
}

func (i *Interpreter) evalAssignExpr(env *environment, expr ast.AssignExpr) Value {
	value := i.evalExpr(env, expr.Value)
	env.Assign(expr.Name, value)
	return value
}

func (i *Interpreter) evalCallExpr(env *environment, expr ast.CallExpr) Value {
	callee := i.evalExpr(env, expr.Callee)
	args := make([]Value, len(expr.Args))
	for idx, arg := range expr.Args {
		args[idx] = i.evalExpr(env, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		panic(loxerr.NewRuntimeError(expr.ClosingParen.Pos, "Can only call functions and classes."))
	}
	if len(args) != callable.Arity() {
		panic(loxerr.NewRuntimeError(expr.ClosingParen.Pos, "Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}
	return callable.call(i, args)
}
