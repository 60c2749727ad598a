package interpreter

import (
	"fmt"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/token"
)

// Callable is implemented by every value that can appear on the left of a
// call expression: user-defined functions and natives.
type Callable interface {
	Value
	Name() string
	Arity() int
	call(i *Interpreter, args []Value) Value
}

// Function is a user-defined function. It closes over the environment
// present at the point of its declaration, not the environment of the call
// site, which is what lets closures outlive the scope that created them.
type Function struct {
	decl    ast.Function
	closure *environment
}

var _ Callable = (*Function)(nil)

func newFunction(decl ast.Function, closure *environment) *Function {
	return &Function{decl: decl, closure: closure}
}

func (f *Function) String() string { return fmt.Sprintf("<function %s>", f.decl.Name.Lexeme) }

func (f *Function) Kind() Kind { return KindCallable }

func (f *Function) Truthy() bool { return true }

func (f *Function) UnaryOp(op token.Token) Value {
	panic(invalidUnaryOpError(op))
}

func (f *Function) BinaryOp(op token.Token, right Value) Value {
	if op.Type == token.Plus {
		if s, ok := coerceToStringConcat(f, right); ok {
			return s
		}
	}
	panic(invalidBinaryOpError(op))
}

func (f *Function) Name() string { return f.decl.Name.Lexeme }

func (f *Function) Arity() int { return len(f.decl.Params) }

// call runs the function body in a fresh environment enclosed by the
// closure, not by the caller's environment, then unwraps a Return result
// into its value. Falling off the end of the body yields Nil.
func (f *Function) call(i *Interpreter, args []Value) Value {
	env := f.closure.child()
	for idx, param := range f.decl.Params {
		env.Define(param.Lexeme, args[idx])
	}
	result := i.execBlock(env, f.decl.Body)
	if result.kind == stmtReturn {
		return result.value
	}
	return Nil{}
}

// Native is a builtin function implemented in Go, such as clock.
type Native struct {
	name  string
	arity int
	fn    func(i *Interpreter, args []Value) Value
}

var _ Callable = (*Native)(nil)

func newNative(name string, arity int, fn func(i *Interpreter, args []Value) Value) *Native {
	return &Native{name: name, arity: arity, fn: fn}
}

func (n *Native) String() string { return fmt.Sprintf("<native function %s>", n.name) }

func (n *Native) Kind() Kind { return KindCallable }

func (n *Native) Truthy() bool { return true }

func (n *Native) UnaryOp(op token.Token) Value {
	panic(invalidUnaryOpError(op))
}

func (n *Native) BinaryOp(op token.Token, right Value) Value {
	if op.Type == token.Plus {
		if s, ok := coerceToStringConcat(n, right); ok {
			return s
		}
	}
	panic(invalidBinaryOpError(op))
}

func (n *Native) Name() string { return n.name }

func (n *Native) Arity() int { return n.arity }

func (n *Native) call(i *Interpreter, args []Value) Value { return n.fn(i, args) }
