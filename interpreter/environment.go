package interpreter

import (
	"github.com/loxlang/golox/internal/loxerr"
	"github.com/loxlang/golox/token"
)

// environment holds the bindings visible in one lexical scope, plus a link
// to the enclosing scope. There is no static resolver: every lookup walks
// the parent chain at the point it runs, so Get/Assign cost is proportional
// to scope depth rather than the constant-time distance lookup a resolver
// pass would give.
type environment struct {
	parent *environment
	values map[string]Value
}

func newEnvironment() *environment {
	return &environment{values: make(map[string]Value)}
}

// child returns a fresh scope nested directly inside e.
func (e *environment) child() *environment {
	return &environment{parent: e, values: make(map[string]Value)}
}

// Define binds name to value in this scope, overwriting any existing
// binding of the same name in this scope (redeclaration is allowed, unlike
// Assign which requires the binding to already exist somewhere in the chain).
func (e *environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get returns the value bound to tok.Lexeme, searching outward through
// enclosing scopes. It raises a runtime error if no scope defines it.
func (e *environment) Get(tok token.Token) Value {
	for env := e; env != nil; env = env.parent {
		if value, ok := env.values[tok.Lexeme]; ok {
			return value
		}
	}
	panic(loxerr.NewRuntimeError(tok.Pos, "Undefined variable '%s'.", tok.Lexeme))
}

// Assign sets the value of the nearest existing binding of tok.Lexeme,
// searching outward through enclosing scopes. It raises a runtime error if
// no scope defines it; assignment never creates a new binding.
func (e *environment) Assign(tok token.Token, value Value) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[tok.Lexeme]; ok {
			env.values[tok.Lexeme] = value
			return
		}
	}
	panic(loxerr.NewRuntimeError(tok.Pos, "Undefined variable '%s'.", tok.Lexeme))
}
