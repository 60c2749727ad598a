package interpreter

import (
	"strconv"

	"github.com/loxlang/golox/internal/loxerr"
	"github.com/loxlang/golox/token"
)

// Kind is the display name of a Value's variant, as returned by the type
// builtin.
type Kind string

const (
	KindNil      Kind = "nil"
	KindBool     Kind = "boolean"
	KindNumber   Kind = "number"
	KindString   Kind = "string"
	KindCallable Kind = "function"
)

// Value is the tagged union every Lox runtime value implements: Nil, Bool,
// Number, String and Callable (Function or Native). Operators are dispatched
// through UnaryOp/BinaryOp so each variant owns exactly the combinations it
// supports; the interpreter itself only handles the type-independent cases
// (!, short-circuiting and/or, ==, !=).
//
//go-sumtype:decl Value
type Value interface {
	String() string // display form, used by print and + concatenation
	Kind() Kind
	Truthy() bool
	UnaryOp(op token.Token) Value
	BinaryOp(op token.Token, right Value) Value
}

// invalidUnaryOpError reports a unary operator applied to a value it doesn't
// support. The only unary operator with an operand type constraint is -, so
// the message is always the number-only diagnostic from the language
// specification.
func invalidUnaryOpError(op token.Token) *loxerr.Error {
	return loxerr.NewRuntimeError(op.Pos, "Operand must be a number.")
}

// invalidBinaryOpError reports a binary operator applied to operand types it
// doesn't support. + accepts any pair with at least one string, so it gets
// its own message; every other arithmetic/comparison operator requires two
// numbers.
func invalidBinaryOpError(op token.Token) *loxerr.Error {
	if op.Type == token.Plus {
		return loxerr.NewRuntimeError(op.Pos, "Operands must be two numbers or at least one string.")
	}
	return loxerr.NewRuntimeError(op.Pos, "Operands must be numbers.")
}

// Number is a Lox number, always represented as a float64 (Lox has no
// separate integer type).
type Number float64

var _ Value = Number(0)

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n Number) Kind() Kind { return KindNumber }

func (n Number) Truthy() bool { return true } // 0 is truthy, per the language's truthiness rule

func (n Number) UnaryOp(op token.Token) Value {
	if op.Type == token.Minus {
		return -n
	}
	panic(invalidUnaryOpError(op))
}

func (n Number) BinaryOp(op token.Token, right Value) Value {
	r, ok := right.(Number)
	if !ok {
		if op.Type == token.Plus {
			if s, ok := right.(String); ok {
				return String(n.String()) + s
			}
		}
		panic(invalidBinaryOpError(op))
	}
	switch op.Type {
	case token.Plus:
		return n + r
	case token.Minus:
		return n - r
	case token.Star:
		return n * r
	case token.Slash:
		return n / r // division by zero yields +/-Inf or NaN, not an error
	case token.Less:
		return Bool(n < r)
	case token.LessEqual:
		return Bool(n <= r)
	case token.Greater:
		return Bool(n > r)
	case token.GreaterEqual:
		return Bool(n >= r)
	default:
		panic(invalidBinaryOpError(op))
	}
}

// String is a Lox string.
type String string

var _ Value = String("")

func (s String) String() string { return string(s) }

func (s String) Kind() Kind { return KindString }

func (s String) Truthy() bool { return true } // "" is truthy, per the language's truthiness rule

func (s String) UnaryOp(op token.Token) Value {
	panic(invalidUnaryOpError(op))
}

// BinaryOp only supports +: a string on either side concatenates with the
// other operand's display form, whatever its kind.
func (s String) BinaryOp(op token.Token, right Value) Value {
	if op.Type != token.Plus {
		panic(invalidBinaryOpError(op))
	}
	return s + String(right.String())
}

// coerceToStringConcat implements the "+ with at least one string" rule for
// variants that otherwise support no binary operators at all: if right is a
// string, concatenate display forms; the caller panics otherwise.
func coerceToStringConcat(left Value, right Value) (String, bool) {
	s, ok := right.(String)
	if !ok {
		return "", false
	}
	return String(left.String()) + s, true
}

// Bool is a Lox boolean.
type Bool bool

var _ Value = Bool(false)

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Kind() Kind { return KindBool }

func (b Bool) Truthy() bool { return bool(b) }

func (b Bool) UnaryOp(op token.Token) Value {
	panic(invalidUnaryOpError(op))
}

func (b Bool) BinaryOp(op token.Token, right Value) Value {
	if op.Type == token.Plus {
		if s, ok := coerceToStringConcat(b, right); ok {
			return s
		}
	}
	panic(invalidBinaryOpError(op))
}

// Nil is the single nil value.
type Nil struct{}

var _ Value = Nil{}

func (Nil) String() string { return "nil" }

func (Nil) Kind() Kind { return KindNil }

func (Nil) Truthy() bool { return false }

func (n Nil) UnaryOp(op token.Token) Value {
	panic(invalidUnaryOpError(op))
}

func (n Nil) BinaryOp(op token.Token, right Value) Value {
	if op.Type == token.Plus {
		if s, ok := coerceToStringConcat(n, right); ok {
			return s
		}
	}
	panic(invalidBinaryOpError(op))
}

// Equal implements the Value equality rule from the language specification:
// Nil equals Nil, booleans and numbers compare by value, strings by
// content, callables by identity, and values of different kinds are never
// equal. It underlies both == and !=, which are otherwise type-independent.
func Equal(left, right Value) bool {
	switch left := left.(type) {
	case Nil:
		_, ok := right.(Nil)
		return ok
	case Bool:
		r, ok := right.(Bool)
		return ok && left == r
	case Number:
		r, ok := right.(Number)
		return ok && left == r
	case String:
		r, ok := right.(String)
		return ok && left == r
	case Callable:
		r, ok := right.(Callable)
		return ok && left == r // callables compare by identity
	default:
		return false
	}
}
