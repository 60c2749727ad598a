package interpreter

import "time"

// registerBuiltins defines the natives available in every program's global
// scope, the way golox registers clock. They are ordinary bindings: a
// program is free to shadow them with its own var or fun declaration.
func registerBuiltins(globals *environment) {
	globals.Define("clock", newNative("clock", 0, func(_ *Interpreter, _ []Value) Value {
		return Number(float64(time.Now().UnixNano()) / 1e9)
	}))
	globals.Define("type", newNative("type", 1, func(_ *Interpreter, args []Value) Value {
		return String(args[0].Kind())
	}))
	globals.Define("str", newNative("str", 1, func(_ *Interpreter, args []Value) Value {
		return String(args[0].String())
	}))
}
