package interpreter_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/loxlang/golox/interpreter"
	"github.com/loxlang/golox/parser"
	"github.com/loxlang/golox/scanner"
)

// diffOutput renders a unified diff between the expected and actual program
// output, which is far easier to read than a %q dump once a test case's
// output spans more than a line or two.
func diffOutput(want, got string) string {
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	return fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
}

func run(t *testing.T, src string, opts ...interpreter.Option) (string, error) {
	t.Helper()
	tokens, err := scanner.New(src).Scan()
	if err != nil {
		t.Fatalf("Scan(%q) returned unexpected error: %s", src, err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %s", src, err)
	}
	var out bytes.Buffer
	opts = append(opts, interpreter.Stdout(&out))
	i := interpreter.New(opts...)
	err = i.Interpret(program)
	return out.String(), err
}

func TestInterpretPrint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "arithmetic",
			src:  `print 1 + 2 * 3;`,
			want: "7\n",
		},
		{
			name: "integral number has no trailing fraction",
			src:  `print 6 / 2;`,
			want: "3\n",
		},
		{
			name: "string concatenation",
			src:  `print "a" + "b";`,
			want: "ab\n",
		},
		{
			name: "plus coerces number to string",
			src:  `print "x = " + 1;`,
			want: "x = 1\n",
		},
		{
			name: "plus coerces string onto number",
			src:  `print 1 + "x";`,
			want: "1x\n",
		},
		{
			name: "plus coerces bool onto string on either side",
			src:  `print "x" + true; print true + "x";`,
			want: "xtrue\ntruex\n",
		},
		{
			name: "plus coerces nil onto string",
			src:  `print nil + "x";`,
			want: "nilx\n",
		},
		{
			name: "plus coerces a function's display form onto string",
			src:  `print "f: " + clock;`,
			want: "f: <native function clock>\n",
		},
		{
			name: "equality across kinds is false",
			src:  `print 1 == "1";`,
			want: "false\n",
		},
		{
			name: "nil equals nil",
			src:  `print nil == nil;`,
			want: "true\n",
		},
		{
			name: "truthiness treats 0 and empty string as truthy",
			src:  `if (0) print "zero is truthy"; if ("") print "empty string is truthy";`,
			want: "zero is truthy\nempty string is truthy\n",
		},
		{
			name: "variable declaration and assignment",
			src:  `var a = 1; a = a + 1; print a;`,
			want: "2\n",
		},
		{
			name: "block scoping shadows outer variable",
			src:  "var a = 1; { var a = 2; print a; } print a;",
			want: "2\n1\n",
		},
		{
			name: "while loop",
			src:  "var i = 0; while (i < 3) { print i; i = i + 1; }",
			want: "0\n1\n2\n",
		},
		{
			name: "for loop desugaring",
			src:  "for (var i = 0; i < 3; i = i + 1) print i;",
			want: "0\n1\n2\n",
		},
		{
			name: "logical and short circuits",
			src:  `fun f() { print "called"; return true; } false and f(); print "done";`,
			want: "done\n",
		},
		{
			name: "logical or short circuits",
			src:  `fun f() { print "called"; return true; } true or f(); print "done";`,
			want: "done\n",
		},
		{
			name: "function call and return",
			src:  "fun add(a, b) { return a + b; } print add(1, 2);",
			want: "3\n",
		},
		{
			name: "function with no return falls off the end as nil",
			src:  "fun f() {} print f();",
			want: "nil\n",
		},
		{
			name: "closures capture their defining environment",
			src: `
				fun makeCounter() {
					var count = 0;
					fun increment() {
						count = count + 1;
						return count;
					}
					return increment;
				}
				var counter = makeCounter();
				print counter();
				print counter();
			`,
			want: "1\n2\n",
		},
		{
			name: "recursion",
			src: `
				fun fib(n) {
					if (n < 2) return n;
					return fib(n - 1) + fib(n - 2);
				}
				print fib(10);
			`,
			want: "55\n",
		},
		{
			name: "type builtin",
			src:  `print type(1); print type("x"); print type(nil); print type(true); print type(clock);`,
			want: "number\nstring\nnil\nboolean\nfunction\n",
		},
		{
			name: "str builtin",
			src:  `print str(1) + "!";`,
			want: "1!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.src)
			if err != nil {
				t.Fatalf("Interpret(%q) returned unexpected error: %s", tt.src, err)
			}
			if out != tt.want {
				t.Errorf("output mismatch (-want +got):\n%s", diffOutput(tt.want, out))
			}
		})
	}
}

func TestInterpretREPLModeEchoesExpressionStatements(t *testing.T) {
	out, err := run(t, "1 + 1;", interpreter.REPLMode())
	if err != nil {
		t.Fatalf("Interpret() returned unexpected error: %s", err)
	}
	if out != "2\n" {
		t.Errorf("output = %q, want %q", out, "2\n")
	}
}

func TestInterpretREPLModeDoesNotEchoNestedExpressionStatements(t *testing.T) {
	out, err := run(t, "for (var i = 0; i < 2; i = i + 1) print i;", interpreter.REPLMode())
	if err != nil {
		t.Fatalf("Interpret() returned unexpected error: %s", err)
	}
	if out != "0\n1\n" {
		t.Errorf("output = %q, want %q (the desugared loop update must not be echoed)", out, "0\n1\n")
	}
}

func TestInterpretRuntimeErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantErrMsg string
	}{
		{
			name:       "undefined variable",
			src:        "print a;",
			wantErrMsg: "Undefined variable 'a'.",
		},
		{
			name:       "assign to undefined variable",
			src:        "a = 1;",
			wantErrMsg: "Undefined variable 'a'.",
		},
		{
			name:       "adding number and bool",
			src:        "print 1 + true;",
			wantErrMsg: "Operands must be two numbers or at least one string.",
		},
		{
			name:       "negating a string",
			src:        `print -"x";`,
			wantErrMsg: "Operand must be a number.",
		},
		{
			name:       "calling a non-callable",
			src:        "var a = 1; a();",
			wantErrMsg: "Can only call functions and classes.",
		},
		{
			name:       "wrong arity",
			src:        "fun f(a, b) { return a; } f(1);",
			wantErrMsg: "Expected 2 arguments but got 1.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src)
			if err == nil {
				t.Fatalf("Interpret(%q) returned nil error, want runtime error", tt.src)
			}
			if !strings.Contains(err.Error(), tt.wantErrMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErrMsg)
			}
		})
	}
}

func TestInterpretPersistsStateAcrossCalls(t *testing.T) {
	tokens1, err := scanner.New("var a = 1;").Scan()
	if err != nil {
		t.Fatalf("Scan() returned unexpected error: %s", err)
	}
	program1, err := parser.New(tokens1).Parse()
	if err != nil {
		t.Fatalf("Parse() returned unexpected error: %s", err)
	}

	tokens2, err := scanner.New("print a + 1;").Scan()
	if err != nil {
		t.Fatalf("Scan() returned unexpected error: %s", err)
	}
	program2, err := parser.New(tokens2).Parse()
	if err != nil {
		t.Fatalf("Parse() returned unexpected error: %s", err)
	}

	var out bytes.Buffer
	i := interpreter.New(interpreter.Stdout(&out))
	if err := i.Interpret(program1); err != nil {
		t.Fatalf("Interpret(program1) returned unexpected error: %s", err)
	}
	if err := i.Interpret(program2); err != nil {
		t.Fatalf("Interpret(program2) returned unexpected error: %s", err)
	}
	if out.String() != "2\n" {
		t.Errorf("output = %q, want %q", out.String(), "2\n")
	}
}
