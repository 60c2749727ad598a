// Package loxerr defines the error type shared by the scanner, parser, and
// interpreter: every diagnostic the interpreter can produce is a *loxerr.Error
// pinned to a source position.
package loxerr

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/loxlang/golox/token"
)

// Kind distinguishes the three error categories from the language
// specification. Syntax covers both lexical and grammar errors: both render
// the same way, as "[line N] Error[ at <where>]: <message>".
type Kind int

const (
	// Syntax is a lexical or grammar error detected by the scanner or parser.
	Syntax Kind = iota
	// Runtime is a type mismatch, undefined variable, or bad call/arity
	// detected while executing a program.
	Runtime
)

// Error is a diagnostic attributable to a single position in Lox source.
type Error struct {
	Kind Kind
	Pos  token.Position
	// Where is rendered as " at <Where>" after "Error" for Syntax errors. An
	// empty Where omits the clause entirely (used for scan-time errors that
	// aren't attributable to a single token, e.g. an unexpected character).
	Where string
	Msg   string
}

// NewScanError creates a Syntax error not attributable to any single token,
// such as an unexpected character or an unterminated string/comment.
func NewScanError(pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: Syntax, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// NewParseError creates a Syntax error attributed to tok. If tok is the EOF
// token, the error reads "at end" rather than quoting its (empty) lexeme.
func NewParseError(tok token.Token, format string, args ...any) *Error {
	where := "end"
	if tok.Type != token.EOF {
		where = fmt.Sprintf("'%s'", tok.Lexeme)
	}
	return &Error{Kind: Syntax, Pos: tok.Pos, Where: where, Msg: fmt.Sprintf(format, args...)}
}

// NewRuntimeError creates a Runtime error attributed to pos, the position of
// the operator or call paren that detected the failure.
func NewRuntimeError(pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: Runtime, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Error renders the diagnostic in the plain, uncoloured form required by the
// language specification:
//
//	Syntax:  [line N] Error[ at <where>]: <message>
//	Runtime: <message>
//	         [line N]
func (e *Error) Error() string {
	if e.Kind == Runtime {
		return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Pos.Line)
	}
	where := ""
	if e.Where != "" {
		where = " at " + e.Where
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Pos.Line, where, e.Msg)
}

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed)
)

// Pretty renders the same diagnostic as Error, with ANSI highlighting
// (bold position, red "Error"/message) and, when sourceLine is non-empty, a
// caret line underlining the offending token. fatih/color automatically
// degrades to plain text when stdout/stderr isn't a terminal or NO_COLOR is
// set, which is why Error (used by tests) never needs to know about colour.
func (e *Error) Pretty(sourceLine string) string {
	var b strings.Builder
	bold.Fprint(&b, e.Pos)
	fmt.Fprint(&b, " ")
	red.Fprint(&b, "Error")
	if e.Where != "" {
		fmt.Fprintf(&b, " at %s", e.Where)
	}
	fmt.Fprintf(&b, ": %s", e.Msg)
	if sourceLine == "" || e.Kind == Runtime {
		return b.String()
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, sourceLine)
	col := e.Pos.Column - 1
	if col < 0 || col > len(sourceLine) {
		return strings.TrimSuffix(b.String(), "\n")
	}
	width := runewidth.StringWidth(sourceLine[col:])
	if e.Where != "" {
		width = runewidth.StringWidth(strings.Trim(e.Where, "'"))
	}
	fmt.Fprint(&b, strings.Repeat(" ", runewidth.StringWidth(sourceLine[:col])))
	red.Fprint(&b, strings.Repeat("~", max(width, 1)))
	return b.String()
}

// List is an ordered collection of *Error. It implements error so that a
// batch of scan or parse errors can be returned and reported as one value.
type List []*Error

// Add appends a new Syntax error built from a position not attributable to a
// single token (see NewScanError).
func (l *List) Add(pos token.Position, format string, args ...any) {
	*l = append(*l, NewScanError(pos, format, args...))
}

// AddToken appends a new Syntax error attributed to tok (see NewParseError).
func (l *List) AddToken(tok token.Token, format string, args ...any) {
	*l = append(*l, NewParseError(tok, format, args...))
}

// Err returns l unchanged as an error if it is non-empty, otherwise nil. Use
// this to return a List as an error so that a "no errors" List becomes an
// untyped nil rather than a non-nil interface wrapping a nil-length slice.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error joins the message of every error in the list, one per line, in the
// order they were recorded.
func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
