// Command golox is a tree-walking interpreter for the Lox language.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"

	"github.com/loxlang/golox/interpreter"
	"github.com/loxlang/golox/internal/loxerr"
	"github.com/loxlang/golox/parser"
	"github.com/loxlang/golox/scanner"
)

var cmd = flag.String("c", "", "program passed in as a string")

// nolint:revive
func Usage() {
	fmt.Fprintln(os.Stderr, "Usage: golox [-c program] [script]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = Usage
	flag.Parse()
	configureLogging()

	if *cmd != "" {
		if len(flag.Args()) > 0 {
			Usage()
			os.Exit(2)
		}
		if err := runSource(*cmd, interpreter.New()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	switch len(flag.Args()) {
	case 0:
		runREPL()
	case 1:
		if err := runFile(flag.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		Usage()
		os.Exit(2)
	}
}

// configureLogging sets the standard logger's verbosity from LOX_LOG_LEVEL.
// This only gates diagnostics about the process itself (e.g. a history file
// that couldn't be opened), never a Lox program's own errors, which always
// go to stderr regardless of this setting.
func configureLogging() {
	switch strings.ToLower(os.Getenv("LOX_LOG_LEVEL")) {
	case "fatal", "error", "warn":
		log.SetOutput(io.Discard)
	}
}

// runSource scans, parses, and interprets src in one shot: used by -c and
// by the file runner, where a program's statement boundaries are already
// known because the whole text is available up front.
func runSource(src string, interp *interpreter.Interpreter) error {
	tokens, err := scanner.New(src).Scan()
	if err != nil {
		return err
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		return err
	}
	return interp.Interpret(program)
}

// runFile reads the script at name, echoing each of its lines prefixed with
// "> " to stdout before interpreting it, matching the REPL's visual prompt
// so that file-mode transcripts are reproducible in tests.
func runFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	src := string(data)
	for _, line := range strings.Split(strings.TrimSuffix(src, "\n"), "\n") {
		fmt.Println("> " + line)
	}
	return runSource(src, interpreter.New())
}

// runREPL reads one line at a time from standard input, accumulating lines
// into a pending buffer until the parser can commit to a complete
// statement: an unclosed '{', '(', string, or block comment simply waits
// for more input rather than being reported as an error.
func runREPL() {
	cfg := &readline.Config{Prompt: "> "}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".lox_history")
	} else {
		log.Printf("can't determine home directory (%s); command history will not be saved", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	interp := interpreter.New(interpreter.REPLMode())
	var pending strings.Builder

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				pending.Reset()
				continue
			}
			if errors.Is(err, io.EOF) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			return
		}

		pending.WriteString(line)
		pending.WriteString("\n")

		tokens, scanErr := scanner.New(pending.String()).Scan()
		if scanErr != nil && incomplete(scanErr) {
			continue
		}

		program, parseErr := parser.New(tokens).Parse()
		if parseErr != nil && incomplete(parseErr) {
			continue
		}

		pending.Reset()

		if scanErr != nil {
			fmt.Fprintln(os.Stderr, scanErr)
			continue
		}
		if parseErr != nil {
			fmt.Fprintln(os.Stderr, parseErr)
			continue
		}
		if err := interp.Interpret(program); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// incomplete reports whether err consists only of diagnostics that more
// input could resolve: an unterminated string/comment, or a parse error
// attributed to the EOF token (e.g. "expected '}'" with nothing left to
// read). Any other error means the input so far is genuinely malformed.
func incomplete(err error) bool {
	list, ok := err.(loxerr.List)
	if !ok || len(list) == 0 {
		return false
	}
	for _, e := range list {
		if e.Where != "end" && !strings.Contains(e.Msg, "unterminated") {
			return false
		}
	}
	return true
}
