package main

import (
	"testing"

	"github.com/loxlang/golox/parser"
	"github.com/loxlang/golox/scanner"
)

func parseErr(t *testing.T, src string) error {
	t.Helper()
	tokens, err := scanner.New(src).Scan()
	if err != nil {
		return err
	}
	_, err = parser.New(tokens).Parse()
	return err
}

func TestIncompleteDetectsUnclosedBlock(t *testing.T) {
	err := parseErr(t, "fun f() {")
	if err == nil {
		t.Fatal("expected a parse error for an unclosed function body")
	}
	if !incomplete(err) {
		t.Errorf("incomplete(%v) = false, want true for an unclosed block awaiting more input", err)
	}
}

func TestIncompleteDetectsUnterminatedBlockComment(t *testing.T) {
	_, err := scanner.New("1 /* still going").Scan()
	if err == nil {
		t.Fatal("expected a scan error for an unterminated block comment")
	}
	if !incomplete(err) {
		t.Errorf("incomplete(%v) = false, want true for an unterminated block comment", err)
	}
}

func TestIncompleteRejectsGenuineSyntaxError(t *testing.T) {
	err := parseErr(t, "1 = 2;")
	if err == nil {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
	if incomplete(err) {
		t.Errorf("incomplete(%v) = true, want false: this input is malformed, not merely unfinished", err)
	}
}

func TestIncompleteRejectsNilError(t *testing.T) {
	if incomplete(nil) {
		t.Error("incomplete(nil) = true, want false")
	}
}
