package scanner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/loxlang/golox/scanner"
	"github.com/loxlang/golox/token"
)

func tok(typ token.Type, lexeme string) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme}
}

func tokLit(typ token.Type, lexeme string, literal any) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Literal: literal}
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Token
	}{
		{
			name: "empty source produces only EOF",
			src:  "",
			want: []token.Token{tok(token.EOF, "")},
		},
		{
			name: "single and double character operators",
			src:  "! != = == < <= > >=",
			want: []token.Token{
				tok(token.Bang, "!"),
				tok(token.BangEqual, "!="),
				tok(token.Equal, "="),
				tok(token.EqualEqual, "=="),
				tok(token.Less, "<"),
				tok(token.LessEqual, "<="),
				tok(token.Greater, ">"),
				tok(token.GreaterEqual, ">="),
				tok(token.EOF, ""),
			},
		},
		{
			name: "keywords and identifiers",
			src:  "and class foo",
			want: []token.Token{
				tok(token.And, "and"),
				tok(token.Class, "class"),
				tok(token.Identifier, "foo"),
				tok(token.EOF, ""),
			},
		},
		{
			name: "number literals",
			src:  "123 3.14",
			want: []token.Token{
				tokLit(token.Number, "123", 123.0),
				tokLit(token.Number, "3.14", 3.14),
				tok(token.EOF, ""),
			},
		},
		{
			name: "string literal",
			src:  `"hello"`,
			want: []token.Token{
				tokLit(token.String, `"hello"`, "hello"),
				tok(token.EOF, ""),
			},
		},
		{
			name: "line comment to end of line",
			src:  "1 // comment\n2",
			want: []token.Token{
				tokLit(token.Number, "1", 1.0),
				tokLit(token.Number, "2", 2.0),
				tok(token.EOF, ""),
			},
		},
		{
			name: "nested block comment",
			src:  "/* a /* b */ c */ 1",
			want: []token.Token{
				tokLit(token.Number, "1", 1.0),
				tok(token.EOF, ""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanner.New(tt.src).Scan()
			if err != nil {
				t.Fatalf("Scan() returned unexpected error: %s", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(token.Token{}, "Pos")); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanLineNumbers(t *testing.T) {
	src := "1\n2\n\n3"
	tokens, err := scanner.New(src).Scan()
	if err != nil {
		t.Fatalf("Scan() returned unexpected error: %s", err)
	}
	wantLines := []int{1, 2, 4, 4}
	if len(tokens) != len(wantLines) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(wantLines))
	}
	for i, want := range wantLines {
		if got := tokens[i].Pos.Line; got != want {
			t.Errorf("tokens[%d].Pos.Line = %d, want %d", i, got, want)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unexpected character", src: "1 @ 2"},
		{name: "unterminated string", src: `"abc`},
		{name: "unterminated block comment", src: "/* abc"},
		{name: "unterminated nested block comment", src: "/* /* abc */"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanner.New(tt.src).Scan()
			if err == nil {
				t.Fatal("Scan() returned nil error, want non-nil")
			}
		})
	}
}

func TestScanEndsWithSingleEOF(t *testing.T) {
	tokens, err := scanner.New("var x = 1;").Scan()
	if err != nil {
		t.Fatalf("Scan() returned unexpected error: %s", err)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		t.Fatalf("token stream does not end with EOF: %v", tokens)
	}
	for _, tok := range tokens[:len(tokens)-1] {
		if tok.Type == token.EOF {
			t.Fatalf("EOF token found before end of stream: %v", tokens)
		}
	}
}
