// Package scanner implements a scanner which converts Lox source text into a
// sequence of lexical tokens.
package scanner

import (
	"strconv"

	"github.com/loxlang/golox/internal/loxerr"
	"github.com/loxlang/golox/token"
)

const nullChar = 0

// Scanner scans Lox source text into lexical tokens.
type Scanner struct {
	src string

	start    int // byte offset of the first character of the lexeme being scanned
	pos      int // byte offset of the character currently being considered
	startPos token.Position
	curPos   token.Position
}

// New constructs a Scanner which will scan src.
func New(src string) *Scanner {
	return &Scanner{
		src:    src,
		curPos: token.Position{Line: 1, Column: 1},
	}
}

// Scan scans the whole source text into a sequence of tokens terminated by a
// single EOF token. If any lexical errors were encountered, tokens is still
// the complete (possibly partial) token stream and err reports every error
// found, in source order.
func (s *Scanner) Scan() (tokens []token.Token, err error) {
	var errs loxerr.List
	for {
		tok, scanErr := s.next()
		if scanErr != nil {
			errs = append(errs, scanErr)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens, errs.Err()
}

func (s *Scanner) next() (token.Token, *loxerr.Error) {
	s.skipWhitespace()
	s.start = s.pos
	s.startPos = s.curPos

	char := s.advance()
	switch char {
	case nullChar:
		return s.token(token.EOF), nil
	case '(':
		return s.token(token.LeftParen), nil
	case ')':
		return s.token(token.RightParen), nil
	case '{':
		return s.token(token.LeftBrace), nil
	case '}':
		return s.token(token.RightBrace), nil
	case ',':
		return s.token(token.Comma), nil
	case '.':
		return s.token(token.Dot), nil
	case '-':
		return s.token(token.Minus), nil
	case '+':
		return s.token(token.Plus), nil
	case ';':
		return s.token(token.Semicolon), nil
	case '*':
		return s.token(token.Star), nil
	case '!':
		if s.match('=') {
			return s.token(token.BangEqual), nil
		}
		return s.token(token.Bang), nil
	case '=':
		if s.match('=') {
			return s.token(token.EqualEqual), nil
		}
		return s.token(token.Equal), nil
	case '<':
		if s.match('=') {
			return s.token(token.LessEqual), nil
		}
		return s.token(token.Less), nil
	case '>':
		if s.match('=') {
			return s.token(token.GreaterEqual), nil
		}
		return s.token(token.Greater), nil
	case '/':
		if s.match('/') {
			s.skipLineComment()
			return s.next()
		}
		if s.match('*') {
			if err := s.skipBlockComment(); err != nil {
				return token.Token{}, err
			}
			return s.next()
		}
		return s.token(token.Slash), nil
	case '"':
		return s.stringToken()
	default:
		switch {
		case isDigit(char):
			return s.numberToken(), nil
		case isAlpha(char):
			return s.identToken(), nil
		default:
			return token.Token{}, s.errorf("unexpected character %q", char)
		}
	}
}

// advance returns the character at the current position and moves past it,
// or nullChar if the end of the source has been reached.
func (s *Scanner) advance() byte {
	if s.atEnd() {
		return nullChar
	}
	char := s.src[s.pos]
	s.pos++
	if char == '\n' {
		s.curPos.Line++
		s.curPos.Column = 1
	} else {
		s.curPos.Column++
	}
	return char
}

// peek returns the character at the current position without advancing.
func (s *Scanner) peek() byte {
	if s.atEnd() {
		return nullChar
	}
	return s.src[s.pos]
}

// peekNext returns the character after the current position without
// advancing.
func (s *Scanner) peekNext() byte {
	if s.pos+1 >= len(s.src) {
		return nullChar
	}
	return s.src[s.pos+1]
}

// match advances past the current character and returns true if it equals
// want, otherwise it leaves the position unchanged and returns false.
func (s *Scanner) match(want byte) bool {
	if s.peek() != want {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

func (s *Scanner) skipLineComment() {
	for !s.atEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// skipBlockComment consumes up to and including the matching */ for a /*
// already consumed by the caller, tracking nesting depth so that block
// comments may nest to arbitrary depth.
func (s *Scanner) skipBlockComment() *loxerr.Error {
	depth := 1
	for depth > 0 {
		if s.atEnd() {
			return s.errorf("unterminated block comment")
		}
		switch {
		case s.peek() == '/' && s.peekNext() == '*':
			s.advance()
			s.advance()
			depth++
		case s.peek() == '*' && s.peekNext() == '/':
			s.advance()
			s.advance()
			depth--
		default:
			s.advance()
		}
	}
	return nil
}

func (s *Scanner) stringToken() (token.Token, *loxerr.Error) {
	for {
		switch s.peek() {
		case nullChar:
			return token.Token{}, s.errorf("unterminated string")
		case '"':
			s.advance()
			literal := s.lexeme()
			literal = literal[1 : len(literal)-1] // trim surrounding quotes
			return s.tokenWithLiteral(token.String, literal), nil
		default:
			s.advance()
		}
	}
}

func (s *Scanner) numberToken() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	value, err := strconv.ParseFloat(s.lexeme(), 64)
	if err != nil {
		panic("scanner: unreachable: number literal failed to parse: " + err.Error())
	}
	return s.tokenWithLiteral(token.Number, value)
}

func (s *Scanner) identToken() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	return s.token(token.LookupIdent(s.lexeme()))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func (s *Scanner) lexeme() string {
	return s.src[s.start:s.pos]
}

func (s *Scanner) token(typ token.Type) token.Token {
	return s.tokenWithLiteral(typ, nil)
}

func (s *Scanner) tokenWithLiteral(typ token.Type, literal any) token.Token {
	return token.Token{
		Type:    typ,
		Lexeme:  s.lexeme(),
		Literal: literal,
		Pos:     s.startPos,
	}
}

func (s *Scanner) errorf(format string, args ...any) *loxerr.Error {
	return loxerr.NewScanError(s.startPos, format, args...)
}
