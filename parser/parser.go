// Package parser implements a recursive-descent parser which turns a
// sequence of Lox tokens into an abstract syntax tree.
package parser

import (
	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/internal/loxerr"
	"github.com/loxlang/golox/token"
)

const maxArgs = 255

// Parser turns a token stream into statement nodes via recursive descent.
// It holds only the token cursor and the errors accumulated so far; panic
// recovery during synchronization never rewinds past consumed tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	tok    token.Token // token currently being considered
	next   token.Token // one token of lookahead

	errs loxerr.List
}

// New constructs a Parser over tokens, which must end with a single EOF
// token (as produced by scanner.Scan).
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.advance()
	p.advance()
	return p
}

// Parse parses a complete program: declaration* EOF.
// If err is non-nil, the caller should report it and discard program rather
// than execute it: a syntax error taints the whole parse, even though
// synchronization lets later statements be checked for further errors too.
func (p *Parser) Parse() (program ast.Program, err error) {
	var stmts []ast.Stmt
	for p.tok.Type != token.EOF {
		if stmt := p.safeDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return ast.Program{Stmts: stmts}, p.errs.Err()
}

// ParseDeclaration parses a single top-level declaration and reports whether
// the token stream has more input afterwards, letting a caller execute each
// declaration before parsing the next. (The REPL in main.go does not use it:
// it calls Parse on its buffered input.)
func (p *Parser) ParseDeclaration() (stmt ast.Stmt, more bool, err error) {
	if p.tok.Type == token.EOF {
		return nil, false, p.errs.Err()
	}
	stmt = p.safeDeclaration()
	return stmt, p.tok.Type != token.EOF, p.errs.Err()
}

// unwind is panicked to abandon the current declaration once an error has
// been recorded, and recovered by safeDeclaration which then synchronizes.
type unwind struct{}

// safeDeclaration parses one declaration, recovering from a parse error by
// synchronizing and returning a nil Stmt, which the caller must not execute.
func (p *Parser) safeDeclaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	return p.declaration()
}

// synchronize discards tokens until it has consumed a statement-terminating
// ';' or the next token starts a new statement, so that one bad statement
// doesn't poison the rest of the parse.
func (p *Parser) synchronize() {
	for p.tok.Type != token.EOF {
		if p.tok.Type == token.Semicolon {
			p.advance()
			return
		}
		switch p.tok.Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.check(token.Var):
		return p.varDecl()
	case p.check(token.Fun):
		return p.funDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) varDecl() ast.Stmt {
	varTok := p.advance()
	name := p.expect(token.Identifier, "expected variable name")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.expect(token.Semicolon, "expected ';' after variable declaration")
	return ast.VarDecl{Var: varTok, Name: name, Initialiser: init}
}

func (p *Parser) funDecl() ast.Stmt {
	funTok := p.advance()
	name := p.expect(token.Identifier, "expected function name")
	p.expect(token.LeftParen, "expected '(' after function name")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.tok, "can't have more than %d parameters", maxArgs)
			}
			params = append(params, p.expect(token.Identifier, "expected parameter name"))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, "expected ')' after parameters")
	p.expect(token.LeftBrace, "expected '{' before function body")
	body := p.blockStmts()
	return ast.Function{Fun: funTok, Name: name, Params: params, Body: body}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.check(token.Print):
		return p.printStmt()
	case p.check(token.LeftBrace):
		leftBrace := p.advance()
		return ast.Block{LeftBrace: leftBrace, Stmts: p.blockStmts()}
	case p.check(token.If):
		return p.ifStmt()
	case p.check(token.While):
		return p.whileStmt()
	case p.check(token.For):
		return p.forStmt()
	case p.check(token.Return):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() ast.Stmt {
	printTok := p.advance()
	expr := p.expression()
	p.expect(token.Semicolon, "expected ';' after value")
	return ast.PrintStmt{Print: printTok, Expr: expr}
}

// blockStmts parses declaration* up to (and consuming) the closing '}'. The
// opening '{' has already been consumed by the caller.
func (p *Parser) blockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && p.tok.Type != token.EOF {
		if stmt := p.safeDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(token.RightBrace, "expected '}' after block")
	return stmts
}

func (p *Parser) ifStmt() ast.Stmt {
	ifTok := p.advance()
	p.expect(token.LeftParen, "expected '(' after 'if'")
	cond := p.expression()
	p.expect(token.RightParen, "expected ')' after if condition")
	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return ast.If{If: ifTok, Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	whileTok := p.advance()
	p.expect(token.LeftParen, "expected '(' after 'while'")
	cond := p.expression()
	p.expect(token.RightParen, "expected ')' after condition")
	body := p.statement()
	return ast.While{While: whileTok, Cond: cond, Body: body}
}

// forStmt desugars `for (init; cond; update) body` into an initializer
// statement followed by a While node whose body runs the user body then the
// update expression, all wrapped in a Block so the initializer is scoped to
// the loop alone. No dedicated For AST node exists.
func (p *Parser) forStmt() ast.Stmt {
	forTok := p.advance()
	p.expect(token.LeftParen, "expected '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		// no initializer
	case p.check(token.Var):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.expect(token.Semicolon, "expected ';' after loop condition")

	var update ast.Expr
	if !p.check(token.RightParen) {
		update = p.expression()
	}
	p.expect(token.RightParen, "expected ')' after for clauses")

	body := p.statement()
	if update != nil {
		body = ast.Block{LeftBrace: forTok, Stmts: []ast.Stmt{body, ast.ExprStmt{Expr: update}}}
	}
	if cond == nil {
		cond = ast.LiteralExpr{Value: token.Token{Type: token.True, Lexeme: "true", Pos: forTok.Pos}}
	}
	loop := ast.While{While: forTok, Cond: cond, Body: body}

	if init == nil {
		return loop
	}
	return ast.Block{LeftBrace: forTok, Stmts: []ast.Stmt{init, loop}}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.advance()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.expect(token.Semicolon, "expected ';' after return value")
	return ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.Semicolon, "expected ';' after expression")
	return ast.ExprStmt{Expr: expr}
}

// Expression grammar, lowest to highest precedence:
//
//	expression  -> assignment
//	assignment  -> IDENT "=" assignment | logic_or
//	logic_or    -> logic_and ( "or" logic_and )*
//	logic_and   -> equality ( "and" equality )*
//	equality    -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison  -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        -> factor ( ( "-" | "+" ) factor )*
//	factor      -> unary ( ( "/" | "*" ) unary )*
//	unary       -> ( "!" | "-" ) unary | call
//	call        -> primary ( "(" arguments? ")" )*
//	primary     -> NUMBER | STRING | "true" | "false" | "nil" | IDENT | "(" expression ")"

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()
	if p.check(token.Equal) {
		eq := p.advance()
		value := p.assignment()
		if v, ok := expr.(ast.VariableExpr); ok {
			return ast.AssignExpr{Name: v.Name, Value: value}
		}
		p.errorAt(eq, "Invalid assignment target.")
		return expr
	}
	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.check(token.Or) {
		op := p.advance()
		right := p.logicAnd()
		expr = ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.check(token.And) {
		op := p.advance()
		right := p.equality()
		expr = ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	return p.binary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() ast.Expr {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() ast.Expr {
	return p.binary(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() ast.Expr {
	return p.binary(p.unary, token.Slash, token.Star)
}

// binary parses a left-associative chain of binary expressions made up of
// operators of one precedence level, where next parses an operand of the
// next-highest precedence.
func (p *Parser) binary(next func() ast.Expr, operators ...token.Type) ast.Expr {
	expr := next()
	for p.checkAny(operators...) {
		op := p.advance()
		right := next()
		expr = ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.checkAny(token.Bang, token.Minus) {
		op := p.advance()
		operand := p.unary()
		return ast.UnaryExpr{Op: op, Operand: operand}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for p.check(token.LeftParen) {
		p.advance()
		var args []ast.Expr
		if !p.check(token.RightParen) {
			for {
				if len(args) >= maxArgs {
					p.errorAt(p.tok, "can't have more than %d arguments", maxArgs)
				}
				args = append(args, p.expression())
				if !p.match(token.Comma) {
					break
				}
			}
		}
		closingParen := p.expect(token.RightParen, "expected ')' after arguments")
		expr = ast.CallExpr{Callee: expr, Args: args, ClosingParen: closingParen}
	}
	return expr
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.checkAny(token.Number, token.String, token.True, token.False, token.Nil):
		return ast.LiteralExpr{Value: p.advance()}
	case p.check(token.Identifier):
		return ast.VariableExpr{Name: p.advance()}
	case p.check(token.LeftParen):
		leftParen := p.advance()
		expr := p.expression()
		p.expect(token.RightParen, "expected ')' after expression")
		return ast.GroupingExpr{LeftParen: leftParen, Expr: expr}
	default:
		p.errorAt(p.tok, "expected expression")
		panic(unwind{})
	}
}

// Token-stream helpers.

func (p *Parser) advance() token.Token {
	tok := p.tok
	p.tok = p.next
	if p.pos < len(p.tokens) {
		p.next = p.tokens[p.pos]
		p.pos++
	} else {
		p.next = p.tok // stay on EOF
	}
	return tok
}

func (p *Parser) check(t token.Type) bool {
	return p.tok.Type == t
}

func (p *Parser) checkAny(types ...token.Type) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes and returns the current token if it has type t, otherwise
// it records an error and panics with unwind to trigger synchronization.
func (p *Parser) expect(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.tok, "%s", msg)
	panic(unwind{})
}

func (p *Parser) errorAt(tok token.Token, format string, args ...any) {
	p.errs.AddToken(tok, format, args...)
}
