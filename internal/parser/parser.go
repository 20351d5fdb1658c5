// Package parser implements a recursive-descent parser with a
// precedence-climbing expression parser, producing the surface AST defined
// in internal/ast. It never attempts error recovery: the first error
// aborts parsing outright.
package parser

import (
	"github.com/rshaw/braid/internal/ast"
	"github.com/rshaw/braid/internal/errors"
	"github.com/rshaw/braid/internal/lexer"
)

// Parser holds a fully buffered token stream (so the compact-lambda form
// can be tried and backtracked without re-lexing) and a cursor into it.
type Parser struct {
	tokens []lexer.Token
	pos    int
	err    *errors.Diagnostic
}

// New buffers all tokens from the lexer. Lex errors take priority over
// parse errors and are surfaced immediately.
func New(l *lexer.Lexer) (*Parser, *errors.Diagnostic) {
	tokens, err := drain(l)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens}, nil
}

func drain(l *lexer.Lexer) ([]lexer.Token, *errors.Diagnostic) {
	var tokens []lexer.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			return tokens, nil
		}
	}
}

func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(tt lexer.TokenType) bool {
	return p.cur().Type == tt
}

func (p *Parser) fail(pos lexer.Position, format string, args ...any) {
	if p.err == nil {
		p.err = errors.New(errors.KindParse, pos, format, args...)
	}
}

func (p *Parser) failed() bool { return p.err != nil }

// expect consumes the current token if it matches tt, otherwise records a
// parse error and returns the zero Token.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.failed() {
		return lexer.Token{}
	}
	if !p.at(tt) {
		p.fail(p.cur().Pos, "expected %s, got %s (%q)", tt, p.cur().Type, p.cur().Literal)
		return lexer.Token{}
	}
	return p.advance()
}

// skipNewlines consumes zero or more NEWLINE tokens, used at statement
// separators where blank lines are permitted.
func (p *Parser) skipNewlines() {
	for p.at(lexer.NEWLINE) {
		p.advance()
	}
}

// skipSeparators consumes the separator between statements: one or more
// NEWLINE and/or SEMICOLON tokens.
func (p *Parser) skipSeparators() {
	for p.at(lexer.NEWLINE) || p.at(lexer.SEMICOLON) {
		p.advance()
	}
}

// mark/reset implement simple backtracking for the `(` ambiguity between a
// grouped expression and a compact lambda's parameter list.
func (p *Parser) mark() int { return p.pos }
func (p *Parser) reset(m int) {
	p.pos = m
	p.err = nil
}

// Parse parses an entire program as an implicit top-level block.
func Parse(l *lexer.Lexer) (*ast.Block, *errors.Diagnostic) {
	p, err := New(l)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// ParseProgram parses the buffered tokens as an implicit top-level block.
func (p *Parser) ParseProgram() (*ast.Block, *errors.Diagnostic) {
	pos := p.cur().Pos
	p.skipSeparators()
	var stmts []ast.Stmt
	for !p.at(lexer.EOF) && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			break
		}
		stmts = append(stmts, stmt)
		p.skipSeparators()
	}
	if p.failed() {
		return nil, p.err
	}
	return &ast.Block{Base: ast.NewBase(pos), Statements: stmts}, nil
}
