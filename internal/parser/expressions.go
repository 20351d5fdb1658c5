package parser

import (
	"github.com/rshaw/braid/internal/ast"
	"github.com/rshaw/braid/internal/lexer"
)

// parseExpression parses a full expression, assignment included. Assignment
// sits at the lowest precedence and is right-associative.
func (p *Parser) parseExpression() ast.Expr {
	left := p.parseOr()
	if p.failed() {
		return nil
	}

	op := ""
	switch p.cur().Type {
	case lexer.ASSIGN:
		op = "="
	case lexer.PLUS_ASSIGN:
		op = "+="
	case lexer.MINUS_ASSIGN:
		op = "-="
	default:
		return left
	}

	ident, ok := left.(*ast.Ident)
	if !ok {
		p.fail(left.Pos(), "invalid assignment target")
		return nil
	}
	pos := p.advance().Pos
	value := p.parseExpression() // right-associative
	if p.failed() {
		return nil
	}
	return &ast.AssignStmt{Base: ast.NewBase(pos), Name: ident.Name, Op: op, Value: value}
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for !p.failed() && p.at(lexer.OR) {
		pos := p.advance().Pos
		right := p.parseAnd()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseComparison()
	for !p.failed() && p.at(lexer.AND) {
		pos := p.advance().Pos
		right := p.parseComparison()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: "&&", Left: left, Right: right}
	}
	return left
}

var comparisonOps = map[lexer.TokenType]string{
	lexer.EQ:  "==",
	lexer.NEQ: "!=",
	lexer.LT:  "<",
	lexer.LTE: "<=",
	lexer.GT:  ">",
	lexer.GTE: ">=",
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for !p.failed() {
		op, ok := comparisonOps[p.cur().Type]
		if !ok {
			break
		}
		pos := p.advance().Pos
		right := p.parseAdditive()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for !p.failed() && (p.at(lexer.PLUS) || p.at(lexer.MINUS)) {
		tok := p.advance()
		right := p.parseMultiplicative()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpr{Base: ast.NewBase(tok.Pos), Op: tok.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for !p.failed() && (p.at(lexer.STAR) || p.at(lexer.SLASH) || p.at(lexer.PERCENT)) {
		tok := p.advance()
		right := p.parseUnary()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpr{Base: ast.NewBase(tok.Pos), Op: tok.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(lexer.MINUS) || p.at(lexer.NOT) {
		tok := p.advance()
		operand := p.parseUnary()
		if p.failed() {
			return nil
		}
		return &ast.UnaryExpr{Base: ast.NewBase(tok.Pos), Op: tok.Literal, Operand: operand}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for !p.failed() && p.at(lexer.LPAREN) {
		pos := p.advance().Pos
		args := p.parseArgList()
		if p.failed() {
			return nil
		}
		p.expect(lexer.RPAREN)
		if p.failed() {
			return nil
		}
		expr = &ast.CallExpr{Base: ast.NewBase(pos), Fn: expr, Args: args}
	}
	return expr
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	if p.at(lexer.RPAREN) {
		return args
	}
	for {
		arg := p.parseExpression()
		if p.failed() {
			return nil
		}
		args = append(args, arg)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	if p.failed() {
		return nil
	}
	tok := p.cur()
	switch tok.Type {
	case lexer.INT:
		p.advance()
		return &ast.IntLiteral{Base: ast.NewBase(tok.Pos), Value: parseIntLiteral(tok.Literal)}
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Base: ast.NewBase(tok.Pos), Value: tok.Literal}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.NewBase(tok.Pos), Value: true}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.NewBase(tok.Pos), Value: false}
	case lexer.IDENT:
		p.advance()
		return &ast.Ident{Base: ast.NewBase(tok.Pos), Name: tok.Literal}
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FN:
		return p.parseLambda()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.LPAREN:
		return p.parseParenOrCompactLambda()
	default:
		p.fail(tok.Pos, "unexpected token %s (%q)", tok.Type, tok.Literal)
		return nil
	}
}

func parseIntLiteral(lit string) int64 {
	var v int64
	for _, ch := range lit {
		v = v*10 + int64(ch-'0')
	}
	return v
}

// parseParenOrCompactLambda resolves the `(` ambiguity: a compact lambda
// `(params) => expr` versus a parenthesized expression `(expr)`. It tries
// the compact-lambda parse first and backtracks on failure.
func (p *Parser) parseParenOrCompactLambda() ast.Expr {
	mark := p.mark()
	if lambda, ok := p.tryCompactLambda(); ok {
		return lambda
	}
	p.reset(mark)

	pos := p.expect(lexer.LPAREN).Pos
	if p.failed() {
		return nil
	}
	inner := p.parseExpression()
	if p.failed() {
		return nil
	}
	p.expect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	_ = pos
	return inner
}

func (p *Parser) tryCompactLambda() (ast.Expr, bool) {
	pos := p.cur().Pos
	p.expect(lexer.LPAREN)
	if p.failed() {
		return nil, false
	}
	params := p.parseParamListNoParens(true)
	if p.failed() {
		return nil, false
	}
	p.expect(lexer.RPAREN)
	if p.failed() {
		return nil, false
	}
	if !p.at(lexer.ARROW) {
		return nil, false
	}
	p.advance()
	body := p.parseExpression()
	if p.failed() {
		return nil, false
	}
	return &ast.Lambda{Base: ast.NewBase(pos), Params: params, CompactExp: body}, true
}
