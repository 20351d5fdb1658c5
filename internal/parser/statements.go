package parser

import (
	"github.com/rshaw/braid/internal/ast"
	"github.com/rshaw/braid/internal/lexer"
)

// parseStatement dispatches on the current token to the right statement
// form, or falls through to an expression statement (which itself may be
// an assignment, since assignment is parsed as part of the expression
// grammar).
func (p *Parser) parseStatement() ast.Stmt {
	if p.failed() {
		return nil
	}
	switch p.cur().Type {
	case lexer.VAL, lexer.VAR:
		return p.parseDecl()
	case lexer.DEF:
		return p.parseDef()
	case lexer.BREAK:
		tok := p.advance()
		return &ast.BreakStmt{Base: ast.NewBase(tok.Pos)}
	case lexer.CONTINUE:
		tok := p.advance()
		return &ast.ContinueStmt{Base: ast.NewBase(tok.Pos)}
	case lexer.RETURN:
		return p.parseReturn()
	default:
		expr := p.parseExpression()
		if p.failed() {
			return nil
		}
		if stmt, ok := expr.(ast.Stmt); ok {
			return stmt
		}
		return &ast.ExprStmt{Base: ast.NewBase(expr.Pos()), X: expr}
	}
}

func (p *Parser) parseDecl() ast.Stmt {
	tok := p.advance() // val | var
	mutable := tok.Type == lexer.VAR

	name := p.expect(lexer.IDENT)
	if p.failed() {
		return nil
	}

	typeAnn := ""
	if p.at(lexer.COLON) {
		p.advance()
		typeTok := p.expect(lexer.IDENT)
		if p.failed() {
			return nil
		}
		typeAnn = typeTok.Literal
	}

	p.expect(lexer.ASSIGN)
	if p.failed() {
		return nil
	}

	value := p.parseExpression()
	if p.failed() {
		return nil
	}

	return &ast.DeclStmt{
		Base:    ast.NewBase(tok.Pos),
		Name:    name.Literal,
		TypeAnn: typeAnn,
		Mutable: mutable,
		Value:   value,
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.advance()
	if p.atStatementEnd() {
		return &ast.ReturnStmt{Base: ast.NewBase(tok.Pos)}
	}
	value := p.parseExpression()
	if p.failed() {
		return nil
	}
	return &ast.ReturnStmt{Base: ast.NewBase(tok.Pos), Value: value}
}

func (p *Parser) atStatementEnd() bool {
	switch p.cur().Type {
	case lexer.NEWLINE, lexer.SEMICOLON, lexer.RBRACE, lexer.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseDef() ast.Stmt {
	tok := p.advance() // def
	name := p.expect(lexer.IDENT)
	if p.failed() {
		return nil
	}
	params := p.parseParamList()
	if p.failed() {
		return nil
	}

	returnAnn := ""
	if p.at(lexer.COLON) {
		p.advance()
		typeTok := p.expect(lexer.IDENT)
		if p.failed() {
			return nil
		}
		returnAnn = typeTok.Literal
	}

	body := p.parseBlock()
	if p.failed() {
		return nil
	}

	return &ast.FuncDecl{
		Base:      ast.NewBase(tok.Pos),
		Name:      name.Literal,
		Params:    params,
		ReturnAnn: returnAnn,
		Body:      body,
	}
}

// parseParamList parses `(p1, p2: T = expr, ...)`, enforcing that once a
// parameter has a default, every later parameter must also have one.
func (p *Parser) parseParamList() []ast.Param {
	p.expect(lexer.LPAREN)
	if p.failed() {
		return nil
	}
	params := p.parseParamListNoParens(false)
	if p.failed() {
		return nil
	}
	p.expect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	return params
}

// parseParamListNoParens parses the comma-separated parameter list up to
// (but not consuming) the closing `)`. When compact is true, type
// annotations and defaults are still accepted but rarely used by callers.
func (p *Parser) parseParamListNoParens(compact bool) []ast.Param {
	var params []ast.Param
	sawDefault := false
	if p.at(lexer.RPAREN) {
		return params
	}
	for {
		nameTok := p.expect(lexer.IDENT)
		if p.failed() {
			return nil
		}
		param := ast.Param{Name: nameTok.Literal}

		if p.at(lexer.COLON) {
			p.advance()
			typeTok := p.expect(lexer.IDENT)
			if p.failed() {
				return nil
			}
			param.TypeAnn = typeTok.Literal
		}

		if p.at(lexer.ASSIGN) {
			p.advance()
			def := p.parseExpression()
			if p.failed() {
				return nil
			}
			param.Default = def
			sawDefault = true
		} else if sawDefault {
			p.fail(nameTok.Pos, "parameter %q without a default follows a parameter with one", nameTok.Literal)
			return nil
		}

		params = append(params, param)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return params
}

func (p *Parser) parseLambda() ast.Expr {
	tok := p.advance() // fn
	params := p.parseParamList()
	if p.failed() {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.Lambda{Base: ast.NewBase(tok.Pos), Params: params, Body: body}
}

// parseIf handles both forms:
//
//	if cond then thenExpr else elseExpr   (expression form, both branches required)
//	if cond { ... } else { ... }          (block form, else optional)
func (p *Parser) parseIf() ast.Expr {
	tok := p.advance() // if
	cond := p.parseExpression()
	if p.failed() {
		return nil
	}

	if p.at(lexer.THEN) {
		p.advance()
		then := p.parseExpression()
		if p.failed() {
			return nil
		}
		p.expect(lexer.ELSE)
		if p.failed() {
			return nil
		}
		els := p.parseExpression()
		if p.failed() {
			return nil
		}
		return &ast.IfExpr{Base: ast.NewBase(tok.Pos), Cond: cond, Then: then, Else: els}
	}

	then := p.parseBlock()
	if p.failed() {
		return nil
	}
	var els ast.Expr
	if p.at(lexer.ELSE) {
		p.advance()
		if p.at(lexer.IF) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
		if p.failed() {
			return nil
		}
	}
	return &ast.IfExpr{Base: ast.NewBase(tok.Pos), Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Expr {
	tok := p.advance() // while
	cond := p.parseExpression()
	if p.failed() {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.WhileExpr{Base: ast.NewBase(tok.Pos), Cond: cond, Body: body}
}

// parseBlock parses `{ stmt* }`, where statements are separated by newlines
// and/or semicolons.
func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	if p.failed() {
		return nil
	}
	p.skipSeparators()

	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		stmts = append(stmts, stmt)
		p.skipSeparators()
	}

	p.expect(lexer.RBRACE)
	if p.failed() {
		return nil
	}

	return &ast.Block{Base: ast.NewBase(tok.Pos), Statements: stmts}
}
