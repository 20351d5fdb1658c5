package parser

import (
	"testing"

	"github.com/rshaw/braid/internal/ast"
	"github.com/rshaw/braid/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Block {
	t.Helper()
	block, err := Parse(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return block
}

func TestParseSimpleExpr(t *testing.T) {
	block := parse(t, "1 + 2 * 3")
	if len(block.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Statements))
	}
	bin, ok := block.Statements[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level +, got %T", block.Statements[0])
	}
	if bin.Op != "+" {
		t.Fatalf("expected + at top, got %s", bin.Op)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected * to bind tighter than +, got %T", bin.Right)
	}
}

func TestParseValDecl(t *testing.T) {
	block := parse(t, "val x = 10")
	decl, ok := block.Statements[0].(*ast.DeclStmt)
	if !ok {
		t.Fatalf("expected DeclStmt, got %T", block.Statements[0])
	}
	if decl.Mutable {
		t.Fatal("val should not be mutable")
	}
	if decl.Name != "x" {
		t.Fatalf("expected name x, got %s", decl.Name)
	}
}

func TestParseDefWithDefault(t *testing.T) {
	block := parse(t, "def add(a, b = 42) { a + b }")
	fn, ok := block.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl, got %T", block.Statements[0])
	}
	if len(fn.Params) != 2 || fn.Params[1].Default == nil {
		t.Fatalf("expected second param to carry a default, got %+v", fn.Params)
	}
}

func TestParseDefaultMustTrail(t *testing.T) {
	_, err := Parse(lexer.New("def f(a = 1, b) { a }"))
	if err == nil {
		t.Fatal("expected parse error when a non-default param follows a default one")
	}
}

func TestParseIfExpressionForm(t *testing.T) {
	block := parse(t, "if true then 1 else 2")
	ifExpr, ok := block.Statements[0].(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected IfExpr, got %T", block.Statements[0])
	}
	if ifExpr.Else == nil {
		t.Fatal("expression-form if requires an else branch")
	}
}

func TestParseCompactLambdaVsGroupedExpr(t *testing.T) {
	block := parse(t, "(x) => x + 1")
	lambda, ok := block.Statements[0].(*ast.ExprStmt).X.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected compact Lambda, got %T", block.Statements[0])
	}
	if len(lambda.Params) != 1 || lambda.Params[0].Name != "x" {
		t.Fatalf("unexpected params: %+v", lambda.Params)
	}

	block2 := parse(t, "(1 + 2) * 3")
	bin, ok := block2.Statements[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	if !ok || bin.Op != "*" {
		t.Fatalf("expected grouped expr parsed as (1+2)*3, got %+v", block2.Statements[0])
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	block := parse(t, "a = b = 1")
	assign, ok := block.Statements[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", block.Statements[0])
	}
	if assign.Name != "a" {
		t.Fatalf("expected outer assignment target a, got %s", assign.Name)
	}
	if _, ok := assign.Value.(*ast.AssignStmt); !ok {
		t.Fatalf("expected nested assignment on the right, got %T", assign.Value)
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	block := parse(t, "x += 1")
	assign, ok := block.Statements[0].(*ast.AssignStmt)
	if !ok || assign.Op != "+=" {
		t.Fatalf("expected += AssignStmt, got %+v", block.Statements[0])
	}
}

func TestParseWhileBreakContinue(t *testing.T) {
	block := parse(t, `
while true {
    break
    continue
}`)
	wh, ok := block.Statements[0].(*ast.WhileExpr)
	if !ok {
		t.Fatalf("expected WhileExpr, got %T", block.Statements[0])
	}
	if len(wh.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements in while body, got %d", len(wh.Body.Statements))
	}
}
