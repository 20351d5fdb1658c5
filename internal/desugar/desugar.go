// Package desugar rewrites the surface AST into the smaller core AST:
// compound assignment becomes plain assignment over a binary expression,
// val/var become explicit mutability markers, and def becomes an ordinary
// (immutable) binding to a lambda value. The desugarer is pure and
// position-preserving: every core node keeps the position of the surface
// node it came from.
package desugar

import (
	"github.com/rshaw/braid/internal/ast"
	"github.com/rshaw/braid/internal/core"
)

// Block desugars a surface block (including the implicit top-level
// program block) into a core.Seq.
func Block(b *ast.Block) *core.Seq {
	nodes := make([]core.Node, 0, len(b.Statements))
	for _, stmt := range b.Statements {
		nodes = append(nodes, Stmt(stmt))
	}
	return &core.Seq{Base: core.NewBase(b.Pos()), Nodes: nodes}
}

// Stmt desugars a single surface statement.
func Stmt(s ast.Stmt) core.Node {
	switch n := s.(type) {
	case *ast.DeclStmt:
		init := Expr(n.Value)
		if n.Mutable {
			return &core.LetMut{Base: core.NewBase(n.Pos()), Name: n.Name, TypeAnn: n.TypeAnn, Init: init}
		}
		return &core.Let{Base: core.NewBase(n.Pos()), Name: n.Name, TypeAnn: n.TypeAnn, Init: init}

	case *ast.FuncDecl:
		return &core.Let{
			Base: core.NewBase(n.Pos()),
			Name: n.Name,
			Init: &core.Lambda{
				Base:      core.NewBase(n.Pos()),
				Name:      n.Name,
				Params:    Params(n.Params),
				ReturnAnn: n.ReturnAnn,
				Body:      Block(n.Body),
			},
		}

	case *ast.AssignStmt:
		value := Expr(n.Value)
		switch n.Op {
		case "+=":
			value = &core.Binary{
				Base:  core.NewBase(n.Pos()),
				Op:    "+",
				Left:  &core.Var{Base: core.NewBase(n.Pos()), Name: n.Name},
				Right: value,
			}
		case "-=":
			value = &core.Binary{
				Base:  core.NewBase(n.Pos()),
				Op:    "-",
				Left:  &core.Var{Base: core.NewBase(n.Pos()), Name: n.Name},
				Right: value,
			}
		}
		return &core.Assign{Base: core.NewBase(n.Pos()), Name: n.Name, Value: value}

	case *ast.BreakStmt:
		return &core.Break{Base: core.NewBase(n.Pos())}
	case *ast.ContinueStmt:
		return &core.Continue{Base: core.NewBase(n.Pos())}
	case *ast.ReturnStmt:
		var value core.Node
		if n.Value != nil {
			value = Expr(n.Value)
		}
		return &core.Return{Base: core.NewBase(n.Pos()), Value: value}

	case *ast.ExprStmt:
		return Expr(n.X)

	case *ast.IfExpr:
		return ifExpr(n)
	case *ast.WhileExpr:
		return &core.While{Base: core.NewBase(n.Pos()), Cond: Expr(n.Cond), Body: Block(n.Body)}
	case *ast.Block:
		return Block(n)

	default:
		panic("desugar: unhandled statement type")
	}
}

// Expr desugars a surface expression. Statement-shaped expressions
// (DeclStmt, AssignStmt, IfExpr, WhileExpr, Block, ...) reach here whenever
// they occur in expression position, e.g. as a call argument.
func Expr(e ast.Expr) core.Node {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return &core.IntLit{Base: core.NewBase(n.Pos()), Value: n.Value}
	case *ast.StringLiteral:
		return &core.StringLit{Base: core.NewBase(n.Pos()), Value: n.Value}
	case *ast.BoolLiteral:
		return &core.BoolLit{Base: core.NewBase(n.Pos()), Value: n.Value}
	case *ast.Ident:
		return &core.Var{Base: core.NewBase(n.Pos()), Name: n.Name}
	case *ast.UnaryExpr:
		return &core.Unary{Base: core.NewBase(n.Pos()), Op: n.Op, Operand: Expr(n.Operand)}
	case *ast.BinaryExpr:
		return &core.Binary{Base: core.NewBase(n.Pos()), Op: n.Op, Left: Expr(n.Left), Right: Expr(n.Right)}
	case *ast.CallExpr:
		args := make([]core.Node, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, Expr(a))
		}
		return &core.App{Base: core.NewBase(n.Pos()), Fn: Expr(n.Fn), Args: args}
	case *ast.Lambda:
		body := n.CompactExp
		if body != nil {
			return &core.Lambda{Base: core.NewBase(n.Pos()), Params: Params(n.Params), ReturnAnn: n.ReturnAnn, Body: Expr(body)}
		}
		return &core.Lambda{Base: core.NewBase(n.Pos()), Params: Params(n.Params), ReturnAnn: n.ReturnAnn, Body: Block(n.Body)}
	case *ast.Block:
		return Block(n)
	case *ast.IfExpr:
		return ifExpr(n)
	case *ast.WhileExpr:
		return &core.While{Base: core.NewBase(n.Pos()), Cond: Expr(n.Cond), Body: Block(n.Body)}
	case ast.Stmt:
		return Stmt(n)
	default:
		panic("desugar: unhandled expression type")
	}
}

func ifExpr(n *ast.IfExpr) *core.If {
	result := &core.If{Base: core.NewBase(n.Pos()), Cond: Expr(n.Cond), Then: Expr(n.Then)}
	if n.Else != nil {
		result.Else = Expr(n.Else)
	}
	return result
}

func Params(params []ast.Param) []core.Param {
	out := make([]core.Param, 0, len(params))
	for _, p := range params {
		cp := core.Param{Name: p.Name, TypeAnn: p.TypeAnn}
		if p.Default != nil {
			cp.Default = Expr(p.Default)
		}
		out = append(out, cp)
	}
	return out
}
