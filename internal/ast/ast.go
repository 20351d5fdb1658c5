// Package ast defines the surface syntax tree produced by the parser: a
// tree that still carries the language's sugar (compound assignment,
// implicit returns, val/var distinction) before the desugarer simplifies it
// into internal/core.
package ast

import "github.com/rshaw/braid/internal/lexer"

// Node is implemented by every surface AST node. Pos returns the position
// of the node's first token, used for error reporting.
type Node interface {
	Pos() lexer.Position
	node()
}

// Expr is a surface expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a surface statement node. Every Stmt is also usable as an Expr in
// expression position (the grammar is expression-oriented), so statement
// nodes implement Expr too.
type Stmt interface {
	Expr
	stmtNode()
}

type Base struct{ pos lexer.Position }

func (b Base) Pos() lexer.Position { return b.pos }
func (Base) node()                 {}

// ---- Literals ----

type IntLiteral struct {
	Base
	Value int64
}

type StringLiteral struct {
	Base
	Value string
}

type BoolLiteral struct {
	Base
	Value bool
}

func (IntLiteral) exprNode()    {}
func (StringLiteral) exprNode() {}
func (BoolLiteral) exprNode()   {}

// ---- Names ----

// Ident is a variable reference.
type Ident struct {
	Base
	Name string
}

func (Ident) exprNode() {}

// ---- Operators ----

type UnaryExpr struct {
	Base
	Op      string // "-" or "!"
	Operand Expr
}

type BinaryExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (UnaryExpr) exprNode()  {}
func (BinaryExpr) exprNode() {}

// ---- Calls, lambdas ----

// CallExpr applies Fn to Args.
type CallExpr struct {
	Base
	Fn   Expr
	Args []Expr
}

func (CallExpr) exprNode() {}

// Param is a function or lambda parameter with an optional type annotation
// (TypeAnn == "" when absent) and an optional default expression (Default
// == nil when absent). Default expressions must trail parameters without
// one; the parser enforces this.
type Param struct {
	Name    string
	TypeAnn string
	Default Expr
}

// Lambda is either the block form `fn(params) { body }` or the compact
// form `(params) => expr`; the parser normalizes both into this node, with
// CompactExp holding the compact form's single expression (nil otherwise).
type Lambda struct {
	Base
	Params     []Param
	ReturnAnn  string
	Body       *Block
	CompactExp Expr
}

func (Lambda) exprNode() {}

// ---- Blocks, declarations, statements ----

// Block is `{ stmt* expr? }`; it evaluates to the last expression's value,
// or Unit if the block ends on a bare statement.
type Block struct {
	Base
	Statements []Stmt
}

func (Block) exprNode() {}
func (Block) stmtNode() {}

// DeclStmt is a `val` or `var` binding with an optional type annotation and
// a required initializer.
type DeclStmt struct {
	Base
	Name    string
	TypeAnn string
	Mutable bool
	Value   Expr
}

func (DeclStmt) exprNode() {}
func (DeclStmt) stmtNode() {}

// AssignStmt covers `=`, `+=`, and `-=`; Op is "=", "+=", or "-=".
type AssignStmt struct {
	Base
	Name  string
	Op    string
	Value Expr
}

func (AssignStmt) exprNode() {}
func (AssignStmt) stmtNode() {}

// FuncDecl is `def name(params) { body }`, with an optional return-type
// annotation.
type FuncDecl struct {
	Base
	Name      string
	Params    []Param
	ReturnAnn string
	Body      *Block
}

func (FuncDecl) exprNode() {}
func (FuncDecl) stmtNode() {}

// IfExpr covers both `if c then a else b` and block-form `if c { a } else
// { b }`; Else is nil when the else branch is omitted (block form only).
type IfExpr struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (IfExpr) exprNode() {}
func (IfExpr) stmtNode() {}

type WhileExpr struct {
	Base
	Cond Expr
	Body *Block
}

func (WhileExpr) exprNode() {}
func (WhileExpr) stmtNode() {}

type BreakStmt struct{ Base }
type ContinueStmt struct{ Base }

func (BreakStmt) exprNode()    {}
func (BreakStmt) stmtNode()    {}
func (ContinueStmt) exprNode() {}
func (ContinueStmt) stmtNode() {}

// ReturnStmt is an explicit `return`; Value is nil for a bare `return`.
type ReturnStmt struct {
	Base
	Value Expr
}

func (ReturnStmt) exprNode() {}
func (ReturnStmt) stmtNode() {}

// ExprStmt wraps an expression used in statement position; the desugarer
// discards its value unless it is the block's trailing statement.
type ExprStmt struct {
	Base
	X Expr
}

func (ExprStmt) exprNode() {}
func (ExprStmt) stmtNode() {}

func NewBase(pos lexer.Position) Base { return Base{pos: pos} }
