package ast

import (
	"fmt"
	"strings"
)

// Dump renders b as an indented tree, one node per line, for the
// `--dump-ast` flag: a readable, source-like rendering, done as a single
// recursive walk instead of a String() method per node, since the
// surface tree here is small enough that one function covers every case
// without per-node boilerplate.
func Dump(b *Block) string {
	var sb strings.Builder
	dumpBlock(&sb, b, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpBlock(sb *strings.Builder, b *Block, depth int) {
	indent(sb, depth)
	sb.WriteString("Block\n")
	for _, stmt := range b.Statements {
		dumpNode(sb, stmt, depth+1)
	}
}

func dumpNode(sb *strings.Builder, n Node, depth int) {
	indent(sb, depth)
	switch v := n.(type) {
	case *IntLiteral:
		fmt.Fprintf(sb, "Int %d\n", v.Value)
	case *StringLiteral:
		fmt.Fprintf(sb, "String %q\n", v.Value)
	case *BoolLiteral:
		fmt.Fprintf(sb, "Bool %v\n", v.Value)
	case *Ident:
		fmt.Fprintf(sb, "Ident %s\n", v.Name)
	case *UnaryExpr:
		fmt.Fprintf(sb, "Unary %s\n", v.Op)
		dumpNode(sb, v.Operand, depth+1)
	case *BinaryExpr:
		fmt.Fprintf(sb, "Binary %s\n", v.Op)
		dumpNode(sb, v.Left, depth+1)
		dumpNode(sb, v.Right, depth+1)
	case *CallExpr:
		sb.WriteString("Call\n")
		dumpNode(sb, v.Fn, depth+1)
		for _, a := range v.Args {
			dumpNode(sb, a, depth+1)
		}
	case *Lambda:
		fmt.Fprintf(sb, "Lambda(%s)\n", paramList(v.Params))
		if v.Body != nil {
			dumpBlock(sb, v.Body, depth+1)
		} else {
			dumpNode(sb, v.CompactExp, depth+1)
		}
	case *Block:
		dumpBlock(sb, v, depth)
	case *DeclStmt:
		kind := "val"
		if v.Mutable {
			kind = "var"
		}
		fmt.Fprintf(sb, "%s %s%s\n", kind, v.Name, typeAnnSuffix(v.TypeAnn))
		dumpNode(sb, v.Value, depth+1)
	case *AssignStmt:
		fmt.Fprintf(sb, "Assign %s %s\n", v.Name, v.Op)
		dumpNode(sb, v.Value, depth+1)
	case *FuncDecl:
		fmt.Fprintf(sb, "def %s(%s)%s\n", v.Name, paramList(v.Params), typeAnnSuffix(v.ReturnAnn))
		dumpBlock(sb, v.Body, depth+1)
	case *IfExpr:
		sb.WriteString("If\n")
		dumpNode(sb, v.Cond, depth+1)
		dumpNode(sb, v.Then, depth+1)
		if v.Else != nil {
			dumpNode(sb, v.Else, depth+1)
		}
	case *WhileExpr:
		sb.WriteString("While\n")
		dumpNode(sb, v.Cond, depth+1)
		dumpBlock(sb, v.Body, depth+1)
	case *BreakStmt:
		sb.WriteString("Break\n")
	case *ContinueStmt:
		sb.WriteString("Continue\n")
	case *ReturnStmt:
		sb.WriteString("Return\n")
		if v.Value != nil {
			dumpNode(sb, v.Value, depth+1)
		}
	case *ExprStmt:
		dumpNode(sb, v.X, depth)
	default:
		fmt.Fprintf(sb, "%T\n", n)
	}
}

func paramList(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		s := p.Name + typeAnnSuffix(p.TypeAnn)
		if p.Default != nil {
			s += " = <default>"
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func typeAnnSuffix(ann string) string {
	if ann == "" {
		return ""
	}
	return ": " + ann
}
