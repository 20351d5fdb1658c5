// Package types defines the type algebra used by the bidirectional
// inferencer: concrete base types, unification variables, function types
// (with an optional variadic tail), and the substitution that binds
// variables to their resolved types.
package types

import (
	"fmt"
	"strings"
)

// Kind distinguishes the variants of Type.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
	KindUnit
	KindVar
	KindFun
)

// Type is a tagged union over the small set of types this language
// supports: Int, Bool, String, Unit, a unification variable, or a function
// type with fixed parameters, an optional variadic tail, and a result.
type Type struct {
	Kind Kind

	// KindVar
	VarID int

	// KindFun
	Params    []*Type
	Variadic  *Type // non-nil when the function accepts a variadic tail of this type
	Result    *Type
	MinParams int // number of leading Params that are required; trailing ones beyond this have defaults
}

var (
	Int    = &Type{Kind: KindInt}
	Bool   = &Type{Kind: KindBool}
	String = &Type{Kind: KindString}
	Unit   = &Type{Kind: KindUnit}
)

// NewVar builds a unification variable with the given id. Fresh ids come
// from a *VarGen (see vargen.go); the built-in schemes use negative ids,
// which a VarGen never issues.
func NewVar(id int) *Type {
	return &Type{Kind: KindVar, VarID: id}
}

// Fun builds a function type whose parameters are all required. variadic
// may be nil.
func Fun(params []*Type, variadic *Type, result *Type) *Type {
	return &Type{Kind: KindFun, Params: params, Variadic: variadic, Result: result, MinParams: len(params)}
}

// FunWithMin builds a function type where only the first minParams
// parameters are required; the remaining trailing ones are optional
// default-argument parameters. Call-site arity checking uses minParams
// as the lower bound and len(params) as the upper bound (when variadic
// is nil).
func FunWithMin(params []*Type, variadic *Type, result *Type, minParams int) *Type {
	return &Type{Kind: KindFun, Params: params, Variadic: variadic, Result: result, MinParams: minParams}
}

// String renders a type for diagnostics, e.g. "(Int, Int) -> Bool" or
// "(Int, ...Int) -> Int" for a variadic tail.
func (t *Type) String() string {
	switch t.Kind {
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindUnit:
		return "Unit"
	case KindVar:
		return fmt.Sprintf("t%d", t.VarID)
	case KindFun:
		var parts []string
		for _, p := range t.Params {
			parts = append(parts, p.String())
		}
		if t.Variadic != nil {
			parts = append(parts, "..."+t.Variadic.String())
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result.String())
	default:
		return "?"
	}
}
