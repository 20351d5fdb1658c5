// Package runtime defines the evaluator's runtime state: addresses, the
// layered environment that maps names to addresses, the store that maps
// addresses to values, and the value representation itself.
package runtime

import (
	"fmt"
	"strings"

	"github.com/rshaw/braid/internal/core"
)

// Kind distinguishes the variants of Value.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
	KindUnit
	KindClosure
	KindBuiltin
)

// Param is a closure's parameter: a name and an optional default
// expression, evaluated lazily (once per call, only when the argument is
// omitted) in the closure's captured environment.
type Param struct {
	Name    string
	Default core.Node // nil if this parameter has no default
}

// Closure is the value produced by evaluating a lambda or `def`: its
// parameter list, body, and the environment in effect when it was
// defined. Capturing the defining environment (rather than a flattened
// copy of the values in scope) is what lets mutually recursive `def`s call
// each other and lets later mutations of captured `var`s be visible
// inside the closure.
type Closure struct {
	Name    string // non-empty for a `def`, used when the closure is stringified
	Params  []Param
	Body    core.Node
	Env     *Environment
}

// BuiltinFunc is a native function: it receives already-evaluated
// arguments and either returns a value or a runtime-error message.
type BuiltinFunc func(args []Value) (Value, error)

// Builtin is a native function value installed in the root environment.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// Value is the tagged union of runtime values: int, bool, string, unit,
// Closure, or Builtin. The zero Value is the Int 0; use Unit for the unit
// value.
type Value struct {
	Kind    Kind
	Int     int64
	Bool    bool
	Str     string
	Closure *Closure
	Builtin *Builtin
}

// Unit is the sole value of unit type.
var Unit = Value{Kind: KindUnit}

func Int(v int64) Value  { return Value{Kind: KindInt, Int: v} }
func Bool(v bool) Value  { return Value{Kind: KindBool, Bool: v} }
func String(v string) Value { return Value{Kind: KindString, Str: v} }

func ClosureValue(c *Closure) Value { return Value{Kind: KindClosure, Closure: c} }
func BuiltinValue(b *Builtin) Value { return Value{Kind: KindBuiltin, Builtin: b} }

// Stringify renders v the way `print` and string concatenation do:
// integers decimal, booleans "true"/"false", strings without quotes,
// unit as the empty string, and functions by name.
func (v Value) Stringify() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindUnit:
		return ""
	case KindClosure:
		if v.Closure.Name != "" {
			return "<function " + v.Closure.Name + ">"
		}
		return "<function>"
	case KindBuiltin:
		return "<builtin " + v.Builtin.Name + ">"
	default:
		return "?"
	}
}

// TypeName names v's runtime kind for diagnostics, e.g. "function not
// callable" errors.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindUnit:
		return "Unit"
	case KindClosure, KindBuiltin:
		return "Function"
	default:
		return "?"
	}
}

// JoinStringified stringifies each value and joins them with sep, used by
// the `print` builtin (space-separated).
func JoinStringified(values []Value, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Stringify()
	}
	return strings.Join(parts, sep)
}
