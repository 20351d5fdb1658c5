package typecheck

import "github.com/rshaw/braid/internal/types"

// Builtins returns the root environment seeded with the five built-in
// functions. They are the system's only points of ad-hoc polymorphism:
//
//   - print is variadic with every argument's type left free.
//   - input takes an optional String argument (a prompt) and returns String.
//   - str accepts any single argument and returns String.
//   - min/max require at least two Int arguments.
func Builtins() *types.Env {
	env := types.NewEnv()

	// print: (...) -> Unit. Each call site unifies the variadic slot
	// against itself, never against a previous call's argument types, so
	// it is handled specially in inferApp rather than via a single
	// Fun value (see infer.go).
	env.Define("print", types.Binding{Type: types.Fun(nil, types.NewVar(-1), types.Unit)})

	// input: (String = "") -> String; the prompt argument is optional.
	env.Define("input", types.Binding{Type: types.FunWithMin([]*types.Type{types.String}, nil, types.String, 0)})

	// str: (a) -> String, where 'a' is unconstrained per call site. Like
	// print, this needs a fresh variable per call, so it's special-cased
	// in infer.go rather than given one fixed polymorphic Type value.
	env.Define("str", types.Binding{Type: types.Fun([]*types.Type{types.NewVar(-2)}, nil, types.String)})

	env.Define("min", types.Binding{Type: types.Fun([]*types.Type{types.Int, types.Int}, types.Int, types.Int)})
	env.Define("max", types.Binding{Type: types.Fun([]*types.Type{types.Int, types.Int}, types.Int, types.Int)})

	return env
}

// polymorphicBuiltins names the built-ins whose type scheme contains a
// unification variable and so needs a fresh instantiation per call site
// (see instantiate in infer.go); min and max have no such variable, so
// listing them here is harmless but not load-bearing. print additionally
// gets its own inferApp special case, since its variadic tail must let
// each argument take a different type rather than forcing them to agree.
// A program that shadows one of these names with its own binding of the
// same name gets ordinary, non-polymorphic call-site checking against
// that binding instead — the special treatment only applies while the
// name still resolves to the untouched built-in (root) scope.
var polymorphicBuiltins = map[string]bool{
	"print": true,
	"str":   true,
	"min":   true,
	"max":   true,
}
