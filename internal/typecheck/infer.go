package typecheck

import (
	"fmt"

	"github.com/rshaw/braid/internal/core"
	"github.com/rshaw/braid/internal/types"
)

// Program runs the full two-phase check directly in c.Env, which the
// caller has already set up as the right scope: a fresh built-ins child
// for file mode, or the persisted (and, for an incremental REPL attempt,
// cloned) global scope for REPL mode. Unlike a nested block, the
// top-level program never gets its own additional child scope — its
// bindings live exactly in the scope the caller supplied.
func Program(c *Checker, seq *core.Seq) *types.Type {
	return c.runBlock(seq)
}

// runBlock runs Phase 1 then Phase 2 over nodes in the Checker's current
// scope, without pushing a new one.
func (c *Checker) runBlock(seq *core.Seq) *types.Type {
	c.discover(seq.Nodes)
	last := types.Unit
	for _, n := range seq.Nodes {
		if c.Failed() {
			break
		}
		last = c.infer(n)
	}
	return last
}

// checkBlock runs a nested block (lambda body, if/while body) in a fresh
// child scope, so its local val/def names don't leak into the enclosing
// one.
func (c *Checker) checkBlock(seq *core.Seq) *types.Type {
	outer := c.Env
	c.Env = outer.Child()
	defer func() { c.Env = outer }()
	return c.runBlock(seq)
}

// infer synthesizes a type for n. Once the first error is recorded every
// call becomes a no-op that returns Unit, so a single pass over a failing
// program doesn't cascade into irrelevant follow-on errors.
func (c *Checker) infer(n core.Node) *types.Type {
	if c.Failed() {
		return types.Unit
	}
	switch t := n.(type) {
	case *core.IntLit:
		return types.Int
	case *core.StringLit:
		return types.String
	case *core.BoolLit:
		return types.Bool
	case *core.Var:
		return c.inferVar(t)
	case *core.Unary:
		return c.inferUnary(t)
	case *core.Binary:
		return c.inferBinary(t)
	case *core.App:
		return c.inferApp(t)
	case *core.Lambda:
		return c.inferLambda(t)
	case *core.Let:
		return c.inferLet(t)
	case *core.LetMut:
		return c.inferLetMut(t)
	case *core.Assign:
		return c.inferAssign(t)
	case *core.Seq:
		return c.checkBlock(t)
	case *core.If:
		return c.inferIf(t)
	case *core.While:
		return c.inferWhile(t)
	case *core.Break:
		return c.inferBreak(t)
	case *core.Continue:
		return c.inferContinue(t)
	case *core.Return:
		return c.inferReturn(t)
	default:
		panic(fmt.Sprintf("typecheck: unhandled core node %T", n))
	}
}

// check infers n and unifies the result against expected, returning
// expected.
func (c *Checker) check(n core.Node, expected *types.Type) *types.Type {
	actual := c.infer(n)
	c.unify(n, expected, actual)
	return expected
}

func (c *Checker) inferVar(v *core.Var) *types.Type {
	b, scope, ok := c.Env.LookupScope(v.Name)
	if !ok {
		c.failAt(v, "undefined: %s", v.Name)
		return c.Vars.Fresh()
	}
	if polymorphicBuiltins[v.Name] && scope.IsRoot() {
		return c.instantiate(b.Type)
	}
	return b.Type
}

// instantiate replaces every unification variable in t with a fresh one,
// consistently (the same source variable maps to the same fresh one
// throughout t). This is how print and str's built-in schemes get a new,
// unconstrained type variable per call site instead of sharing one that
// would wrongly force every call to agree.
func (c *Checker) instantiate(t *types.Type) *types.Type {
	mapping := make(map[int]*types.Type)
	var rec func(t *types.Type) *types.Type
	rec = func(t *types.Type) *types.Type {
		switch t.Kind {
		case types.KindVar:
			if fresh, ok := mapping[t.VarID]; ok {
				return fresh
			}
			fresh := c.Vars.Fresh()
			mapping[t.VarID] = fresh
			return fresh
		case types.KindFun:
			params := make([]*types.Type, len(t.Params))
			for i, p := range t.Params {
				params[i] = rec(p)
			}
			var variadic *types.Type
			if t.Variadic != nil {
				variadic = rec(t.Variadic)
			}
			return types.FunWithMin(params, variadic, rec(t.Result), t.MinParams)
		default:
			return t
		}
	}
	return rec(t)
}

func (c *Checker) inferUnary(u *core.Unary) *types.Type {
	switch u.Op {
	case "!":
		c.check(u.Operand, types.Bool)
		return types.Bool
	case "-":
		c.check(u.Operand, types.Int)
		return types.Int
	default:
		panic("typecheck: unknown unary operator " + u.Op)
	}
}

func (c *Checker) inferBinary(b *core.Binary) *types.Type {
	switch b.Op {
	case "+":
		return c.inferPlus(b)
	case "-", "*", "/", "%":
		c.check(b.Left, types.Int)
		c.check(b.Right, types.Int)
		return types.Int
	case "==", "!=":
		left := c.infer(b.Left)
		c.check(b.Right, left)
		return types.Bool
	case "<", "<=", ">", ">=":
		c.check(b.Left, types.Int)
		c.check(b.Right, types.Int)
		return types.Bool
	case "&&", "||":
		c.check(b.Left, types.Bool)
		c.check(b.Right, types.Bool)
		return types.Bool
	default:
		panic("typecheck: unknown binary operator " + b.Op)
	}
}

// inferPlus implements `+`'s overload: String concatenation if either side
// is known to be String, Int addition otherwise.
func (c *Checker) inferPlus(b *core.Binary) *types.Type {
	left := c.Subst.Apply(c.infer(b.Left))
	right := c.Subst.Apply(c.infer(b.Right))
	if left.Kind == types.KindString || right.Kind == types.KindString {
		c.unify(b, types.String, left)
		c.unify(b, types.String, right)
		return types.String
	}
	c.unify(b, types.Int, left)
	c.unify(b, types.Int, right)
	return types.Int
}

func (c *Checker) inferApp(app *core.App) *types.Type {
	if v, ok := app.Fn.(*core.Var); ok && v.Name == "print" {
		if _, scope, found := c.Env.LookupScope(v.Name); found && scope.IsRoot() {
			for _, a := range app.Args {
				c.infer(a)
			}
			return types.Unit
		}
	}
	fnType := c.infer(app.Fn)
	return c.checkCall(app, fnType)
}

func (c *Checker) checkCall(app *core.App, fnType *types.Type) *types.Type {
	if c.Failed() {
		return types.Unit
	}
	fn := c.Subst.Apply(fnType)
	if fn.Kind != types.KindFun {
		c.failAt(app, "cannot call a value of type %s", fn.String())
		return c.Vars.Fresh()
	}

	nargs := len(app.Args)
	max := len(fn.Params)
	if nargs < fn.MinParams || (fn.Variadic == nil && nargs > max) {
		c.failAt(app, "wrong number of arguments: expected %s, got %d", arityDescription(fn), nargs)
		for _, a := range app.Args {
			c.infer(a)
		}
		return fn.Result
	}
	for i, a := range app.Args {
		if i < max {
			c.check(a, fn.Params[i])
		} else {
			c.check(a, fn.Variadic)
		}
	}
	return fn.Result
}

func arityDescription(fn *types.Type) string {
	if fn.Variadic != nil {
		return fmt.Sprintf("at least %d argument(s)", fn.MinParams)
	}
	if fn.MinParams == len(fn.Params) {
		return fmt.Sprintf("%d argument(s)", len(fn.Params))
	}
	return fmt.Sprintf("between %d and %d argument(s)", fn.MinParams, len(fn.Params))
}

func (c *Checker) inferLambda(l *core.Lambda) *types.Type {
	outer := c.Env
	c.Env = outer.Child()
	defer func() { c.Env = outer }()

	params := make([]*types.Type, len(l.Params))
	minParams := len(l.Params)
	sawDefault := false
	for i, p := range l.Params {
		pt := c.annotationOrFresh(l, p.TypeAnn)
		params[i] = pt
		if p.Default != nil {
			if !sawDefault {
				minParams = i
				sawDefault = true
			}
			// Defaults are checked against the lambda's defining scope,
			// not this scope extended with its own parameters: the
			// evaluator likewise evaluates a default in the closure's
			// captured (defining) environment, which none of this
			// lambda's own parameters — including earlier ones in the
			// same parameter list — are ever added to (eval.go's
			// callClosure only extends callEnv, never closure.Env).
			// Checking here against c.Env instead would accept
			// `def f(a, b = a) {...}` at type-check time only for it to
			// hit an internal "undefined variable" error at call time.
			inner := c.Env
			c.Env = outer
			c.check(p.Default, pt)
			c.Env = inner
		}
		c.Env.Define(p.Name, types.Binding{Type: pt, Mutable: false})
	}
	result := c.annotationOrFresh(l, l.ReturnAnn)

	c.ReturnStack = append(c.ReturnStack, result)
	bodyType := c.infer(l.Body)
	c.ReturnStack = c.ReturnStack[:len(c.ReturnStack)-1]
	c.unify(l, result, bodyType)

	fnType := types.FunWithMin(params, nil, result, minParams)
	if l.Name != "" {
		if b, ok := outer.Lookup(l.Name); ok {
			c.unify(l, b.Type, fnType)
			return b.Type
		}
	}
	return fnType
}

func (c *Checker) inferLet(n *core.Let) *types.Type {
	initType := c.infer(n.Init)
	if b, ok := c.Env.Lookup(n.Name); ok {
		c.unify(n, b.Type, initType)
	}
	return types.Unit
}

func (c *Checker) inferLetMut(n *core.LetMut) *types.Type {
	initType := c.infer(n.Init)
	if b, ok := c.Env.Lookup(n.Name); ok {
		c.unify(n, b.Type, initType)
	}
	return types.Unit
}

func (c *Checker) inferAssign(n *core.Assign) *types.Type {
	b, ok := c.Env.Lookup(n.Name)
	if !ok {
		c.failAt(n, "undefined: %s", n.Name)
		c.infer(n.Value)
		return types.Unit
	}
	if !b.Mutable {
		c.failAt(n, "cannot assign to immutable binding: %s", n.Name)
		c.infer(n.Value)
		return types.Unit
	}
	c.check(n.Value, b.Type)
	return types.Unit
}

func (c *Checker) inferIf(n *core.If) *types.Type {
	c.check(n.Cond, types.Bool)
	thenType := c.infer(n.Then)
	if n.Else == nil {
		c.unify(n, thenType, types.Unit)
		return types.Unit
	}
	elseType := c.infer(n.Else)
	c.unify(n, thenType, elseType)
	return thenType
}

func (c *Checker) inferWhile(n *core.While) *types.Type {
	c.check(n.Cond, types.Bool)
	c.LoopDepth++
	bodyType := c.infer(n.Body)
	c.LoopDepth--
	c.unify(n, bodyType, types.Unit)
	return types.Unit
}

func (c *Checker) inferBreak(n *core.Break) *types.Type {
	if c.LoopDepth == 0 {
		c.failAt(n, "break outside of a loop")
	}
	return types.Unit
}

func (c *Checker) inferContinue(n *core.Continue) *types.Type {
	if c.LoopDepth == 0 {
		c.failAt(n, "continue outside of a loop")
	}
	return types.Unit
}

func (c *Checker) inferReturn(n *core.Return) *types.Type {
	valueType := types.Unit
	if n.Value != nil {
		valueType = c.infer(n.Value)
	}
	if len(c.ReturnStack) == 0 {
		c.failAt(n, "return outside of a function")
		return types.Unit
	}
	c.unify(n, c.ReturnStack[len(c.ReturnStack)-1], valueType)
	// A return never yields a value in place, so it fits any expected type.
	return c.Vars.Fresh()
}
