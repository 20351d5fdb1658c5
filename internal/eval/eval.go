// Package eval implements the tree-walking evaluator over the core AST:
// a two-phase (allocate, then evaluate) pass per block so that mutually
// recursive `def`s can call each other through addresses that exist
// before any of the block's closures are actually built.
package eval

import (
	"github.com/rshaw/braid/internal/core"
	"github.com/rshaw/braid/internal/errors"
	"github.com/rshaw/braid/internal/runtime"
)

// SignalKind distinguishes the non-local control-flow outcomes a
// statement can produce.
type SignalKind int

const (
	SigNone SignalKind = iota
	SigBreak
	SigContinue
	SigReturn
)

// Signal carries non-local control flow out of Eval: break/continue
// unwind to the nearest enclosing while, return unwinds to the nearest
// enclosing call frame, via a dedicated value rather than a
// language-level exception. An already type-checked program can never
// produce an unmatched signal.
type Signal struct {
	Kind  SignalKind
	Value runtime.Value // meaningful only when Kind == SigReturn
}

var normal = Signal{Kind: SigNone}

// Evaluator carries the mutable state threaded through evaluation: the
// address counter, the current environment layer, the store, and the
// `print`/`input` collaborators.
type Evaluator struct {
	Counter *runtime.Counter
	Env     *runtime.Environment
	Store   *runtime.Store

	Stdout   writer
	ReadLine func(prompt string) (string, error)
}

type writer interface {
	Write(p []byte) (int, error)
}

// Eval evaluates n, returning its value, any non-local control signal,
// and an error if evaluation failed (a RuntimeError or InternalError).
// Callers must check err first, then sig: a non-nil err or a non-SigNone
// sig means value is not meaningful as an ordinary result.
func (e *Evaluator) Eval(n core.Node) (runtime.Value, Signal, *errors.Diagnostic) {
	switch t := n.(type) {
	case *core.IntLit:
		return runtime.Int(t.Value), normal, nil
	case *core.StringLit:
		return runtime.String(t.Value), normal, nil
	case *core.BoolLit:
		return runtime.Bool(t.Value), normal, nil
	case *core.Var:
		return e.evalVar(t)
	case *core.Unary:
		return e.evalUnary(t)
	case *core.Binary:
		return e.evalBinary(t)
	case *core.App:
		return e.evalApp(t)
	case *core.Lambda:
		return e.evalLambdaLiteral(t)
	case *core.Let:
		return e.declareInPlace(t.Name, t.Init)
	case *core.LetMut:
		return e.declareInPlace(t.Name, t.Init)
	case *core.Assign:
		return e.evalAssign(t)
	case *core.Seq:
		return e.EvalBlock(t)
	case *core.If:
		return e.evalIf(t)
	case *core.While:
		return e.evalWhile(t)
	case *core.Break:
		return runtime.Unit, Signal{Kind: SigBreak}, nil
	case *core.Continue:
		return runtime.Unit, Signal{Kind: SigContinue}, nil
	case *core.Return:
		return e.evalReturn(t)
	default:
		return runtime.Unit, normal, errors.New(errors.KindInternal, n.Pos(), "eval: unhandled core node %T", n)
	}
}

// EvalBlock runs a nested block (lambda body, if/while body) in a fresh
// child scope, so its local val/def names don't leak into the enclosing
// one, then applies RunBlock's two-phase strategy within it.
func (e *Evaluator) EvalBlock(seq *core.Seq) (runtime.Value, Signal, *errors.Diagnostic) {
	outerEnv := e.Env
	e.Env = outerEnv.Child()
	defer func() { e.Env = outerEnv }()
	return e.RunBlock(seq)
}

// RunBlock runs seq's statements directly in e.Env — the caller has
// already set up the right scope, whether that's a fresh built-ins child
// for a one-shot file-mode run or the persisted (and, for an incremental
// REPL attempt, cloned) global scope — under a two-phase allocation
// strategy: Phase 1 allocates a fresh address for every val/var/def
// introduced directly by seq.Nodes, installing name -> address before any
// initializer runs. Phase 2 then evaluates each node in order, writing
// bindings' values into their pre-allocated addresses.
// Because the environment layer already contains every sibling's address
// by the time any closure in the block is built, a closure defined early
// can call a sibling `def` defined later.
func (e *Evaluator) RunBlock(seq *core.Seq) (runtime.Value, Signal, *errors.Diagnostic) {
	addrs := make([]runtime.Address, len(seq.Nodes))
	for i, n := range seq.Nodes {
		name, ok := bindingName(n)
		if !ok {
			continue
		}
		addr := e.Counter.Next()
		e.Store.Alloc(addr, runtime.Unit)
		e.Env.Define(name, addr)
		addrs[i] = addr
	}

	value := runtime.Unit
	for i, n := range seq.Nodes {
		var sig Signal
		var err *errors.Diagnostic
		if name, ok := bindingName(n); ok {
			value, sig, err = e.evalBindingInto(n, addrs[i], name)
		} else {
			value, sig, err = e.Eval(n)
		}
		if err != nil {
			return runtime.Unit, normal, err
		}
		if sig.Kind != SigNone {
			return value, sig, nil
		}
	}
	return value, normal, nil
}

func bindingName(n core.Node) (string, bool) {
	switch t := n.(type) {
	case *core.Let:
		return t.Name, true
	case *core.LetMut:
		return t.Name, true
	default:
		return "", false
	}
}

// evalBindingInto evaluates the initializer of a val/var/def discovered in
// Phase 1 and writes the result into its pre-allocated addr. Its own
// value as a statement is always Unit, matching the type-checker.
func (e *Evaluator) evalBindingInto(n core.Node, addr runtime.Address, name string) (runtime.Value, Signal, *errors.Diagnostic) {
	var init core.Node
	switch t := n.(type) {
	case *core.Let:
		init = t.Init
	case *core.LetMut:
		init = t.Init
	}
	v, sig, err := e.Eval(init)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	e.Store.Set(addr, v)
	_ = name
	return runtime.Unit, normal, nil
}

// declareInPlace handles a val/var/def reached outside of a direct block
// position (e.g. as a call argument expression) — grammatically legal
// since DeclStmt implements Expr, but rare enough that it gets no
// forward-reference benefit: the binding is simply allocated and
// evaluated on the spot.
func (e *Evaluator) declareInPlace(name string, init core.Node) (runtime.Value, Signal, *errors.Diagnostic) {
	v, sig, err := e.Eval(init)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	addr := e.Counter.Next()
	e.Store.Alloc(addr, v)
	e.Env.Define(name, addr)
	return runtime.Unit, normal, nil
}

func (e *Evaluator) evalVar(v *core.Var) (runtime.Value, Signal, *errors.Diagnostic) {
	addr, ok := e.Env.Lookup(v.Name)
	if !ok {
		return runtime.Unit, normal, errors.New(errors.KindInternal, v.Pos(), "undefined variable %q reached the evaluator", v.Name)
	}
	val, ok := e.Store.Get(addr)
	if !ok {
		return runtime.Unit, normal, errors.New(errors.KindInternal, v.Pos(), "address for %q has no store entry", v.Name)
	}
	return val, normal, nil
}

func (e *Evaluator) evalUnary(u *core.Unary) (runtime.Value, Signal, *errors.Diagnostic) {
	v, sig, err := e.Eval(u.Operand)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	switch u.Op {
	case "!":
		return runtime.Bool(!v.Bool), normal, nil
	case "-":
		return runtime.Int(-v.Int), normal, nil
	default:
		return runtime.Unit, normal, errors.New(errors.KindInternal, u.Pos(), "unknown unary operator %q", u.Op)
	}
}

func (e *Evaluator) evalBinary(b *core.Binary) (runtime.Value, Signal, *errors.Diagnostic) {
	switch b.Op {
	case "&&":
		return e.evalShortCircuit(b, false)
	case "||":
		return e.evalShortCircuit(b, true)
	}
	left, sig, err := e.Eval(b.Left)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	right, sig, err := e.Eval(b.Right)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	return e.applyBinary(b, left, right)
}

// evalShortCircuit evaluates b.Left and returns immediately without
// touching b.Right when that already decides the result: stopAt is the
// Bool value that short-circuits (false for &&, true for ||).
func (e *Evaluator) evalShortCircuit(b *core.Binary, stopAt bool) (runtime.Value, Signal, *errors.Diagnostic) {
	left, sig, err := e.Eval(b.Left)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	if left.Bool == stopAt {
		return left, normal, nil
	}
	return e.Eval(b.Right)
}

func (e *Evaluator) applyBinary(b *core.Binary, left, right runtime.Value) (runtime.Value, Signal, *errors.Diagnostic) {
	switch b.Op {
	case "+":
		if left.Kind == runtime.KindString || right.Kind == runtime.KindString {
			return runtime.String(left.Stringify() + right.Stringify()), normal, nil
		}
		return runtime.Int(left.Int + right.Int), normal, nil
	case "-":
		return runtime.Int(left.Int - right.Int), normal, nil
	case "*":
		return runtime.Int(left.Int * right.Int), normal, nil
	case "/":
		if right.Int == 0 {
			return runtime.Unit, normal, errors.New(errors.KindRuntime, b.Pos(), "division by zero")
		}
		q, _ := floorDivMod(left.Int, right.Int)
		return runtime.Int(q), normal, nil
	case "%":
		if right.Int == 0 {
			return runtime.Unit, normal, errors.New(errors.KindRuntime, b.Pos(), "division by zero")
		}
		_, m := floorDivMod(left.Int, right.Int)
		return runtime.Int(m), normal, nil
	case "==":
		return runtime.Bool(valuesEqual(left, right)), normal, nil
	case "!=":
		return runtime.Bool(!valuesEqual(left, right)), normal, nil
	case "<":
		return runtime.Bool(left.Int < right.Int), normal, nil
	case "<=":
		return runtime.Bool(left.Int <= right.Int), normal, nil
	case ">":
		return runtime.Bool(left.Int > right.Int), normal, nil
	case ">=":
		return runtime.Bool(left.Int >= right.Int), normal, nil
	default:
		return runtime.Unit, normal, errors.New(errors.KindInternal, b.Pos(), "unknown binary operator %q", b.Op)
	}
}

// floorDivMod computes mathematical (floor) division and modulo, so the
// result of % always carries the divisor's sign.
func floorDivMod(a, b int64) (q, m int64) {
	q = a / b
	m = a % b
	if m != 0 && (m < 0) != (b < 0) {
		q--
		m += b
	}
	return q, m
}

func valuesEqual(a, b runtime.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case runtime.KindInt:
		return a.Int == b.Int
	case runtime.KindBool:
		return a.Bool == b.Bool
	case runtime.KindString:
		return a.Str == b.Str
	case runtime.KindUnit:
		return true
	default:
		return false
	}
}

func (e *Evaluator) evalApp(app *core.App) (runtime.Value, Signal, *errors.Diagnostic) {
	fnVal, sig, err := e.Eval(app.Fn)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}

	args := make([]runtime.Value, 0, len(app.Args))
	for _, a := range app.Args {
		v, sig, err := e.Eval(a)
		if err != nil || sig.Kind != SigNone {
			return runtime.Unit, sig, err
		}
		args = append(args, v)
	}

	switch fnVal.Kind {
	case runtime.KindBuiltin:
		v, callErr := fnVal.Builtin.Fn(args)
		if callErr != nil {
			return runtime.Unit, normal, errors.New(errors.KindRuntime, app.Pos(), "%s", callErr.Error())
		}
		return v, normal, nil
	case runtime.KindClosure:
		return e.callClosure(app, fnVal.Closure, args)
	default:
		return runtime.Unit, normal, errors.New(errors.KindInternal, app.Pos(), "call to non-function value reached the evaluator")
	}
}

func (e *Evaluator) callClosure(app *core.App, closure *runtime.Closure, args []runtime.Value) (runtime.Value, Signal, *errors.Diagnostic) {
	callerEnv := e.Env
	callEnv := closure.Env.Child()

	for i, p := range closure.Params {
		var v runtime.Value
		switch {
		case i < len(args):
			v = args[i]
		case p.Default != nil:
			// Defaults evaluate once per call in the closure's defining
			// environment, not the caller's.
			e.Env = closure.Env
			dv, sig, err := e.Eval(p.Default)
			e.Env = callerEnv
			if err != nil {
				return runtime.Unit, normal, err
			}
			if sig.Kind != SigNone {
				return runtime.Unit, normal, errors.New(errors.KindInternal, app.Pos(), "control signal escaped a default expression")
			}
			v = dv
		default:
			return runtime.Unit, normal, errors.New(errors.KindInternal, app.Pos(), "missing argument %q reached the evaluator", p.Name)
		}
		addr := e.Counter.Next()
		e.Store.Alloc(addr, v)
		callEnv.Define(p.Name, addr)
	}

	e.Env = callEnv
	value, sig, err := e.Eval(closure.Body)
	e.Env = callerEnv
	if err != nil {
		return runtime.Unit, normal, err
	}
	switch sig.Kind {
	case SigReturn:
		return sig.Value, normal, nil
	case SigNone:
		return value, normal, nil
	default:
		return runtime.Unit, normal, errors.New(errors.KindInternal, app.Pos(), "break/continue escaped a function body")
	}
}

func (e *Evaluator) evalLambdaLiteral(l *core.Lambda) (runtime.Value, Signal, *errors.Diagnostic) {
	params := make([]runtime.Param, len(l.Params))
	for i, p := range l.Params {
		params[i] = runtime.Param{Name: p.Name, Default: p.Default}
	}
	closure := &runtime.Closure{Name: l.Name, Params: params, Body: l.Body, Env: e.Env}
	return runtime.ClosureValue(closure), normal, nil
}

func (e *Evaluator) evalAssign(n *core.Assign) (runtime.Value, Signal, *errors.Diagnostic) {
	v, sig, err := e.Eval(n.Value)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	addr, ok := e.Env.Lookup(n.Name)
	if !ok {
		return runtime.Unit, normal, errors.New(errors.KindInternal, n.Pos(), "undefined variable %q reached the evaluator", n.Name)
	}
	e.Store.Set(addr, v)
	return runtime.Unit, normal, nil
}

func (e *Evaluator) evalIf(n *core.If) (runtime.Value, Signal, *errors.Diagnostic) {
	cond, sig, err := e.Eval(n.Cond)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	if cond.Bool {
		return e.Eval(n.Then)
	}
	if n.Else == nil {
		return runtime.Unit, normal, nil
	}
	return e.Eval(n.Else)
}

func (e *Evaluator) evalWhile(n *core.While) (runtime.Value, Signal, *errors.Diagnostic) {
	for {
		cond, sig, err := e.Eval(n.Cond)
		if err != nil || sig.Kind != SigNone {
			return runtime.Unit, sig, err
		}
		if !cond.Bool {
			return runtime.Unit, normal, nil
		}
		_, sig, err = e.Eval(n.Body)
		if err != nil {
			return runtime.Unit, normal, err
		}
		switch sig.Kind {
		case SigBreak:
			return runtime.Unit, normal, nil
		case SigReturn:
			return runtime.Unit, sig, nil
		case SigContinue, SigNone:
			// loop again
		}
	}
}

func (e *Evaluator) evalReturn(n *core.Return) (runtime.Value, Signal, *errors.Diagnostic) {
	if n.Value == nil {
		return runtime.Unit, Signal{Kind: SigReturn, Value: runtime.Unit}, nil
	}
	v, sig, err := e.Eval(n.Value)
	if err != nil || sig.Kind != SigNone {
		return runtime.Unit, sig, err
	}
	return runtime.Unit, Signal{Kind: SigReturn, Value: v}, nil
}
