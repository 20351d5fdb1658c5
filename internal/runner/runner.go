// Package runner wires lex -> parse -> desugar -> typecheck -> eval into
// two entry points: a one-shot file run and an incrementally-checked REPL
// session. Every stage's *errors.Diagnostic is converted to a
// pipeline.Result failure string at the point it crosses out of its own
// package, so nothing above this package ever sees a raw Diagnostic.
package runner

import (
	"fmt"
	"os"

	"github.com/rshaw/braid/internal/ast"
	"github.com/rshaw/braid/internal/core"
	"github.com/rshaw/braid/internal/desugar"
	"github.com/rshaw/braid/internal/errors"
	"github.com/rshaw/braid/internal/eval"
	"github.com/rshaw/braid/internal/lexer"
	"github.com/rshaw/braid/internal/parser"
	"github.com/rshaw/braid/internal/pipeline"
	"github.com/rshaw/braid/internal/runtime"
	"github.com/rshaw/braid/internal/tracelog"
	"github.com/rshaw/braid/internal/typecheck"
	"github.com/rshaw/braid/internal/types"
)

// Options controls the optional behaviour cmd/braid's `run` subcommand
// exposes as flags: a trace logger, an AST-dump hook, and whether to skip
// type-checking entirely.
type Options struct {
	Trace         *tracelog.Logger
	SkipTypeCheck bool
	DumpAST       func(*ast.Block)
}

// Session holds the structures that persist across a REPL's lifetime: the
// global type environment together with the substitution and variable
// generator that gave its bindings their type-variable ids, and the
// evaluator that owns the global runtime environment, store, and
// built-ins. The substitution and variable generator must outlive any
// single input: a later input's Checker has to keep seeing the ids and
// bindings an earlier input's committed types were built from, or
// replaying the same ids from zero would let an unrelated later
// unification collide with (and spuriously fail the occurs-check
// against) a type that id was never actually part of.
type Session struct {
	typeEnv   *types.Env
	subst     *types.Subst
	vars      *types.VarGen
	evaluator *eval.Evaluator
	trace     *tracelog.Logger
}

// NewSession creates a Session with a fresh built-ins scope at both the
// type and runtime level, ready for either a single file run or a REPL.
// Each level's global scope is a child of its built-ins layer, mirroring
// NewChecker's Builtins().Child(): REPL-level val/def names are defined
// in that child, never in the built-ins layer itself.
func NewSession(trace *tracelog.Logger) *Session {
	e := eval.New()
	e.Env = e.Env.Child()
	return &Session{
		typeEnv:   typecheck.Builtins().Child(),
		subst:     types.NewSubst(),
		vars:      &types.VarGen{},
		evaluator: e,
		trace:     trace,
	}
}

// parseAndDesugar runs lex -> parse -> desugar, the stages that never
// depend on persisted session state. On success it returns both the
// surface AST (for --dump-ast) and the desugared core program.
func parseAndDesugar(src, file string) (*ast.Block, *core.Seq, *errors.Diagnostic) {
	block, err := parser.Parse(lexer.New(src))
	if err != nil {
		return nil, nil, err.WithSource(src, file)
	}
	return block, desugar.Block(block), nil
}

// RunFile reads path and runs it start to finish as a single program: a
// fresh built-ins scope at both layers, one type-check pass (unless
// opts.SkipTypeCheck), one eval pass. There is no partial/incremental
// concern here, since a failing file run has no "next input" whose view
// of state needs protecting.
func RunFile(path string, opts Options) pipeline.Result[runtime.Value] {
	data, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return pipeline.Failure[runtime.Value](fmt.Sprintf("%s: %s", errors.KindInternal, ioErr))
	}
	return run(string(data), path, opts)
}

// RunSource runs inline source (cmd/braid's `-e/--eval` flag), displayed
// in diagnostics as "<eval>".
func RunSource(src string, opts Options) pipeline.Result[runtime.Value] {
	return run(src, "<eval>", opts)
}

func run(src, file string, opts Options) pipeline.Result[runtime.Value] {
	opts.Trace.Tracef("parsing %s", file)
	block, seq, diag := parseAndDesugar(src, file)
	if diag != nil {
		return pipeline.Failure[runtime.Value](diag.Failure())
	}
	if opts.DumpAST != nil {
		opts.DumpAST(block)
	}

	if !opts.SkipTypeCheck {
		opts.Trace.Tracef("type-checking %s", file)
		checker := typecheck.NewChecker()
		typecheck.Program(checker, seq)
		if checker.Failed() {
			return pipeline.Failure[runtime.Value](checker.Err().WithSource(src, file).Failure())
		}
	}

	opts.Trace.Tracef("evaluating %s", file)
	evaluator := eval.New()
	evaluator.Env = evaluator.Env.Child()
	value, _, err := evaluator.RunBlock(seq)
	if err != nil {
		return pipeline.Failure[runtime.Value](err.WithSource(src, file).Failure())
	}
	return pipeline.Success(value)
}

// EvalInput runs one REPL input against the Session's persisted state,
// atomically: it type-checks and then evaluates against throwaway clones
// of the persisted TypeEnv/Subst/RuntimeEnv/Store, and only commits those
// clones back into the Session if BOTH stages succeed. A failing input
// leaves every previously-established binding, and every
// previously-printed side effect's state, exactly as it was. The
// variable generator (s.vars) is the one piece of persisted state that is
// never cloned, deliberately: like the evaluator's address Counter, its
// ids only need to never be reused, not rolled back on failure.
func (s *Session) EvalInput(src string) pipeline.Result[runtime.Value] {
	s.trace.Tracef("parsing <repl> input")
	_, seq, diag := parseAndDesugar(src, "<repl>")
	if diag != nil {
		return pipeline.Failure[runtime.Value](diag.Failure())
	}

	s.trace.Tracef("type-checking <repl> input")
	typeAttempt := s.typeEnv.Clone()
	substAttempt := s.subst.Clone()
	checker := typecheck.NewCheckerWithState(typeAttempt, substAttempt, s.vars)
	typecheck.Program(checker, seq)
	if checker.Failed() {
		return pipeline.Failure[runtime.Value](checker.Err().WithSource(src, "<repl>").Failure())
	}

	s.trace.Tracef("evaluating <repl> input")
	envAttempt := s.evaluator.Env.Clone()
	storeAttempt := s.evaluator.Store.Clone()
	attempt := s.evaluator.WithState(envAttempt, storeAttempt)

	value, _, err := attempt.RunBlock(seq)
	if err != nil {
		return pipeline.Failure[runtime.Value](err.WithSource(src, "<repl>").Failure())
	}

	s.trace.Tracef("committing <repl> input's bindings")
	s.typeEnv = typeAttempt
	s.subst = substAttempt
	s.evaluator.Env = envAttempt
	s.evaluator.Store = storeAttempt
	return pipeline.Success(value)
}
