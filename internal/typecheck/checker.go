// Package typecheck implements a bidirectional, monomorphic
// Hindley-Milner-style inferencer: two-phase scope discovery per block
// (register names, then solve constraints) plus standard unification
// with an occurs-check.
//
// Checker is the explicit context object threading state through both
// phases: it holds the substitution, the current TypeEnv, a loop-depth
// counter (for validating break/continue), and the fresh-variable
// generator.
package typecheck

import (
	"github.com/rshaw/braid/internal/core"
	"github.com/rshaw/braid/internal/errors"
	"github.com/rshaw/braid/internal/types"
)

// Checker carries the mutable state threaded through both discovery and
// validation passes for a single block (and, transitively, its nested
// blocks). One Checker is created per pipeline run; the REPL creates a new
// one per input but seeds its Env from the persisted global scope.
type Checker struct {
	Subst     *types.Subst
	Vars      *types.VarGen
	Env       *types.Env
	LoopDepth int
	// ReturnStack holds the enclosing function's return type, innermost
	// last, so `return expr` can unify its value against the right
	// function's result even when lambdas nest.
	ReturnStack []*types.Type
	err         *errors.Diagnostic
}

// NewChecker creates a Checker whose outermost scope is the built-in
// environment: built-ins are seeded in the outermost type layer.
func NewChecker() *Checker {
	return &Checker{
		Subst: types.NewSubst(),
		Vars:  &types.VarGen{},
		Env:   Builtins().Child(),
	}
}

// NewCheckerWithState creates a Checker reusing a persisted global Env,
// Subst, and VarGen (the REPL's incremental type-check), rather than
// starting each input from a bare built-ins scope and a fresh id space.
// Every REPL input after the first must keep seeing the same variable ids
// and the same substitution bindings a prior input established: a fresh
// per-input VarGen would reissue ids like t0/t1 that a previously
// committed binding's type already uses, so an unrelated later unification
// could spuriously bind one of those ids to something that (falsely)
// fails the occurs-check. env, subst, and vars are whatever the caller
// wants this attempt to run against — typically throwaway clones of the
// session's persisted state, swapped in only once the whole input
// succeeds.
func NewCheckerWithState(env *types.Env, subst *types.Subst, vars *types.VarGen) *Checker {
	return &Checker{
		Subst: subst,
		Vars:  vars,
		Env:   env,
	}
}

// Failed reports whether a type error has already been recorded; every
// check/infer call should no-op once this is true, since the first error
// aborts the rest of the pass.
func (c *Checker) Failed() bool { return c.err != nil }

// Err returns the first recorded error, or nil.
func (c *Checker) Err() *errors.Diagnostic { return c.err }

// failAt records the first TypeError encountered; subsequent calls are
// ignored so the earliest failure wins.
func (c *Checker) failAt(pos core.Node, format string, args ...any) {
	if c.err == nil {
		c.err = errors.New(errors.KindType, pos.Pos(), format, args...)
	}
}

func (c *Checker) unify(pos core.Node, a, b *types.Type) bool {
	if c.Failed() {
		return false
	}
	if err := c.Subst.Unify(a, b); err != nil {
		c.failAt(pos, "%s", err.Error())
		return false
	}
	return true
}
