package runner

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/rshaw/braid/internal/runtime"
)

func wantSuccess(t *testing.T, r interface {
	OK() bool
	Message() string
}) {
	t.Helper()
	if !r.OK() {
		t.Fatalf("expected success, got failure: %s", r.Message())
	}
}

// TestLiteralScenarios snapshots the five non-REPL literal end-to-end
// scenarios this language is expected to handle, using go-snaps for each
// outcome; the REPL scenario is TestREPLSessionAtomicity.
func TestLiteralScenarios(t *testing.T) {
	t.Run("print_arithmetic", func(t *testing.T) {
		r := RunSource("print(1 + 2)", Options{})
		wantSuccess(t, r)
		snaps.MatchSnapshot(t, r.Value().Stringify())
	})

	t.Run("mutual_recursion", func(t *testing.T) {
		r := RunSource(`
def isEven(n) { if n == 0 then true else isOdd(n - 1) }
def isOdd(n)  { if n == 0 then false else isEven(n - 1) }
isEven(10)
`, Options{})
		wantSuccess(t, r)
		snaps.MatchSnapshot(t, r.Value().Stringify())
	})

	t.Run("default_argument", func(t *testing.T) {
		r := RunSource(`
def add(a, b = 42) { a + b }
add(8)
`, Options{})
		wantSuccess(t, r)
		snaps.MatchSnapshot(t, r.Value().Stringify())
	})

	t.Run("reassign_immutable_is_type_error", func(t *testing.T) {
		r := RunSource("val x = 1\nx = 2", Options{})
		if r.OK() {
			t.Fatalf("expected TypeError, got success: %v", r.Value())
		}
		snaps.MatchSnapshot(t, r.Message())
	})

	t.Run("min_arity_is_type_error", func(t *testing.T) {
		r := RunSource("min(3)", Options{})
		if r.OK() {
			t.Fatalf("expected TypeError, got success: %v", r.Value())
		}
		snaps.MatchSnapshot(t, r.Message())
	})
}

// TestREPLSessionAtomicity covers the REPL atomicity scenario: a failing
// input (assigning to the immutable binding `a`) must not disturb state
// a prior input established — proven by a subsequent `print` still
// observing the original value.
func TestREPLSessionAtomicity(t *testing.T) {
	s := NewSession(nil)

	r1 := s.EvalInput("val a = 10")
	wantSuccess(t, r1)
	if r1.Value().Kind != runtime.KindUnit {
		t.Fatalf("expected Unit from a val declaration, got %v", r1.Value())
	}

	r2 := s.EvalInput("a + 5")
	wantSuccess(t, r2)
	if r2.Value().Int != 15 {
		t.Fatalf("expected 15, got %v", r2.Value())
	}

	r3 := s.EvalInput(`a = "hi"`)
	if r3.OK() {
		t.Fatalf("expected TypeError assigning to immutable binding 'a', got success")
	}

	var out bytes.Buffer
	s.evaluator.Stdout = &out
	r4 := s.EvalInput("print(a)")
	wantSuccess(t, r4)
	if got := out.String(); got != "10\n" {
		t.Fatalf("expected prior binding for 'a' (10) to survive the failed assignment, got %q", got)
	}
}

// TestREPLBindingUserFunctionAcrossInputs guards against a VarGen that
// restarts at id 0 for every input: a second input that merely binds a
// name to an earlier input's function (without calling it) allocates a
// fresh type variable for the new name and unifies it against the
// function's stored, still-unresolved parameter/result type variables.
// If those ids were reissued from zero they can collide with the new
// input's own fresh ids and trip a spurious occurs-check failure; a
// session-lifetime VarGen (and Subst) keeps every input's ids distinct.
func TestREPLBindingUserFunctionAcrossInputs(t *testing.T) {
	s := NewSession(nil)

	wantSuccess(t, s.EvalInput("def id(x) { x }"))
	wantSuccess(t, s.EvalInput("val g = id"))
	r := s.EvalInput("g(5)")
	wantSuccess(t, r)
	if r.Value().Int != 5 {
		t.Fatalf("expected 5, got %v", r.Value())
	}
}
