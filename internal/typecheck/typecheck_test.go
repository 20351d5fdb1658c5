package typecheck

import (
	"testing"

	"github.com/rshaw/braid/internal/desugar"
	"github.com/rshaw/braid/internal/lexer"
	"github.com/rshaw/braid/internal/parser"
	"github.com/rshaw/braid/internal/types"
)

func mustCheck(t *testing.T, src string) *Checker {
	t.Helper()
	block, err := parser.Parse(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	seq := desugar.Block(block)
	c := NewChecker()
	Program(c, seq)
	return c
}

func wantOK(t *testing.T, src string) *Checker {
	t.Helper()
	c := mustCheck(t, src)
	if c.Failed() {
		t.Fatalf("unexpected type error for %q: %v", src, c.Err())
	}
	return c
}

func wantErr(t *testing.T, src string) *Checker {
	t.Helper()
	c := mustCheck(t, src)
	if !c.Failed() {
		t.Fatalf("expected type error for %q, got none", src)
	}
	return c
}

func TestLiterals(t *testing.T) {
	wantOK(t, "1\n")
	wantOK(t, `"hi"` + "\n")
	wantOK(t, "true\n")
}

func TestIntArithmetic(t *testing.T) {
	wantOK(t, "1 + 2 * 3\n")
	wantErr(t, `1 + "a"` + "\n")
}

func TestStringConcat(t *testing.T) {
	wantOK(t, `"a" + "b"` + "\n")
	wantOK(t, `"a" + str(1)` + "\n")
}

func TestComparisonsAndLogic(t *testing.T) {
	wantOK(t, "1 < 2\n")
	wantOK(t, "1 == 1\n")
	wantErr(t, `1 == "a"` + "\n")
	wantOK(t, "true && false\n")
	wantErr(t, "1 && true\n")
}

func TestUndefinedVariable(t *testing.T) {
	wantErr(t, "x + 1\n")
}

func TestValAndVar(t *testing.T) {
	wantOK(t, "val x = 1\nx + 1\n")
	wantOK(t, "var x = 1\nx = 2\n")
	wantErr(t, "val x = 1\nx = 2\n")
}

func TestReassignTypeMismatch(t *testing.T) {
	wantErr(t, "var x = 1\nx = \"a\"\n")
}

func TestMutualRecursion(t *testing.T) {
	wantOK(t, `
def isEven(n) {
  if n == 0 then true else isOdd(n - 1)
}
def isOdd(n) {
  if n == 0 then false else isEven(n - 1)
}
isEven(10)
`)
}

func TestDefaultArgs(t *testing.T) {
	wantOK(t, `
def add(a, b = 42) {
  a + b
}
add(1)
add(1, 2)
`)
}

func TestDefaultArgsArityError(t *testing.T) {
	wantErr(t, `
def add(a, b = 42) {
  a + b
}
add()
`)
	wantErr(t, `
def add(a, b = 42) {
  a + b
}
add(1, 2, 3)
`)
}

func TestDefaultCannotReferenceSiblingParameter(t *testing.T) {
	// A default expression evaluates in the closure's defining
	// environment (eval.go's callClosure), which never contains any of
	// the function's own parameters — not even earlier ones in the same
	// list. Accepting `b`'s default here would type-check a program that
	// is guaranteed to hit an internal "undefined variable" error the
	// first time a caller actually omits b.
	wantErr(t, `
def f(a, b = a) {
  a + b
}
f(1)
`)
}

func TestDefaultsMustBeAssignmentCompatible(t *testing.T) {
	wantErr(t, `
def f(a, b: Int = "x") {
  a
}
`)
}

func TestTypeAnnotations(t *testing.T) {
	wantOK(t, "val x: Int = 1\n")
	wantErr(t, `val x: Int = "a"` + "\n")
	wantErr(t, "val x: Frobnicate = 1\n")
}

func TestIfExpression(t *testing.T) {
	wantOK(t, "val x = if true then 1 else 2\n")
	wantErr(t, "if true then 1 else \"a\"\n")
	wantErr(t, "if true { 1 }\n")
}

func TestWhileAndLoopControl(t *testing.T) {
	wantOK(t, `
var i = 0
while i < 10 {
  i += 1
  if i == 5 { continue }
  if i == 9 { break }
}
`)
	wantErr(t, "break\n")
	wantErr(t, "continue\n")
}

func TestReturnInsideAndOutsideFunction(t *testing.T) {
	wantOK(t, `
def f() {
  return 1
}
f()
`)
	wantErr(t, "return 1\n")
}

func TestReturnTypeMismatch(t *testing.T) {
	wantErr(t, `
def f(): Int {
  return "a"
}
`)
}

func TestLambdaAndClosure(t *testing.T) {
	wantOK(t, `
val add = (a, b) => a + b
add(1, 2)
`)
	wantOK(t, `
def makeAdder(x) {
  fn(y) { x + y }
}
makeAdder(1)(2)
`)
}

func TestCallArityMismatch(t *testing.T) {
	wantErr(t, `
def f(a, b) {
  a + b
}
f(1)
`)
}

func TestPrintAcceptsAnyArgsOfDifferentTypes(t *testing.T) {
	wantOK(t, `print(1, "a", true)` + "\n")
	wantOK(t, `print()` + "\n")
}

func TestMinMaxRequireTwoInts(t *testing.T) {
	wantOK(t, "min(1, 2)\n")
	wantOK(t, "min(1, 2, 3)\n")
	wantErr(t, "min(1)\n")
	wantErr(t, `min(1, "a")` + "\n")
}

func TestInputOptionalPrompt(t *testing.T) {
	wantOK(t, "input()\n")
	wantOK(t, `input("name: ")` + "\n")
}

func TestShadowingBuiltinLosesPolymorphism(t *testing.T) {
	c := wantOK(t, `
def str(x: Int) { x }
str(1)
`)
	if _, ok := c.Env.Lookup("str"); !ok {
		t.Fatalf("expected shadowed str binding to exist")
	}
	wantErr(t, `
def str(x: Int) { x }
str("a")
`)
}

func TestBlockValueIsLastExpression(t *testing.T) {
	c := mustCheck(t, `
val x = {
  val y = 1
  y + 1
}
`)
	if c.Failed() {
		t.Fatalf("unexpected error: %v", c.Err())
	}
	b, ok := c.Env.Lookup("x")
	if !ok {
		t.Fatalf("expected x to be bound")
	}
	if got := c.Subst.Apply(b.Type); got.Kind != types.KindInt {
		t.Fatalf("expected x: Int, got %s", got.String())
	}
}

func TestAssignmentToUndefinedName(t *testing.T) {
	wantErr(t, "x = 1\n")
}
