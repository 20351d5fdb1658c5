package eval

import (
	"bytes"
	"testing"

	"github.com/rshaw/braid/internal/desugar"
	"github.com/rshaw/braid/internal/errors"
	"github.com/rshaw/braid/internal/lexer"
	"github.com/rshaw/braid/internal/parser"
	"github.com/rshaw/braid/internal/runtime"
)

func run(t *testing.T, src string) (runtime.Value, *bytes.Buffer, *errors.Diagnostic) {
	t.Helper()
	block, perr := parser.Parse(lexer.New(src))
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	seq := desugar.Block(block)
	e := New()
	var out bytes.Buffer
	e.Stdout = &out
	value, sig, err := e.RunBlock(seq)
	if sig.Kind != SigNone {
		t.Fatalf("unexpected signal at top level: %v", sig.Kind)
	}
	return value, &out, err
}

func wantValue(t *testing.T, src string) runtime.Value {
	t.Helper()
	v, _, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected eval error for %q: %v", src, err)
	}
	return v
}

func TestPrintOutput(t *testing.T) {
	_, out, err := run(t, "print(1 + 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "3\n" {
		t.Fatalf("expected %q, got %q", "3\n", out.String())
	}
}

func TestMutualRecursion(t *testing.T) {
	_, out, err := run(t, `
def isEven(n) { if n == 0 then true else isOdd(n - 1) }
def isOdd(n)  { if n == 0 then false else isEven(n - 1) }
print(isEven(4))
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "true\n" {
		t.Fatalf("expected %q, got %q", "true\n", out.String())
	}
}

func TestDefaultArgument(t *testing.T) {
	v := wantValue(t, `
def add(a, b = 42) { a + b }
add(8)
`)
	if v.Kind != runtime.KindInt || v.Int != 50 {
		t.Fatalf("expected 50, got %v", v)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, _, err := run(t, "1 / 0")
	if err == nil || err.Kind != errors.KindRuntime {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
}

func TestFloorModFollowsDivisorSign(t *testing.T) {
	v := wantValue(t, "-7 % 3")
	if v.Int != 2 {
		t.Fatalf("expected -7 %% 3 == 2, got %d", v.Int)
	}
	v = wantValue(t, "7 % -3")
	if v.Int != -2 {
		t.Fatalf("expected 7 %% -3 == -2, got %d", v.Int)
	}
}

func TestStringConcatenation(t *testing.T) {
	v := wantValue(t, `"count: " + str(3)`)
	if v.Kind != runtime.KindString || v.Str != "count: 3" {
		t.Fatalf("expected %q, got %v", "count: 3", v)
	}
}

func TestWhileBreakContinue(t *testing.T) {
	v := wantValue(t, `
var i = 0
var sum = 0
while i < 10 {
  i = i + 1
  if i == 5 { continue }
  if i > 8 { break }
  sum = sum + i
}
sum
`)
	if v.Int != 1+2+3+4+6+7+8 {
		t.Fatalf("unexpected sum %d", v.Int)
	}
}

func TestClosureCapturesAssignableVar(t *testing.T) {
	v := wantValue(t, `
var counter = 0
def increment() {
  counter = counter + 1
  counter
}
increment()
increment()
increment()
`)
	if v.Int != 3 {
		t.Fatalf("expected 3, got %d", v.Int)
	}
}

func TestReturnUnwindsToCallBoundary(t *testing.T) {
	v := wantValue(t, `
def f(n) {
  if n < 0 {
    return 0
  }
  n + 1
}
f(-1) + f(1)
`)
	if v.Int != 2 {
		t.Fatalf("expected 2, got %d", v.Int)
	}
}

func TestMinMax(t *testing.T) {
	v := wantValue(t, "min(3, 1, 2)")
	if v.Int != 1 {
		t.Fatalf("expected 1, got %d", v.Int)
	}
	v = wantValue(t, "max(3, 1, 2)")
	if v.Int != 3 {
		t.Fatalf("expected 3, got %d", v.Int)
	}
}

func TestLambdaClosureOverOuterParam(t *testing.T) {
	v := wantValue(t, `
def makeAdder(x) {
  fn(y) { x + y }
}
makeAdder(10)(5)
`)
	if v.Int != 15 {
		t.Fatalf("expected 15, got %d", v.Int)
	}
}
