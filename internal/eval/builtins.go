package eval

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rshaw/braid/internal/runtime"
)

// New creates an Evaluator with print/input/str/min/max installed in the
// root environment and store, printing to os.Stdout and reading `input`
// lines from os.Stdin.
func New() *Evaluator {
	e := &Evaluator{
		Counter: &runtime.Counter{},
		Env:     runtime.NewEnvironment(),
		Store:   runtime.NewStore(),
		Stdout:  os.Stdout,
	}
	e.ReadLine = defaultReadLine(e.Stdout, bufio.NewReader(os.Stdin))
	installBuiltins(e)
	return e
}

// WithState returns a new Evaluator sharing e's address counter and I/O
// collaborators but running against the supplied environment/store
// instead of e's own. The runner uses this to drive a REPL input against
// throwaway clones of the persisted environment and store: the counter
// is deliberately NOT cloned, so an address allocated during a failed,
// discarded attempt is simply never referenced again rather than being
// reused (and potentially colliding with one a later, committed attempt
// allocates).
func (e *Evaluator) WithState(env *runtime.Environment, store *runtime.Store) *Evaluator {
	return &Evaluator{
		Counter:  e.Counter,
		Env:      env,
		Store:    store,
		Stdout:   e.Stdout,
		ReadLine: e.ReadLine,
	}
}

func defaultReadLine(stdout writer, stdin *bufio.Reader) func(prompt string) (string, error) {
	return func(prompt string) (string, error) {
		if prompt != "" {
			fmt.Fprint(stdout, prompt)
		}
		line, err := stdin.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

// installBuiltins seeds print/input/str/min/max into e's root environment
// and store, mirroring how Builtins() seeds the parallel type layer in
// internal/typecheck.
func installBuiltins(e *Evaluator) {
	define := func(name string, fn runtime.BuiltinFunc) {
		addr := e.Counter.Next()
		e.Store.Alloc(addr, runtime.BuiltinValue(&runtime.Builtin{Name: name, Fn: fn}))
		e.Env.Define(name, addr)
	}

	// print stringifies every argument (integers decimal, booleans
	// true/false, strings bare, unit as empty), space-separated, with a
	// trailing newline.
	define("print", func(args []runtime.Value) (runtime.Value, error) {
		fmt.Fprintln(e.Stdout, runtime.JoinStringified(args, " "))
		return runtime.Unit, nil
	})

	define("input", func(args []runtime.Value) (runtime.Value, error) {
		prompt := ""
		if len(args) > 0 {
			prompt = args[0].Str
		}
		line, err := e.ReadLine(prompt)
		if err != nil {
			return runtime.Unit, err
		}
		return runtime.String(line), nil
	})

	define("str", func(args []runtime.Value) (runtime.Value, error) {
		return runtime.String(args[0].Stringify()), nil
	})

	define("min", func(args []runtime.Value) (runtime.Value, error) {
		m := args[0].Int
		for _, a := range args[1:] {
			if a.Int < m {
				m = a.Int
			}
		}
		return runtime.Int(m), nil
	})

	define("max", func(args []runtime.Value) (runtime.Value, error) {
		m := args[0].Int
		for _, a := range args[1:] {
			if a.Int > m {
				m = a.Int
			}
		}
		return runtime.Int(m), nil
	})
}
