// Package pipeline defines the generic result type every stage boundary
// the runner wraps ultimately produces.
package pipeline

// Result is the sole externally visible outcome of any stage the runner
// runs: either a successfully produced value, or a failure message
// already formatted as "Kind: message at pos".
type Result[T any] struct {
	ok      bool
	data    T
	failure string
}

// Success wraps a successfully produced value.
func Success[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Failure wraps a stage failure message.
func Failure[T any](msg string) Result[T] {
	return Result[T]{ok: false, failure: msg}
}

// OK reports whether this is a Success.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the wrapped data; only meaningful when OK() is true.
func (r Result[T]) Value() T { return r.data }

// Message returns the failure string; only meaningful when OK() is false.
func (r Result[T]) Message() string { return r.failure }
