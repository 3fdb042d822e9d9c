// Package functional provides generic single-argument function types and
// helpers for chaining them into pipelines.
package functional

// Producer yields a V from nothing.
type Producer[V any] func() V

// ErrorableProducer is a Producer that reports failure through its error
// return.
type ErrorableProducer[V any] func() (V, error)

// Function transforms one A into one V.
type Function[A, V any] func(A) V

// ErrorableFunction is a Function that reports failure through its error
// return.
type ErrorableFunction[A, V any] func(A) (V, error)

// Identity returns v unchanged.
func Identity[T any](v T) T {
	return v
}

// Lift adapts f so it can be chained with ErrorableFunctions. The returned
// function never fails.
func Lift[A, V any](f Function[A, V]) ErrorableFunction[A, V] {
	return func(a A) (V, error) {
		return f(a), nil
	}
}

// FromProducer turns p into a Function that ignores its argument. p is
// called on every invocation.
func FromProducer[A, V any](p Producer[V]) Function[A, V] {
	return func(A) V {
		return p()
	}
}

// FromErrorableProducer is FromProducer for ErrorableProducers.
func FromErrorableProducer[A, V any](p ErrorableProducer[V]) ErrorableFunction[A, V] {
	return func(A) (V, error) {
		return p()
	}
}
