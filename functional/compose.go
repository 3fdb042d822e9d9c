package functional

// Compose returns a Function that applies f and then g, so that
// Compose(f, g)(a) == g(f(a)). Neither f nor g is called until the result is.
//
// Panics raised by f or g reach the caller untouched. If f panics, g is not
// called.
func Compose[A, B, C any](f Function[A, B], g Function[B, C]) Function[A, C] {
	return func(a A) C {
		return g(f(a))
	}
}

// After is Compose with its arguments in mathematical order: g runs after f,
// so After(g, f)(a) == g(f(a)).
func After[A, B, C any](g Function[B, C], f Function[A, B]) Function[A, C] {
	return Compose(f, g)
}

// ComposeErrorable chains f and g like Compose. When f returns an error, the
// result returns the zero C and that same error without calling g. An error
// from g is returned as is.
func ComposeErrorable[A, B, C any](f ErrorableFunction[A, B], g ErrorableFunction[B, C]) ErrorableFunction[A, C] {
	return func(a A) (C, error) {
		b, err := f(a)
		if err != nil {
			var zero C
			return zero, err
		}
		return g(b)
	}
}

// AfterErrorable is ComposeErrorable with its arguments in mathematical order.
func AfterErrorable[A, B, C any](g ErrorableFunction[B, C], f ErrorableFunction[A, B]) ErrorableFunction[A, C] {
	return ComposeErrorable(f, g)
}
