package client

// Result is the uniform outcome of a backend call. Exactly one of Data and
// Err is meaningful, selected by Success. Expected failures travel here
// instead of panicking.
type Result[T any] struct {
	Success bool
	Data    T
	Err     error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Success: true, Data: v}
}

// Fail wraps an error. A nil err is not allowed and is treated as a bug.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic("client.Fail called with nil error")
	}
	return Result[T]{Err: err}
}

// Unwrap converts the result into the usual (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if !r.Success {
		var zero T
		return zero, r.Err
	}
	return r.Data, nil
}
