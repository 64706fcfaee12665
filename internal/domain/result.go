package domain

// Result is a tagged success-or-failure value. Exactly one of Value or
// Failure is meaningful: Failure is nil on success and non-nil on failure.
//
// The data layer emits Results over channels so that a single stream can
// carry both decoded values and classified failures without closing.
type Result[T any] struct {
	Value   T
	Failure Failure
}

// Ok wraps a success value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Err wraps a failure. The zero Value is carried alongside and must not be
// used by callers.
func Err[T any](f Failure) Result[T] {
	return Result[T]{Failure: f}
}

// IsFailure reports whether the result carries a failure.
func (r Result[T]) IsFailure() bool { return r.Failure != nil }

// Sequence collapses a list of results into a result of a list with
// first-failure-wins semantics: the first failing element fails the whole
// sequence, and no partial list is ever returned.
func Sequence[T any](results []Result[T]) Result[[]T] {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.IsFailure() {
			return Err[[]T](r.Failure)
		}
		out = append(out, r.Value)
	}
	return Ok(out)
}
