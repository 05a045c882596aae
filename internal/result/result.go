// Package result carries the three-state envelope used by every observable
// operation: a consumer renders progress and failure from data instead of
// catching anything.
package result

type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

type Result[T any] struct {
	state State
	value T
	err   error
}

func Loading[T any]() Result[T] {
	return Result[T]{state: StateLoading}
}

func Success[T any](value T) Result[T] {
	return Result[T]{state: StateSuccess, value: value}
}

func Failure[T any](err error) Result[T] {
	return Result[T]{state: StateError, err: err}
}

func (r Result[T]) State() State { return r.state }

func (r Result[T]) IsLoading() bool { return r.state == StateLoading }
func (r Result[T]) IsSuccess() bool { return r.state == StateSuccess }
func (r Result[T]) IsError() bool   { return r.state == StateError }

// Value returns the payload and whether the result is a success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == StateSuccess
}

// MustValue returns the payload of a success and the zero value otherwise.
func (r Result[T]) MustValue() T {
	return r.value
}

// Err returns the failure cause, nil unless the state is error.
func (r Result[T]) Err() error {
	if r.state != StateError {
		return nil
	}
	return r.err
}
