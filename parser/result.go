package parser

import (
	"fmt"

	"github.com/dhamidi/descent/diag"
)

// Failure is the payload of a NoMatch result. Pos is where the failed
// match started; the diagnostic points at where the failure was detected.
// Cause links to the child failure that made a composite fail, if any.
type Failure struct {
	Pos        int
	Diagnostic diag.Diagnostic
	Cause      *Failure
}

func (f *Failure) Error() string {
	return f.Diagnostic.String()
}

// Message returns the diagnostic message without location details.
func (f *Failure) Message() string {
	return f.Diagnostic.Message
}

// Reach returns the furthest input offset at which f or any of its causes
// was detected.
func (f *Failure) Reach() int {
	reach := f.Diagnostic.Position.Offset
	for c := f.Cause; c != nil; c = c.Cause {
		if off := c.Diagnostic.Position.Offset; off > reach {
			reach = off
		}
	}
	return reach
}

// Deepest returns the failure in the cause chain detected furthest into
// the input, preferring the innermost on ties.
func (f *Failure) Deepest() *Failure {
	deepest := f
	for c := f.Cause; c != nil; c = c.Cause {
		if c.Diagnostic.Position.Offset >= deepest.Diagnostic.Position.Offset {
			deepest = c
		}
	}
	return deepest
}

// Result is the outcome of a match: either Matched, carrying a value and
// the consumed span, or NoMatch, carrying a Failure. Results are immutable.
type Result[T any] struct {
	value   T
	start   int
	end     int
	failure *Failure
}

// Success creates a Matched result spanning [start, end).
func Success[T any](value T, start, end int) Result[T] {
	return Result[T]{value: value, start: start, end: end}
}

// NoMatch creates a failed result. Its span is empty at f.Pos.
func NoMatch[T any](f *Failure) Result[T] {
	return Result[T]{start: f.Pos, end: f.Pos, failure: f}
}

func (r Result[T]) Matched() bool     { return r.failure == nil }
func (r Result[T]) Value() T          { return r.value }
func (r Result[T]) Start() int        { return r.start }
func (r Result[T]) End() int          { return r.end }
func (r Result[T]) Failure() *Failure { return r.failure }

// OrElse returns r if it matched, otherwise the result of fallback. The
// fallback is only evaluated when needed, since it usually performs a
// match of its own.
func (r Result[T]) OrElse(fallback func() Result[T]) Result[T] {
	if r.Matched() {
		return r
	}
	return fallback()
}

func (r Result[T]) String() string {
	if r.Matched() {
		return fmt.Sprintf("Success(value=%v, startPosition=%d, endPosition=%d)", r.value, r.start, r.end)
	}
	return fmt.Sprintf("Failure(error=%s, startPosition=%d)", r.failure.Error(), r.start)
}

// MapResult transforms the value of a matched result, keeping its span.
// Failures pass through unchanged.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.Matched() {
		return Result[U]{start: r.start, end: r.end, failure: r.failure}
	}
	return Success(f(r.value), r.start, r.end)
}
