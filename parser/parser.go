package parser

import (
	"sync/atomic"
)

var lastID atomic.Uint64

// MatchFunc is the matching logic of one parser variant. It may consume
// input from the Source; Match takes care of undoing that on failure.
type MatchFunc[T any] func(*Source) Result[T]

// Parser is a memoized grammar node producing values of type T.
//
// Parsers are built once and reused; the same child may appear in many
// composites. Memoized results live in the Source, not in the Parser.
type Parser[T any] struct {
	id        uint64
	describe  func() string
	ignored   bool
	ignoredFn func() bool
	match     MatchFunc[T]
}

// New creates a parser from a matching function. Name is used by String.
func New[T any](name string, match MatchFunc[T]) *Parser[T] {
	return newParser(func() string { return name }, match)
}

func newParser[T any](describe func() string, match MatchFunc[T]) *Parser[T] {
	return &Parser[T]{
		id:       lastID.Add(1),
		describe: describe,
		match:    match,
	}
}

// Match attempts p at the current position of src.
//
// A previous result for the same position is replayed, including the
// cursor advance it caused. Otherwise the match runs between a Mark and
// either a Reset (on failure) or a PopPosition (on success), and the
// result is remembered under the position it started from.
func (p *Parser[T]) Match(src *Source) Result[T] {
	key := memoKey{parser: p.id, pos: src.pos}
	if e, ok := src.memo.get(key); ok {
		src.observe(EventMemoHit, p, key.pos)
		src.restore(e.end)
		return e.result.(Result[T])
	}
	src.observe(EventMemoMiss, p, key.pos)

	src.Mark()
	r := p.match(src)
	if r.Matched() {
		src.PopPosition()
	} else {
		src.Reset()
		src.observe(EventFailure, p, key.pos)
	}
	src.memo.put(key, memoEntry{result: r, end: src.Current()})
	return r
}

// Ignore marks p so its value is left out of enclosing sequences. It
// mutates p and returns it for chaining; use Discard for a marked copy.
func (p *Parser[T]) Ignore() *Parser[T] {
	p.ignored = true
	return p
}

// Ignored reports whether p's value is left out of enclosing sequences.
func (p *Parser[T]) Ignored() bool {
	if p.ignored {
		return true
	}
	return p.ignoredFn != nil && p.ignoredFn()
}

func (p *Parser[T]) String() string {
	return p.describe()
}
