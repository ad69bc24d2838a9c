package parser

import (
	"fmt"

	"github.com/emirpasic/gods/v2/stacks/arraystack"
	"github.com/pkg/errors"

	"github.com/dhamidi/descent/diag"
)

var (
	// ErrMarkNotSet is the panic value when Reset or PopPosition is called
	// without a matching Mark.
	ErrMarkNotSet = errors.New("mark not set")

	// ErrConsumeOutOfRange is the panic value when Consume is asked for
	// more input than remains.
	ErrConsumeOutOfRange = errors.New("consume beyond end of input")
)

const defaultName = "<input>"

// Mark is a saved cursor state.
type Mark struct {
	Position int
	Line     int
	Column   int
}

type Option func(*Source)

// WithName sets the name reported in diagnostics.
func WithName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// WithMemoLimit bounds the memo table to n entries, evicting the least
// recently used. Zero or negative means unbounded.
func WithMemoLimit(n int) Option {
	return func(s *Source) {
		s.memoLimit = n
	}
}

// WithObserver registers o to receive memoization and failure events.
func WithObserver(o Observer) Option {
	return func(s *Source) {
		s.observer = o
	}
}

// Source is a cursor over fully materialized input text. It is mutated by
// a single parse and must not be shared between goroutines.
type Source struct {
	text string
	name string
	pos  int
	line int
	col  int

	marks *arraystack.Stack[Mark]

	memo      memoTable
	memoLimit int
	observer  Observer
	opts      []Option
}

// NewSource creates a Source positioned at the start of text.
func NewSource(text string, opts ...Option) *Source {
	s := &Source{
		text:  text,
		name:  defaultName,
		line:  1,
		marks: arraystack.New[Mark](),
		opts:  opts,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.memo = newMemoTable(s.memoLimit)
	return s
}

func (s *Source) Name() string  { return s.name }
func (s *Source) Text() string  { return s.text }
func (s *Source) Position() int { return s.pos }
func (s *Source) Line() int     { return s.line }
func (s *Source) Column() int   { return s.col }

// Current returns the cursor state as a Mark.
func (s *Source) Current() Mark {
	return Mark{Position: s.pos, Line: s.line, Column: s.col}
}

// Rest returns the unconsumed input.
func (s *Source) Rest() string {
	return s.text[s.pos:]
}

// HasMore reports whether unconsumed input remains.
func (s *Source) HasMore() bool {
	return s.pos < len(s.text)
}

// Consume advances the cursor by n bytes. Asking for more than remains is
// a programming error and panics.
func (s *Source) Consume(n int) {
	if n < 0 || n > len(s.text)-s.pos {
		panic(errors.Wrapf(ErrConsumeOutOfRange, "consume %d with %d remaining", n, len(s.text)-s.pos))
	}
	s.line, s.col = diag.Advance(s.text, s.pos, s.pos+n, s.line, s.col)
	s.pos += n
}

// Mark pushes the current cursor state.
func (s *Source) Mark() {
	s.marks.Push(s.Current())
}

// Reset pops the last mark and restores the cursor to it.
func (s *Source) Reset() {
	m, ok := s.marks.Pop()
	if !ok {
		panic(errors.WithStack(ErrMarkNotSet))
	}
	s.restore(m)
}

// PopPosition pops the last mark without restoring it.
func (s *Source) PopPosition() Mark {
	m, ok := s.marks.Pop()
	if !ok {
		panic(errors.WithStack(ErrMarkNotSet))
	}
	return m
}

// Depth returns the number of outstanding marks.
func (s *Source) Depth() int {
	return s.marks.Size()
}

// Copy returns an independent Source over the same text, positioned at the
// start and configured with the same options. Memoized results are not
// shared.
func (s *Source) Copy() *Source {
	return NewSource(s.text, s.opts...)
}

// Error creates a failure at the current position. Every NoMatch produced
// by this package goes through here so diagnostics stay uniform.
func (s *Source) Error(msg string) *Failure {
	return s.errorFrom(s.pos, msg, nil)
}

// errorFrom creates a failure for a match that started at start, with the
// diagnostic pointing at the current position.
func (s *Source) errorFrom(start int, msg string, cause *Failure) *Failure {
	pos := diag.Position{Name: s.name, Offset: s.pos, Line: s.line, Column: s.col}
	return &Failure{
		Pos:        start,
		Diagnostic: diag.New(s.text, pos, msg),
		Cause:      cause,
	}
}

func (s *Source) restore(m Mark) {
	s.pos = m.Position
	s.line = m.Line
	s.col = m.Column
}

func (s *Source) observe(kind EventKind, p fmt.Stringer, pos int) {
	if log.AllowLevel(traceLevel) {
		log.Debugf("%s %s at %s:%d", kind, p.String(), s.name, pos)
	}
	if s.observer != nil {
		s.observer.Observe(Event{Kind: kind, Parser: p, Position: pos})
	}
}

// MemoSize returns the number of memoized results held for this Source.
func (s *Source) MemoSize() int {
	return s.memo.len()
}
