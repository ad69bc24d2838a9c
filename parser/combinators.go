package parser

import (
	"fmt"
	"strings"
)

const (
	msgSequence  = "not all elements were matched"
	msgOneOrMore = "found no matches, but one or more are required"
	msgLookahead = "expected match"
	msgNegative  = "expected non-match"
)

// Seq matches ps in order. Its value lists the values of the children
// that are not ignored. If any child fails, the whole sequence fails and
// consumes nothing.
func Seq[T any](ps ...*Parser[T]) *Parser[[]T] {
	return newParser(
		func() string {
			if len(ps) == 2 {
				return fmt.Sprintf("%s + %s", ps[0], ps[1])
			}
			names := make([]string, len(ps))
			for i, p := range ps {
				names[i] = p.String()
			}
			return "seq(" + strings.Join(names, ", ") + ")"
		},
		func(src *Source) Result[[]T] {
			start := src.Position()
			values := make([]T, 0, len(ps))
			for _, p := range ps {
				r := p.Match(src)
				if !r.Matched() {
					return NoMatch[[]T](src.errorFrom(start, msgSequence, r.Failure()))
				}
				if !p.Ignored() {
					values = append(values, r.Value())
				}
			}
			return Success(values, start, src.Position())
		},
	)
}

// Append matches p then q and concatenates their lists.
func Append[T any](p, q *Parser[[]T]) *Parser[[]T] {
	return newParser(
		func() string { return fmt.Sprintf("%s + %s", p, q) },
		func(src *Source) Result[[]T] {
			start := src.Position()
			first := p.Match(src)
			if !first.Matched() {
				return NoMatch[[]T](src.errorFrom(start, msgSequence, first.Failure()))
			}
			second := q.Match(src)
			if !second.Matched() {
				return NoMatch[[]T](src.errorFrom(start, msgSequence, second.Failure()))
			}
			values := make([]T, 0, len(first.Value())+len(second.Value()))
			values = append(values, first.Value()...)
			values = append(values, second.Value()...)
			return Success(values, start, src.Position())
		},
	)
}

// Or tries p, then q from the same position. The first success wins.
//
// When both fail, the failure that got further into the input is
// reported; on a tie it is q's. This differs from always reporting q's
// failure, which hides the more useful error when p got further.
func (p *Parser[T]) Or(q *Parser[T]) *Parser[T] {
	return newParser(
		func() string { return fmt.Sprintf("%s or %s", p, q) },
		func(src *Source) Result[T] {
			left := p.Match(src)
			return left.OrElse(func() Result[T] {
				right := q.Match(src)
				if right.Matched() {
					return right
				}
				if left.Failure().Reach() > right.Failure().Reach() {
					return left
				}
				return right
			})
		},
	)
}

// ZeroOrMore matches p as many times as possible and never fails.
//
// Repetition stops when p fails, when the input is exhausted, or right
// after a match of p that consumed nothing, so a parser that can match
// the empty string does not loop forever.
func ZeroOrMore[T any](p *Parser[T]) *Parser[[]T] {
	return newParser(
		func() string { return fmt.Sprintf("zeroOrMore(%s)", p) },
		func(src *Source) Result[[]T] {
			start := src.Position()
			values, _ := repeat(src, p)
			return Success(values, start, src.Position())
		},
	)
}

// OneOrMore is like ZeroOrMore but fails unless p matches at least once.
func OneOrMore[T any](p *Parser[T]) *Parser[[]T] {
	return newParser(
		func() string { return fmt.Sprintf("oneOrMore(%s)", p) },
		func(src *Source) Result[[]T] {
			start := src.Position()
			values, last := repeat(src, p)
			if len(values) == 0 {
				return NoMatch[[]T](src.errorFrom(start, msgOneOrMore, last))
			}
			return Success(values, start, src.Position())
		},
	)
}

// repeat collects matches of p. It returns the failure that stopped the
// loop, if any.
func repeat[T any](src *Source, p *Parser[T]) ([]T, *Failure) {
	values := make([]T, 0)
	for src.HasMore() {
		before := src.Position()
		r := p.Match(src)
		if !r.Matched() {
			return values, r.Failure()
		}
		values = append(values, r.Value())
		if src.Position() == before {
			break
		}
	}
	return values, nil
}

// Lookahead succeeds without consuming input iff p matches here. It is
// ignored in sequences.
func Lookahead[T any](p *Parser[T]) *Parser[bool] {
	return newParser(
		func() string { return fmt.Sprintf("+(%s)", p) },
		func(src *Source) Result[bool] {
			pos := src.Position()
			src.Mark()
			r := p.Match(src)
			src.Reset()
			if !r.Matched() {
				return NoMatch[bool](src.errorFrom(pos, msgLookahead, r.Failure()))
			}
			return Success(true, pos, pos)
		},
	).Ignore()
}

// Not succeeds without consuming input iff p does not match here. It is
// ignored in sequences.
func Not[T any](p *Parser[T]) *Parser[bool] {
	return newParser(
		func() string { return fmt.Sprintf("!(%s)", p) },
		func(src *Source) Result[bool] {
			pos := src.Position()
			src.Mark()
			r := p.Match(src)
			src.Reset()
			if r.Matched() {
				return NoMatch[bool](src.Error(msgNegative))
			}
			return Success(true, pos, pos)
		},
	).Ignore()
}

// Ref defers to the parser returned by thunk, calling it on every match.
// This is how a rule refers to itself:
//
//	var list *Parser[[]any]
//	list = Seq(open, AsAny(ZeroOrMore(Ref(func() *Parser[[]any] { return list }))), close)
//
// Ignored follows the referenced parser.
func Ref[T any](thunk func() *Parser[T]) *Parser[T] {
	p := newParser(
		func() string { return "..." },
		func(src *Source) Result[T] {
			return thunk().Match(src)
		},
	)
	p.ignoredFn = func() bool {
		q := thunk()
		return q != nil && q.Ignored()
	}
	return p
}

// Map transforms the value of p.
func Map[T, U any](p *Parser[T], f func(T) U) *Parser[U] {
	return newParser(
		func() string { return fmt.Sprintf("(%s).map(f)", p) },
		func(src *Source) Result[U] {
			return MapResult(p.Match(src), f)
		},
	)
}

// MapSpan transforms the value of p, also passing the consumed span.
func MapSpan[T, U any](p *Parser[T], f func(value T, start, end int) U) *Parser[U] {
	return newParser(
		func() string { return fmt.Sprintf("(%s).map(f)", p) },
		func(src *Source) Result[U] {
			r := p.Match(src)
			return MapResult(r, func(v T) U { return f(v, r.Start(), r.End()) })
		},
	)
}

// Flatten concatenates one level of nested lists. Like the lookaheads it
// is ignored in sequences.
func Flatten[T any](p *Parser[[][]T]) *Parser[[]T] {
	return newParser(
		func() string { return fmt.Sprintf("%s.flatten()", p) },
		func(src *Source) Result[[]T] {
			return MapResult(p.Match(src), func(lists [][]T) []T {
				flat := make([]T, 0, len(lists))
				for _, l := range lists {
					flat = append(flat, l...)
				}
				return flat
			})
		},
	).Ignore()
}

// Optional turns a failure of p into a zero-width success with a nil
// value.
func Optional[T any](p *Parser[T]) *Parser[*T] {
	return newParser(
		func() string { return fmt.Sprintf("%s.orNull()", p) },
		func(src *Source) Result[*T] {
			pos := src.Position()
			r := MapResult(p.Match(src), func(v T) *T { return &v })
			return r.OrElse(func() Result[*T] {
				return Success[*T](nil, pos, pos)
			})
		},
	)
}

// Discard wraps p in a new parser that is ignored in sequences, leaving p
// itself untouched.
func Discard[T any](p *Parser[T]) *Parser[T] {
	return newParser(
		func() string { return fmt.Sprintf("discard(%s)", p) },
		p.Match,
	).Ignore()
}

// AsAny erases the value type of p so it can be combined with parsers of
// other types. Ignored follows p.
func AsAny[T any](p *Parser[T]) *Parser[any] {
	q := newParser(
		p.describe,
		func(src *Source) Result[any] {
			return MapResult(p.Match(src), func(v T) any { return v })
		},
	)
	q.ignoredFn = p.Ignored
	return q
}
