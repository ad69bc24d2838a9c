package parser

import "fmt"

// Join2 holds the values of a two-element typed sequence.
type Join2[T1, T2 any] struct {
	V1 T1
	V2 T2
}

// Join3 holds the values of a three-element typed sequence.
type Join3[T1, T2, T3 any] struct {
	V1 T1
	V2 T2
	V3 T3
}

// Join4 holds the values of a four-element typed sequence.
type Join4[T1, T2, T3, T4 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
}

// Join5 holds the values of a five-element typed sequence.
type Join5[T1, T2, T3, T4, T5 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
}

// Join6 holds the values of a six-element typed sequence.
type Join6[T1, T2, T3, T4, T5, T6 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
}

// step matches p as one element of a typed sequence, storing its value in
// dst unless p is ignored.
func step[T any](src *Source, p *Parser[T], dst *T) *Failure {
	r := p.Match(src)
	if !r.Matched() {
		return r.Failure()
	}
	if !p.Ignored() {
		*dst = r.Value()
	}
	return nil
}

// Seq2 matches p1 and p2 in order, keeping both value types. Ignored
// elements leave the zero value in their slot.
func Seq2[T1, T2 any](p1 *Parser[T1], p2 *Parser[T2]) *Parser[Join2[T1, T2]] {
	return newParser(
		func() string { return fmt.Sprintf("seq(%s, %s)", p1, p2) },
		func(src *Source) Result[Join2[T1, T2]] {
			start := src.Position()
			var j Join2[T1, T2]
			f := step(src, p1, &j.V1)
			if f == nil {
				f = step(src, p2, &j.V2)
			}
			if f != nil {
				return NoMatch[Join2[T1, T2]](src.errorFrom(start, msgSequence, f))
			}
			return Success(j, start, src.Position())
		},
	)
}

// Seq3 is Seq2 for three elements.
func Seq3[T1, T2, T3 any](p1 *Parser[T1], p2 *Parser[T2], p3 *Parser[T3]) *Parser[Join3[T1, T2, T3]] {
	return newParser(
		func() string { return fmt.Sprintf("seq(%s, %s, %s)", p1, p2, p3) },
		func(src *Source) Result[Join3[T1, T2, T3]] {
			start := src.Position()
			var j Join3[T1, T2, T3]
			f := step(src, p1, &j.V1)
			if f == nil {
				f = step(src, p2, &j.V2)
			}
			if f == nil {
				f = step(src, p3, &j.V3)
			}
			if f != nil {
				return NoMatch[Join3[T1, T2, T3]](src.errorFrom(start, msgSequence, f))
			}
			return Success(j, start, src.Position())
		},
	)
}

// Seq4 is Seq2 for four elements.
func Seq4[T1, T2, T3, T4 any](p1 *Parser[T1], p2 *Parser[T2], p3 *Parser[T3], p4 *Parser[T4]) *Parser[Join4[T1, T2, T3, T4]] {
	return newParser(
		func() string { return fmt.Sprintf("seq(%s, %s, %s, %s)", p1, p2, p3, p4) },
		func(src *Source) Result[Join4[T1, T2, T3, T4]] {
			start := src.Position()
			var j Join4[T1, T2, T3, T4]
			f := step(src, p1, &j.V1)
			if f == nil {
				f = step(src, p2, &j.V2)
			}
			if f == nil {
				f = step(src, p3, &j.V3)
			}
			if f == nil {
				f = step(src, p4, &j.V4)
			}
			if f != nil {
				return NoMatch[Join4[T1, T2, T3, T4]](src.errorFrom(start, msgSequence, f))
			}
			return Success(j, start, src.Position())
		},
	)
}

// Seq5 is Seq2 for five elements.
func Seq5[T1, T2, T3, T4, T5 any](p1 *Parser[T1], p2 *Parser[T2], p3 *Parser[T3], p4 *Parser[T4], p5 *Parser[T5]) *Parser[Join5[T1, T2, T3, T4, T5]] {
	return newParser(
		func() string { return fmt.Sprintf("seq(%s, %s, %s, %s, %s)", p1, p2, p3, p4, p5) },
		func(src *Source) Result[Join5[T1, T2, T3, T4, T5]] {
			start := src.Position()
			var j Join5[T1, T2, T3, T4, T5]
			f := step(src, p1, &j.V1)
			if f == nil {
				f = step(src, p2, &j.V2)
			}
			if f == nil {
				f = step(src, p3, &j.V3)
			}
			if f == nil {
				f = step(src, p4, &j.V4)
			}
			if f == nil {
				f = step(src, p5, &j.V5)
			}
			if f != nil {
				return NoMatch[Join5[T1, T2, T3, T4, T5]](src.errorFrom(start, msgSequence, f))
			}
			return Success(j, start, src.Position())
		},
	)
}

// Seq6 is Seq2 for six elements. Longer sequences nest typed sequences or
// fall back to Seq.
func Seq6[T1, T2, T3, T4, T5, T6 any](p1 *Parser[T1], p2 *Parser[T2], p3 *Parser[T3], p4 *Parser[T4], p5 *Parser[T5], p6 *Parser[T6]) *Parser[Join6[T1, T2, T3, T4, T5, T6]] {
	return newParser(
		func() string { return fmt.Sprintf("seq(%s, %s, %s, %s, %s, %s)", p1, p2, p3, p4, p5, p6) },
		func(src *Source) Result[Join6[T1, T2, T3, T4, T5, T6]] {
			start := src.Position()
			var j Join6[T1, T2, T3, T4, T5, T6]
			f := step(src, p1, &j.V1)
			if f == nil {
				f = step(src, p2, &j.V2)
			}
			if f == nil {
				f = step(src, p3, &j.V3)
			}
			if f == nil {
				f = step(src, p4, &j.V4)
			}
			if f == nil {
				f = step(src, p5, &j.V5)
			}
			if f == nil {
				f = step(src, p6, &j.V6)
			}
			if f != nil {
				return NoMatch[Join6[T1, T2, T3, T4, T5, T6]](src.errorFrom(start, msgSequence, f))
			}
			return Success(j, start, src.Position())
		},
	)
}
