// Package demo contains two small grammars that exercise recursion,
// negative lookahead and flattening.
package demo

import (
	"fmt"
	"sort"

	"github.com/dhamidi/descent/parser"
)

// Pairs matches balanced curly braces, such as "{{}{}}". The value nests
// one list per pair.
func Pairs() *parser.Parser[[]any] {
	var pair *parser.Parser[[]any]
	inner := parser.Map(
		parser.ZeroOrMore(parser.Ref(func() *parser.Parser[[]any] { return pair })),
		func(pairs [][]any) []any {
			out := make([]any, len(pairs))
			for i, p := range pairs {
				out[i] = p
			}
			return out
		},
	)
	open := parser.Seq(parser.AsAny(parser.Literal("{")))
	closing := parser.Seq(parser.AsAny(parser.Literal("}")))
	pair = parser.Append(parser.Append(open, inner), closing)
	return pair
}

// ANotB matches one or more "a" that are not followed by "b".
func ANotB() *parser.Parser[[]any] {
	a := parser.AsAny(parser.Literal("a"))
	notB := parser.AsAny(parser.Not(parser.Literal("b")))
	return parser.Flatten(parser.OneOrMore(parser.Seq(a, notB)))
}

var grammars = map[string]func() *parser.Parser[[]any]{
	"pairs": Pairs,
	"anotb": ANotB,
}

// Names lists the available demo grammars.
func Names() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run matches the named grammar against input and returns the printed
// result. A non-nil error means the grammar is unknown or did not consume
// the whole input; the printed result is returned in either case.
func Run(name, input string, opts ...parser.Option) (string, error) {
	build, ok := grammars[name]
	if !ok {
		return "", fmt.Errorf("unknown demo %q, expected one of %v", name, Names())
	}
	d := parser.NewDriver(parser.NewSource(input, opts...))
	r := parser.Run(d, build())
	out := r.String()
	if !r.Matched() {
		return out, &parser.ParseError{Failure: r.Failure()}
	}
	return out, d.End()
}
