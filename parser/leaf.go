package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Literal matches text exactly.
func Literal(text string) *Parser[string] {
	return newParser(
		func() string { return fmt.Sprintf("literal(%q)", text) },
		func(src *Source) Result[string] {
			if !strings.HasPrefix(src.Rest(), text) {
				return NoMatch[string](src.Error(fmt.Sprintf("expected %q", text)))
			}
			start := src.Position()
			src.Consume(len(text))
			return Success(text, start, src.Position())
		},
	)
}

// Regex matches pattern anchored at the current position. The value is
// the matched text.
func Regex(pattern string) (*Parser[string], error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return newParser(
		func() string { return fmt.Sprintf("regex(%q)", pattern) },
		func(src *Source) Result[string] {
			loc := re.FindStringIndex(src.Rest())
			if loc == nil {
				return NoMatch[string](src.Error(fmt.Sprintf("expected match for /%s/", pattern)))
			}
			start := src.Position()
			src.Consume(loc[1])
			return Success(src.Text()[start:src.Position()], start, src.Position())
		},
	), nil
}

// MustRegex is like Regex but panics if pattern does not compile.
func MustRegex(pattern string) *Parser[string] {
	p, err := Regex(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Succeed always matches without consuming input.
func Succeed[T any](value T) *Parser[T] {
	return newParser(
		func() string { return fmt.Sprintf("succeed(%v)", value) },
		func(src *Source) Result[T] {
			return Success(value, src.Position(), src.Position())
		},
	)
}

// Fail never matches.
func Fail[T any](msg string) *Parser[T] {
	return newParser(
		func() string { return fmt.Sprintf("fail(%q)", msg) },
		func(src *Source) Result[T] {
			return NoMatch[T](src.Error(msg))
		},
	)
}
