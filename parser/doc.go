// Package parser is a memoizing recursive-descent parser-combinator engine.
//
// # Overview
//
// Grammars are built by composing small parsers:
//
//	digits := parser.Map(parser.MustRegex(`[0-9]+`), func(s string) int {
//	    n, _ := strconv.Atoi(s)
//	    return n
//	})
//	list := parser.Seq(parser.AsAny(parser.Literal("[")), parser.AsAny(digits), parser.AsAny(parser.Literal("]")))
//
// and run against a Source, a cursor over the input text:
//
//	src := parser.NewSource("[42]", parser.WithName("example"))
//	r := list.Match(src)
//	if !r.Matched() {
//	    fmt.Println(r.Failure())
//	}
//
// # Backtracking
//
// Every Match runs between a Source.Mark and either a Source.Reset (the
// attempt failed, so the cursor goes back to where it was) or a
// Source.PopPosition (the attempt succeeded, so the consumed input stays
// consumed). A failed match therefore never moves the cursor, and
// combinators like Or and ZeroOrMore can simply try the next thing.
//
// # Memoization
//
// Each Source keeps a table of results keyed by parser and start position
// (packrat parsing). Matching a parser again at a position it has already
// been tried at returns the same Result and moves the cursor to the same
// place as the first time. Because the table lives in the Source, a parser
// graph can be reused for any number of parses; WithMemoLimit bounds the
// table for large inputs.
//
// # Recursion
//
// Go evaluates arguments eagerly, so a rule cannot mention itself while it
// is being built. Ref defers to a function that returns the parser at
// match time, and Grammar provides named rules that can be referenced
// before they are defined.
//
// # Errors
//
// A failed match is a normal Result carrying a *Failure with a formatted
// diagnostic (see package diag). Driver.End and Parse turn a failure or
// leftover input into a *ParseError. Misuse of the Source, such as
// resetting without a mark, panics.
//
// # Thread Safety
//
// A Source is not safe for concurrent use. Parsers hold no per-parse
// state and can be shared between goroutines that each use their own
// Source, provided Ignore is not called concurrently.
package parser
