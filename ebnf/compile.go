package ebnf

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/descent/diag"
	"github.com/dhamidi/descent/parser"
)

type nodes = []*Node

// Option configures Compile.
type Option func(*compiler) error

// WithWhitespace skips text matching pattern before every token of a
// syntactic production and at the end of the input. Whitespace is never
// required, even if pattern cannot match the empty string.
func WithWhitespace(pattern string) Option {
	return func(c *compiler) error {
		ws, err := parser.Regex(pattern)
		if err != nil {
			return fmt.Errorf("whitespace: %w", err)
		}
		c.skip = parser.Discard(ws.Or(parser.Succeed("")))
		return nil
	}
}

// Grammar is a compiled EBNF grammar.
type Grammar struct {
	rules *parser.Grammar
	skip  *parser.Parser[string]
}

type compiler struct {
	rules *parser.Grammar
	skip  *parser.Parser[string]
}

// Compile translates every production of source into a rule producing a
// *Node.
func Compile(source ebnf.Grammar, opts ...Option) (*Grammar, error) {
	c := &compiler{
		rules: parser.NewGrammar(),
		skip:  parser.Discard(parser.Succeed("")),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(source))
	for name := range source {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prod := source[name]
		lexical := isLexical(name)
		body := c.expr(prod.Expr, lexical)
		if err := c.rules.Define(name, production(name, body, lexical)); err != nil {
			return nil, err
		}
	}

	log.Debugf("compiled %d productions", len(names))
	return &Grammar{rules: c.rules, skip: c.skip}, nil
}

// Rules returns the rule registry backing g.
func (g *Grammar) Rules() *parser.Grammar {
	return g.rules
}

// Parse matches the production start against text. The whole input must
// be consumed, apart from trailing whitespace. A *parser.ParseError
// reports the failure detected furthest into the input.
func (g *Grammar) Parse(text, start string, opts ...parser.Option) (*Node, error) {
	if _, ok := g.rules.Lookup(start); !ok {
		return nil, fmt.Errorf("start production: %w: %s", parser.ErrRuleUndefined, start)
	}
	top := parser.Seq2(g.rules.Rule(start), g.skip)
	v, err := parser.Parse(top, text, opts...)
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return nil, &parser.ParseError{Failure: perr.Failure.Deepest()}
	}
	if err != nil {
		return nil, err
	}
	return v.V1.(*Node), nil
}

func (c *compiler) expr(expr ebnf.Expression, lexical bool) *parser.Parser[nodes] {
	switch e := expr.(type) {
	case nil:
		return parser.Succeed[nodes](nil)

	case *ebnf.Token:
		return c.token(parser.Literal(e.String), lexical)

	case *ebnf.Range:
		return c.token(charRange(e.Begin.String, e.End.String), lexical)

	case ebnf.Sequence:
		parts := make([]*parser.Parser[nodes], len(e))
		for i, item := range e {
			parts[i] = c.expr(item, lexical)
		}
		return parser.Map(parser.Seq(parts...), concat)

	case ebnf.Alternative:
		alt := c.expr(e[0], lexical)
		for _, next := range e[1:] {
			alt = alt.Or(c.expr(next, lexical))
		}
		return alt

	case *ebnf.Group:
		return c.expr(e.Body, lexical)

	case *ebnf.Option:
		return parser.Map(parser.Optional(c.expr(e.Body, lexical)), func(v *nodes) nodes {
			if v == nil {
				return nil
			}
			return *v
		})

	case *ebnf.Repetition:
		return parser.Map(parser.ZeroOrMore(c.expr(e.Body, lexical)), concat)

	case *ebnf.Name:
		ref := parser.Map(c.rules.Rule(e.String), func(v any) nodes {
			return nodes{v.(*Node)}
		})
		if lexical || !isLexical(e.String) {
			return ref
		}
		return c.skipped(ref)

	case *ebnf.Bad:
		return parser.Fail[nodes](e.Error)

	default:
		return parser.Fail[nodes](fmt.Sprintf("unsupported expression %T", expr))
	}
}

// token matches p as part of a production. Inside lexical productions the
// text is absorbed by the enclosing leaf; elsewhere it becomes a token
// node of its own.
func (c *compiler) token(p *parser.Parser[string], lexical bool) *parser.Parser[nodes] {
	if lexical {
		return parser.Map(p, func(string) nodes { return nil })
	}
	leaf := parser.New[nodes](p.String(), func(src *parser.Source) parser.Result[nodes] {
		start := position(src)
		r := p.Match(src)
		return parser.MapResult(r, func(text string) nodes {
			n := newNode(KindToken, start, position(src))
			n.Text = text
			return nodes{n}
		})
	})
	return c.skipped(leaf)
}

func (c *compiler) skipped(p *parser.Parser[nodes]) *parser.Parser[nodes] {
	return parser.Map(parser.Seq2(c.skip, p), func(j parser.Join2[string, nodes]) nodes {
		return j.V2
	})
}

// production wraps the body of the production name into a node spanning
// everything the body consumed.
func production(name string, body *parser.Parser[nodes], lexical bool) *parser.Parser[any] {
	return parser.New[any](name, func(src *parser.Source) parser.Result[any] {
		start := position(src)
		r := body.Match(src)
		return parser.MapResult(r, func(children nodes) any {
			n := newNode(name, start, position(src))
			if lexical {
				n.Text = src.Text()[r.Start():r.End()]
				return n
			}
			n.Children = children
			if len(children) == 0 {
				n.Children = nodes{}
			} else {
				n.Span.Start = children[0].Span.Start
			}
			return n
		})
	})
}

func position(src *parser.Source) diag.Position {
	return diag.Position{
		Name:   src.Name(),
		Offset: src.Position(),
		Line:   src.Line(),
		Column: src.Column(),
	}
}

func charRange(begin, end string) *parser.Parser[string] {
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	return parser.MustRegex(fmt.Sprintf(`[\x{%x}-\x{%x}]`, lo, hi))
}

func concat(lists []nodes) nodes {
	var out nodes
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
