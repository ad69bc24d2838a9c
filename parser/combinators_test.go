package parser

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aNotB() *Parser[[][]any] {
	return OneOrMore(Seq(AsAny(Literal("a")), AsAny(Not(Literal("b")))))
}

func pairs() *Parser[[]any] {
	var pair *Parser[[]any]
	nested := Map(ZeroOrMore(Ref(func() *Parser[[]any] { return pair })), func(xs [][]any) []any {
		out := make([]any, len(xs))
		for i, x := range xs {
			out[i] = x
		}
		return out
	})
	pair = Append(Append(Seq(AsAny(Literal("{"))), nested), Seq(AsAny(Literal("}"))))
	return pair
}

func TestANotBConsumesAll(t *testing.T) {
	d := NewDriver(NewSource("aaa"))
	r := Run(d, aNotB())

	require.True(t, r.Matched())
	assert.Equal(t, [][]any{{"a"}, {"a"}, {"a"}}, r.Value())
	assert.NoError(t, d.End())
}

func TestANotBFlattened(t *testing.T) {
	d := NewDriver(NewSource("aaa"))
	r := Run(d, Flatten(aNotB()))

	require.True(t, r.Matched())
	assert.Equal(t, []any{"a", "a", "a"}, r.Value())
}

func TestANotBStopsBeforeB(t *testing.T) {
	d := NewDriver(NewSource("aab"))
	r := Run(d, aNotB())

	require.True(t, r.Matched())
	assert.Len(t, r.Value(), 1)
	assert.Equal(t, 1, d.Source().Position())

	err := d.End()
	require.Error(t, err)
	assert.Contains(t, err.Error(), msgEnd)
}

func TestPairs(t *testing.T) {
	d := NewDriver(NewSource("{{}{}}"))
	r := Run(d, pairs())

	require.True(t, r.Matched())
	want := []any{"{", []any{"{", "}"}, []any{"{", "}"}, "}"}
	assert.Equal(t, want, r.Value())
	assert.NoError(t, d.End())
}

func TestPairsUnbalanced(t *testing.T) {
	_, err := Parse(pairs(), "{{}")
	require.Error(t, err)
}

func TestMapRegex(t *testing.T) {
	number := Map(MustRegex("[0-9]+"), func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})
	src := NewSource("42x")
	r := number.Match(src)

	require.True(t, r.Matched())
	assert.Equal(t, 42, r.Value())
	assert.Equal(t, 0, r.Start())
	assert.Equal(t, 2, r.End())
	assert.Equal(t, 2, src.Position())
}

func TestFailuresDoNotConsume(t *testing.T) {
	tests := map[string]*Parser[any]{
		"literal":   AsAny(Literal("b")),
		"regex":     AsAny(MustRegex("[0-9]")),
		"seq":       AsAny(Seq(Literal("a"), Literal("x"))),
		"append":    AsAny(Append(Seq(Literal("a")), Seq(Literal("x")))),
		"or":        AsAny(Seq(Literal("a"), Literal("x")).Or(Seq(Literal("a"), Literal("y")))),
		"oneOrMore": AsAny(OneOrMore(Literal("b"))),
		"lookahead": AsAny(Lookahead(Literal("b"))),
		"not":       AsAny(Not(Literal("a"))),
		"map":       AsAny(Map(Literal("b"), func(s string) int { return len(s) })),
		"fail":      AsAny(Fail[string]("never")),
		"seq2":      AsAny(Seq2(Literal("a"), Literal("x"))),
	}

	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			src := NewSource("xab")
			src.Consume(1)

			r := p.Match(src)
			assert.False(t, r.Matched())
			assert.Equal(t, 1, src.Position())
			assert.Equal(t, 1, src.Column())
			assert.Equal(t, 1, r.Failure().Pos)
		})
	}
}

func TestSeqSkipsIgnored(t *testing.T) {
	p := Seq(Literal("a"), Discard(Literal("-")), Literal("b"))
	v, err := Parse(p, "a-b")

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestSeqFailure(t *testing.T) {
	src := NewSource("ac")
	r := Seq(Literal("a"), Literal("b")).Match(src)

	require.False(t, r.Matched())
	f := r.Failure()
	assert.Equal(t, 0, f.Pos)
	assert.Equal(t, msgSequence, f.Message())
	require.NotNil(t, f.Cause)
	assert.Equal(t, `expected "b"`, f.Cause.Message())
	assert.Equal(t, 1, f.Cause.Pos)
	assert.Same(t, f.Cause, f.Deepest())
}

func TestSeqString(t *testing.T) {
	assert.Equal(t, `literal("a") + literal("b")`, Seq(Literal("a"), Literal("b")).String())
	assert.Equal(t, `seq(literal("a"))`, Seq(Literal("a")).String())
}

func TestAppend(t *testing.T) {
	p := Append(Seq(Literal("a"), Literal("b")), Seq(Literal("c")))
	v, err := Parse(p, "abc")

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, v)
}

func TestOr(t *testing.T) {
	p := Literal("a").Or(Literal("b"))

	v, err := Parse(p, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	v, err = Parse(p, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestOrReportsFurthestFailure(t *testing.T) {
	p := Seq(Literal("a"), Literal("b")).Or(Seq(Literal("x")))
	r := p.Match(NewSource("ac"))

	require.False(t, r.Matched())
	assert.Equal(t, `expected "b"`, r.Failure().Deepest().Message())
}

func TestOrTieReportsRight(t *testing.T) {
	r := Literal("a").Or(Literal("b")).Match(NewSource("c"))

	require.False(t, r.Matched())
	assert.Equal(t, `expected "b"`, r.Failure().Message())
}

func TestZeroOrMore(t *testing.T) {
	tests := []struct {
		input string
		want  []string
		pos   int
	}{
		{"", []string{}, 0},
		{"b", []string{}, 0},
		{"aab", []string{"a", "a"}, 2},
		{"aaa", []string{"a", "a", "a"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src := NewSource(tt.input)
			r := ZeroOrMore(Literal("a")).Match(src)

			require.True(t, r.Matched())
			assert.Equal(t, tt.want, r.Value())
			assert.Equal(t, tt.pos, src.Position())
		})
	}
}

func TestRepetitionStopsAfterZeroWidthMatch(t *testing.T) {
	src := NewSource("abc")
	r := ZeroOrMore(Succeed("x")).Match(src)

	require.True(t, r.Matched())
	assert.Equal(t, []string{"x"}, r.Value())
	assert.Equal(t, 0, src.Position())

	src = NewSource("aab")
	r = OneOrMore(MustRegex("a*")).Match(src)
	require.True(t, r.Matched())
	assert.Equal(t, []string{"aa", ""}, r.Value())
	assert.Equal(t, 2, src.Position())
}

func TestOneOrMore(t *testing.T) {
	src := NewSource("b")
	r := OneOrMore(Literal("a")).Match(src)

	require.False(t, r.Matched())
	assert.Equal(t, msgOneOrMore, r.Failure().Message())

	r = OneOrMore(Literal("a")).Match(NewSource(""))
	require.False(t, r.Matched())
	assert.Nil(t, r.Failure().Cause)

	v, err := Parse(OneOrMore(Literal("a")), "aa")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, v)
}

func TestLookahead(t *testing.T) {
	p := Lookahead(Literal("ab"))
	assert.True(t, p.Ignored())
	assert.Equal(t, `+(literal("ab"))`, p.String())

	src := NewSource("abc")
	r := p.Match(src)
	require.True(t, r.Matched())
	assert.Equal(t, 0, src.Position())
	assert.Equal(t, 0, r.End())

	r = p.Match(NewSource("ac"))
	require.False(t, r.Matched())
	assert.Equal(t, msgLookahead, r.Failure().Message())
}

func TestNot(t *testing.T) {
	p := Not(Literal("a"))
	assert.True(t, p.Ignored())
	assert.Equal(t, `!(literal("a"))`, p.String())

	src := NewSource("b")
	require.True(t, p.Match(src).Matched())
	assert.Equal(t, 0, src.Position())

	r := p.Match(NewSource("a"))
	require.False(t, r.Matched())
	assert.Equal(t, msgNegative, r.Failure().Message())
}

func TestLookaheadInSequence(t *testing.T) {
	p := Seq(AsAny(Lookahead(Literal("a"))), AsAny(Literal("a")))
	v, err := Parse(p, "a")

	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, v)
}

func TestRefFollowsTarget(t *testing.T) {
	var target *Parser[string]
	ref := Ref(func() *Parser[string] { return target })
	assert.False(t, ref.Ignored(), "unresolved refs are not ignored")
	assert.Equal(t, "...", ref.String())

	target = Literal("x")
	assert.False(t, ref.Ignored())
	target.Ignore()
	assert.True(t, ref.Ignored())

	v, err := Parse(Seq(Literal("a"), ref), "ax")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)
}

func TestOptional(t *testing.T) {
	p := Optional(Literal("a"))

	src := NewSource("b")
	r := p.Match(src)
	require.True(t, r.Matched())
	assert.Nil(t, r.Value())
	assert.Equal(t, 0, r.End())
	assert.Equal(t, 0, src.Position())

	r = p.Match(NewSource("a"))
	require.True(t, r.Matched())
	require.NotNil(t, r.Value())
	assert.Equal(t, "a", *r.Value())
}

func TestMapSpan(t *testing.T) {
	type token struct {
		text       string
		start, end int
	}
	q := MapSpan(MustRegex("[a-z]+"), func(s string, start, end int) token {
		return token{s, start, end}
	})
	src := NewSource("  abc")
	src.Consume(2)
	r := q.Match(src)

	require.True(t, r.Matched())
	assert.Equal(t, token{"abc", 2, 5}, r.Value())
}

func TestFlattenIsIgnored(t *testing.T) {
	p := Flatten(Seq(Seq(Literal("a"))))
	assert.True(t, p.Ignored())

	v, err := Parse(p, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)
}

func TestDiscardLeavesOriginal(t *testing.T) {
	p := Literal("a")
	d := Discard(p)

	assert.True(t, d.Ignored())
	assert.False(t, p.Ignored())
	assert.NotSame(t, p, d)
}

func TestAsAnyFollowsIgnored(t *testing.T) {
	p := Literal("a")
	q := AsAny(p)
	assert.False(t, q.Ignored())
	p.Ignore()
	assert.True(t, q.Ignored())
	assert.Equal(t, p.String(), q.String())
}

func TestRegex(t *testing.T) {
	p := MustRegex("b+")

	r := p.Match(NewSource("abb"))
	assert.False(t, r.Matched(), "regex is anchored at the cursor")
	assert.Equal(t, "expected match for /b+/", r.Failure().Message())

	src := NewSource("abb")
	src.Consume(1)
	r = p.Match(src)
	require.True(t, r.Matched())
	assert.Equal(t, "bb", r.Value())
}

func TestRegexAlternationIsAnchored(t *testing.T) {
	p := MustRegex("x|b")
	r := p.Match(NewSource("ab"))
	assert.False(t, r.Matched())
}

func TestRegexInvalid(t *testing.T) {
	_, err := Regex("(")
	require.Error(t, err)

	assert.Panics(t, func() { MustRegex("(") })
}

func TestSucceedAndFail(t *testing.T) {
	v, err := Parse(Succeed(7), "")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	r := Fail[int]("nope").Match(NewSource("abc"))
	require.False(t, r.Matched())
	assert.Equal(t, "nope", r.Failure().Message())
}

func TestResultString(t *testing.T) {
	r := Literal("ab").Match(NewSource("abc"))
	assert.Equal(t, "Success(value=ab, startPosition=0, endPosition=2)", r.String())

	r = Literal("x").Match(NewSource("abc"))
	assert.Contains(t, r.String(), "Failure(error=Error: expected \"x\"")
	assert.Contains(t, r.String(), "startPosition=0)")
}

func TestResultOrElseIsLazy(t *testing.T) {
	called := false
	r := Success(1, 0, 1).OrElse(func() Result[int] {
		called = true
		return Success(2, 0, 0)
	})
	assert.False(t, called)
	assert.Equal(t, 1, r.Value())
}
