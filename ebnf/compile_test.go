package ebnf

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xebnf "golang.org/x/exp/ebnf"

	"github.com/dhamidi/descent/diag"
	"github.com/dhamidi/descent/parser"
)

const listGrammar = `
List = "[" [ number { "," number } ] "]" .
number = digit { digit } .
digit = "0" … "9" .
`

func readGrammar(t *testing.T, src string) xebnf.Grammar {
	t.Helper()
	g, err := ReadGrammar("test.ebnf", strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func compile(t *testing.T, src string, opts ...Option) *Grammar {
	t.Helper()
	g, err := Compile(readGrammar(t, src), opts...)
	require.NoError(t, err)
	return g
}

func leaf(kind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

var ignoreSpans = cmpopts.IgnoreFields(Node{}, "Span")

func TestParseList(t *testing.T) {
	g := compile(t, listGrammar, WithWhitespace(`[ \t\r\n]*`))

	got, err := g.Parse("[1, 23]", "List")
	require.NoError(t, err)

	want := &Node{
		Kind: "List",
		Children: []*Node{
			leaf(KindToken, "["),
			leaf("number", "1"),
			leaf(KindToken, ","),
			leaf("number", "23"),
			leaf(KindToken, "]"),
		},
	}
	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestParseEmptyList(t *testing.T) {
	g := compile(t, listGrammar)

	got, err := g.Parse("[]", "List")
	require.NoError(t, err)
	assert.Len(t, got.Children, 2)
	assert.False(t, got.IsLeaf())
}

func TestParseSpans(t *testing.T) {
	g := compile(t, listGrammar, WithWhitespace(`[ \t\r\n]*`))

	got, err := g.Parse("[\n  42\n]\n", "List", parser.WithName("in.txt"))
	require.NoError(t, err)

	numbers := got.Find("number")
	require.Len(t, numbers, 1)
	assert.Equal(t, Span{
		Start: diag.Position{Name: "in.txt", Offset: 4, Line: 2, Column: 2},
		End:   diag.Position{Name: "in.txt", Offset: 6, Line: 2, Column: 4},
	}, numbers[0].Span)

	assert.Equal(t, 0, got.Span.Start.Offset)
	assert.Equal(t, 8, got.Span.End.Offset)
}

func TestWhitespaceIsOptional(t *testing.T) {
	g := compile(t, listGrammar, WithWhitespace(`\s+`))

	tests := []string{"[1]", "[ 1 ]", " [1, 2] ", "[1,\n2]\n"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := g.Parse(input, "List")
			require.NoError(t, err)
			assert.Equal(t, "List", got.Kind)
		})
	}

	_, err := g.Parse("[1 2]", "List")
	assert.Error(t, err)
}

func TestParseWithoutWhitespace(t *testing.T) {
	g := compile(t, listGrammar)

	_, err := g.Parse("[1, 2]", "List")
	require.Error(t, err)

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, `expected "]"`, perr.Failure.Message())
	assert.Equal(t, 2, perr.Failure.Diagnostic.Position.Column)
}

func TestParseErrors(t *testing.T) {
	g := compile(t, listGrammar, WithWhitespace(`[ ]*`))

	tests := []string{"[1,]", "[1 2]", "1", "[1] x"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := g.Parse(input, "List")
			assert.Error(t, err)
		})
	}
}

func TestParseUnknownStart(t *testing.T) {
	g := compile(t, listGrammar)

	_, err := g.Parse("[]", "Missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrRuleUndefined))
}

func TestRecursiveProductions(t *testing.T) {
	g := compile(t, `
Expr = Term { "+" Term } .
Term = ident | "(" Expr ")" .
ident = letter { letter } .
letter = "a" … "z" .
`, WithWhitespace(` *`))

	got, err := g.Parse("a + (b + c)", "Expr")
	require.NoError(t, err)
	assert.Len(t, got.Find("ident"), 3)
	assert.Len(t, got.Find("Expr"), 2)
	assert.NoError(t, g.Rules().Check())
}

func TestCompileInvalidWhitespace(t *testing.T) {
	_, err := Compile(readGrammar(t, listGrammar), WithWhitespace("("))
	assert.Error(t, err)
}

func TestReadGrammarError(t *testing.T) {
	_, err := ReadGrammar("bad.ebnf", strings.NewReader(`List = "["`))
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	g := readGrammar(t, listGrammar)

	assert.NoError(t, Verify(g, "List"))
	assert.NoError(t, Verify(g, ""))
	assert.Error(t, Verify(g, "Missing"))
}

func TestLoadGrammarMissingFile(t *testing.T) {
	_, err := LoadGrammar("does-not-exist.ebnf")
	assert.Error(t, err)
}
