package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/descent/ebnf"
)

// Encoder writes concrete syntax trees.
type Encoder interface {
	Encode(node *ebnf.Node) error
	MarshalText(node *ebnf.Node) ([]byte, error)
}

var encoders = map[string]func(io.Writer) Encoder{
	"json": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"yaml": func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
}

// Names lists the supported output formats.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEncoder returns the encoder for the format called name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q, expected one of %v", name, Names())
	}
	return newEncoder(w), nil
}

type treeNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Span     *treeSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type treeSpan struct {
	Start treePosition `json:"start" yaml:"start"`
	End   treePosition `json:"end" yaml:"end"`
}

type treePosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func nodeToTree(n *ebnf.Node) *treeNode {
	tn := &treeNode{
		Kind: n.Kind,
		Text: n.Text,
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		tn.Span = &treeSpan{
			Start: treePosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   treePosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if len(n.Children) > 0 {
		tn.Children = make([]*treeNode, len(n.Children))
		for i, child := range n.Children {
			tn.Children[i] = nodeToTree(child)
		}
	}

	return tn
}
