package ebnf

import "github.com/dhamidi/descent/diag"

// KindToken is the kind of nodes created for literal tokens and character
// ranges that appear directly in a syntactic production.
const KindToken = "token"

// Span represents a range in source code.
type Span struct {
	Start diag.Position
	End   diag.Position
}

// Node represents a node in the concrete syntax tree.
// Leaf nodes carry the matched Text; interior nodes have Children.
type Node struct {
	Kind     string  // Production name, or KindToken
	Text     string  // Matched text (leaves only)
	Span     Span    // Source span covering this node
	Children []*Node // Child nodes (nil for leaves)
}

// IsLeaf returns true if this node was produced by a token or a lexical
// production.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Walk calls fn for n and all its descendants in depth-first order,
// skipping the children of nodes for which fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns all nodes of the given kind below and including n.
func (n *Node) Find(kind string) []*Node {
	var found []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			found = append(found, c)
		}
		return true
	})
	return found
}

func newNode(kind string, start, end diag.Position) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: start, End: end},
	}
}
