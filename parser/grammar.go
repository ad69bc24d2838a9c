package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRuleDefined   = errors.New("rule already defined")
	ErrRuleUndefined = errors.New("rule not defined")
)

// Grammar is a registry of named rules. Rules may be referenced before
// they are defined; references are resolved on every match, which is what
// makes recursive and mutually recursive rules possible.
type Grammar struct {
	rules map[string]*Parser[any]
	refs  map[string]*Parser[any]
}

func NewGrammar() *Grammar {
	return &Grammar{
		rules: make(map[string]*Parser[any]),
		refs:  make(map[string]*Parser[any]),
	}
}

// Define binds name to p.
func (g *Grammar) Define(name string, p *Parser[any]) error {
	if _, ok := g.rules[name]; ok {
		return fmt.Errorf("%w: %s", ErrRuleDefined, name)
	}
	g.rules[name] = p
	return nil
}

// Rule returns a reference to the rule called name. The same reference is
// returned for every call, so memoized results are shared between uses.
func (g *Grammar) Rule(name string) *Parser[any] {
	if ref, ok := g.refs[name]; ok {
		return ref
	}
	ref := newParser(
		func() string { return name },
		func(src *Source) Result[any] {
			p, ok := g.rules[name]
			if !ok {
				return NoMatch[any](src.Error(fmt.Sprintf("rule %q is not defined", name)))
			}
			return p.Match(src)
		},
	)
	ref.ignoredFn = func() bool {
		p, ok := g.rules[name]
		return ok && p.Ignored()
	}
	g.refs[name] = ref
	return ref
}

// Lookup returns the parser defined for name.
func (g *Grammar) Lookup(name string) (*Parser[any], bool) {
	p, ok := g.rules[name]
	return p, ok
}

// Names returns the defined rule names in sorted order.
func (g *Grammar) Names() []string {
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check reports rules that were referenced but never defined.
func (g *Grammar) Check() error {
	var missing []string
	for name := range g.refs {
		if _, ok := g.rules[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrRuleUndefined, strings.Join(missing, ", "))
}
