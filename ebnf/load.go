// Package ebnf turns grammars written in Go-style EBNF into parsers.
//
// Productions whose name does not start with an uppercase letter are lexical: they
// match text without intervening whitespace and produce leaf nodes. All
// other productions are syntactic and produce interior nodes. Left
// recursive productions are not supported.
package ebnf

import (
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("descent.ebnf")

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ReadGrammar(filename, f)
}

// ReadGrammar parses an EBNF grammar from r. Filename is used in error
// positions.
func ReadGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Verify checks that every production reachable from start is defined and
// well formed. An empty start only checks that the grammar parsed.
func Verify(grammar ebnf.Grammar, start string) error {
	if start == "" {
		return nil
	}
	return ebnf.Verify(grammar, start)
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}
