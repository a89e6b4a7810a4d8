// Package grammar holds the EBNF grammar of the Cva language and a lexer
// driven by its lexical productions.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Start is the production a Cva source file is derived from.
const Start = "Program"

//go:embed cva.ebnf
var source []byte

// Source returns the text of the embedded grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("cva.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// LoadFile parses a grammar from a file.
func LoadFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Verify checks that every production is defined and reachable from start,
// and that lexical productions only refer to lexical productions.
func Verify(grammar ebnf.Grammar, start string) error {
	return ebnf.Verify(grammar, start)
}

// Errors flattens the error lists returned by ebnf.Parse and ebnf.Verify.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	out := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			out = append(out, e)
		}
	}
	return out
}

// IsLexical reports whether name is a lexical production.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// Productions returns the names of all productions in sorted order.
func Productions(grammar ebnf.Grammar) []string {
	names := make([]string, 0, len(grammar))
	for name := range grammar {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Terminals collects what the syntactic productions consume: literal
// tokens such as keywords and operators, and the lexical productions they
// reference by name.
func Terminals(grammar ebnf.Grammar) (literals, lexical []string) {
	lits := map[string]bool{}
	names := map[string]bool{}

	var walk func(expr ebnf.Expression)
	walk = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case *ebnf.Token:
			lits[e.String] = true
		case *ebnf.Name:
			if IsLexical(e.String) {
				names[e.String] = true
			}
		case ebnf.Sequence:
			for _, item := range e {
				walk(item)
			}
		case ebnf.Alternative:
			for _, alt := range e {
				walk(alt)
			}
		case *ebnf.Repetition:
			walk(e.Body)
		case *ebnf.Option:
			walk(e.Body)
		case *ebnf.Group:
			walk(e.Body)
		}
	}
	for name, prod := range grammar {
		if IsLexical(name) || prod.Expr == nil {
			continue
		}
		walk(prod.Expr)
	}

	for lit := range lits {
		literals = append(literals, lit)
	}
	for name := range names {
		lexical = append(lexical, name)
	}
	sort.Strings(literals)
	sort.Strings(lexical)
	return literals, lexical
}
