package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"
)

// ParseError reports the furthest position the parser reached together
// with every terminal it would have accepted there.
type ParseError struct {
	Position Position
	Expected []string
	Got      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Position, strings.Join(e.Expected, " or "), e.Got)
}

// Parser matches a token stream against the syntactic productions of a
// grammar. Alternatives are tried in order and repetitions are greedy, with
// backtracking on failure; the grammar must not be left-recursive.
type Parser struct {
	grammar ebnf.Grammar
	tokens  []Token
	eof     Token

	furthest int
	expected map[string]bool
}

// NewParser creates a parser over tokens as produced by Lexer.Tokenize.
func NewParser(g ebnf.Grammar, tokens []Token) *Parser {
	p := &Parser{grammar: g, expected: make(map[string]bool)}
	for _, tok := range tokens {
		if tok.Kind == KindEOF {
			p.eof = tok
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
	if p.eof.Kind == "" {
		p.eof = Token{Kind: KindEOF}
		if n := len(p.tokens); n > 0 {
			p.eof.Position = p.tokens[n-1].Position
		}
	}
	return p
}

// Parse derives the whole token stream from the start production.
func (p *Parser) Parse(start string) (*Node, error) {
	prod, ok := p.grammar[start]
	if !ok {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	if tok, bad := p.firstError(); bad {
		return nil, &ParseError{Position: tok.Position, Expected: []string{"a token"}, Got: strconv.Quote(tok.Literal)}
	}

	root := NewNonTerminal(start)
	end, ok := p.match(prod.Expr, 0, root)
	if ok && end == len(p.tokens) {
		root.close()
		return root, nil
	}
	if ok {
		p.fail(end, "end of file")
	}
	return nil, p.error()
}

func (p *Parser) firstError() (Token, bool) {
	for _, tok := range p.tokens {
		if tok.Kind == KindError {
			return tok, true
		}
	}
	return Token{}, false
}

// match appends the nodes matched by expr at pos to parent and returns the
// position after them. On failure parent is left unchanged.
func (p *Parser) match(expr ebnf.Expression, pos int, parent *Node) (int, bool) {
	mark := len(parent.Children)
	reset := func() {
		parent.Children = parent.Children[:mark]
	}

	switch e := expr.(type) {
	case nil:
		return pos, true

	case *ebnf.Token:
		return p.terminal(e.String, strconv.Quote(e.String), pos, parent)

	case *ebnf.Name:
		if IsLexical(e.String) {
			return p.terminal(e.String, e.String, pos, parent)
		}
		prod, ok := p.grammar[e.String]
		if !ok {
			return pos, false
		}
		child := NewNonTerminal(e.String)
		end, ok := p.match(prod.Expr, pos, child)
		if !ok {
			return pos, false
		}
		child.close()
		parent.Children = append(parent.Children, child)
		return end, true

	case ebnf.Sequence:
		cur := pos
		for _, item := range e {
			end, ok := p.match(item, cur, parent)
			if !ok {
				reset()
				return pos, false
			}
			cur = end
		}
		return cur, true

	case ebnf.Alternative:
		for _, alt := range e {
			if end, ok := p.match(alt, pos, parent); ok {
				return end, true
			}
		}
		return pos, false

	case *ebnf.Option:
		if end, ok := p.match(e.Body, pos, parent); ok {
			return end, true
		}
		return pos, true

	case *ebnf.Repetition:
		cur := pos
		for {
			end, ok := p.match(e.Body, cur, parent)
			if !ok || end == cur {
				return cur, true
			}
			cur = end
		}

	case *ebnf.Group:
		return p.match(e.Body, pos, parent)
	}
	return pos, false
}

func (p *Parser) terminal(kind, describe string, pos int, parent *Node) (int, bool) {
	if pos < len(p.tokens) && p.tokens[pos].Kind == kind {
		parent.Children = append(parent.Children, NewTerminal(p.tokens[pos]))
		return pos + 1, true
	}
	p.fail(pos, describe)
	return pos, false
}

func (p *Parser) fail(pos int, expected string) {
	if pos > p.furthest {
		p.furthest = pos
		p.expected = make(map[string]bool)
	}
	if pos == p.furthest {
		p.expected[expected] = true
	}
}

func (p *Parser) error() *ParseError {
	tok := p.eof
	got := "end of file"
	if p.furthest < len(p.tokens) {
		tok = p.tokens[p.furthest]
		got = strconv.Quote(tok.Literal)
	}
	expected := make([]string, 0, len(p.expected))
	for e := range p.expected {
		expected = append(expected, e)
	}
	sort.Strings(expected)
	return &ParseError{Position: tok.Position, Expected: expected, Got: got}
}

// ParseSource tokenizes and parses src with g from its start production.
func ParseSource(g ebnf.Grammar, src []byte, filename, start string) (*Node, error) {
	tokens, err := NewLexer(g, src, filename).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(g, tokens).Parse(start)
}
