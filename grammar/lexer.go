package grammar

import (
	"fmt"
	"io"

	"golang.org/x/exp/ebnf"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kinds of tokens that do not come from the grammar.
const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// Token is a lexeme matched by the grammar. Kind is the literal itself for
// keywords and operators, or the name of the lexical production that
// matched.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input with the terminals of a grammar. At each position
// the longest match wins; on a tie a literal token beats a lexical
// production, so keywords are not read as identifiers.
type Lexer struct {
	grammar  ebnf.Grammar
	literals []string
	lexical  []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // cycle detection
}

func NewLexer(grammar ebnf.Grammar, input []byte, filename string) *Lexer {
	literals, lexical := Terminals(grammar)
	return &Lexer{
		grammar:  grammar,
		literals: literals,
		lexical:  lexical,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// skipSpace skips whitespace and comments.
func (l *Lexer) skipSpace() error {
	for l.pos < len(l.input) {
		switch ch := l.peekAt(0); {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f':
			l.advance()
		case ch == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.input) && l.peekAt(0) != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekAt(1) == '*':
			start := l.Position()
			l.advance()
			l.advance()
			for {
				if l.pos >= len(l.input) {
					return fmt.Errorf("%s: unterminated block comment", start)
				}
				if l.peekAt(0) == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// NextToken returns the next token. At the end of input it returns a token
// of kind KindEOF together with io.EOF. A character no terminal matches is
// returned as a single-character KindError token.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipSpace(); err != nil {
		return Token{}, err
	}
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	l.memo = make(map[memoKey]int)

	var bestKind string
	var bestLen int
	for _, lit := range l.literals {
		if n := l.tryMatchToken(lit, startOffset); n > bestLen {
			bestLen = n
			bestKind = lit
		}
	}
	for _, name := range l.lexical {
		l.visiting = make(map[memoKey]bool)
		if n := l.tryMatchName(name, startOffset); n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		ch := l.advance()
		return Token{
			Kind:     KindError,
			Literal:  string(ch),
			Position: startPos,
		}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// tryMatch returns the length of the match of expr at offset, or 0.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.tryMatchToken(e.String, offset)

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		pos := offset
		for _, item := range e {
			n := l.tryMatch(item, pos)
			if n == 0 && !nullable(item) {
				return 0
			}
			total += n
			pos += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := l.tryMatch(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		pos := offset
		for {
			n := l.tryMatch(e.Body, pos)
			if n == 0 {
				break
			}
			total += n
			pos += n
		}
		return total

	case *ebnf.Option:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)
	}
	return 0
}

// nullable reports whether expr may match the empty string, so a zero
// length match of it does not fail the enclosing sequence.
func nullable(expr ebnf.Expression) bool {
	switch e := expr.(type) {
	case *ebnf.Repetition, *ebnf.Option:
		return true
	case *ebnf.Group:
		return nullable(e.Body)
	}
	return false
}

func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := l.memo[key]; ok {
		if result == -1 {
			return 0
		}
		return result
	}
	// Left recursion.
	if l.visiting[key] {
		return 0
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	if result == 0 {
		l.memo[key] = -1
	} else {
		l.memo[key] = result
	}
	return result
}

func (l *Lexer) tryMatchToken(token string, offset int) int {
	if token == "" || offset+len(token) > len(l.input) {
		return 0
	}
	if string(l.input[offset:offset+len(token)]) == token {
		return len(token)
	}
	return 0
}

// tryMatchRange matches one byte within a range such as "a" … "z".
func (l *Lexer) tryMatchRange(begin, end string, offset int) int {
	if offset >= len(l.input) || len(begin) != 1 || len(end) != 1 {
		return 0
	}
	ch := l.input[offset]
	if ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return 0
}

// Tokenize reads all tokens, ending with the KindEOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}
