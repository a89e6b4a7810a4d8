package parser

import (
	"errors"
	"testing"
)

func lexKinds(t *testing.T, input string) []TokenKind {
	t.Helper()
	tokens, err := Tokenize([]byte(input), "test.cva")
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"   \n\t ", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"class Foo {}", []TokenKind{TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123", []TokenKind{TokenNumber, TokenEOF}},
		{`"hello"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenEOF}},
		{"+= -= *= /= %=", []TokenKind{TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign, TokenPercentAssign, TokenEOF}},
		{"== < <= > >=", []TokenKind{TokenEQ, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || !", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenEOF}},
		{"& | ^ ~", []TokenKind{TokenBitAnd, TokenBitOr, TokenBitXor, TokenBitNot, TokenEOF}},
		{"&= |= ^= ~=", []TokenKind{TokenAndAssign, TokenOrAssign, TokenXorAssign, TokenBitNotAssign, TokenEOF}},
		{"<< >> <<= >>=", []TokenKind{TokenShl, TokenShr, TokenShlAssign, TokenShrAssign, TokenEOF}},
		{"++ -- ->", []TokenKind{TokenIncrement, TokenDecrement, TokenArrow, TokenEOF}},
		{"{ } ( ) [ ] ; : , . !", []TokenKind{
			TokenLBrace, TokenRBrace, TokenLParen, TokenRParen, TokenLBracket, TokenRBracket,
			TokenSemicolon, TokenColon, TokenComma, TokenDot, TokenNot, TokenEOF,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lexKinds(t, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerMaximalMunch(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"+++", []TokenKind{TokenIncrement, TokenPlus, TokenEOF}},
		{"<<=", []TokenKind{TokenShlAssign, TokenEOF}},
		{"<<<", []TokenKind{TokenShl, TokenLT, TokenEOF}},
		{">>=>", []TokenKind{TokenShrAssign, TokenGT, TokenEOF}},
		{"a+=b", []TokenKind{TokenIdent, TokenPlusAssign, TokenIdent, TokenEOF}},
		{"x--;", []TokenKind{TokenIdent, TokenDecrement, TokenSemicolon, TokenEOF}},
		{"a&&&b", []TokenKind{TokenIdent, TokenAnd, TokenBitAnd, TokenIdent, TokenEOF}},
		{"===", []TokenKind{TokenEQ, TokenAssign, TokenEOF}},
		{"a/b", []TokenKind{TokenIdent, TokenSlash, TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lexKinds(t, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerKeywords(t *testing.T) {
	for _, word := range Keywords() {
		t.Run(word, func(t *testing.T) {
			want, _ := LookupKeyword(word)
			got := lexKinds(t, word)
			if got[0] != want {
				t.Errorf("Kind = %v, want %v", got[0], want)
			}
		})
	}
}

func TestLexerWords(t *testing.T) {
	tests := []struct {
		input   string
		kind    TokenKind
		literal string
	}{
		{"foo", TokenIdent, "foo"},
		{"camelCase42", TokenIdent, "camelCase42"},
		{"with_underscore", TokenIdent, "with_underscore"},
		{"Écrire", TokenIdent, "Écrire"},
		{"classy", TokenIdent, "classy"},
		{"0", TokenNumber, "0"},
		{"2147483647", TokenNumber, "2147483647"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize([]byte(tt.input), "test.cva")
			if err != nil {
				t.Fatalf("Tokenize error: %v", err)
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Literal != tt.literal {
				t.Errorf("Literal = %q, want %q", tokens[0].Literal, tt.literal)
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`""`, ""},
		{`"hello world"`, "hello world"},
		{`"a\"b"`, `a"b`},
		{`"tab\there"`, "tab\there"},
		{`"line\n"`, "line\n"},
		{`"back\\slash"`, `back\slash`},
		{`"x+y;"`, "x+y;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize([]byte(tt.input), "test.cva")
			if err != nil {
				t.Fatalf("Tokenize error: %v", err)
			}
			if tokens[0].Kind != TokenStringLiteral {
				t.Fatalf("Kind = %v, want %v", tokens[0].Kind, TokenStringLiteral)
			}
			if tokens[0].Literal != tt.want {
				t.Errorf("Literal = %q, want %q", tokens[0].Literal, tt.want)
			}
		})
	}
}

func TestLexerLineNumbers(t *testing.T) {
	input := "class\n// comment\nFoo /* a\nb\n*/ {\n\n}"
	tokens, err := Tokenize([]byte(input), "test.cva")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	want := []int{1, 3, 5, 7, 7}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Line != want[i] {
			t.Errorf("token %d (%v): Line = %d, want %d", i, tok.Kind, tok.Line, want[i])
		}
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := NewLexer(NewStringSource("x"), "test.cva")
	if tok, _ := l.NextToken(); tok.Kind != TokenIdent {
		t.Fatalf("first token = %v, want Identifier", tok.Kind)
	}
	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("NextToken error: %v", err)
		}
		if tok.Kind != TokenEOF {
			t.Errorf("call %d: Kind = %v, want EOF", i, tok.Kind)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		line         int
		literal      string
		unterminated bool
	}{
		{"leading digit", "1abc", 1, "1abc", false},
		{"leading underscore", "\n_x", 2, "_x", false},
		{"stray symbol", "a # b", 1, "#", false},
		{"unterminated string", "x\n\"abc", 2, "\"abc", true},
		{"string across lines", "\"ab\ncd\"", 1, "\"ab", true},
		{"illegal escape", `"a\qb"`, 1, `\q`, false},
		{"unterminated comment", "x\n/* never\n closed", 2, "", true},
		{"no-break space", "\u00a0x", 1, "\u00a0x", false},
		{"next line control", "x = \u0085;", 1, "\u0085", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input), "test.cva")
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("error = %v, want *LexError", err)
			}
			if lexErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", lexErr.Line, tt.line)
			}
			if lexErr.Literal != tt.literal {
				t.Errorf("Literal = %q, want %q", lexErr.Literal, tt.literal)
			}
			if got := errors.Is(err, ErrUnterminated); got != tt.unterminated {
				t.Errorf("errors.Is(err, ErrUnterminated) = %v, want %v", got, tt.unterminated)
			}
		})
	}
}

func TestLexerWhitespace(t *testing.T) {
	tokens, err := Tokenize([]byte("a\u2028b\u3000c\v\fd\x1fe"), "")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	want := []string{"a", "b", "c", "d", "e"}
	if len(tokens) != len(want)+1 {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want)+1, tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != TokenIdent || tokens[i].Literal != w {
			t.Errorf("token %d = %v, want identifier %q", i, tokens[i], w)
		}
	}
}

func TestSourcePeekPoll(t *testing.T) {
	src := NewStringSource("ab")
	if got := src.Peek(1); got != 'b' {
		t.Errorf("Peek(1) = %q, want 'b'", got)
	}
	if got := src.Peek(2); got != EOF {
		t.Errorf("Peek(2) = %q, want EOF", got)
	}
	if !src.HasNext(1) || src.HasNext(2) {
		t.Errorf("HasNext mismatch")
	}
	if got := src.PollN(5); got != "ab" {
		t.Errorf("PollN(5) = %q, want %q", got, "ab")
	}
	if got := src.Poll(); got != EOF {
		t.Errorf("Poll() after end = %q, want EOF", got)
	}
}
