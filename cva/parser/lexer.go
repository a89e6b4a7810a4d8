package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	src  CharSource
	file string
	line int
}

func NewLexer(src CharSource, file string) *Lexer {
	return &Lexer{
		src:  src,
		file: file,
		line: 1,
	}
}

// Line returns the line the lexer is currently positioned on.
func (l *Lexer) Line() int {
	return l.line
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() (Token, error) {
	for {
		ch := l.src.Poll()
		for ch != EOF && isWhitespace(ch) {
			if ch == '\n' {
				l.line++
			}
			ch = l.src.Poll()
		}

		switch ch {
		case EOF:
			return l.token(TokenEOF), nil
		case '+':
			return l.scanPlus(), nil
		case '-':
			return l.scanMinus(), nil
		case '*':
			return l.withAssign(TokenStar, TokenStarAssign), nil
		case '&':
			return l.scanAnd(), nil
		case '|':
			return l.scanOr(), nil
		case '=':
			return l.withAssign(TokenAssign, TokenEQ), nil
		case '<':
			return l.scanShift(TokenLT, TokenLE, '<', TokenShl, TokenShlAssign), nil
		case '>':
			return l.scanShift(TokenGT, TokenGE, '>', TokenShr, TokenShrAssign), nil
		case '^':
			return l.withAssign(TokenBitXor, TokenXorAssign), nil
		case '~':
			return l.withAssign(TokenBitNot, TokenBitNotAssign), nil
		case '%':
			return l.withAssign(TokenPercent, TokenPercentAssign), nil
		case '/':
			tok, comment, err := l.scanSlash()
			if err != nil {
				return Token{}, err
			}
			if comment {
				continue
			}
			return tok, nil
		case '"':
			return l.scanString()
		default:
			return l.scanWord(ch)
		}
	}
}

func (l *Lexer) token(kind TokenKind) Token {
	return Token{Kind: kind, Line: l.line}
}

// withAssign returns compound when the operator is followed by '='.
func (l *Lexer) withAssign(single, compound TokenKind) Token {
	if l.src.Peek(0) == '=' {
		l.src.Poll()
		return l.token(compound)
	}
	return l.token(single)
}

func (l *Lexer) scanPlus() Token {
	switch l.src.Peek(0) {
	case '+':
		l.src.Poll()
		return l.token(TokenIncrement)
	case '=':
		l.src.Poll()
		return l.token(TokenPlusAssign)
	}
	return l.token(TokenPlus)
}

func (l *Lexer) scanMinus() Token {
	switch l.src.Peek(0) {
	case '-':
		l.src.Poll()
		return l.token(TokenDecrement)
	case '=':
		l.src.Poll()
		return l.token(TokenMinusAssign)
	case '>':
		l.src.Poll()
		return l.token(TokenArrow)
	}
	return l.token(TokenMinus)
}

func (l *Lexer) scanAnd() Token {
	switch l.src.Peek(0) {
	case '&':
		l.src.Poll()
		return l.token(TokenAnd)
	case '=':
		l.src.Poll()
		return l.token(TokenAndAssign)
	}
	return l.token(TokenBitAnd)
}

func (l *Lexer) scanOr() Token {
	switch l.src.Peek(0) {
	case '|':
		l.src.Poll()
		return l.token(TokenOr)
	case '=':
		l.src.Poll()
		return l.token(TokenOrAssign)
	}
	return l.token(TokenBitOr)
}

// scanShift resolves '<' and '>' into the comparison, shift and
// shift-assign forms, looking up to two characters ahead.
func (l *Lexer) scanShift(cmp, cmpEq TokenKind, self rune, shift, shiftAssign TokenKind) Token {
	switch l.src.Peek(0) {
	case '=':
		l.src.Poll()
		return l.token(cmpEq)
	case self:
		if l.src.Peek(1) == '=' {
			l.src.PollN(2)
			return l.token(shiftAssign)
		}
		l.src.Poll()
		return l.token(shift)
	}
	return l.token(cmp)
}

func (l *Lexer) scanSlash() (Token, bool, error) {
	switch l.src.Peek(0) {
	case '/':
		l.skipLineComment()
		return Token{}, true, nil
	case '*':
		if err := l.skipBlockComment(); err != nil {
			return Token{}, false, err
		}
		return Token{}, true, nil
	case '=':
		l.src.Poll()
		return l.token(TokenSlashAssign), false, nil
	}
	return l.token(TokenSlash), false, nil
}

func (l *Lexer) skipLineComment() {
	for {
		ch := l.src.Poll()
		if ch == EOF {
			return
		}
		if ch == '\n' {
			l.line++
			return
		}
	}
}

func (l *Lexer) skipBlockComment() error {
	start := l.line
	l.src.Poll()
	for {
		switch l.src.Poll() {
		case EOF:
			return &LexError{
				File:    l.file,
				Line:    start,
				Message: "unterminated block comment",
				Err:     ErrUnterminated,
			}
		case '\n':
			l.line++
		case '*':
			if l.src.Peek(0) == '/' {
				l.src.Poll()
				return nil
			}
		}
	}
}

// scanString reads a double-quoted literal. The supported escapes are \" \\
// \n \t and \r; a string may not span lines.
func (l *Lexer) scanString() (Token, error) {
	var b strings.Builder
	start := l.line
	for {
		ch := l.src.Poll()
		switch ch {
		case EOF, '\n':
			return Token{}, &LexError{
				File:    l.file,
				Line:    start,
				Literal: "\"" + b.String(),
				Message: "unterminated string literal",
				Err:     ErrUnterminated,
			}
		case '"':
			return Token{Kind: TokenStringLiteral, Line: l.line, Literal: b.String()}, nil
		case '\\':
			esc := l.src.Poll()
			switch esc {
			case '"', '\\':
				b.WriteRune(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case EOF:
				return Token{}, &LexError{
					File:    l.file,
					Line:    start,
					Literal: "\"" + b.String(),
					Message: "unterminated string literal",
					Err:     ErrUnterminated,
				}
			default:
				return Token{}, &LexError{
					File:    l.file,
					Line:    l.line,
					Literal: "\\" + string(esc),
					Message: "illegal escape sequence",
				}
			}
		default:
			b.WriteRune(ch)
		}
	}
}

// scanWord handles the fixed single-character tokens, keywords, numbers and
// identifiers.
func (l *Lexer) scanWord(first rune) (Token, error) {
	if kind, ok := fixedTokens[first]; ok {
		return l.token(kind), nil
	}

	var b strings.Builder
	b.WriteRune(first)
	for {
		ch := l.src.Peek(0)
		if ch == EOF || isWhitespace(ch) || isSpecial(ch) {
			break
		}
		b.WriteRune(ch)
		l.src.Poll()
	}
	word := b.String()

	if kind, ok := LookupKeyword(word); ok {
		return l.token(kind), nil
	}
	if isNumber(word) {
		return Token{Kind: TokenNumber, Line: l.line, Literal: word}, nil
	}
	if isIdentifier(word) {
		return Token{Kind: TokenIdent, Line: l.line, Literal: word}, nil
	}
	return Token{}, &LexError{
		File:    l.file,
		Line:    l.line,
		Literal: word,
		Message: "illegal identifier",
	}
}

// isWhitespace accepts the ASCII controls \t \n \v \f \r, the separators
// U+001C to U+001F and Unicode space, line and paragraph separators. The
// no-break spaces U+00A0, U+2007 and U+202F and U+0085 are not whitespace.
func isWhitespace(ch rune) bool {
	switch ch {
	case '\t', '\n', '\v', '\f', '\r', 0x1C, 0x1D, 0x1E, 0x1F:
		return true
	case 0x00A0, 0x2007, 0x202F:
		return false
	}
	return unicode.In(ch, unicode.Zs, unicode.Zl, unicode.Zp)
}

// isSpecial reports whether ch ends a word: every character that starts an
// operator, a punctuation token or a string literal.
func isSpecial(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '&', '|', '^', '~', '!', '=', '<', '>',
		'{', '}', '(', ')', '[', ']', ';', ':', ',', '.', '"':
		return true
	}
	return false
}

func isNumber(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < '0' || word[i] > '9' {
			return false
		}
	}
	return word != ""
}

// isIdentifier accepts words starting with a letter; a leading underscore or
// digit is rejected.
func isIdentifier(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	return size > 0 && unicode.IsLetter(r)
}

// Tokenize lexes src until EOF, returning every token including the final
// TokenEOF.
func Tokenize(src []byte, file string) ([]Token, error) {
	l := NewLexer(NewSource(src), file)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}
