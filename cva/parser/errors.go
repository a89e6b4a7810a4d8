package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEntryPoint is wrapped by the error returned for programs without a
	// main method.
	ErrNoEntryPoint = errors.New("no entry point")

	// ErrUnterminated is wrapped by lexical errors for strings and block
	// comments that run into the end of input.
	ErrUnterminated = errors.New("unterminated literal")
)

// LexError reports a character sequence that cannot form a token.
type LexError struct {
	File    string
	Line    int
	Literal string
	Message string
	Err     error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", location(e.File, e.Line), e.Detail())
}

// Detail is the error message without the location prefix.
func (e *LexError) Detail() string {
	if e.Literal != "" {
		return fmt.Sprintf("%s %q", e.Message, e.Literal)
	}
	return e.Message
}

func (e *LexError) Unwrap() error {
	return e.Err
}

// SyntaxError reports the first token that does not fit the grammar.
type SyntaxError struct {
	File     string
	Line     int
	Expected string
	Got      Token
	Err      error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", location(e.File, e.Line), e.Detail())
}

// Detail is the error message without the location prefix.
func (e *SyntaxError) Detail() string {
	got := e.Got.Kind.String()
	if e.Got.Literal != "" {
		got = fmt.Sprintf("%s which literal is %s", got, e.Got.Literal)
	}
	return fmt.Sprintf("expects %s, but got %s", e.Expected, got)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func location(file string, line int) string {
	if file != "" {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return fmt.Sprintf("line %d", line)
}

// IsIncomplete reports whether err was caused by input ending too early, so
// that more input could still make it valid.
func IsIncomplete(err error) bool {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Got.Kind == TokenEOF && !errors.Is(err, ErrNoEntryPoint)
	}
	return errors.Is(err, ErrUnterminated)
}

// ErrorLine extracts the source line from a LexError or SyntaxError.
func ErrorLine(err error) (int, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Line, true
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Line, true
	}
	return 0, false
}
