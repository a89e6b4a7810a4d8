package parser

import (
	"io"
	"unicode/utf8"
)

// EOF is returned by a CharSource once the input is exhausted.
const EOF rune = -1

// CharSource supplies an already materialized character sequence to the lexer.
// Reading past the end yields EOF instead of failing.
type CharSource interface {
	// Peek returns the character offset positions ahead of the next unread one.
	Peek(offset int) rune
	// Poll consumes and returns the next character.
	Poll() rune
	// PollN consumes up to n characters and returns them.
	PollN(n int) string
	// HasNext reports whether a character exists offset positions ahead.
	HasNext(offset int) bool
}

// BufferedSource is a CharSource over a decoded rune slice.
type BufferedSource struct {
	runes []rune
	pos   int
}

func NewSource(data []byte) *BufferedSource {
	runes := make([]rune, 0, utf8.RuneCount(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		runes = append(runes, r)
		data = data[size:]
	}
	return &BufferedSource{runes: runes}
}

func NewStringSource(s string) *BufferedSource {
	return &BufferedSource{runes: []rune(s)}
}

// ReadSource drains r into a BufferedSource.
func ReadSource(r io.Reader) (*BufferedSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewSource(data), nil
}

func (s *BufferedSource) Peek(offset int) rune {
	if !s.HasNext(offset) {
		return EOF
	}
	return s.runes[s.pos+offset]
}

func (s *BufferedSource) Poll() rune {
	if s.pos >= len(s.runes) {
		return EOF
	}
	r := s.runes[s.pos]
	s.pos++
	return r
}

func (s *BufferedSource) PollN(n int) string {
	end := s.pos + n
	if end > len(s.runes) {
		end = len(s.runes)
	}
	if n <= 0 || s.pos >= end {
		return ""
	}
	polled := string(s.runes[s.pos:end])
	s.pos = end
	return polled
}

func (s *BufferedSource) HasNext(offset int) bool {
	return offset >= 0 && s.pos+offset < len(s.runes)
}

// Remaining returns the number of unread characters.
func (s *BufferedSource) Remaining() int {
	return len(s.runes) - s.pos
}
