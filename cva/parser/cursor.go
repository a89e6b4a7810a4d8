package parser

// Cursor sits between the lexer and the parser and lets the parser read ahead
// speculatively. Tokens are pulled from the lexer once; while a speculation is
// open they stay buffered so that Rollback can replay them in order.
// Speculations nest.
type Cursor struct {
	lexer *Lexer
	buf   []Token
	pos   int
	marks []int
}

func NewCursor(l *Lexer) (*Cursor, error) {
	tok, err := l.NextToken()
	if err != nil {
		return nil, err
	}
	return &Cursor{lexer: l, buf: []Token{tok}}, nil
}

func (c *Cursor) Current() Token {
	return c.buf[c.pos]
}

// Advance moves to the next token, replaying buffered tokens before asking the
// lexer for new ones.
func (c *Cursor) Advance() error {
	if c.pos+1 >= len(c.buf) {
		tok, err := c.lexer.NextToken()
		if err != nil {
			return err
		}
		c.buf = append(c.buf, tok)
	}
	c.pos++
	c.compact()
	return nil
}

// BeginSpeculation marks the current token as a point to return to.
func (c *Cursor) BeginSpeculation() {
	c.marks = append(c.marks, c.pos)
}

// Commit drops the innermost mark and keeps the current position.
func (c *Cursor) Commit() {
	if len(c.marks) == 0 {
		return
	}
	c.marks = c.marks[:len(c.marks)-1]
	c.compact()
}

// Rollback returns to the innermost mark and drops it.
func (c *Cursor) Rollback() {
	if len(c.marks) == 0 {
		return
	}
	c.pos = c.marks[len(c.marks)-1]
	c.marks = c.marks[:len(c.marks)-1]
	c.compact()
}

// Depth returns the number of open speculations.
func (c *Cursor) Depth() int {
	return len(c.marks)
}

// Buffered returns the number of tokens held for replay, the current one
// included.
func (c *Cursor) Buffered() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) compact() {
	if len(c.marks) > 0 || c.pos == 0 {
		return
	}
	n := copy(c.buf, c.buf[c.pos:])
	c.buf = c.buf[:n]
	c.pos = 0
}
