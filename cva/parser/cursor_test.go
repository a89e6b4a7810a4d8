package parser

import "testing"

func newTestCursor(t *testing.T, input string) *Cursor {
	t.Helper()
	c, err := NewCursor(NewLexer(NewStringSource(input), "test.cva"))
	if err != nil {
		t.Fatalf("NewCursor error: %v", err)
	}
	return c
}

func advanceN(t *testing.T, c *Cursor, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := c.Advance(); err != nil {
			t.Fatalf("Advance error: %v", err)
		}
	}
}

func TestCursorRollbackReplays(t *testing.T) {
	c := newTestCursor(t, "a b c d")

	c.BeginSpeculation()
	advanceN(t, c, 2)
	if got := c.Current().Literal; got != "c" {
		t.Fatalf("Current = %q, want %q", got, "c")
	}
	c.Rollback()

	if got := c.Current().Literal; got != "a" {
		t.Errorf("after Rollback Current = %q, want %q", got, "a")
	}
	if c.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", c.Depth())
	}

	var got []string
	for c.Current().Kind != TokenEOF {
		got = append(got, c.Current().Literal)
		advanceN(t, c, 1)
	}
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("replayed %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCursorCommitKeepsPosition(t *testing.T) {
	c := newTestCursor(t, "a b c")
	c.BeginSpeculation()
	advanceN(t, c, 2)
	c.Commit()

	if got := c.Current().Literal; got != "c" {
		t.Errorf("Current = %q, want %q", got, "c")
	}
	if c.Buffered() != 1 {
		t.Errorf("Buffered = %d, want 1 once no speculation is open", c.Buffered())
	}
}

func TestCursorNestedSpeculation(t *testing.T) {
	c := newTestCursor(t, "a b c d e")

	c.BeginSpeculation()
	advanceN(t, c, 1)
	c.BeginSpeculation()
	advanceN(t, c, 2)
	if c.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", c.Depth())
	}

	c.Rollback()
	if got := c.Current().Literal; got != "b" {
		t.Errorf("inner Rollback Current = %q, want %q", got, "b")
	}

	advanceN(t, c, 1)
	c.Commit()
	if got := c.Current().Literal; got != "c" {
		t.Errorf("outer Commit Current = %q, want %q", got, "c")
	}
	if c.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", c.Depth())
	}
}

func TestCursorPullsFromLexerOnce(t *testing.T) {
	l := NewLexer(NewStringSource("a\nb\nc"), "test.cva")
	c, err := NewCursor(l)
	if err != nil {
		t.Fatalf("NewCursor error: %v", err)
	}

	c.BeginSpeculation()
	advanceN(t, c, 2)
	lexerLine := l.Line()
	c.Rollback()
	advanceN(t, c, 2)

	if l.Line() != lexerLine {
		t.Errorf("lexer moved on replay: line %d, want %d", l.Line(), lexerLine)
	}
	if got := c.Current(); got.Literal != "c" || got.Line != 3 {
		t.Errorf("Current = %v line %d, want c line 3", got.Literal, got.Line)
	}
}

func TestCursorUnbalancedCallsAreIgnored(t *testing.T) {
	c := newTestCursor(t, "a b")
	c.Commit()
	c.Rollback()
	if got := c.Current().Literal; got != "a" {
		t.Errorf("Current = %q, want %q", got, "a")
	}
}
