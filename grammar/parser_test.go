package grammar

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/cvac/cva/parser"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"headers", "package a.b; call c.*; call d;"},
		{"main only", "void main(String[] args) { }"},
		{"class", "class A extends B { int x; int[] xs; int f(int a, String s) { int y; y = a; return y; } }"},
		{"method named main", "class A { void main() { writeln(1); } }"},
		{"statements", "void main(String[] args) { if (a < b) { a++; } else b--; while (!x && y) write -1 * z - 2; }"},
		{"calls", "void main(String[] args) { writeln(new A().f(1, (2 + 3)).g()); }"},
		{"dangling else", "void main(String[] args) { if (a) if (b) x = 1; else x = 2; }"},
	}

	g := mustLoad(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseSource(g, []byte(tt.source), "t.cva", Start)
			if err != nil {
				t.Fatalf("ParseSource error: %v", err)
			}
			if root.Kind != Start {
				t.Errorf("root kind = %q, want %q", root.Kind, Start)
			}
		})
	}
}

func TestParseSourceTree(t *testing.T) {
	root, err := ParseSource(mustLoad(t), []byte("class A {\n  int f() { return 1; }\n}"), "t.cva", Start)
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}

	methods := root.Find("MethodDecl")
	if len(methods) != 1 {
		t.Fatalf("got %d MethodDecl nodes, want 1", len(methods))
	}
	m := methods[0]
	if m.Span.Start.Line != 2 || m.Span.Start.Column != 3 {
		t.Errorf("MethodDecl starts at %s, want line 2 column 3", m.Span.Start)
	}
	if name := m.Children[1]; !name.IsTerminal() || name.Text() != "f" {
		t.Errorf("method name node = %+v", name)
	}

	var buf bytes.Buffer
	if err := Print(&buf, root); err != nil {
		t.Fatalf("Print error: %v", err)
	}
	if !strings.Contains(buf.String(), "\n    identifier \"A\"\n") {
		t.Errorf("Print output lacks the class name:\n%s", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "Program 1:1\n  ClassDecl 1:1\n") {
		t.Errorf("Print output =\n%s", buf.String())
	}
}

func TestParseSourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		line     int
		expected string
	}{
		{"missing semicolon", "class A {\n  int x\n}", 3, `";"`},
		{"missing brace", "class A {", 1, `"}"`},
		{"bad statement", "void main(String[] args) {\n  x + 1;\n}", 2, `"="`},
		{"stray token", "class A { } }", 1, "end of file"},
		{"unknown character", "class A { # }", 1, "a token"},
	}

	g := mustLoad(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(g, []byte(tt.source), "t.cva", Start)
			perr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error = %v, want a *ParseError", err)
			}
			if perr.Position.Line != tt.line {
				t.Errorf("error on line %d, want %d: %v", perr.Position.Line, tt.line, perr)
			}
			if !strings.Contains(strings.Join(perr.Expected, " "), tt.expected) {
				t.Errorf("expected %v, want it to contain %s", perr.Expected, tt.expected)
			}
		})
	}
}

func TestParseUnknownStart(t *testing.T) {
	if _, err := NewParser(mustLoad(t), nil).Parse("Nope"); err == nil {
		t.Error("Parse accepted an unknown production")
	}
}

// The grammar and the hand-written parser accept the same sample programs.
func TestParseAgreesWithParser(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "testcases", "*.cva"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no testcases found")
	}

	g := mustLoad(t)
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := parser.ParseProgram(src); err != nil {
				t.Fatalf("parser.ParseProgram error: %v", err)
			}
			if _, err := ParseSource(g, src, file, Start); err != nil {
				t.Errorf("ParseSource error: %v", err)
			}
		})
	}
}
