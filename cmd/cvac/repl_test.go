package main

import (
	"testing"

	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/parser"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		input      string
		wantKind   string
		incomplete bool
		fails      bool
	}{
		{input: "1 + 2 * x", wantKind: "expr"},
		{input: "x = 1;", wantKind: "stmt"},
		{input: "while (i < 3) i++;", wantKind: "stmt"},
		{input: "void main(String[] args) { }", wantKind: "program"},
		{input: "class A { void main() { } }", wantKind: "program"},
		{input: "x +", incomplete: true},
		{input: "if (a)", incomplete: true},
		{input: "x =", incomplete: true},
		{input: "class A {", incomplete: true},
		{input: `"open`, incomplete: true},
		{input: "x = ;", fails: true},
		{input: "1 +)", fails: true},
		{input: "class A { }", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := parseInput(tt.input)
			if tt.incomplete || tt.fails {
				if err == nil {
					t.Fatalf("parseInput returned %T, want an error", node)
				}
				if got := parser.IsIncomplete(err); got != tt.incomplete {
					t.Errorf("IsIncomplete = %v, want %v (%v)", got, tt.incomplete, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseInput error: %v", err)
			}
			var kind string
			switch node.(type) {
			case *ast.Program:
				kind = "program"
			case ast.Stmt:
				kind = "stmt"
			case ast.Expr:
				kind = "expr"
			}
			if kind != tt.wantKind {
				t.Errorf("parsed as %s (%T), want %s", kind, node, tt.wantKind)
			}
		})
	}
}

func TestStartsProgram(t *testing.T) {
	for input, want := range map[string]bool{
		"class A {}":   true,
		"  package a;": true,
		"void main(":   true,
		"classy + 1":   false,
		"x = new A();": false,
		"":             false,
	} {
		if got := startsProgram(input); got != want {
			t.Errorf("startsProgram(%q) = %v, want %v", input, got, want)
		}
	}
}
