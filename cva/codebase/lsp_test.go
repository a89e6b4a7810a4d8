package codebase

import (
	"strings"
	"testing"

	"github.com/dhamidi/cvac/cva/diag"
	"github.com/dhamidi/cvac/cva/parser"
	"github.com/dhamidi/cvac/format"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestToProtocolDiagnostics(t *testing.T) {
	src := []byte("class A {\n  int x\n}\n")
	ds := []diag.Diagnostic{
		{Severity: diag.SeverityError, File: "a.cva", Line: 2, Code: "syntax", Message: "expects ';'"},
		{Severity: diag.SeverityWarning, File: "a.cva", Line: 1, Code: "unused-local", Message: "unused"},
		{Severity: diag.SeverityError, File: "a.cva", Message: "read failed"},
	}

	got := toProtocolDiagnostics(ds, src)
	if len(got) != 3 {
		t.Fatalf("got %d diagnostics, want 3", len(got))
	}

	first := got[0]
	if first.Range.Start.Line != 1 || first.Range.End.Character != 7 {
		t.Errorf("range = %+v, want line 1 up to column 7", first.Range)
	}
	if *first.Severity != protocol.DiagnosticSeverityError || first.Message != "expects ';'" {
		t.Errorf("first = %+v", first)
	}
	if first.Code == nil || first.Code.Value != "syntax" {
		t.Errorf("code = %+v", first.Code)
	}

	second := got[1]
	if *second.Severity != protocol.DiagnosticSeverityWarning || len(second.Tags) != 1 {
		t.Errorf("second = %+v", second)
	}

	if got[2].Range.Start.Line != 0 || got[2].Code != nil {
		t.Errorf("file-level diagnostic = %+v", got[2])
	}
}

func TestDocumentSymbols(t *testing.T) {
	prog, err := parser.ParseProgram([]byte("class A : B {\n int n;\n int f(int x) { return x; }\n}\nvoid main(String[] args) { }"))
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}

	symbols := documentSymbols(prog)
	if len(symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(symbols))
	}
	if symbols[0].Name != "main" || symbols[0].Kind != protocol.SymbolKindMethod {
		t.Errorf("main symbol = %+v", symbols[0])
	}
	class := symbols[1]
	if class.Name != "A" || *class.Detail != "extends B" || len(class.Children) != 2 {
		t.Fatalf("class symbol = %+v", class)
	}
	if class.Children[1].Name != "f" || class.Children[1].Range.Start.Line != 2 {
		t.Errorf("method symbol = %+v", class.Children[1])
	}
}

func TestFormatEdit(t *testing.T) {
	src := []byte("void main(String[] args) { x++; }")
	edit, ok := formatEdit(src, "a.cva", format.Options{})
	if !ok {
		t.Fatal("formatEdit returned no edit")
	}
	if edit.NewText != "void main(String[] args) {\n    x++;\n}\n" {
		t.Errorf("NewText = %q", edit.NewText)
	}
	if edit.Range.End.Line != 0 || int(edit.Range.End.Character) != len(src) {
		t.Errorf("range = %+v", edit.Range)
	}

	if _, ok := formatEdit([]byte(edit.NewText), "a.cva", format.Options{}); ok {
		t.Error("formatted source produced an edit")
	}
	if _, ok := formatEdit([]byte("class {"), "a.cva", format.Options{}); ok {
		t.Error("broken source produced an edit")
	}
}

func TestURIs(t *testing.T) {
	path, err := uriToPath("file:///tmp/my%20dir/a.cva")
	if err != nil || path != "/tmp/my dir/a.cva" {
		t.Errorf("uriToPath = %q, %v", path, err)
	}
	if path, _ := uriToPath("untitled:1"); path != "untitled:1" {
		t.Errorf("uriToPath kept %q", path)
	}
	if uri := pathToURI("/tmp/my dir/a.cva"); !strings.HasPrefix(uri, "file:///") || !strings.Contains(uri, "my%20dir") {
		t.Errorf("pathToURI = %q", uri)
	}
}

func TestLinePrefix(t *testing.T) {
	content := []byte("first\n  x = c.f\n")
	tests := []struct {
		line, col int
		want      string
	}{
		{2, 8, "  x = c."},
		{2, 100, "  x = c.f"},
		{1, 0, ""},
		{9, 1, ""},
	}
	for _, tt := range tests {
		if got := linePrefix(content, tt.line, tt.col); got != tt.want {
			t.Errorf("linePrefix(%d, %d) = %q, want %q", tt.line, tt.col, got, tt.want)
		}
	}
}
