package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/cvac/cva/parser"
)

func TestFormatExpr(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + (b + c)", "a + (b + c)"},
		{"(a + b) + c", "a + b + c"},
		{"a * (b + c)", "a * (b + c)"},
		{"a - (b - c)", "a - (b - c)"},
		{"a < b && !c", "a < b && !c"},
		{"!(a && b)", "!(a && b)"},
		{"!!x", "x"},
		{"-x", "0 - x"},
		{"-(a + b) * c", "(0 - (a + b)) * c"},
		{"a - 3", "a + -3"},
		{"(-3).f()", "(-3).f()"},
		{"x.f(a, b + 1).g()", "x.f(a, b + 1).g()"},
		{"new Foo().bar(this, null)", "new Foo().bar(this, null)"},
		{`"a\"b\n"`, `"a\"b\n"`},
		{"true && false", "true && false"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parser.ParseExpression(tt.input)
			if err != nil {
				t.Fatalf("ParseExpression error: %v", err)
			}
			if got := formatExpr(expr); got != tt.want {
				t.Errorf("formatExpr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrettyPrint(t *testing.T) {
	src := `class Counter extends Base { int count; int inc(int by) { int tmp; tmp = by; if (by < 0) { count = 0; } else count = count + tmp; while (count < 10) count++; return count; } }
void main(String[] args) { writeln(new Counter().inc(1 - 2 * 3)); }`

	want := `class Counter extends Base {
    int count;

    int inc(int by) {
        int tmp;
        tmp = by;
        if (by < 0) {
            count = 0;
        } else
            count = count + tmp;
        while (count < 10)
            count++;
        return count;
    }
}

void main(String[] args) {
    writeln(new Counter().inc(1 - 2 * 3));
}
`

	got, err := FormatSource([]byte(src), "Counter.cva", Options{})
	if err != nil {
		t.Fatalf("FormatSource error: %v", err)
	}
	if string(got) != want {
		t.Errorf("output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestPrettyPrintHeadersAndIndent(t *testing.T) {
	src := "package a.b; call c.*; call d; void main(String[] args) { { x++; } }"
	got, err := FormatSource([]byte(src), "", Options{Indent: "\t"})
	if err != nil {
		t.Fatalf("FormatSource error: %v", err)
	}
	want := "package a.b;\n\ncall c.*;\ncall d;\n\nvoid main(String[] args) {\n\t{\n\t\tx++;\n\t}\n}\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFormatSourceError(t *testing.T) {
	if _, err := FormatSource([]byte("class {"), "bad.cva", Options{}); err == nil {
		t.Error("FormatSource accepted invalid input")
	}
}

func TestEncoders(t *testing.T) {
	prog, err := parser.ParseProgram([]byte(`class A : B { int n; int f(int x) { int y; return x; } void main() { } }`))
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}

	t.Run("ast", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewASTJSONEncoder(&buf).Encode(prog); err != nil {
			t.Fatalf("Encode error: %v", err)
		}
		var root astJSONNode
		if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if root.Kind != "Program" || len(root.Children) != 2 {
			t.Fatalf("root = %+v", root)
		}
		class := root.Children[1]
		if class.Kind != "Class" || class.Name != "A" || class.Super != "B" {
			t.Errorf("class node = %+v", class)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewJSONEncoder(&buf).Encode(prog); err != nil {
			t.Fatalf("Encode error: %v", err)
		}
		var data jsonProgram
		if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if data.Entry.Class != "A" || data.Entry.Standalone {
			t.Errorf("entry = %+v", data.Entry)
		}
		if len(data.Classes) != 1 || len(data.Classes[0].Methods) != 2 {
			t.Fatalf("classes = %+v", data.Classes)
		}
		if m := data.Classes[0].Methods[0]; m.Name != "f" || m.ReturnType != "int" || len(m.Locals) != 1 {
			t.Errorf("method = %+v", m)
		}
	})

	t.Run("line", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewLineEncoder(&buf).Encode(prog); err != nil {
			t.Fatalf("Encode error: %v", err)
		}
		want := strings.Join([]string{
			"entry\tA\tpromoted",
			"class\tA\tB",
			"field\tA\tn\tint",
			"method\tA\tf\tint\t(int x)",
			"local\tA.f\ty\tint",
			"method\tA\tmain\tvoid\t()",
		}, "\n") + "\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Names() {
		if _, err := NewEncoder(name, &bytes.Buffer{}, Options{}); err != nil {
			t.Errorf("NewEncoder(%q) error: %v", name, err)
		}
	}
	if _, err := NewEncoder("xml", &bytes.Buffer{}, Options{}); err == nil {
		t.Error("NewEncoder accepted an unknown format")
	}
}
