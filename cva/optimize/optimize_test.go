package optimize

import (
	"testing"

	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseProgram([]byte(src))
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}
	return prog
}

func localNames(m *ast.Method) []string {
	names := make([]string, len(m.Locals))
	for i, d := range m.Locals {
		names[i] = d.Name
	}
	return names
}

func TestMethodRemovesUnusedLocals(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		kept     []string
		changed  bool
		warnings []WarningKind
	}{
		{
			name:     "unused local removed",
			body:     "int x; int y; x = 1; return x;",
			kept:     []string{"x"},
			changed:  true,
			warnings: []WarningKind{UnusedArgument, UnusedLocal},
		},
		{
			name:     "all used",
			body:     "int x; x = n; return x;",
			kept:     []string{"x"},
			changed:  false,
			warnings: nil,
		},
		{
			name:     "assignment target counts as use",
			body:     "int x; x = 5; return 0;",
			kept:     []string{"x"},
			changed:  false,
			warnings: []WarningKind{UnusedArgument},
		},
		{
			name:     "increment counts as use",
			body:     "int i; i++; return n;",
			kept:     []string{"i"},
			changed:  false,
			warnings: nil,
		},
		{
			name:     "use inside nested statements",
			body:     "int a; int b; while (n < 3) { if (a < 1) write b; } return 0;",
			kept:     []string{"a", "b"},
			changed:  false,
			warnings: nil,
		},
		{
			name:     "use in call arguments",
			body:     "Foo f; int k; return this.g(f, k.h());",
			kept:     []string{"f", "k"},
			changed:  false,
			warnings: []WarningKind{UnusedArgument},
		},
		{
			name:     "use in return only",
			body:     "int r; return !r;",
			kept:     []string{"r"},
			changed:  false,
			warnings: []WarningKind{UnusedArgument},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, "class A { int f(int n) { "+tt.body+" } void main() { } }")
			m := prog.Classes[0].Method("f")

			result := New().Method("A", m)

			got := localNames(m)
			if len(got) != len(tt.kept) {
				t.Fatalf("locals = %v, want %v", got, tt.kept)
			}
			for i := range got {
				if got[i] != tt.kept[i] {
					t.Errorf("local %d = %q, want %q", i, got[i], tt.kept[i])
				}
			}
			if result.Changed != tt.changed {
				t.Errorf("Changed = %v, want %v", result.Changed, tt.changed)
			}
			if len(result.Warnings) != len(tt.warnings) {
				t.Fatalf("warnings = %v, want kinds %v", result.Warnings, tt.warnings)
			}
			for i, w := range result.Warnings {
				if w.Kind != tt.warnings[i] {
					t.Errorf("warning %d kind = %v, want %v", i, w.Kind, tt.warnings[i])
				}
				if w.Class != "A" || w.Method != "f" {
					t.Errorf("warning %d location = %s.%s, want A.f", i, w.Class, w.Method)
				}
			}
		})
	}
}

func TestLocalShadowsFormal(t *testing.T) {
	prog := mustParse(t, "class A { int f(int x) { int x; return x; } void main() { } }")
	m := prog.Classes[0].Method("f")

	result := New().Method("A", m)
	if len(m.Locals) != 1 {
		t.Errorf("local removed although referenced")
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Kind != UnusedArgument {
		t.Errorf("warnings = %v, want one unused argument", result.Warnings)
	}
}

func TestProgramIsIdempotent(t *testing.T) {
	src := `
class A {
	int f(int unusedArg) {
		int dead;
		int live;
		live = 1;
		return live;
	}
	void main() { }
}
class B {
	void g() {
		int gone;
		boolean also;
	}
}
`
	prog := mustParse(t, src)
	o := New()

	first := o.Program(prog)
	if !first.Optimized {
		t.Error("first run: Optimized = false, want true")
	}
	if len(first.Warnings) != 4 {
		t.Errorf("first run: %d warnings, want 4: %v", len(first.Warnings), first.Warnings)
	}

	second := o.Program(prog)
	if second.Optimized {
		t.Error("second run: Optimized = true, want false")
	}
	for _, w := range second.Warnings {
		if w.Kind == UnusedLocal {
			t.Errorf("second run removed %s", w.Name)
		}
	}
	if len(prog.Classes[1].Methods[0].Locals) != 0 {
		t.Errorf("B.g locals = %v, want none", localNames(prog.Classes[1].Methods[0]))
	}
}

func TestEntryMethodIsIdempotent(t *testing.T) {
	prog := mustParse(t, "void main(String[] args) { int a; int b; a = 1; writeln(a); }")
	o := New()

	first := o.Program(prog)
	if len(first.Warnings) != 1 || first.Warnings[0].Kind != UnusedLocal || first.Warnings[0].Name != "b" {
		t.Fatalf("first run warnings = %v, want only the unused local b", first.Warnings)
	}

	second := o.Program(prog)
	if second.Optimized || len(second.Warnings) != 0 {
		t.Errorf("second run = %+v, want no changes and no warnings", second)
	}
	if names := localNames(prog.Entry.Main); len(names) != 1 || names[0] != "a" {
		t.Errorf("locals = %v, want [a]", names)
	}
}

func TestProgramOrdersWarningsBySource(t *testing.T) {
	src := `
class A {
	int f(int p, int q) {
		int a;
		int b;
		return 0;
	}
}
void main(String[] args) {
	int c;
}
`
	prog := mustParse(t, src)
	report := New().Program(prog)

	want := []string{"p", "q", "a", "b", "c"}
	if len(report.Warnings) != len(want) {
		t.Fatalf("warnings = %v, want names %v", report.Warnings, want)
	}
	for i, w := range report.Warnings {
		if w.Name != want[i] {
			t.Errorf("warning %d = %q, want %q", i, w.Name, want[i])
		}
	}
	if report.Warnings[4].Class != ast.DefaultEntryClass {
		t.Errorf("entry warning class = %q, want %q", report.Warnings[4].Class, ast.DefaultEntryClass)
	}
	if len(prog.Entry.Main.Locals) != 0 {
		t.Errorf("entry method still has locals")
	}
}

func TestWarningsDisabled(t *testing.T) {
	prog := mustParse(t, "void main(String[] args) { int c; }")
	report := New(WithWarnings(false)).Program(prog)
	if len(report.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", report.Warnings)
	}
	if !report.Optimized || len(prog.Entry.Main.Locals) != 0 {
		t.Errorf("unused local not removed with warnings disabled")
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: UnusedLocal, Class: "A", Method: "f", Name: "x", Line: 3}
	want := `line 3: the local variable "x" of method "f" is never used and was removed`
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
