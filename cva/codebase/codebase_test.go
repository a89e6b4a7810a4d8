package codebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/cvac/compiler"
	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/fsnotify/fsnotify"
)

const counterSource = `class Counter {
    int count;
    int add(int by, int unused) {
        int tmp;
        count = count + by;
        return count;
    }
    int reset() {
        count = 0;
        return count;
    }
}
void main(String[] args) {
    writeln(new Counter().add(1, 2));
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateFileDiagnostics(t *testing.T) {
	c := New(t.TempDir(), nil)

	unit := c.UpdateFile("counter.cva", []byte(counterSource))
	if unit.Err != nil {
		t.Fatalf("unexpected error: %v", unit.Err)
	}
	ds := c.Diagnostics("counter.cva")
	if len(ds) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(ds), ds)
	}
	wantLines := []int{3, 4}
	for i, d := range ds {
		if d.Severity != diag.SeverityWarning || d.Line != wantLines[i] {
			t.Errorf("diagnostic %d = %v, want a warning on line %d", i, d, wantLines[i])
		}
	}

	c.UpdateFile("counter.cva", []byte("class Counter {\n  int x\n}"))
	ds = c.Diagnostics("counter.cva")
	if len(ds) != 1 || ds[0].Severity != diag.SeverityError || ds[0].Line != 3 {
		t.Errorf("diagnostics = %v, want one error on line 3", ds)
	}
	if c.Diagnostics("missing.cva") != nil {
		t.Error("unknown file has diagnostics")
	}
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.cva"), counterSource)
	writeFile(t, filepath.Join(root, "sub", "b.cva"), "class {")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a source file")
	writeFile(t, filepath.Join(root, ".hidden", "c.cva"), counterSource)

	c := New(root, nil)
	if err := c.ScanAll(context.Background()); err != nil {
		t.Fatalf("ScanAll error: %v", err)
	}

	paths := c.Paths()
	want := []string{filepath.Join(root, "a.cva"), filepath.Join(root, "sub", "b.cva")}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("Paths = %v, want %v", paths, want)
	}
	if !diag.HasErrors(c.AllDiagnostics()) {
		t.Error("AllDiagnostics has no errors")
	}

	cls, path := c.FindClass("Counter")
	if cls == nil || path != want[0] {
		t.Errorf("FindClass = %v, %q", cls, path)
	}
	if cls, _ := c.FindClass("Missing"); cls != nil {
		t.Error("FindClass found a missing class")
	}

	c.RemoveFile(want[0])
	if c.GetFile(want[0]) != nil || len(c.AllClasses()) != 0 {
		t.Error("RemoveFile kept the file")
	}
}

func TestCompletions(t *testing.T) {
	c := New(t.TempDir(), nil)
	c.UpdateFile("counter.cva", []byte(counterSource))

	items := c.Completions("    x = c.")
	if len(items) != 2 || items[0].Label != "add" || items[1].Label != "reset" {
		t.Fatalf("method completions = %+v", items)
	}
	if items[0].InsertText != "add(${1:by}, ${2:unused})" {
		t.Errorf("InsertText = %q", items[0].InsertText)
	}
	if items[0].Detail != "Counter.add(int by, int unused) int" {
		t.Errorf("Detail = %q", items[0].Detail)
	}

	items = c.Completions("    c = new ")
	if len(items) != 1 || items[0].Label != "Counter" || items[0].Kind != CompletionKindClass {
		t.Errorf("class completions = %+v", items)
	}

	if items := c.Completions("    renew"); len(items) != 0 {
		t.Errorf("unexpected completions %+v", items)
	}
}

func TestFormatMethodInsertNumbersPlaceholders(t *testing.T) {
	m := &ast.Method{Name: "f"}
	for _, name := range []string{"a", "b", "c", "d", "e", "g", "h", "i", "j", "k"} {
		m.Formals = append(m.Formals, &ast.Declaration{Name: name})
	}
	got := formatMethodInsert(m)
	want := "f(${1:a}, ${2:b}, ${3:c}, ${4:d}, ${5:e}, ${6:g}, ${7:h}, ${8:i}, ${9:j}, ${10:k})"
	if got != want {
		t.Errorf("formatMethodInsert = %q, want %q", got, want)
	}
}

func TestWatcherHandle(t *testing.T) {
	root := t.TempDir()
	c := New(root, nil)
	w := NewWatcher(c)

	var changed, removed []string
	w.OnChange = func(path string, _ *compiler.Unit) { changed = append(changed, path) }
	w.OnRemove = func(path string) { removed = append(removed, path) }

	path := filepath.Join(root, "a.cva")
	now := time.Now()

	// Editors often truncate the file and then write the new content.
	writeFile(t, path, "")
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write}, now)
	writeFile(t, path, counterSource)
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write}, now.Add(10*time.Millisecond))

	w.flush(now.Add(50 * time.Millisecond))
	if len(changed) != 0 {
		t.Fatalf("changed = %v, want nothing before the writes settle", changed)
	}

	w.flush(now.Add(time.Second))
	if len(changed) != 1 {
		t.Fatalf("changed = %v, want one recompile", changed)
	}
	unit := c.GetFile(path)
	if unit == nil || unit.Err != nil {
		t.Fatalf("stored unit = %+v, want the compiled final content", unit)
	}

	w.flush(now.Add(2 * time.Second))
	if len(changed) != 1 {
		t.Errorf("changed = %v, want no recompile without new events", changed)
	}

	other := filepath.Join(root, "notes.txt")
	writeFile(t, other, "x")
	w.handle(fsnotify.Event{Name: other, Op: fsnotify.Write}, now)
	w.flush(now.Add(time.Second))
	if c.GetFile(other) != nil {
		t.Error("non-source file was compiled")
	}

	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write}, now.Add(3*time.Second))
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove}, now.Add(3*time.Second))
	w.flush(now.Add(4 * time.Second))
	if len(removed) != 1 || c.GetFile(path) != nil || len(changed) != 1 {
		t.Errorf("removed = %v, changed = %v, file still known: %v", removed, changed, c.GetFile(path) != nil)
	}
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove}, now.Add(5*time.Second))
	if len(removed) != 1 {
		t.Error("removing an unknown file called OnRemove")
	}
}
