// Package codebase keeps the compiled state of every Cva file below a root
// directory. It backs the language server and the file watcher.
package codebase

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dhamidi/cvac/compiler"
	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cvac.codebase")

type Codebase struct {
	mu       sync.RWMutex
	rootDir  string
	compiler *compiler.Compiler
	files    map[string]*compiler.Unit
}

func New(rootDir string, comp *compiler.Compiler) *Codebase {
	if comp == nil {
		comp = compiler.New(nil)
	}
	return &Codebase{
		rootDir:  rootDir,
		compiler: comp,
		files:    make(map[string]*compiler.Unit),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Compiler() *compiler.Compiler {
	return c.compiler
}

// ScanAll compiles every source file below the root directory.
func (c *Codebase) ScanAll(ctx context.Context) error {
	paths, err := compiler.CollectSources(c.compiler.Config(), []string{c.rootDir})
	if err != nil {
		return err
	}
	units := c.compiler.CompileFiles(ctx, paths)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range units {
		c.files[u.Path] = u
	}
	log.Infof("scanned %d files below %s", len(units), c.rootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) (*compiler.Unit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile compiles content as the new text of path.
func (c *Codebase) UpdateFile(path string, content []byte) *compiler.Unit {
	unit := c.compiler.CompileSource(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = unit
	return unit
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *compiler.Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known files in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (c *Codebase) Diagnostics(path string) []diag.Diagnostic {
	unit := c.GetFile(path)
	if unit == nil {
		return nil
	}
	ds := unit.Diagnostics()
	diag.Sort(ds)
	return ds
}

// AllDiagnostics returns the diagnostics of every file, sorted.
func (c *Codebase) AllDiagnostics() []diag.Diagnostic {
	var ds []diag.Diagnostic
	for _, path := range c.Paths() {
		ds = append(ds, c.GetFile(path).Diagnostics()...)
	}
	diag.Sort(ds)
	return ds
}

// FindClass looks a class up across all files that compiled.
func (c *Codebase) FindClass(name string) (*ast.Class, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, path := range sortedKeys(c.files) {
		unit := c.files[path]
		if unit.Program == nil {
			continue
		}
		if cls := unit.Program.Class(name); cls != nil {
			return cls, path
		}
	}
	return nil, ""
}

// AllClasses returns every class of every file that compiled.
func (c *Codebase) AllClasses() []*ast.Class {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var all []*ast.Class
	for _, path := range sortedKeys(c.files) {
		if prog := c.files[path].Program; prog != nil {
			all = append(all, prog.Classes...)
		}
	}
	return all
}

type CompletionKind int

const (
	CompletionKindMethod CompletionKind = iota
	CompletionKindClass
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// Completions offers class names after "new" and method names after a dot.
// The receiver type is not known, so every method of every class qualifies.
func (c *Codebase) Completions(prefix string) []CompletionItem {
	trimmed := strings.TrimRight(prefix, " \t")
	var items []CompletionItem
	seen := make(map[string]bool)

	switch {
	case strings.HasSuffix(trimmed, "."):
		for _, cls := range c.AllClasses() {
			for _, m := range cls.Methods {
				label := m.Name
				if seen[label] || m.Name == ast.EntryMethodName {
					continue
				}
				seen[label] = true
				items = append(items, CompletionItem{
					Label:      label,
					Kind:       CompletionKindMethod,
					Detail:     cls.Name + "." + formatMethodSignature(m),
					InsertText: formatMethodInsert(m),
				})
			}
		}
	case strings.HasSuffix(trimmed, "new") && len(trimmed) < len(prefix):
		for _, cls := range c.AllClasses() {
			if seen[cls.Name] {
				continue
			}
			seen[cls.Name] = true
			items = append(items, CompletionItem{
				Label:      cls.Name,
				Kind:       CompletionKindClass,
				Detail:     "class " + cls.Name,
				InsertText: cls.Name + "()",
			})
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

func formatMethodSignature(m *ast.Method) string {
	var params []string
	for _, f := range m.Formals {
		params = append(params, f.Type.String()+" "+f.Name)
	}
	return m.Name + "(" + strings.Join(params, ", ") + ") " + m.ReturnType.String()
}

func formatMethodInsert(m *ast.Method) string {
	if len(m.Formals) == 0 {
		return m.Name + "()"
	}
	var placeholders []string
	for i, f := range m.Formals {
		placeholders = append(placeholders, "${"+strconv.Itoa(i+1)+":"+f.Name+"}")
	}
	return m.Name + "(" + strings.Join(placeholders, ", ") + ")"
}

func sortedKeys(files map[string]*compiler.Unit) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
