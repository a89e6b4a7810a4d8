package format

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/parser"
)

type Options struct {
	// Indent is written once per nesting level. Empty means four spaces.
	Indent string
}

// PrettyPrinter writes a program back as Cva source. The output parses to a
// tree equal to the input, ignoring line numbers.
type PrettyPrinter struct {
	w           io.Writer
	indent      int
	indentStr   string
	atLineStart bool
	err         error
}

func NewPrettyPrinter(w io.Writer, opts Options) *PrettyPrinter {
	indentStr := opts.Indent
	if indentStr == "" {
		indentStr = "    "
	}
	return &PrettyPrinter{
		w:           w,
		indentStr:   indentStr,
		atLineStart: true,
	}
}

// Encode prints prog. Top-level items keep their source order: classes
// declared before a free-standing main are printed before it.
func (p *PrettyPrinter) Encode(prog *ast.Program) error {
	first := true
	separate := func() {
		if !first {
			p.newline()
		}
		first = false
	}

	if prog.Package != "" {
		separate()
		p.write("package " + prog.Package + ";")
		p.newline()
	}
	if len(prog.Calls) > 0 {
		separate()
		for _, call := range prog.Calls {
			p.write("call " + call + ";")
			p.newline()
		}
	}

	type item struct {
		line  int
		print func()
	}
	var items []item
	for _, c := range prog.Classes {
		items = append(items, item{c.Line, func() { p.printClass(c) }})
	}
	if prog.Entry != nil && prog.Entry.Main != nil {
		main := prog.Entry.Main
		items = append(items, item{main.Line, func() { p.printMethod(main) }})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].line < items[j].line
	})
	for _, it := range items {
		separate()
		it.print()
	}
	return p.err
}

func (p *PrettyPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *PrettyPrinter) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *PrettyPrinter) newline() {
	p.write("\n")
	p.atLineStart = true
}

func (p *PrettyPrinter) line(s string) {
	p.writeIndent()
	p.write(s)
	p.newline()
}

// PrettyPrint returns prog as formatted source.
func PrettyPrint(prog *ast.Program, opts Options) []byte {
	var buf bytes.Buffer
	NewPrettyPrinter(&buf, opts).Encode(prog)
	return buf.Bytes()
}

// FormatSource parses src and prints it back in canonical form. Comments are
// not preserved.
func FormatSource(src []byte, filename string, opts Options) ([]byte, error) {
	var popts []parser.Option
	if filename != "" {
		popts = append(popts, parser.WithFile(filename))
	}
	prog, err := parser.ParseProgram(src, popts...)
	if err != nil {
		return nil, err
	}
	return PrettyPrint(prog, opts), nil
}

func joinDecls(decls []*ast.Declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Type.String() + " " + d.Name
	}
	return strings.Join(parts, ", ")
}
