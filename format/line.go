package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cvac/cva/ast"
)

// LineEncoder writes one tab-separated record per declaration, suited for
// grep and cut:
//
//	package	demo
//	call	lib.io.*
//	entry	Main	standalone
//	class	Counter	-
//	field	Counter	count	int
//	method	Counter	inc	int	(int by)
//	local	Counter.inc	tmp	int
type LineEncoder struct {
	w    io.Writer
	prog *ast.Program
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(prog *ast.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	p := e.prog

	if p.Package != "" {
		fmt.Fprintf(&sb, "package\t%s\n", p.Package)
	}
	for _, call := range p.Calls {
		fmt.Fprintf(&sb, "call\t%s\n", call)
	}
	if p.Entry != nil {
		kind := "promoted"
		if p.Entry.Standalone() {
			kind = "standalone"
		}
		fmt.Fprintf(&sb, "entry\t%s\t%s\n", p.Entry.Class, kind)
		if p.Entry.Main != nil {
			writeMethodLines(&sb, p.Entry.Class, p.Entry.Main)
		}
	}

	for _, c := range p.Classes {
		super := c.Super
		if super == "" {
			super = "-"
		}
		fmt.Fprintf(&sb, "class\t%s\t%s\n", c.Name, super)
		for _, f := range c.Fields {
			fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n", c.Name, f.Name, f.Type)
		}
		for _, m := range c.Methods {
			writeMethodLines(&sb, c.Name, m)
		}
	}

	return []byte(sb.String()), nil
}

func writeMethodLines(sb *strings.Builder, class string, m *ast.Method) {
	fmt.Fprintf(sb, "method\t%s\t%s\t%s\t(%s)\n", class, m.Name, m.ReturnType, joinDecls(m.Formals))
	for _, l := range m.Locals {
		fmt.Fprintf(sb, "local\t%s.%s\t%s\t%s\n", class, m.Name, l.Name, l.Type)
	}
}
