package format

import "github.com/dhamidi/cvac/cva/ast"

func (p *PrettyPrinter) printClass(c *ast.Class) {
	p.writeIndent()
	p.write("class " + c.Name)
	if c.Super != "" {
		p.write(" extends " + c.Super)
	}
	p.write(" {")
	p.newline()
	p.indent++

	for _, f := range c.Fields {
		p.line(f.Type.String() + " " + f.Name + ";")
	}
	for i, m := range c.Methods {
		if i > 0 || len(c.Fields) > 0 {
			p.newline()
		}
		p.printMethod(m)
	}

	p.indent--
	p.line("}")
}

func (p *PrettyPrinter) printMethod(m *ast.Method) {
	p.writeIndent()
	p.write(m.ReturnType.String() + " " + m.Name + "(" + joinDecls(m.Formals) + ") {")
	p.newline()
	p.indent++

	for _, local := range m.Locals {
		p.line(local.Type.String() + " " + local.Name + ";")
	}
	for _, s := range m.Body {
		s.Accept(p)
	}
	if !ast.IsVoid(m.ReturnType) && m.Return != nil {
		p.line("return " + formatExpr(m.Return) + ";")
	}

	p.indent--
	p.line("}")
}
