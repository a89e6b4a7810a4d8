package format

import "github.com/dhamidi/cvac/cva/ast"

func (p *PrettyPrinter) VisitBlock(s *ast.Block) {
	p.line("{")
	p.indent++
	for _, child := range s.Stmts {
		child.Accept(p)
	}
	p.indent--
	p.line("}")
}

func (p *PrettyPrinter) VisitIf(s *ast.If) {
	p.writeIndent()
	p.write("if (" + formatExpr(s.Cond) + ")")
	open := p.printBody(s.Then)

	if _, empty := s.Else.(*ast.EmptyStmt); !empty {
		if open {
			p.write(" else")
		} else {
			p.writeIndent()
			p.write("else")
		}
		open = p.printBody(s.Else)
	}
	if open {
		p.newline()
	}
}

func (p *PrettyPrinter) VisitWhile(s *ast.While) {
	p.writeIndent()
	p.write("while (" + formatExpr(s.Cond) + ")")
	if p.printBody(s.Body) {
		p.newline()
	}
}

func (p *PrettyPrinter) VisitAssign(s *ast.Assign) {
	p.line(s.Name + " = " + formatExpr(s.Value) + ";")
}

func (p *PrettyPrinter) VisitIncDec(s *ast.IncDec) {
	p.line(s.Name + s.Dir.String() + ";")
}

func (p *PrettyPrinter) VisitWrite(s *ast.Write) {
	p.line(s.Mode.String() + "(" + formatExpr(s.Value) + ");")
}

func (p *PrettyPrinter) VisitEmpty(*ast.EmptyStmt) {}

// printBody prints the body of an if, else or while after its header. A
// block opens on the header line and the closing brace is left open on its
// line, reported by returning true. Any other statement goes on its own
// indented line.
func (p *PrettyPrinter) printBody(s ast.Stmt) bool {
	if b, ok := s.(*ast.Block); ok {
		p.write(" {")
		p.newline()
		p.indent++
		for _, child := range b.Stmts {
			child.Accept(p)
		}
		p.indent--
		p.writeIndent()
		p.write("}")
		return true
	}
	p.newline()
	p.indent++
	s.Accept(p)
	p.indent--
	return false
}
