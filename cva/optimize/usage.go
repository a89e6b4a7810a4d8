package optimize

import "github.com/dhamidi/cvac/cva/ast"

// usage tracks which locals and formals of one method are still unreferenced.
// A reference resolves to a local first and to a formal otherwise.
type usage struct {
	locals map[string]bool
	args   map[string]bool
}

func newUsage(m *ast.Method) *usage {
	u := &usage{
		locals: make(map[string]bool, len(m.Locals)),
		args:   make(map[string]bool, len(m.Formals)),
	}
	for _, d := range m.Locals {
		u.locals[d.Name] = true
	}
	for _, d := range m.Formals {
		u.args[d.Name] = true
	}
	return u
}

func (u *usage) use(name string) {
	if u.locals[name] {
		delete(u.locals, name)
		return
	}
	delete(u.args, name)
}

func (u *usage) VisitIntLit(*ast.IntLit)       {}
func (u *usage) VisitStringLit(*ast.StringLit) {}
func (u *usage) VisitTrueLit(*ast.TrueLit)     {}
func (u *usage) VisitFalseLit(*ast.FalseLit)   {}
func (u *usage) VisitNullLit(*ast.NullLit)     {}
func (u *usage) VisitThis(*ast.This)           {}
func (u *usage) VisitNew(*ast.New)             {}

func (u *usage) VisitIdent(e *ast.Ident) {
	u.use(e.Name)
}

func (u *usage) VisitNot(e *ast.Not) {
	e.X.Accept(u)
}

func (u *usage) VisitBinary(e *ast.Binary) {
	e.Left.Accept(u)
	e.Right.Accept(u)
}

func (u *usage) VisitCall(e *ast.Call) {
	e.Receiver.Accept(u)
	for _, arg := range e.Args {
		arg.Accept(u)
	}
}

func (u *usage) VisitBlock(s *ast.Block) {
	for _, child := range s.Stmts {
		child.Accept(u)
	}
}

func (u *usage) VisitIf(s *ast.If) {
	s.Cond.Accept(u)
	s.Then.Accept(u)
	s.Else.Accept(u)
}

func (u *usage) VisitWhile(s *ast.While) {
	s.Cond.Accept(u)
	s.Body.Accept(u)
}

// The assignment target counts as a use: a local that is only ever assigned
// is kept.
func (u *usage) VisitAssign(s *ast.Assign) {
	u.use(s.Name)
	s.Value.Accept(u)
}

func (u *usage) VisitIncDec(s *ast.IncDec) {
	u.use(s.Name)
}

func (u *usage) VisitWrite(s *ast.Write) {
	s.Value.Accept(u)
}

func (u *usage) VisitEmpty(*ast.EmptyStmt) {}
