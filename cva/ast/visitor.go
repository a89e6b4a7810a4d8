package ast

type ExprVisitor interface {
	VisitIntLit(*IntLit)
	VisitStringLit(*StringLit)
	VisitTrueLit(*TrueLit)
	VisitFalseLit(*FalseLit)
	VisitNullLit(*NullLit)
	VisitIdent(*Ident)
	VisitThis(*This)
	VisitNew(*New)
	VisitNot(*Not)
	VisitBinary(*Binary)
	VisitCall(*Call)
}

type StmtVisitor interface {
	VisitBlock(*Block)
	VisitIf(*If)
	VisitWhile(*While)
	VisitAssign(*Assign)
	VisitIncDec(*IncDec)
	VisitWrite(*Write)
	VisitEmpty(*EmptyStmt)
}

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. Children are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	in := inspector(f)
	switch n := node.(type) {
	case Expr:
		n.Accept(in)
	case Stmt:
		n.Accept(in)
	case *Program:
		if !f(n) {
			return
		}
		if n.Entry != nil {
			Inspect(n.Entry, f)
		}
		for _, c := range n.Classes {
			Inspect(c, f)
		}
	case *Entry:
		if f(n) && n.Main != nil {
			Inspect(n.Main, f)
		}
	case *Class:
		if !f(n) {
			return
		}
		for _, d := range n.Fields {
			Inspect(d, f)
		}
		for _, m := range n.Methods {
			Inspect(m, f)
		}
	case *Method:
		if !f(n) {
			return
		}
		for _, d := range n.Formals {
			Inspect(d, f)
		}
		for _, d := range n.Locals {
			Inspect(d, f)
		}
		for _, s := range n.Body {
			s.Accept(in)
		}
		if n.Return != nil {
			n.Return.Accept(in)
		}
	case *Declaration:
		f(n)
	}
}

type inspector func(Node) bool

func (f inspector) VisitIntLit(e *IntLit)       { f(e) }
func (f inspector) VisitStringLit(e *StringLit) { f(e) }
func (f inspector) VisitTrueLit(e *TrueLit)     { f(e) }
func (f inspector) VisitFalseLit(e *FalseLit)   { f(e) }
func (f inspector) VisitNullLit(e *NullLit)     { f(e) }
func (f inspector) VisitIdent(e *Ident)         { f(e) }
func (f inspector) VisitThis(e *This)           { f(e) }
func (f inspector) VisitNew(e *New)             { f(e) }

func (f inspector) VisitNot(e *Not) {
	if f(e) {
		e.X.Accept(f)
	}
}

func (f inspector) VisitBinary(e *Binary) {
	if f(e) {
		e.Left.Accept(f)
		e.Right.Accept(f)
	}
}

func (f inspector) VisitCall(e *Call) {
	if !f(e) {
		return
	}
	e.Receiver.Accept(f)
	for _, arg := range e.Args {
		arg.Accept(f)
	}
}

func (f inspector) VisitBlock(s *Block) {
	if !f(s) {
		return
	}
	for _, child := range s.Stmts {
		child.Accept(f)
	}
}

func (f inspector) VisitIf(s *If) {
	if !f(s) {
		return
	}
	s.Cond.Accept(f)
	s.Then.Accept(f)
	s.Else.Accept(f)
}

func (f inspector) VisitWhile(s *While) {
	if f(s) {
		s.Cond.Accept(f)
		s.Body.Accept(f)
	}
}

func (f inspector) VisitAssign(s *Assign) {
	if f(s) {
		s.Value.Accept(f)
	}
}

func (f inspector) VisitIncDec(s *IncDec)    { f(s) }
func (f inspector) VisitEmpty(s *EmptyStmt) { f(s) }

func (f inspector) VisitWrite(s *Write) {
	if f(s) {
		s.Value.Accept(f)
	}
}
