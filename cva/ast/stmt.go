package ast

type Stmt interface {
	Node
	Accept(v StmtVisitor)
	stmtNode()
}

type Block struct {
	Stmts []Stmt
	Line  int
}

// If always has an Else; a missing else branch is an *EmptyStmt.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Line int
}

type While struct {
	Cond Expr
	Body Stmt
	Line int
}

type Assign struct {
	Name  string
	Value Expr
	Line  int
}

type IncDir int

const (
	Increment IncDir = iota
	Decrement
)

func (d IncDir) String() string {
	if d == Decrement {
		return "--"
	}
	return "++"
}

type IncDec struct {
	Name string
	Dir  IncDir
	Line int
}

type WriteMode int

const (
	ModeWrite WriteMode = iota
	ModeWriteLine
	ModeWriteFormat
)

func (m WriteMode) String() string {
	switch m {
	case ModeWriteLine:
		return "writeln"
	case ModeWriteFormat:
		return "writef"
	}
	return "write"
}

type Write struct {
	Value Expr
	Mode  WriteMode
	Line  int
}

// EmptyStmt marks an absent else branch.
type EmptyStmt struct {
	Line int
}

func (s *Block) Pos() int     { return s.Line }
func (s *If) Pos() int        { return s.Line }
func (s *While) Pos() int     { return s.Line }
func (s *Assign) Pos() int    { return s.Line }
func (s *IncDec) Pos() int    { return s.Line }
func (s *Write) Pos() int     { return s.Line }
func (s *EmptyStmt) Pos() int { return s.Line }

func (s *Block) Accept(v StmtVisitor)     { v.VisitBlock(s) }
func (s *If) Accept(v StmtVisitor)        { v.VisitIf(s) }
func (s *While) Accept(v StmtVisitor)     { v.VisitWhile(s) }
func (s *Assign) Accept(v StmtVisitor)    { v.VisitAssign(s) }
func (s *IncDec) Accept(v StmtVisitor)    { v.VisitIncDec(s) }
func (s *Write) Accept(v StmtVisitor)     { v.VisitWrite(s) }
func (s *EmptyStmt) Accept(v StmtVisitor) { v.VisitEmpty(s) }

func (*Block) stmtNode()     {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*Assign) stmtNode()    {}
func (*IncDec) stmtNode()    {}
func (*Write) stmtNode()     {}
func (*EmptyStmt) stmtNode() {}
