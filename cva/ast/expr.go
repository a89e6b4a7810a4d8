package ast

// Node is anything in the tree. Pos returns the source line.
type Node interface {
	Pos() int
}

type Expr interface {
	Node
	Accept(v ExprVisitor)
	exprNode()
}

type IntLit struct {
	Value int32
	Line  int
}

type StringLit struct {
	Value string
	Line  int
}

type TrueLit struct {
	Line int
}

type FalseLit struct {
	Line int
}

type NullLit struct {
	Line int
}

type Ident struct {
	Name string
	Line int
}

type This struct {
	Line int
}

// New instantiates a class: new Class().
type New struct {
	Class string
	Line  int
}

// Not is logical negation.
type Not struct {
	X    Expr
	Line int
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Less
	And
)

var binaryOpSymbols = map[BinaryOp]string{
	Add:  "+",
	Sub:  "-",
	Mul:  "*",
	Less: "<",
	And:  "&&",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return "?"
}

// Precedence ranks operators from loosest (1) to tightest binding.
func (op BinaryOp) Precedence() int {
	switch op {
	case And:
		return 1
	case Less:
		return 2
	case Add, Sub:
		return 3
	case Mul:
		return 4
	}
	return 0
}

type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Line  int
}

// Call is a method invocation receiver.Name(Args...).
type Call struct {
	Receiver Expr
	Name     string
	Args     []Expr
	Line     int
}

func (e *IntLit) Pos() int    { return e.Line }
func (e *StringLit) Pos() int { return e.Line }
func (e *TrueLit) Pos() int   { return e.Line }
func (e *FalseLit) Pos() int  { return e.Line }
func (e *NullLit) Pos() int   { return e.Line }
func (e *Ident) Pos() int     { return e.Line }
func (e *This) Pos() int      { return e.Line }
func (e *New) Pos() int       { return e.Line }
func (e *Not) Pos() int       { return e.Line }
func (e *Binary) Pos() int    { return e.Line }
func (e *Call) Pos() int      { return e.Line }

func (e *IntLit) Accept(v ExprVisitor)    { v.VisitIntLit(e) }
func (e *StringLit) Accept(v ExprVisitor) { v.VisitStringLit(e) }
func (e *TrueLit) Accept(v ExprVisitor)   { v.VisitTrueLit(e) }
func (e *FalseLit) Accept(v ExprVisitor)  { v.VisitFalseLit(e) }
func (e *NullLit) Accept(v ExprVisitor)   { v.VisitNullLit(e) }
func (e *Ident) Accept(v ExprVisitor)     { v.VisitIdent(e) }
func (e *This) Accept(v ExprVisitor)      { v.VisitThis(e) }
func (e *New) Accept(v ExprVisitor)       { v.VisitNew(e) }
func (e *Not) Accept(v ExprVisitor)       { v.VisitNot(e) }
func (e *Binary) Accept(v ExprVisitor)    { v.VisitBinary(e) }
func (e *Call) Accept(v ExprVisitor)      { v.VisitCall(e) }

func (*IntLit) exprNode()    {}
func (*StringLit) exprNode() {}
func (*TrueLit) exprNode()   {}
func (*FalseLit) exprNode()  {}
func (*NullLit) exprNode()   {}
func (*Ident) exprNode()     {}
func (*This) exprNode()      {}
func (*New) exprNode()       {}
func (*Not) exprNode()       {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}
