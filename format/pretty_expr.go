package format

import (
	"strconv"
	"strings"

	"github.com/dhamidi/cvac/cva/ast"
)

const (
	precUnary = 5
	precAtom  = 6
)

// precedence returns how tightly e binds. A negative literal prints with a
// leading minus and binds like a unary expression.
func precedence(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.Binary:
		return e.Op.Precedence()
	case *ast.Not:
		return precUnary
	case *ast.IntLit:
		if e.Value < 0 {
			return precUnary
		}
	}
	return precAtom
}

type exprWriter struct {
	b strings.Builder
}

func formatExpr(e ast.Expr) string {
	var w exprWriter
	e.Accept(&w)
	return w.b.String()
}

func (w *exprWriter) operand(e ast.Expr, parens bool) {
	if parens {
		w.b.WriteByte('(')
		e.Accept(w)
		w.b.WriteByte(')')
		return
	}
	e.Accept(w)
}

func (w *exprWriter) VisitIntLit(e *ast.IntLit) {
	w.b.WriteString(strconv.FormatInt(int64(e.Value), 10))
}

func (w *exprWriter) VisitStringLit(e *ast.StringLit) {
	w.b.WriteString(Quote(e.Value))
}

func (w *exprWriter) VisitTrueLit(*ast.TrueLit)   { w.b.WriteString("true") }
func (w *exprWriter) VisitFalseLit(*ast.FalseLit) { w.b.WriteString("false") }
func (w *exprWriter) VisitNullLit(*ast.NullLit)   { w.b.WriteString("null") }
func (w *exprWriter) VisitThis(*ast.This)         { w.b.WriteString("this") }

func (w *exprWriter) VisitIdent(e *ast.Ident) {
	w.b.WriteString(e.Name)
}

func (w *exprWriter) VisitNew(e *ast.New) {
	w.b.WriteString("new " + e.Class + "()")
}

func (w *exprWriter) VisitNot(e *ast.Not) {
	w.b.WriteByte('!')
	w.operand(e.X, precedence(e.X) < precAtom)
}

// Operators are left-associative, so the right operand needs parentheses
// already at equal precedence.
func (w *exprWriter) VisitBinary(e *ast.Binary) {
	prec := e.Op.Precedence()
	w.operand(e.Left, precedence(e.Left) < prec)
	w.b.WriteString(" " + e.Op.String() + " ")
	w.operand(e.Right, precedence(e.Right) <= prec)
}

func (w *exprWriter) VisitCall(e *ast.Call) {
	w.operand(e.Receiver, precedence(e.Receiver) < precAtom)
	w.b.WriteString("." + e.Name + "(")
	for i, arg := range e.Args {
		if i > 0 {
			w.b.WriteString(", ")
		}
		arg.Accept(w)
	}
	w.b.WriteByte(')')
}

// Quote returns s as a Cva string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
