package ast

// Equal reports whether two trees have the same structure and values.
// Line numbers are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Program:
		y, ok := b.(*Program)
		if !ok || x.Package != y.Package || !equalStrings(x.Calls, y.Calls) {
			return false
		}
		if (x.Entry == nil) != (y.Entry == nil) {
			return false
		}
		if x.Entry != nil && !Equal(x.Entry, y.Entry) {
			return false
		}
		if len(x.Classes) != len(y.Classes) {
			return false
		}
		for i := range x.Classes {
			if !Equal(x.Classes[i], y.Classes[i]) {
				return false
			}
		}
		return true
	case *Entry:
		y, ok := b.(*Entry)
		if !ok || x.Class != y.Class || (x.Main == nil) != (y.Main == nil) {
			return false
		}
		return x.Main == nil || Equal(x.Main, y.Main)
	case *Class:
		y, ok := b.(*Class)
		if !ok || x.Name != y.Name || x.Super != y.Super {
			return false
		}
		if !equalDecls(x.Fields, y.Fields) || len(x.Methods) != len(y.Methods) {
			return false
		}
		for i := range x.Methods {
			if !Equal(x.Methods[i], y.Methods[i]) {
				return false
			}
		}
		return true
	case *Method:
		y, ok := b.(*Method)
		if !ok || x.Name != y.Name || x.ReturnType != y.ReturnType {
			return false
		}
		if !equalDecls(x.Formals, y.Formals) || !equalDecls(x.Locals, y.Locals) {
			return false
		}
		return equalStmts(x.Body, y.Body) && equalExpr(x.Return, y.Return)
	case *Declaration:
		y, ok := b.(*Declaration)
		return ok && x.Name == y.Name && x.Type == y.Type
	case Stmt:
		y, ok := b.(Stmt)
		return ok && equalStmt(x, y)
	case Expr:
		y, ok := b.(Expr)
		return ok && equalExpr(x, y)
	}
	return false
}

func equalStmt(a, b Stmt) bool {
	switch x := a.(type) {
	case *Block:
		y, ok := b.(*Block)
		return ok && equalStmts(x.Stmts, y.Stmts)
	case *If:
		y, ok := b.(*If)
		return ok && equalExpr(x.Cond, y.Cond) && equalStmt(x.Then, y.Then) && equalStmt(x.Else, y.Else)
	case *While:
		y, ok := b.(*While)
		return ok && equalExpr(x.Cond, y.Cond) && equalStmt(x.Body, y.Body)
	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.Name == y.Name && equalExpr(x.Value, y.Value)
	case *IncDec:
		y, ok := b.(*IncDec)
		return ok && x.Name == y.Name && x.Dir == y.Dir
	case *Write:
		y, ok := b.(*Write)
		return ok && x.Mode == y.Mode && equalExpr(x.Value, y.Value)
	case *EmptyStmt:
		_, ok := b.(*EmptyStmt)
		return ok
	}
	return false
}

func equalExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *IntLit:
		y, ok := b.(*IntLit)
		return ok && x.Value == y.Value
	case *StringLit:
		y, ok := b.(*StringLit)
		return ok && x.Value == y.Value
	case *TrueLit:
		_, ok := b.(*TrueLit)
		return ok
	case *FalseLit:
		_, ok := b.(*FalseLit)
		return ok
	case *NullLit:
		_, ok := b.(*NullLit)
		return ok
	case *Ident:
		y, ok := b.(*Ident)
		return ok && x.Name == y.Name
	case *This:
		_, ok := b.(*This)
		return ok
	case *New:
		y, ok := b.(*New)
		return ok && x.Class == y.Class
	case *Not:
		y, ok := b.(*Not)
		return ok && equalExpr(x.X, y.X)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && equalExpr(x.Left, y.Left) && equalExpr(x.Right, y.Right)
	case *Call:
		y, ok := b.(*Call)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) || !equalExpr(x.Receiver, y.Receiver) {
			return false
		}
		for i := range x.Args {
			if !equalExpr(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalStmts(a, b []Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalStmt(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalDecls(a, b []*Declaration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
