package ast

// Declaration binds a name to a type: a field, a formal parameter or a local.
type Declaration struct {
	Name string
	Type Type
	Line int
}

type Method struct {
	Name       string
	ReturnType Type
	Formals    []*Declaration
	Locals     []*Declaration
	Body       []Stmt
	// Return is the value after the body. Void methods get an implicit
	// *NullLit.
	Return Expr
	Line   int
}

// RemoveLocal deletes the local with the given name and reports whether one
// was found.
func (m *Method) RemoveLocal(name string) bool {
	for i, local := range m.Locals {
		if local.Name == name {
			m.Locals = append(m.Locals[:i], m.Locals[i+1:]...)
			return true
		}
	}
	return false
}

type Class struct {
	Name    string
	Super   string
	Fields  []*Declaration
	Methods []*Method
	Line    int
}

func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// DefaultEntryClass names the class wrapping a free-standing main method.
const DefaultEntryClass = "Main"

// EntryMethodName is the name of the method where execution starts.
const EntryMethodName = "main"

// Entry identifies where execution starts. A free-standing main method is
// held in Main; when main is declared inside a class, Main is nil and Class
// names that class.
type Entry struct {
	Class string
	Main  *Method
	Line  int
}

// Standalone reports whether the entry is a free-standing main method.
func (e *Entry) Standalone() bool {
	return e.Main != nil
}

type Program struct {
	Package string
	Calls   []string
	Entry   *Entry
	Classes []*Class
}

func (p *Program) Class(name string) *Class {
	for _, c := range p.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// EntryMethod resolves the method execution starts at.
func (p *Program) EntryMethod() *Method {
	if p.Entry == nil {
		return nil
	}
	if p.Entry.Main != nil {
		return p.Entry.Main
	}
	if c := p.Class(p.Entry.Class); c != nil {
		return c.Method(EntryMethodName)
	}
	return nil
}

func (d *Declaration) Pos() int { return d.Line }
func (m *Method) Pos() int      { return m.Line }
func (c *Class) Pos() int       { return c.Line }
func (e *Entry) Pos() int       { return e.Line }

func (p *Program) Pos() int {
	if p.Entry != nil && p.Entry.Line > 0 {
		return p.Entry.Line
	}
	if len(p.Classes) > 0 {
		return p.Classes[0].Line
	}
	return 1
}
