package ast

// Type is the declared type of a variable, field, parameter or method.
// All implementations are comparable with ==.
type Type interface {
	String() string
	typeNode()
}

type Primitive int

const (
	Void Primitive = iota
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
	Boolean
)

var primitiveNames = map[Primitive]string{
	Void:    "void",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Boolean: "boolean",
}

func (p Primitive) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return "unknown"
}

func (Primitive) typeNode() {}

type StringType struct{}

func (StringType) String() string { return "String" }
func (StringType) typeNode()      {}

// ClassType refers to a class by name. Whether the class exists is not
// checked by the parser.
type ClassType struct {
	Name string
}

func (t ClassType) String() string { return t.Name }
func (ClassType) typeNode()        {}

type ArrayType struct {
	Elem Type
}

func (t ArrayType) String() string { return t.Elem.String() + "[]" }
func (ArrayType) typeNode()        {}

func IsVoid(t Type) bool {
	p, ok := t.(Primitive)
	return ok && p == Void
}
