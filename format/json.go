package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cvac/cva/ast"
)

// JSONEncoder writes an outline of a program: its classes with their fields
// and method signatures, without method bodies.
type JSONEncoder struct {
	w    io.Writer
	prog *ast.Program
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(prog *ast.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildProgramData(), "", "  ")
}

type jsonProgram struct {
	Package string      `json:"package,omitempty"`
	Calls   []string    `json:"calls,omitempty"`
	Entry   jsonEntry   `json:"entry"`
	Classes []jsonClass `json:"classes"`
}

type jsonEntry struct {
	Class      string      `json:"class"`
	Standalone bool        `json:"standalone"`
	Method     *jsonMethod `json:"method,omitempty"`
}

type jsonClass struct {
	Name    string       `json:"name"`
	Super   string       `json:"super,omitempty"`
	Line    int          `json:"line"`
	Fields  []jsonVar    `json:"fields"`
	Methods []jsonMethod `json:"methods"`
}

type jsonVar struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Line int    `json:"line"`
}

type jsonMethod struct {
	Name       string    `json:"name"`
	ReturnType string    `json:"returnType"`
	Line       int       `json:"line"`
	Formals    []jsonVar `json:"formals"`
	Locals     []jsonVar `json:"locals"`
}

func (e *JSONEncoder) buildProgramData() jsonProgram {
	p := e.prog
	data := jsonProgram{
		Package: p.Package,
		Calls:   p.Calls,
		Classes: make([]jsonClass, len(p.Classes)),
	}
	if p.Entry != nil {
		data.Entry = jsonEntry{Class: p.Entry.Class, Standalone: p.Entry.Standalone()}
		if p.Entry.Main != nil {
			m := buildMethod(p.Entry.Main)
			data.Entry.Method = &m
		}
	}
	for i, c := range p.Classes {
		jc := jsonClass{
			Name:    c.Name,
			Super:   c.Super,
			Line:    c.Line,
			Fields:  buildVars(c.Fields),
			Methods: make([]jsonMethod, len(c.Methods)),
		}
		for j, m := range c.Methods {
			jc.Methods[j] = buildMethod(m)
		}
		data.Classes[i] = jc
	}
	return data
}

func buildMethod(m *ast.Method) jsonMethod {
	return jsonMethod{
		Name:       m.Name,
		ReturnType: m.ReturnType.String(),
		Line:       m.Line,
		Formals:    buildVars(m.Formals),
		Locals:     buildVars(m.Locals),
	}
}

func buildVars(decls []*ast.Declaration) []jsonVar {
	vars := make([]jsonVar, len(decls))
	for i, d := range decls {
		vars[i] = jsonVar{Name: d.Name, Type: d.Type.String(), Line: d.Line}
	}
	return vars
}
