package format

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/dhamidi/cvac/cva/ast"
)

// ASTJSONEncoder writes the full syntax tree as indented JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(prog *ast.Program) error {
	text, err := e.MarshalText(prog)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *ASTJSONEncoder) MarshalText(node ast.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Line     int            `json:"line,omitempty"`
	Name     string         `json:"name,omitempty"`
	Type     string         `json:"type,omitempty"`
	Super    string         `json:"super,omitempty"`
	Op       string         `json:"op,omitempty"`
	Value    string         `json:"value,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node) *astJSONNode {
	switch n := node.(type) {
	case *ast.Program:
		jn := &astJSONNode{Kind: "Program", Name: n.Package}
		for _, call := range n.Calls {
			jn.Children = append(jn.Children, &astJSONNode{Kind: "CallDecl", Name: call})
		}
		if n.Entry != nil {
			jn.Children = append(jn.Children, nodeToJSON(n.Entry))
		}
		for _, c := range n.Classes {
			jn.Children = append(jn.Children, nodeToJSON(c))
		}
		return jn
	case *ast.Entry:
		jn := &astJSONNode{Kind: "Entry", Line: n.Line, Name: n.Class}
		if n.Main != nil {
			jn.Children = []*astJSONNode{nodeToJSON(n.Main)}
		}
		return jn
	case *ast.Class:
		jn := &astJSONNode{Kind: "Class", Line: n.Line, Name: n.Name, Super: n.Super}
		jn.Children = append(jn.Children, declsToJSON("Field", n.Fields)...)
		for _, m := range n.Methods {
			jn.Children = append(jn.Children, nodeToJSON(m))
		}
		return jn
	case *ast.Method:
		jn := &astJSONNode{Kind: "Method", Line: n.Line, Name: n.Name, Type: n.ReturnType.String()}
		jn.Children = append(jn.Children, declsToJSON("Formal", n.Formals)...)
		jn.Children = append(jn.Children, declsToJSON("Local", n.Locals)...)
		for _, s := range n.Body {
			jn.Children = append(jn.Children, nodeToJSON(s))
		}
		if n.Return != nil {
			jn.Children = append(jn.Children, &astJSONNode{
				Kind:     "Return",
				Line:     n.Return.Pos(),
				Children: []*astJSONNode{nodeToJSON(n.Return)},
			})
		}
		return jn
	case *ast.Declaration:
		return &astJSONNode{Kind: "Declaration", Line: n.Line, Name: n.Name, Type: n.Type.String()}
	case ast.Stmt:
		b := &jsonBuilder{}
		n.Accept(b)
		return b.node
	case ast.Expr:
		b := &jsonBuilder{}
		n.Accept(b)
		return b.node
	}
	return &astJSONNode{Kind: "Unknown"}
}

func declsToJSON(kind string, decls []*ast.Declaration) []*astJSONNode {
	out := make([]*astJSONNode, len(decls))
	for i, d := range decls {
		out[i] = &astJSONNode{Kind: kind, Line: d.Line, Name: d.Name, Type: d.Type.String()}
	}
	return out
}

// jsonBuilder converts statements and expressions, leaving the result in
// node.
type jsonBuilder struct {
	node *astJSONNode
}

func (b *jsonBuilder) children(nodes ...ast.Node) []*astJSONNode {
	out := make([]*astJSONNode, len(nodes))
	for i, n := range nodes {
		out[i] = nodeToJSON(n)
	}
	return out
}

func (b *jsonBuilder) VisitIntLit(e *ast.IntLit) {
	b.node = &astJSONNode{Kind: "IntLit", Line: e.Line, Value: strconv.FormatInt(int64(e.Value), 10)}
}

func (b *jsonBuilder) VisitStringLit(e *ast.StringLit) {
	b.node = &astJSONNode{Kind: "StringLit", Line: e.Line, Value: e.Value}
}

func (b *jsonBuilder) VisitTrueLit(e *ast.TrueLit) {
	b.node = &astJSONNode{Kind: "TrueLit", Line: e.Line}
}

func (b *jsonBuilder) VisitFalseLit(e *ast.FalseLit) {
	b.node = &astJSONNode{Kind: "FalseLit", Line: e.Line}
}

func (b *jsonBuilder) VisitNullLit(e *ast.NullLit) {
	b.node = &astJSONNode{Kind: "NullLit", Line: e.Line}
}

func (b *jsonBuilder) VisitIdent(e *ast.Ident) {
	b.node = &astJSONNode{Kind: "Ident", Line: e.Line, Name: e.Name}
}

func (b *jsonBuilder) VisitThis(e *ast.This) {
	b.node = &astJSONNode{Kind: "This", Line: e.Line}
}

func (b *jsonBuilder) VisitNew(e *ast.New) {
	b.node = &astJSONNode{Kind: "New", Line: e.Line, Name: e.Class}
}

func (b *jsonBuilder) VisitNot(e *ast.Not) {
	b.node = &astJSONNode{Kind: "Not", Line: e.Line, Children: b.children(e.X)}
}

func (b *jsonBuilder) VisitBinary(e *ast.Binary) {
	b.node = &astJSONNode{Kind: "Binary", Line: e.Line, Op: e.Op.String(), Children: b.children(e.Left, e.Right)}
}

func (b *jsonBuilder) VisitCall(e *ast.Call) {
	nodes := []ast.Node{e.Receiver}
	for _, arg := range e.Args {
		nodes = append(nodes, arg)
	}
	b.node = &astJSONNode{Kind: "Call", Line: e.Line, Name: e.Name, Children: b.children(nodes...)}
}

func (b *jsonBuilder) VisitBlock(s *ast.Block) {
	nodes := make([]ast.Node, len(s.Stmts))
	for i, child := range s.Stmts {
		nodes[i] = child
	}
	b.node = &astJSONNode{Kind: "Block", Line: s.Line, Children: b.children(nodes...)}
}

func (b *jsonBuilder) VisitIf(s *ast.If) {
	b.node = &astJSONNode{Kind: "If", Line: s.Line, Children: b.children(s.Cond, s.Then, s.Else)}
}

func (b *jsonBuilder) VisitWhile(s *ast.While) {
	b.node = &astJSONNode{Kind: "While", Line: s.Line, Children: b.children(s.Cond, s.Body)}
}

func (b *jsonBuilder) VisitAssign(s *ast.Assign) {
	b.node = &astJSONNode{Kind: "Assign", Line: s.Line, Name: s.Name, Children: b.children(s.Value)}
}

func (b *jsonBuilder) VisitIncDec(s *ast.IncDec) {
	b.node = &astJSONNode{Kind: "IncDec", Line: s.Line, Name: s.Name, Op: s.Dir.String()}
}

func (b *jsonBuilder) VisitWrite(s *ast.Write) {
	b.node = &astJSONNode{Kind: "Write", Line: s.Line, Op: s.Mode.String(), Children: b.children(s.Value)}
}

func (b *jsonBuilder) VisitEmpty(s *ast.EmptyStmt) {
	b.node = &astJSONNode{Kind: "Empty", Line: s.Line}
}
