package grammar

import (
	"fmt"
	"io"
	"strings"
)

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Node is a node of the concrete syntax tree. Leaf nodes have a non-nil
// Token; interior nodes are named after their production.
type Node struct {
	Kind     string
	Children []*Node
	Token    *Token
	Span     Span
}

func (n *Node) IsTerminal() bool {
	return n.Token != nil
}

// Text returns the literal of a terminal and the empty string otherwise.
func (n *Node) Text() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Find returns every node of the given kind in depth-first order.
func (n *Node) Find(kind string) []*Node {
	var found []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if node.Kind == kind {
			found = append(found, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return found
}

func NewTerminal(tok Token) *Node {
	return &Node{
		Kind:  tok.Kind,
		Token: &tok,
		Span: Span{
			Start: tok.Position,
			End: Position{
				Filename: tok.Position.Filename,
				Offset:   tok.Position.Offset + len(tok.Literal),
				Line:     tok.Position.Line,
				Column:   tok.Position.Column + len(tok.Literal),
			},
		},
	}
}

func NewNonTerminal(kind string) *Node {
	return &Node{Kind: kind}
}

// close sets the span of an interior node from its children.
func (n *Node) close() {
	if len(n.Children) == 0 {
		return
	}
	n.Span.Start = n.Children[0].Span.Start
	n.Span.End = n.Children[len(n.Children)-1].Span.End
}

// Print writes the tree with one node per line, indented by depth.
func Print(w io.Writer, n *Node) error {
	var printNode func(node *Node, depth int) error
	printNode = func(node *Node, depth int) error {
		indent := strings.Repeat("  ", depth)
		var err error
		if node.IsTerminal() {
			_, err = fmt.Fprintf(w, "%s%s %q\n", indent, node.Kind, node.Text())
		} else {
			_, err = fmt.Fprintf(w, "%s%s %d:%d\n", indent, node.Kind, node.Span.Start.Line, node.Span.Start.Column)
		}
		if err != nil {
			return err
		}
		for _, child := range node.Children {
			if err := printNode(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return printNode(n, 0)
}
