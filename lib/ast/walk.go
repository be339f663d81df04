package ast

import "fmt"

// Inspect traverses the tree rooted at n in depth-first order. If f returns
// false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case *Program:
		for _, d := range n.Declarations {
			out = append(out, d)
		}
		for _, fn := range n.Functions {
			out = append(out, fn)
		}
	case *FunctionDefinition:
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *CompoundStatement:
		for _, d := range n.Declarations {
			out = append(out, d)
		}
		if n.Return != nil {
			out = append(out, n.Return)
		}
	case *DeclarationStatement:
		if n.Value != nil {
			out = append(out, n.Value)
		}
	case *ReturnStatement:
		if n.Value != nil {
			out = append(out, n.Value)
		}
	case *Expression:
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
	return out
}
