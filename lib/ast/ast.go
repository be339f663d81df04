// Package ast declares the syntax tree produced by the minicc parser.
//
// The set of node types is closed: every node implements Node, and Node can
// only be implemented inside this package. Each parent exclusively owns its
// children and a nil pointer marks an absent optional child.
package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// NodeKind tags the variant of a Node.
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindFunctionDefinition
	KindCompoundStatement
	KindDeclarationStatement
	KindReturnStatement
	KindExpression
)

func (k NodeKind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindFunctionDefinition:
		return "FunctionDefinition"
	case KindCompoundStatement:
		return "CompoundStatement"
	case KindDeclarationStatement:
		return "DeclarationStatement"
	case KindReturnStatement:
		return "ReturnStatement"
	case KindExpression:
		return "Expression"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

type Node interface {
	Kind() NodeKind
	node()
}

// Semantic type names carried by expressions and declarations.
const (
	TypeInt     = "int"
	TypeUnknown = "unknown"
)

// Expression is a terminal: an integer literal or a bare identifier.
type Expression struct {
	Pos lexer.Position `json:"pos"`

	Type       string `json:"type"`
	Value      string `json:"value"`
	Identifier bool   `json:"identifier,omitempty"`
}

// DeclarationStatement declares a variable with an optional initializer.
// AssignOp is empty and Value nil when there is no initializer.
type DeclarationStatement struct {
	Pos lexer.Position `json:"pos"`

	Type       string      `json:"type"`
	Identifier string      `json:"identifier"`
	AssignOp   string      `json:"assign_op,omitempty"`
	Value      *Expression `json:"value,omitempty"`
}

type ReturnStatement struct {
	Pos lexer.Position `json:"pos"`

	Value *Expression `json:"value"`
}

// CompoundStatement is a function body. Return is never nil in a tree
// returned by a successful parse.
type CompoundStatement struct {
	Pos lexer.Position `json:"pos"`

	Declarations []*DeclarationStatement `json:"declarations"`
	Return       *ReturnStatement        `json:"return"`
}

type FunctionDefinition struct {
	Pos lexer.Position `json:"pos"`

	ReturnType string             `json:"return_type"`
	Name       string             `json:"name"`
	Body       *CompoundStatement `json:"body"`
}

// Program is the root of the tree.
type Program struct {
	Declarations []*DeclarationStatement `json:"declarations"`
	Functions    []*FunctionDefinition   `json:"functions"`
}

// Function returns the first function called name, or nil.
func (p *Program) Function(name string) *FunctionDefinition {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Main returns the program's entry point, or nil.
func (p *Program) Main() *FunctionDefinition {
	return p.Function("main")
}

func (*Program) Kind() NodeKind              { return KindProgram }
func (*FunctionDefinition) Kind() NodeKind   { return KindFunctionDefinition }
func (*CompoundStatement) Kind() NodeKind    { return KindCompoundStatement }
func (*DeclarationStatement) Kind() NodeKind { return KindDeclarationStatement }
func (*ReturnStatement) Kind() NodeKind      { return KindReturnStatement }
func (*Expression) Kind() NodeKind           { return KindExpression }

func (*Program) node()              {}
func (*FunctionDefinition) node()   {}
func (*CompoundStatement) node()    {}
func (*DeclarationStatement) node() {}
func (*ReturnStatement) node()      {}
func (*Expression) node()           {}
