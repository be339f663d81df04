package compiler

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/llir/llvm/ir/types"
	"github.com/minicc/minicc/lib/ast"
	"github.com/minicc/minicc/lib/diag"
)

func posError(n ast.Node, message string, args ...interface{}) error {
	msg := fmt.Sprintf(message, args...)
	pos, ok := nodePosition(n)
	if !ok {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("%s at %s", msg, diag.Location(pos))
}

func nodePosition(n ast.Node) (lexer.Position, bool) {
	switch n := n.(type) {
	case *ast.FunctionDefinition:
		return n.Pos, true
	case *ast.CompoundStatement:
		return n.Pos, true
	case *ast.DeclarationStatement:
		return n.Pos, true
	case *ast.ReturnStatement:
		return n.Pos, true
	case *ast.Expression:
		return n.Pos, true
	case *ast.Program:
		return lexer.Position{}, false
	default:
		panic(fmt.Sprintf("compiler: unexpected node %T", n))
	}
}

// lowerType maps a minicc type name to its LLVM type.
func lowerType(n ast.Node, name string) (*types.IntType, error) {
	switch name {
	case ast.TypeInt:
		return types.I32, nil
	default:
		return nil, posError(n, "unknown type %q", name)
	}
}
