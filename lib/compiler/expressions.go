package compiler

import (
	"strconv"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/minicc/minicc/lib/ast"
)

func (ctx *Context) compileExpression(e *ast.Expression, typ *types.IntType) (value.Value, error) {
	if !e.Identifier {
		return parseInt(e, typ)
	}

	ptr, ok := ctx.lookupVariable(e.Value)
	if !ok {
		return nil, posError(e, "undefined: %s", e.Value)
	}
	return ctx.NewLoad(typ, ptr), nil
}

// constantValue evaluates a global initializer. Identifiers must name a
// global declared earlier.
func (c *Compiler) constantValue(e *ast.Expression, typ *types.IntType) (*constant.Int, error) {
	if !e.Identifier {
		return parseInt(e, typ)
	}
	g, ok := c.globals[e.Value]
	if !ok {
		return nil, posError(e, "global initializer refers to undefined %s", e.Value)
	}
	return g.init, nil
}

func parseInt(e *ast.Expression, typ *types.IntType) (*constant.Int, error) {
	n, err := strconv.ParseInt(e.Value, 10, int(typ.BitSize))
	if err != nil {
		return nil, posError(e, "integer literal %s does not fit in %s", e.Value, typ)
	}
	return constant.NewInt(typ, n), nil
}
