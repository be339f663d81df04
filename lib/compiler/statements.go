package compiler

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/minicc/minicc/lib/ast"
)

func (c *Compiler) compileGlobal(d *ast.DeclarationStatement) error {
	if _, ok := c.globals[d.Identifier]; ok {
		return posError(d, "global %q redeclared", d.Identifier)
	}
	typ, err := lowerType(d, d.Type)
	if err != nil {
		return err
	}

	init := constant.NewInt(typ, 0)
	if d.Value != nil {
		init, err = c.constantValue(d.Value, typ)
		if err != nil {
			return err
		}
	}

	def := c.Module.NewGlobalDef(d.Identifier, init)
	c.globals[d.Identifier] = &global{def: def, init: init}
	return nil
}

func (c *Compiler) compileFunctionDefinition(f *ast.FunctionDefinition) error {
	if _, ok := c.Functions[f.Name]; ok {
		return posError(f, "function %q redefined", f.Name)
	}
	if f.Body == nil || f.Body.Return == nil {
		return posError(f, "function %q has no return statement", f.Name)
	}
	retType, err := lowerType(f, f.ReturnType)
	if err != nil {
		return err
	}

	fn := c.Module.NewFunc(f.Name, retType)
	c.Functions[f.Name] = fn
	ctx := NewContext(fn.NewBlock("entry"), c)
	c.Context = ctx

	for _, d := range f.Body.Declarations {
		if err := ctx.compileDeclaration(d); err != nil {
			return err
		}
	}
	return ctx.compileReturn(f.Body.Return, retType)
}

func (ctx *Context) compileDeclaration(d *ast.DeclarationStatement) error {
	typ, err := lowerType(d, d.Type)
	if err != nil {
		return err
	}

	var val value.Value = constant.NewInt(typ, 0)
	if d.Value != nil {
		val, err = ctx.compileExpression(d.Value, typ)
		if err != nil {
			return err
		}
	}

	alloc := ctx.NewAlloca(typ)
	alloc.SetName(ctx.localName(d.Identifier))
	ctx.NewStore(val, alloc)
	ctx.vars[d.Identifier] = alloc
	return nil
}

func (ctx *Context) compileReturn(r *ast.ReturnStatement, typ *types.IntType) error {
	val, err := ctx.compileExpression(r.Value, typ)
	if err != nil {
		return err
	}
	ctx.NewRet(val)
	return nil
}
