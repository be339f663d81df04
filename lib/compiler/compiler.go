// Package compiler lowers a parsed minicc program to LLVM IR.
package compiler

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"
	"github.com/minicc/minicc/lib/ast"
)

type Context struct {
	*ir.Block
	*Compiler
	parent *Context
	vars   map[string]value.Value
	names  map[string]int
}

func NewContext(b *ir.Block, comp *Compiler) *Context {
	return &Context{
		Block:    b,
		Compiler: comp,
		parent:   nil,
		vars:     make(map[string]value.Value),
		names:    make(map[string]int),
	}
}

func (c *Context) NewContext(b *ir.Block) *Context {
	ctx := NewContext(b, c.Compiler)
	ctx.parent = c
	return ctx
}

// lookupVariable returns the storage of name: an alloca for locals, the
// global definition otherwise.
func (c *Context) lookupVariable(name string) (value.Value, bool) {
	if v, ok := c.vars[name]; ok {
		return v, true
	} else if c.parent != nil {
		return c.parent.lookupVariable(name)
	} else if g, ok := c.Compiler.globals[name]; ok {
		return g.def, true
	} else {
		return nil, false
	}
}

// localName returns a block-unique IR name for a source variable; a
// redeclared variable gets a numbered suffix.
func (c *Context) localName(name string) string {
	n := c.names[name]
	c.names[name] = n + 1
	if n == 0 {
		return name
	}
	return name + "." + strconv.Itoa(n)
}

type global struct {
	def  *ir.Global
	init *constant.Int
}

type Compiler struct {
	Module    *ir.Module
	Functions map[string]*ir.Func
	Context   *Context
	AST       *ast.Program

	globals map[string]*global
}

func NewCompiler() *Compiler {
	return &Compiler{
		Module:    ir.NewModule(),
		Functions: make(map[string]*ir.Func),
		globals:   make(map[string]*global),
	}
}

// Compile adds the program's globals and functions to c.Module.
func (c *Compiler) Compile(program *ast.Program) error {
	c.AST = program
	if program.Main() == nil {
		return posError(program, "program has no main function")
	}

	for _, d := range program.Declarations {
		if err := c.compileGlobal(d); err != nil {
			return err
		}
	}
	for _, f := range program.Functions {
		if err := c.compileFunctionDefinition(f); err != nil {
			return err
		}
	}
	return nil
}
