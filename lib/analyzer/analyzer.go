// Package analyzer resolves names in a parsed program and reports lint
// warnings. Nothing it finds is fatal.
package analyzer

import (
	"github.com/minicc/minicc/lib/ast"
	"github.com/minicc/minicc/lib/diag"
)

func Analyze(prog *ast.Program) []diag.Warning {
	a := &analysis{}
	globals := NewScope()

	for _, d := range prog.Declarations {
		a.useExpression(globals, d.Value)
		a.declare(globals, d)
	}

	seen := make(map[string]*ast.FunctionDefinition)
	for _, fn := range prog.Functions {
		if first, ok := seen[fn.Name]; ok {
			a.warn(diag.New(diag.DuplicateFunction, fn.Pos,
				"function %q is already defined at %s", fn.Name, diag.Location(first.Pos)))
		} else {
			seen[fn.Name] = fn
		}
		a.analyzeFunction(globals.NewScope(), fn)
	}

	return a.warnings
}

type analysis struct {
	warnings []diag.Warning
}

func (a *analysis) warn(w diag.Warning) {
	a.warnings = append(a.warnings, w)
}

func (a *analysis) analyzeFunction(scope *Scope, fn *ast.FunctionDefinition) {
	if fn.Body == nil {
		return
	}
	for _, d := range fn.Body.Declarations {
		a.useExpression(scope, d.Value)
		a.declare(scope, d)
	}
	if ret := fn.Body.Return; ret != nil && ret.Value != nil {
		if !a.useExpression(scope, ret.Value) {
			a.warn(diag.New(diag.UndeclaredIdentifier, ret.Value.Pos,
				"function %q returns undeclared identifier %q", fn.Name, ret.Value.Value))
		}
	}

	for _, v := range scope.Declared() {
		if !v.Used {
			a.warn(diag.New(diag.UnusedVariable, v.Pos, "%q declared and not used", v.Name))
		}
	}
}

func (a *analysis) declare(scope *Scope, d *ast.DeclarationStatement) {
	if prev, ok := scope.Declare(d); ok {
		a.warn(diag.New(diag.DuplicateDeclaration, d.Pos,
			"%q is already declared at %s", d.Identifier, diag.Location(prev.Pos)))
		// the shadowed declaration must not be reported as unused as well
		prev.Used = true
	}
}

// useExpression marks the variable referenced by e as used. It returns false
// only for an identifier that no visible declaration resolves.
func (a *analysis) useExpression(scope *Scope, e *ast.Expression) bool {
	if e == nil || !e.Identifier {
		return true
	}
	v, ok := scope.LookupVariable(e.Value)
	if !ok {
		return false
	}
	v.Used = true
	return true
}
