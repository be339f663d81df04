package analyzer

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/minicc/minicc/lib/ast"
)

type Variable struct {
	Name string
	Type string
	Pos  lexer.Position
	Used bool
}

// Scope maps names to declarations. Lookups fall back to the parent scope.
type Scope struct {
	topLevel  bool
	Parent    *Scope
	Variables map[string]*Variable
	order     []*Variable
}

func NewScope() *Scope {
	return &Scope{
		topLevel:  true,
		Variables: make(map[string]*Variable),
	}
}

func (s *Scope) NewScope() *Scope {
	return &Scope{
		topLevel:  false,
		Parent:    s,
		Variables: make(map[string]*Variable),
	}
}

func (s *Scope) TopLevel() bool {
	return s.topLevel
}

// Declare adds d to this scope. When the name is already declared in this
// same scope the earlier declaration is returned and replaced.
func (s *Scope) Declare(d *ast.DeclarationStatement) (previous *Variable, redeclared bool) {
	previous, redeclared = s.Variables[d.Identifier]
	v := &Variable{Name: d.Identifier, Type: d.Type, Pos: d.Pos}
	s.Variables[d.Identifier] = v
	s.order = append(s.order, v)
	return previous, redeclared
}

func (s *Scope) LookupVariable(name string) (*Variable, bool) {
	if v, ok := s.Variables[name]; ok {
		return v, true
	} else if s.Parent != nil {
		return s.Parent.LookupVariable(name)
	} else {
		return nil, false
	}
}

// TypeOf returns the declared type of name, or ast.TypeUnknown.
func (s *Scope) TypeOf(name string) string {
	if v, ok := s.LookupVariable(name); ok {
		return v.Type
	}
	return ast.TypeUnknown
}

// Declared returns this scope's declarations in declaration order.
func (s *Scope) Declared() []*Variable {
	return s.order
}
