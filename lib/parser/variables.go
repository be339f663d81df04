package parser

import (
	"fmt"

	"github.com/minicc/minicc/lib/ast"
	"github.com/minicc/minicc/lib/diag"
	cclex "github.com/minicc/minicc/lib/lexer"
)

func (p *Parser) parseDeclarationStatement() (*ast.DeclarationStatement, error) {
	typ, err := p.expect(cclex.TypeKeyword)
	if err != nil {
		return nil, err
	}
	ident, err := p.expect(cclex.Identifier)
	if err != nil {
		return nil, err
	}

	decl := &ast.DeclarationStatement{
		Pos:        typ.Position(p.filename),
		Type:       typ.Text,
		Identifier: ident.Text,
	}

	if tok, ok := p.peek(); ok && tok.Kind == cclex.Equals {
		p.pos++ // "="
		decl.AssignOp = tok.Text

		valueIndex := p.pos
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Value = value

		if value.Type != decl.Type {
			if err := p.mismatch(decl, valueIndex); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(cclex.Semicolon); err != nil {
		return nil, err
	}

	p.scope.Declare(decl)
	return decl, nil
}

// mismatch reports an initializer whose type differs from the declared type.
// It is a warning unless the parser is strict.
func (p *Parser) mismatch(decl *ast.DeclarationStatement, index int) error {
	detail := fmt.Sprintf("initializer %q has type %s, but %q is declared %s",
		decl.Value.Value, decl.Value.Type, decl.Identifier, decl.Type)

	if p.strict {
		return &Error{
			Kind:   TypeMismatch,
			Index:  index,
			Actual: p.tokens[index],
			Detail: detail,
			Pos:    p.position(index),
		}
	}
	p.warnings = append(p.warnings, diag.New(diag.TypeMismatch, decl.Value.Pos, "%s", detail))
	return nil
}
