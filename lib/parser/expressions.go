package parser

import (
	"github.com/minicc/minicc/lib/ast"
	cclex "github.com/minicc/minicc/lib/lexer"
)

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	kw, err := p.expect(cclex.ControlKeyword)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(cclex.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Pos: kw.Position(p.filename), Value: value}, nil
}

// parseExpression parses an integer literal or an identifier. An identifier
// takes the type of the declaration it resolves to.
func (p *Parser) parseExpression() (*ast.Expression, error) {
	tok, err := p.expect(cclex.IntegerLiteral, cclex.Identifier)
	if err != nil {
		return nil, err
	}

	expr := &ast.Expression{Pos: tok.Position(p.filename), Value: tok.Text}
	switch tok.Kind {
	case cclex.IntegerLiteral:
		expr.Type = ast.TypeInt
	case cclex.Identifier:
		expr.Identifier = true
		expr.Type = p.scope.TypeOf(tok.Text)
	}
	return expr, nil
}
