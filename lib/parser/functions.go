package parser

import (
	"github.com/minicc/minicc/lib/analyzer"
	"github.com/minicc/minicc/lib/ast"
	cclex "github.com/minicc/minicc/lib/lexer"
)

// ParseProgram parses the whole token sequence. A Parser may be used for
// several calls; each one starts again from the first token.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	p.pos = 0
	p.warnings = nil
	p.scope = analyzer.NewScope()

	prog := &ast.Program{}
	for p.pos < len(p.tokens) {
		if p.atFunction() {
			fn, err := p.parseFunctionDefinition()
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fn)
			continue
		}

		decl, err := p.parseDeclarationStatement()
		if err != nil {
			return nil, err
		}
		prog.Declarations = append(prog.Declarations, decl)
	}

	if prog.Main() == nil {
		return nil, &Error{Kind: MissingMain, Index: len(p.tokens)}
	}
	return prog, nil
}

// atFunction reports whether the cursor is at `type identifier (`.
func (p *Parser) atFunction() bool {
	return p.pos+2 < len(p.tokens) &&
		p.tokens[p.pos].Kind == cclex.TypeKeyword &&
		p.tokens[p.pos+1].Kind == cclex.Identifier &&
		p.tokens[p.pos+2].Kind == cclex.OpenParen
}

func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	retType, err := p.expect(cclex.TypeKeyword)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(cclex.Identifier)
	if err != nil {
		return nil, err
	}

	paren := p.pos
	if _, err := p.expect(cclex.OpenParen); err != nil {
		return nil, err
	}
	if i, _ := p.scanForward(p.pos, cclex.CloseParen); i == len(p.tokens) {
		return nil, p.malformed(paren, cclex.CloseParen)
	}
	// parameter lists are not part of the language
	if _, err := p.expect(cclex.CloseParen); err != nil {
		return nil, err
	}

	brace := p.pos
	if _, err := p.expect(cclex.OpenBrace); err != nil {
		return nil, err
	}
	end, _ := p.scanForward(p.pos, cclex.CloseBrace)
	if end == len(p.tokens) {
		return nil, p.malformed(brace, cclex.CloseBrace)
	}

	outer := p.scope
	p.scope = outer.NewScope()
	defer func() { p.scope = outer }()

	body, err := p.parseCompoundStatement(name, end)
	if err != nil {
		return nil, err
	}
	body.Pos = p.position(brace)

	p.pos = end
	if _, err := p.expect(cclex.CloseBrace); err != nil {
		return nil, err
	}

	return &ast.FunctionDefinition{
		Pos:        retType.Position(p.filename),
		ReturnType: retType.Text,
		Name:       name.Text,
		Body:       body,
	}, nil
}

// parseCompoundStatement parses declarations up to the first return of the
// block ending at index end, then the return itself. Anything between the
// return statement and end is not parsed.
func (p *Parser) parseCompoundStatement(name cclex.Token, end int) (*ast.CompoundStatement, error) {
	ret, _ := p.scanForward(p.pos, cclex.ControlKeyword)
	if ret >= end {
		return nil, &Error{
			Kind:     MissingReturn,
			Index:    end,
			Function: name.Text,
			Pos:      name.Position(p.filename),
		}
	}

	body := &ast.CompoundStatement{}
	for p.pos < ret {
		tok := p.tokens[p.pos]
		if tok.Kind != cclex.TypeKeyword {
			return nil, &Error{
				Kind:     UnexpectedToken,
				Index:    p.pos,
				Expected: []cclex.Kind{cclex.TypeKeyword, cclex.ControlKeyword},
				Actual:   tok,
				Pos:      p.position(p.pos),
			}
		}
		decl, err := p.parseDeclarationStatement()
		if err != nil {
			return nil, err
		}
		body.Declarations = append(body.Declarations, decl)
	}

	r, err := p.parseReturnStatement()
	if err != nil {
		return nil, err
	}
	body.Return = r
	return body, nil
}
