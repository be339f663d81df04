// Package parser builds a minicc syntax tree from a token sequence by
// recursive descent. A parse either succeeds completely or returns the first
// error encountered; it never returns a partial tree.
package parser

import (
	"os"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/minicc/minicc/lib/analyzer"
	"github.com/minicc/minicc/lib/ast"
	"github.com/minicc/minicc/lib/diag"
	cclex "github.com/minicc/minicc/lib/lexer"
)

type Option func(*Parser)

// WithStrictTypes turns initializer type mismatches into parse errors.
func WithStrictTypes(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

// WithFilename attributes positions in errors and warnings to filename.
func WithFilename(filename string) Option {
	return func(p *Parser) { p.filename = filename }
}

type Parser struct {
	filename string
	strict   bool

	tokens []cclex.Token
	pos    int

	scope    *analyzer.Scope
	warnings []diag.Warning
}

func New(tokens []cclex.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses tokens into a Program. Warnings are returned even when the
// parse fails.
func Parse(tokens []cclex.Token, opts ...Option) (*ast.Program, []diag.Warning, error) {
	p := New(tokens, opts...)
	prog, err := p.ParseProgram()
	return prog, p.Warnings(), err
}

// ParseString tokenizes and parses source.
func ParseString(filename, source string, opts ...Option) (*ast.Program, []diag.Warning, error) {
	tz := cclex.New(filename)
	tokens, err := tz.Tokenize(source)
	if err != nil {
		return nil, tz.Warnings(), err
	}

	opts = append([]Option{WithFilename(filename)}, opts...)
	prog, warnings, err := Parse(tokens, opts...)
	return prog, append(tz.Warnings(), warnings...), err
}

func ParseFile(filename string, opts ...Option) (*ast.Program, []diag.Warning, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	return ParseString(filename, string(src), opts...)
}

func (p *Parser) Warnings() []diag.Warning {
	return p.warnings
}

// scanForward returns the first token at or after from whose kind is one of
// kinds, with its index. When there is none it returns len(tokens) and the
// zero Token. The cursor is not moved.
func (p *Parser) scanForward(from int, kinds ...cclex.Kind) (int, cclex.Token) {
	for i := from; i < len(p.tokens); i++ {
		if p.tokens[i].Is(kinds...) {
			return i, p.tokens[i]
		}
	}
	return len(p.tokens), cclex.Token{}
}

func (p *Parser) peek() (cclex.Token, bool) {
	if p.pos >= len(p.tokens) {
		return cclex.Token{}, false
	}
	return p.tokens[p.pos], true
}

// expect consumes the token under the cursor if its kind is one of kinds.
func (p *Parser) expect(kinds ...cclex.Kind) (cclex.Token, error) {
	tok, ok := p.peek()
	if !ok {
		return cclex.Token{}, p.endOfInput(kinds...)
	}
	if !tok.Is(kinds...) {
		return tok, &Error{
			Kind:     UnexpectedToken,
			Index:    p.pos,
			Expected: kinds,
			Actual:   tok,
			Pos:      p.position(p.pos),
		}
	}
	p.pos++
	return tok, nil
}

func (p *Parser) endOfInput(expected ...cclex.Kind) *Error {
	last := len(p.tokens) - 1
	pos := cclex.Position(p.filename, 1, 1)
	if last >= 0 {
		tok := p.tokens[last]
		pos = cclex.Position(p.filename, tok.Line, tok.Column+len([]rune(tok.Text)))
	}
	return &Error{Kind: UnexpectedEndOfInput, Index: last, Expected: expected, Pos: pos}
}

func (p *Parser) malformed(opening int, closing cclex.Kind) *Error {
	return &Error{
		Kind:     MalformedBlock,
		Index:    opening,
		Expected: []cclex.Kind{closing},
		Actual:   p.tokens[opening],
		Pos:      p.position(opening),
	}
}

func (p *Parser) position(index int) lexer.Position {
	return p.tokens[index].Position(p.filename)
}
