package cclex

import (
	"io"

	"github.com/alecthomas/participle/v2/lexer"
)

// FSMLexer is a participle lexer.Definition that runs the minicc tokenizer.
var (
	FSMLexer lexer.Definition = &fsmLexerDefinition{}

	// DefaultDefinition defines properties for the default lexer.
	DefaultDefinition = FSMLexer
)

// Symbol names used for token kinds in participle grammars.
var symbolNames = map[Kind]string{
	Unknown:        "Unknown",
	TypeKeyword:    "Type",
	ControlKeyword: "Keyword",
	Identifier:     "Ident",
	IntegerLiteral: "Int",
	Semicolon:      "Semicolon",
	OpenParen:      "LParen",
	CloseParen:     "RParen",
	OpenBrace:      "LBrace",
	CloseBrace:     "RBrace",
	Equals:         "Equals",
}

type fsmLexerDefinition struct{}

func (d *fsmLexerDefinition) Symbols() map[string]lexer.TokenType {
	symbols := map[string]lexer.TokenType{"EOF": lexer.EOF}
	for kind, name := range symbolNames {
		symbols[name] = lexer.TokenType(kind)
	}
	return symbols
}

func (d *fsmLexerDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(src))
}

func (d *fsmLexerDefinition) LexString(filename string, input string) (lexer.Lexer, error) {
	tokens, err := New(filename).Tokenize(input)
	if err != nil {
		return nil, err
	}
	return LexTokens(filename, tokens), nil
}

// LexTokens wraps an already tokenized sequence as a participle lexer.
func LexTokens(filename string, tokens []Token) lexer.Lexer {
	return &tokenLexer{filename: filename, tokens: tokens}
}

// tokenLexer replays a token slice, then reports EOF forever.
type tokenLexer struct {
	filename string
	tokens   []Token
	pos      int
}

func (l *tokenLexer) Next() (lexer.Token, error) {
	if l.pos >= len(l.tokens) {
		return lexer.Token{Type: lexer.EOF, Pos: l.eofPosition()}, nil
	}
	tok := l.tokens[l.pos]
	l.pos++
	return lexer.Token{
		Type:  lexer.TokenType(tok.Kind),
		Value: tok.Text,
		Pos:   tok.Position(l.filename),
	}, nil
}

func (l *tokenLexer) eofPosition() lexer.Position {
	if len(l.tokens) == 0 {
		return Position(l.filename, 1, 1)
	}
	last := l.tokens[len(l.tokens)-1]
	return Position(l.filename, last.Line, last.Column+len([]rune(last.Text)))
}

// Position builds a participle position for a line and column.
func Position(filename string, line, column int) lexer.Position {
	return lexer.Position{Filename: filename, Line: line, Column: column}
}

// Position returns the token's location as a participle position.
func (t Token) Position(filename string) lexer.Position {
	return Position(filename, t.Line, t.Column)
}
