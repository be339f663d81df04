package cclex

import "fmt"

// Kind is the lexical category of a token.
type Kind int

const (
	Unknown Kind = iota
	TypeKeyword
	ControlKeyword
	Identifier
	IntegerLiteral
	Semicolon
	OpenParen
	CloseParen
	OpenBrace
	CloseBrace
	Equals
)

var kindNames = [...]string{
	Unknown:        "unknown",
	TypeKeyword:    "type-keyword",
	ControlKeyword: "control-keyword",
	Identifier:     "identifier",
	IntegerLiteral: "integer-literal",
	Semicolon:      "semicolon",
	OpenParen:      "open-paren",
	CloseParen:     "close-paren",
	OpenBrace:      "open-brace",
	CloseBrace:     "close-brace",
	Equals:         "equals",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is a classified lexeme together with the 1-based line and column of
// its first character.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("{%s %q Ln:%d Col:%d}", t.Kind, t.Text, t.Line, t.Column)
}

// Is reports whether the token's kind is one of kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// The tables below are read-only after package initialization and are safe
// to share between concurrent Tokenize calls.
var keywords = map[string]Kind{
	"int":    TypeKeyword,
	"return": ControlKeyword,
}

var punctuation = map[rune]Kind{
	';': Semicolon,
	'(': OpenParen,
	')': CloseParen,
	'{': OpenBrace,
	'}': CloseBrace,
	'=': Equals,
}

// LookupKeyword returns the keyword kind for word, if it is one.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// LookupPunctuation classifies a single punctuation character. It returns
// Unknown for anything outside the recognized set.
func LookupPunctuation(r rune) Kind {
	if k, ok := punctuation[r]; ok {
		return k
	}
	return Unknown
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
