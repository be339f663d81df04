// Package cclex turns minicc source text into a position-annotated token
// sequence using an explicit finite-state machine.
package cclex

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/minicc/minicc/lib/diag"
)

type state int

const (
	stateStart state = iota
	stateIdentifier
	stateNumber
	statePunctuation
	stateError
)

// ErrLexical is matched by every *Error returned from Tokenize.
var ErrLexical = errors.New("lexical error")

// Error reports a character that does not begin any recognized token class.
type Error struct {
	Char   rune
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("unrecognized character %q at line %d, column %d", e.Char, e.Line, e.Column)
}

func (e *Error) Unwrap() error { return ErrLexical }

// Tokenizer holds the state of one tokenize run. A Tokenizer may be reused;
// every call to Tokenize starts from a clean state.
type Tokenizer struct {
	filename string

	state  state
	buf    strings.Builder
	tokens []Token

	line, column           int
	startLine, startColumn int

	warnings []diag.Warning
}

// New returns a Tokenizer whose diagnostics are attributed to filename.
func New(filename string) *Tokenizer {
	return &Tokenizer{filename: filename}
}

// Tokenize runs a fresh Tokenizer over source.
func Tokenize(source string) ([]Token, error) {
	return New("").Tokenize(source)
}

// Tokenize converts source into tokens. On failure no tokens are returned.
func (t *Tokenizer) Tokenize(source string) ([]Token, error) {
	t.reset()

	for _, r := range source {
		// Columns advance before use so the first character of a line is 1.
		t.column++
		if err := t.step(r); err != nil {
			t.tokens = nil
			return nil, err
		}
		if r == '\n' {
			t.line++
			t.column = 0
		}
	}
	t.flush()

	tokens := t.tokens
	t.tokens = nil
	return tokens, nil
}

// Warnings returns the recoverable problems found by the last Tokenize call.
func (t *Tokenizer) Warnings() []diag.Warning {
	return t.warnings
}

func (t *Tokenizer) reset() {
	t.state = stateStart
	t.buf.Reset()
	t.tokens = nil
	t.warnings = nil
	t.line, t.column = 1, 0
	t.startLine, t.startColumn = 1, 1
}

// step feeds one character to the machine. A character that closes the
// current token is evaluated again from the start state.
func (t *Tokenizer) step(r rune) error {
	for {
		switch t.state {
		case stateStart:
			return t.begin(r)
		case stateIdentifier:
			if isLetter(r) || isDigit(r) || r == '_' {
				t.buf.WriteRune(r)
				return nil
			}
		case stateNumber:
			if isDigit(r) {
				t.buf.WriteRune(r)
				return nil
			}
			if isLetter(r) {
				t.warnings = append(t.warnings, diag.New(diag.NumberFollowedByIdentifier,
					Position(t.filename, t.line, t.column),
					"integer literal %q is immediately followed by %q", t.buf.String(), r))
				t.flush()
				t.enter(stateIdentifier, r)
				return nil
			}
		case statePunctuation:
			// punctuation tokens are exactly one character long
		case stateError:
			return &Error{Char: r, Line: t.line, Column: t.column}
		}
		t.flush()
	}
}

func (t *Tokenizer) begin(r rune) error {
	switch {
	case isLetter(r) || r == '_':
		t.enter(stateIdentifier, r)
	case isDigit(r):
		t.enter(stateNumber, r)
	case isSpace(r):
	case LookupPunctuation(r) != Unknown:
		t.enter(statePunctuation, r)
	default:
		t.state = stateError
		return &Error{Char: r, Line: t.line, Column: t.column}
	}
	return nil
}

func (t *Tokenizer) enter(s state, r rune) {
	t.state = s
	t.startLine, t.startColumn = t.line, t.column
	t.buf.WriteRune(r)
}

// flush emits the buffered lexeme, if any, and returns the machine to the
// start state.
func (t *Tokenizer) flush() {
	defer func() {
		t.buf.Reset()
		t.state = stateStart
	}()
	if t.buf.Len() == 0 {
		return
	}

	text := t.buf.String()
	kind := Unknown
	switch t.state {
	case stateIdentifier:
		kind = Identifier
		if k, ok := LookupKeyword(text); ok {
			kind = k
		}
	case stateNumber:
		kind = IntegerLiteral
	case statePunctuation:
		r, _ := utf8.DecodeRuneInString(text)
		kind = LookupPunctuation(r)
	}

	t.tokens = append(t.tokens, Token{
		Kind:   kind,
		Text:   text,
		Line:   t.startLine,
		Column: t.startColumn,
	})
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
