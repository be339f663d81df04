// Package diag holds the non-fatal diagnostics produced while tokenizing,
// parsing and analyzing a program.
package diag

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

type Code string

const (
	TypeMismatch               Code = "type-mismatch"
	NumberFollowedByIdentifier Code = "number-followed-by-identifier"
	DuplicateDeclaration       Code = "duplicate-declaration"
	DuplicateFunction          Code = "duplicate-function"
	UndeclaredIdentifier       Code = "undeclared-identifier"
	UnusedVariable             Code = "unused-variable"
)

// Warning is a diagnostic that does not stop compilation.
type Warning struct {
	Code    Code
	Message string
	Pos     lexer.Position
}

func New(code Code, pos lexer.Position, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s [%s]", Location(w.Pos), w.Message, w.Code)
}

// Location renders pos as file:line:col, dropping the file when it is unknown.
func Location(pos lexer.Position) string {
	if pos.Filename == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
}
