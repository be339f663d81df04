package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	cclex "github.com/minicc/minicc/lib/lexer"
)

// ErrorKind names the reason a parse failed.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota + 1
	UnexpectedEndOfInput
	MalformedBlock
	MissingReturn
	MissingMain
	TypeMismatch
)

var (
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrMalformedBlock       = errors.New("malformed block")
	ErrMissingReturn        = errors.New("missing return statement")
	ErrMissingMain          = errors.New("missing main function")
	ErrTypeMismatch         = errors.New("type mismatch")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case UnexpectedEndOfInput:
		return ErrUnexpectedEndOfInput
	case MalformedBlock:
		return ErrMalformedBlock
	case MissingReturn:
		return ErrMissingReturn
	case MissingMain:
		return ErrMissingMain
	case TypeMismatch:
		return ErrTypeMismatch
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error describes why a parse failed. Which fields are set depends on Kind:
//
//	UnexpectedToken       Expected, Actual, Index
//	UnexpectedEndOfInput  Expected, Index (of the last token)
//	MalformedBlock        Expected (the missing delimiter), Index (of the opener)
//	MissingReturn         Function
//	MissingMain           nothing
//	TypeMismatch          Actual (the initializer), Index, Detail
type Error struct {
	Kind     ErrorKind
	Index    int
	Expected []cclex.Kind
	Actual   cclex.Token
	Function string
	Detail   string
	Pos      lexer.Position
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case UnexpectedToken:
		msg = fmt.Sprintf("expected %s, got %s %q at token %d", kindList(e.Expected), e.Actual.Kind, e.Actual.Text, e.Index)
	case UnexpectedEndOfInput:
		msg = fmt.Sprintf("unexpected end of input after token %d", e.Index)
		if len(e.Expected) > 0 {
			msg += ": expected " + kindList(e.Expected)
		}
	case MalformedBlock:
		msg = fmt.Sprintf("no matching %s for the block opened at token %d", kindList(e.Expected), e.Index)
	case MissingReturn:
		msg = fmt.Sprintf("function %q has no return statement", e.Function)
	case MissingMain:
		msg = "program has no main function"
	case TypeMismatch:
		msg = e.Detail
	default:
		msg = e.Kind.String()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind.sentinel() }

func kindList(kinds []cclex.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}
