package main

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
	"github.com/minicc/minicc/lib/diag"
	cclex "github.com/minicc/minicc/lib/lexer"
	"github.com/minicc/minicc/lib/parser"
	"github.com/urfave/cli/v2"
)

func posError(pos lexer.Position, message string, args ...interface{}) error {
	return cli.Exit(color.RedString("%s at %s", fmt.Sprintf(message, args...), diag.Location(pos)), 1)
}

func reportWarnings(warnings []diag.Warning) {
	for _, w := range warnings {
		color.Yellow("warning: %s", w)
	}
}

// frontendError turns a tokenize or parse failure into an exit error that
// points at the offending source location.
func frontendError(filename string, err error) error {
	var lexErr *cclex.Error
	var parseErr *parser.Error

	switch {
	case errors.As(err, &lexErr):
		return posError(cclex.Position(filename, lexErr.Line, lexErr.Column),
			"Error: unrecognized character %q", lexErr.Char)
	case errors.As(err, &parseErr):
		if parseErr.Kind == parser.MissingMain {
			return cli.Exit(color.RedString("Error: %s in %s", parseErr, filename), 1)
		}
		return posError(parseErr.Pos, "Syntax error: %s", parseErr)
	default:
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
}
