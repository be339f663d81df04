package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	cclex "github.com/minicc/minicc/lib/lexer"
	"github.com/minicc/minicc/lib/parser"
	"github.com/urfave/cli/v2"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a source file",
		Category:  "inspect",
		ArgsUsage: "[file]",
		Flags: append(frontendFlags(), &cli.BoolFlag{
			Name:  "json",
			Usage: "Print the tokens as JSON",
		}),
		Action: printTokens,
	}, &cli.Command{
		Name:      "parse",
		Usage:     "Parse a source file and print the AST as JSON",
		Category:  "inspect",
		ArgsUsage: "[file]",
		Flags:     frontendFlags(),
		Action:    printAST,
	}, &cli.Command{
		Name:     "ebnf",
		Usage:    "Print the EBNF grammar of the language",
		Category: "inspect",
		Action: func(c *cli.Context) error {
			fmt.Println(parser.Grammar().String())
			return nil
		},
	})
}

func printTokens(c *cli.Context) error {
	in, err := loadInput(c)
	if err != nil {
		return err
	}

	tz := cclex.New(in.filename)
	tokens, err := tz.Tokenize(in.source)
	reportWarnings(tz.Warnings())
	if err != nil {
		return frontendError(in.filename, err)
	}

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(tokens); err != nil {
			return cli.Exit(color.RedString("Error encoding tokens: %s", err), 1)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tKIND\tTEXT\tLINE\tCOLUMN")
	for i, tok := range tokens {
		fmt.Fprintf(w, "%d\t%s\t%q\t%d\t%d\n", i, tok.Kind, tok.Text, tok.Line, tok.Column)
	}
	return w.Flush()
}

func printAST(c *cli.Context) error {
	in, err := loadInput(c)
	if err != nil {
		return err
	}

	prog, err := frontend(c, in)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(prog); err != nil {
		return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
	}
	return nil
}
