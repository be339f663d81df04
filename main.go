package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

// commands is filled by the init functions of the command files.
var commands []*cli.Command

func newApp() *cli.App {
	return &cli.App{
		Name:                   "minicc",
		Usage:                  "A compiler for a tiny subset of C that emits LLVM IR",
		Version:                version,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Commands:               commands,
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}
