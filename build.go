package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/minicc/minicc/lib/analyzer"
	"github.com/minicc/minicc/lib/ast"
	"github.com/minicc/minicc/lib/cache"
	"github.com/minicc/minicc/lib/compiler"
	"github.com/minicc/minicc/lib/parser"
	"github.com/minicc/minicc/lib/project"
	"github.com/urfave/cli/v2"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "build",
		Usage:     "Build a minicc source file",
		Category:  "compile",
		ArgsUsage: "[file]",
		Flags:     buildFlags(),
		Action:    build,
	}, &cli.Command{
		Name:      "run",
		Usage:     "Build and run a minicc source file",
		Category:  "compile",
		ArgsUsage: "[file] [-- args...]",
		Flags:     buildFlags(),
		Action:    run,
	})
}

func frontendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "The path to the config file. ",
			Aliases: []string{"c"},
		},
		&cli.StringFlag{
			Name:    "input-str",
			Aliases: []string{"s"},
			Usage:   "Compile a string instead of a file",
		},
		&cli.BoolFlag{
			Name: "strict",
			Usage: "Treat initializer type mismatches as errors. " +
				"By default they are reported as warnings.",
		},
		&cli.BoolFlag{
			Name:  "no-lint",
			Usage: "Don't report analyzer warnings",
		},
	}
}

func buildFlags() []cli.Flag {
	return append(frontendFlags(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "The name for the built binary",
		},
		&cli.BoolFlag{
			Name:    "dump-ast",
			Aliases: []string{"d"},
			Usage:   "Dump the AST to ast_dump.json",
		},
		&cli.BoolFlag{
			Name:    "emit-llvm",
			Aliases: []string{"S"},
			Usage:   "Write LLVM IR to the output path instead of linking",
		},
		&cli.StringFlag{
			Name:  "clang",
			Usage: "The clang executable used for linking",
		},
		&cli.StringSliceFlag{
			Name:    "clang-args",
			Aliases: []string{"a"},
			Usage: "Pass additional arguments to clang. " +
				"Useful for passing flags like -O2 or -g.",
		},
		&cli.BoolFlag{
			Name:    "no-cache",
			Aliases: []string{"n"},
			Usage:   "Disables caching",
		},
	)
}

// input is a source file together with the project settings that apply.
type input struct {
	filename string
	source   string
	conf     *project.CcConf
	confDir  string
}

func loadInput(c *cli.Context) (*input, error) {
	in := &input{}

	confDir := c.String("config")
	if confDir != "" {
		confDir = strings.TrimSuffix(confDir, project.FileName)
	} else if c.Args().First() == "" && c.String("input-str") == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, cli.Exit(color.RedString("Error getting current working directory: %s", err), 1)
		}
		confDir = cwd
	}
	if confDir != "" {
		conf, err := project.GetCcConf(confDir)
		if err != nil {
			return nil, cli.Exit(color.RedString("Error reading %s: %s", project.FileName, err), 1)
		}
		in.conf = &conf
		in.confDir = confDir
	}

	switch {
	case c.String("input-str") != "":
		in.filename = "<input>"
		in.source = c.String("input-str")
		return in, nil
	case c.Args().First() != "":
		in.filename = c.Args().First()
	case in.conf != nil:
		in.filename = filepath.Join(in.confDir, in.conf.Main)
	default:
		return nil, cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	src, err := os.ReadFile(in.filename)
	if err != nil {
		return nil, cli.Exit(color.RedString("Error reading source: %s", err), 1)
	}
	in.source = string(src)
	return in, nil
}

func (in *input) strict(c *cli.Context) bool {
	return c.Bool("strict") || (in.conf != nil && in.conf.Compiler.Strict)
}

func (in *input) noCache(c *cli.Context) bool {
	return c.Bool("no-cache") || (in.conf != nil && in.conf.Compiler.NoCache)
}

func (in *input) emitOnly(c *cli.Context) bool {
	return c.Bool("emit-llvm") || (in.conf != nil && in.conf.Compiler.EmitOnly)
}

func (in *input) clang(c *cli.Context) string {
	if c.String("clang") != "" {
		return c.String("clang")
	}
	if in.conf != nil && in.conf.Compiler.Clang != "" {
		return in.conf.Compiler.Clang
	}
	return "clang"
}

func (in *input) clangArgs(c *cli.Context) []string {
	var args []string
	if in.conf != nil {
		args = append(args, in.conf.Compiler.ClangFlags...)
	}
	return append(args, c.StringSlice("clang-args")...)
}

func (in *input) output(c *cli.Context, emit bool) string {
	out := c.String("output")
	if out == "" && in.conf != nil && in.conf.Output != "" {
		out = filepath.Join(in.confDir, in.conf.Output)
	}
	if out == "" {
		if emit {
			base := filepath.Base(in.filename)
			if in.filename == "<input>" {
				base = "output"
			}
			return strings.TrimSuffix(base, filepath.Ext(base)) + ".ll"
		}
		if runtime.GOOS == "windows" {
			return "output.exe"
		}
		return "output"
	}
	return out
}

// frontend tokenizes, parses and analyzes the input, printing warnings.
func frontend(c *cli.Context, in *input) (*ast.Program, error) {
	prog, warnings, err := parser.ParseString(in.filename, in.source, parser.WithStrictTypes(in.strict(c)))
	reportWarnings(warnings)
	if err != nil {
		return nil, frontendError(in.filename, err)
	}

	if !c.Bool("no-lint") {
		reportWarnings(analyzer.Analyze(prog))
	}
	return prog, nil
}

// lower returns the LLVM IR for prog, reusing a cached copy when the source
// and options are unchanged.
func lower(c *cli.Context, in *input, prog *ast.Program) (string, error) {
	var bc *cache.BuildCache
	key := cache.Key([]byte(in.source), version, strconv.FormatBool(in.strict(c)))
	if !in.noCache(c) {
		bc = &cache.BuildCache{}
		if err := bc.Init(""); err != nil {
			log.Println("cache disabled:", err)
			bc = nil
		} else if ll, ok := bc.Lookup(key); ok {
			return ll, nil
		}
	}

	comp := compiler.NewCompiler()
	if err := comp.Compile(prog); err != nil {
		return "", cli.Exit(color.RedString("Error compiling: %s", err), 1)
	}
	ll := comp.Module.String()

	if bc != nil {
		if err := bc.Store(key, in.filename, ll); err != nil {
			log.Println("cache:", err)
		}
	}
	return ll, nil
}

func dumpAST(path string, prog *ast.Program) error {
	astFile, err := os.Create(path)
	if err != nil {
		return cli.Exit(color.RedString("Error creating AST dump file: %s", err), 1)
	}
	defer astFile.Close()

	encoder := json.NewEncoder(astFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(prog); err != nil {
		return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
	}
	return nil
}

func build(c *cli.Context) error {
	_, err := buildOutput(c, false)
	return err
}

// buildOutput builds the input and returns the path of what it produced.
// With link set an executable is produced even if the project only emits IR.
func buildOutput(c *cli.Context, link bool) (string, error) {
	in, err := loadInput(c)
	if err != nil {
		return "", err
	}

	prog, err := frontend(c, in)
	if err != nil {
		return "", err
	}

	if c.Bool("dump-ast") {
		if err := dumpAST("ast_dump.json", prog); err != nil {
			return "", err
		}
	}

	ll, err := lower(c, in, prog)
	if err != nil {
		return "", err
	}

	emit := in.emitOnly(c) && !link
	outpath := in.output(c, emit)
	if emit {
		if err := os.WriteFile(outpath, []byte(ll), 0644); err != nil {
			return "", cli.Exit(color.RedString("Error writing IR: %s", err), 1)
		}
		return outpath, nil
	}

	tmpDir, err := os.MkdirTemp("", "minicc")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	llPath := filepath.Join(tmpDir, "output.ll")
	if err := os.WriteFile(llPath, []byte(ll), 0644); err != nil {
		return "", err
	}

	var stderr bytes.Buffer
	args := append([]string{llPath, "-o", outpath}, in.clangArgs(c)...)
	cmd := exec.Command(in.clang(c), args...)
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		log.Println("stderr:", stderr.String())
		return "", cli.Exit(color.RedString("Error linking: %s", err), 1)
	}

	return outpath, nil
}

func run(c *cli.Context) error {
	if c.Bool("emit-llvm") {
		return cli.Exit(color.RedString("Error: --emit-llvm cannot be used with run"), 1)
	}

	outpath, err := buildOutput(c, true)
	if err != nil {
		return err
	}

	if !strings.Contains(outpath, string(filepath.Separator)) {
		outpath = "." + string(filepath.Separator) + outpath
	}

	cmd := exec.Command(outpath, c.Args().Tail()...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	err = cmd.Run()

	// main's return value becomes the exit status
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return cli.Exit("", exitErr.ExitCode())
	} else if err != nil {
		return cli.Exit(color.RedString("Error running binary: %s", err), 1)
	}

	return nil
}
