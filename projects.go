package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/minicc/minicc/lib/cache"
	"github.com/minicc/minicc/lib/project"
	"github.com/minicc/minicc/util"
	"github.com/urfave/cli/v2"
)

const mainTemplate = `int main() {
	return 0;
}
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new minicc project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "The version of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.StringFlag{
				Name:    "license",
				Aliases: []string{"l"},
				Usage:   "The license of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept defaults without prompting and overwrite existing files",
			},
		},
		Action: initProject,
	}, &cli.Command{
		Name:     "cache",
		Usage:    "Manages the build cache",
		Category: "project",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Lists cached builds",
				Action: cacheList,
			},
			{
				Name:   "clean",
				Usage:  "Removes every cached build",
				Action: cacheClean,
			},
		},
	})
}

func initProject(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	var conf project.CcConf
	conf.CreateDefault(filepath.Base(abs))

	ask := func(flag, prompt string, field *string) {
		if v := c.String(flag); v != "" {
			*field = v
		} else if !c.Bool("yes") {
			*field = util.PromptString(prompt, *field)
		}
	}
	ask("name", "Project name", &conf.Name)
	ask("version", "Version", &conf.Version)
	ask("main", "Main file", &conf.Main)
	ask("author", "Author", &conf.Author)
	ask("license", "License", &conf.License)

	if err := conf.Validate(); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	err = conf.Save(filepath.Join(dir, project.FileName), c.Bool("yes"))
	if err != nil {
		return err
	}

	mainPath := filepath.Join(dir, conf.Main)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(mainPath, []byte(mainTemplate), 0644); err != nil {
			return err
		}
	}

	color.Green("Initialized project %s in %s", conf.Name, abs)
	return nil
}

func cacheList(c *cli.Context) error {
	bc := cache.BuildCache{}
	if err := bc.Init(""); err != nil {
		return err
	}
	for _, f := range bc.Entries() {
		fmt.Printf("%s -> %s\n", f.FilePath, f.LLPath)
	}
	return nil
}

func cacheClean(c *cli.Context) error {
	bc := cache.BuildCache{}
	if err := bc.Init(""); err != nil {
		return err
	}
	if err := bc.Clean(); err != nil {
		return err
	}
	color.Green("Cache cleared")
	return nil
}
