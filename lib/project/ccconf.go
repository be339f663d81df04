// Package project reads and writes ccconf.yaml project files.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minicc/minicc/util"
	"gopkg.in/yaml.v3"
)

const FileName = "ccconf.yaml"

type CcConf struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Version     string         `yaml:"version"`
	Main        string         `yaml:"main"`
	Output      string         `yaml:"output"`
	Author      string         `yaml:"author"`
	License     string         `yaml:"license"`
	Compiler    CcConfCompiler `yaml:"compiler"`
}

type CcConfCompiler struct {
	// Strict makes initializer type mismatches fatal.
	Strict     bool     `yaml:"strict"`
	Clang      string   `yaml:"clang"`
	ClangFlags []string `yaml:"clangFlags"`
	EmitOnly   bool     `yaml:"emitOnly"`
	NoCache    bool     `yaml:"noCache"`
}

func (c *CcConf) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new minicc project"
	c.Version = "1.0.0"
	c.Main = "main.c"
	c.Output = "output"
	c.Author = "Anonymous"
	c.License = "MIT"
	c.Compiler = CcConfCompiler{Clang: "clang"}
}

// Validate checks the fields a build depends on.
func (c *CcConf) Validate() error {
	if c.Main == "" {
		return fmt.Errorf("%s: main is not set", FileName)
	}
	if c.Version != "" {
		if _, err := util.ParseSemver(c.Version); err != nil {
			return fmt.Errorf("%s: invalid version %q: %w", FileName, c.Version, err)
		}
	}
	return nil
}

// Save writes the configuration to path. An existing file is replaced only
// when overwrite is set or the user confirms.
func (c *CcConf) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if overwrite || util.PromptYN(path+" already exists. Overwrite?", false) {
			os.Remove(path)
		} else {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, yml, 0644)
}

// GetCcConf loads dir/ccconf.yaml.
func GetCcConf(dir string) (CcConf, error) {
	var conf CcConf

	file, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		return CcConf{}, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(&conf)
	if err != nil {
		return CcConf{}, err
	}

	if err := conf.Validate(); err != nil {
		return CcConf{}, err
	}

	return conf, nil
}
