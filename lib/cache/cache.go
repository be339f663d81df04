// Package cache keeps generated LLVM IR keyed by the content of the source
// it was generated from, so unchanged files are not lowered again.
package cache

import (
	"crypto/md5"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const indexFile = "index.gob"

type BuiltFile struct {
	FilePath string
	LLPath   string
}

type BuildCache struct {
	Dir string

	mu    sync.Mutex
	index map[string]BuiltFile
}

// DefaultDir is the per-user cache directory.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "minicc"), nil
}

// Init prepares dir for use and loads its index. An empty dir selects
// DefaultDir.
func (c *BuildCache) Init(dir string) error {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	c.Dir = dir
	c.index = make(map[string]BuiltFile)

	f, err := os.Open(filepath.Join(dir, indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&c.index); err != nil {
		// a corrupt index only costs a rebuild
		c.index = make(map[string]BuiltFile)
	}
	return nil
}

// Key identifies a build of source under the given options.
func Key(source []byte, options ...string) string {
	h := md5.New()
	h.Write(source)
	io.Copy(h, strings.NewReader(strings.Join(options, "\x00")))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Lookup returns the IR stored under key.
func (c *BuildCache) Lookup(key string) (string, bool) {
	c.mu.Lock()
	entry, ok := c.index[key]
	c.mu.Unlock()
	if !ok {
		return "", false
	}

	ll, err := os.ReadFile(entry.LLPath)
	if err != nil {
		return "", false
	}
	return string(ll), true
}

// Store saves the IR generated from filePath under key.
func (c *BuildCache) Store(key, filePath, ll string) error {
	llPath := filepath.Join(c.Dir, key+".ll")
	if err := os.WriteFile(llPath, []byte(ll), 0644); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.index[key] = BuiltFile{FilePath: filePath, LLPath: llPath}
	return c.save()
}

// Entries returns the cached builds.
func (c *BuildCache) Entries() []BuiltFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	files := make([]BuiltFile, 0, len(c.index))
	for _, f := range c.index {
		files = append(files, f)
	}
	return files
}

// Clean removes every cached build.
func (c *BuildCache) Clean() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[string]BuiltFile)
	if err := os.RemoveAll(c.Dir); err != nil {
		return err
	}
	return os.MkdirAll(c.Dir, 0755)
}

func (c *BuildCache) save() error {
	f, err := os.Create(filepath.Join(c.Dir, indexFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(c.index)
}
