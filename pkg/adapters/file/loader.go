// Package file provides filesystem-backed definition loading and run storage.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// Extensions lists the file types the loader recognises, in lookup order.
var Extensions = []string{".tm", ".txt", ".yaml", ".yml", ".json"}

// Loader implements ports.DefinitionLoader over a directory of machine files.
// A machine's name is its file name without extension.
type Loader struct {
	fsys   fs.FS
	parser *compiler.Parser
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithParser overrides the parser, e.g. one built WithStrictDirections.
func WithParser(p *compiler.Parser) LoaderOption {
	return func(l *Loader) {
		l.parser = p
	}
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	return NewLoaderFS(os.DirFS(dir), opts...)
}

// NewLoaderFS creates a loader over any fs.FS, such as an embed.FS.
func NewLoaderFS(fsys fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{fsys: fsys, parser: compiler.NewParser()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load finds name with any of the known extensions and parses it.
func (l *Loader) Load(_ context.Context, name string) (*domain.Definition, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", domain.ErrMachineNotFound, name)
	}
	for _, ext := range Extensions {
		file := name + ext
		data, err := fs.ReadFile(l.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		def, err := l.parser.ParseFile(file, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		return def, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
}

// List returns the names of every machine file in the directory.
func (l *Loader) List(_ context.Context) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !known(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func known(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
