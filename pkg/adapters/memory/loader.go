package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// Loader implements ports.DefinitionLoader over an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	machines map[string]*domain.Definition
}

// NewLoader creates a Loader from already parsed definitions.
func NewLoader(machines map[string]*domain.Definition) *Loader {
	m := make(map[string]*domain.Definition, len(machines))
	for k, v := range machines {
		m[k] = v
	}
	return &Loader{machines: m}
}

// NewFromSources parses each source with the text parser.
// This handles parsing automatically, improving DX for tests.
func NewFromSources(sources map[string]string) (*Loader, error) {
	p := compiler.NewParser()
	m := make(map[string]*domain.Definition, len(sources))
	for name, src := range sources {
		def, err := p.ParseBytes([]byte(src))
		if err != nil {
			return nil, fmt.Errorf("machine %s: %w", name, err)
		}
		m[name] = def
	}
	return &Loader{machines: m}, nil
}

// Add registers or replaces a machine.
func (l *Loader) Add(name string, def *domain.Definition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.machines[name] = def
}

// Load returns the named definition.
func (l *Loader) Load(_ context.Context, name string) (*domain.Definition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.machines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return def, nil
}

// List returns all machine names.
func (l *Loader) List(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.machines))
	for k := range l.machines {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
