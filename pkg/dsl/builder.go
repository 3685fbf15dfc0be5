package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
)

// ErrIncompleteRule is returned by Build when a rule was started with On
// but never given a move and a target.
var ErrIncompleteRule = errors.New("incomplete rule")

// Builder manages the definition construction.
type Builder struct {
	def     domain.Definition
	errs    []string
	pending *RuleBuilder
}

// New creates a new definition builder.
func New() *Builder {
	return &Builder{}
}

// Start sets the start state.
func (b *Builder) Start(state string) *Builder {
	b.def.Start = state
	return b
}

// Accept sets the accept state.
func (b *Builder) Accept(state string) *Builder {
	b.def.Accept = state
	return b
}

// Reject sets the reject state.
func (b *Builder) Reject(state string) *Builder {
	b.def.Reject = state
	return b
}

// Alphabet appends input symbols.
func (b *Builder) Alphabet(symbols ...domain.Symbol) *Builder {
	b.def.Alphabet = append(b.def.Alphabet, symbols...)
	return b
}

// State opens a block of rules leaving state.
func (b *Builder) State(name string) *StateBuilder {
	b.flush()
	return &StateBuilder{builder: b, state: name}
}

// flush records a rule that was opened with On but never closed with To.
func (b *Builder) flush() {
	if b.pending != nil && !b.pending.done {
		b.errs = append(b.errs, fmt.Sprintf("%s on %s: missing To", b.pending.rule.From, b.pending.rule.Read))
	}
	b.pending = nil
}

// Build validates and returns the definition. Rules keep declaration order,
// so the first rule added for a (state, symbol) pair wins.
func (b *Builder) Build() (*domain.Definition, error) {
	b.flush()
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w:\n- %s", ErrIncompleteRule, strings.Join(b.errs, "\n- "))
	}
	def := b.def
	def.Alphabet = append([]domain.Symbol(nil), b.def.Alphabet...)
	def.Rules = append([]domain.Rule(nil), b.def.Rules...)
	if err := validator.ValidateDefinition(&def, false); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDefinition, err)
	}
	return &def, nil
}

// MustBuild is Build for package-level fixtures; it panics on error.
func (b *Builder) MustBuild() *domain.Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// StateBuilder adds rules leaving one state.
type StateBuilder struct {
	builder *Builder
	state   string
}

// On starts a rule for reading sym. The written symbol defaults to sym.
func (s *StateBuilder) On(sym domain.Symbol) *RuleBuilder {
	s.builder.flush()
	rb := &RuleBuilder{state: s, rule: domain.Rule{From: s.state, Read: sym, Write: sym}}
	s.builder.pending = rb
	return rb
}

// OnBlank starts a rule for reading a blank cell.
func (s *StateBuilder) OnBlank() *RuleBuilder {
	return s.On(domain.Blank)
}

// State switches to another state's block.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Build finishes the current block and builds the definition.
func (s *StateBuilder) Build() (*domain.Definition, error) {
	return s.builder.Build()
}

// MustBuild finishes the current block and panics on error.
func (s *StateBuilder) MustBuild() *domain.Definition {
	return s.builder.MustBuild()
}

// RuleBuilder configures one transition.
type RuleBuilder struct {
	state *StateBuilder
	rule  domain.Rule
	done  bool
}

// Write sets the symbol written before moving.
func (r *RuleBuilder) Write(sym domain.Symbol) *RuleBuilder {
	r.rule.Write = sym
	return r
}

// WriteBlank erases the cell.
func (r *RuleBuilder) WriteBlank() *RuleBuilder {
	return r.Write(domain.Blank)
}

// Left moves the head left after writing.
func (r *RuleBuilder) Left() *RuleBuilder {
	r.rule.Move = domain.Left
	return r
}

// Right moves the head right after writing.
func (r *RuleBuilder) Right() *RuleBuilder {
	r.rule.Move = domain.Right
	return r
}

// To sets the target state and closes the rule.
func (r *RuleBuilder) To(target string) *StateBuilder {
	b := r.state.builder
	switch {
	case !r.rule.Move.Valid():
		b.errs = append(b.errs, fmt.Sprintf("%s on %s: missing Left or Right", r.rule.From, r.rule.Read))
	case target == "":
		b.errs = append(b.errs, fmt.Sprintf("%s on %s: empty target state", r.rule.From, r.rule.Read))
	default:
		r.rule.To = target
		b.def.Rules = append(b.def.Rules, r.rule)
	}
	r.done = true
	b.pending = nil
	return r.state
}
