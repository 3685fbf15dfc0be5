// Package validator checks inputs and definitions before they reach the engine.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// InputError reports the first input character outside the declared alphabet.
// It wraps domain.ErrSymbolNotInAlphabet.
type InputError struct {
	Position int // 0-based rune index
	Symbol   domain.Symbol
	Alphabet []domain.Symbol
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %q at position %d (alphabet %s)", domain.ErrSymbolNotInAlphabet, rune(e.Symbol), e.Position, FormatAlphabet(e.Alphabet))
}

func (e *InputError) Unwrap() error { return domain.ErrSymbolNotInAlphabet }

// ValidateInput checks that every character of input belongs to the
// definition's alphabet. The engine itself never looks at the alphabet.
func ValidateInput(def *domain.Definition, input string) error {
	pos := 0
	for _, r := range input {
		if !def.InAlphabet(domain.Symbol(r)) {
			return &InputError{Position: pos, Symbol: domain.Symbol(r), Alphabet: def.Alphabet}
		}
		pos++
	}
	return nil
}

// FormatAlphabet renders an alphabet as [a, b, c].
func FormatAlphabet(alphabet []domain.Symbol) string {
	parts := make([]string, len(alphabet))
	for i, s := range alphabet {
		parts[i] = string(rune(s))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Severity grades a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding about a definition.
type Issue struct {
	Severity Severity `json:"severity"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", i.Severity, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Lint inspects a definition for problems the lenient parser lets through.
func Lint(def *domain.Definition) []Issue {
	var issues []Issue
	add := func(sev Severity, line int, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Line: line, Message: fmt.Sprintf(format, args...)})
	}

	if def.Start == "" {
		add(SeverityError, 1, "missing start state")
	}
	if def.Accept == "" {
		add(SeverityError, 2, "missing accept state")
	}
	if def.Reject == "" {
		add(SeverityError, 3, "missing reject state")
	}
	if def.Accept != "" && def.Accept == def.Reject {
		add(SeverityWarning, 3, "accept and reject are the same state %q", def.Accept)
	}
	if len(def.Rules) == 0 && def.Start != def.Accept {
		add(SeverityWarning, 0, "no transition rules: every input is rejected")
	}

	type key struct {
		state string
		sym   domain.Symbol
	}
	first := make(map[key]domain.Rule)

	for _, r := range def.Rules {
		if !r.Move.Valid() {
			add(SeverityWarning, r.Line, "direction %q is neither L nor R; the machine rejects when this rule fires", string(rune(r.Move)))
		}
		if !canFire(def, r.From) {
			add(SeverityWarning, r.Line, "rule leaves halting state %q and never fires", r.From)
		}
		k := key{r.From, r.Read}
		if prev, ok := first[k]; ok {
			add(SeverityWarning, r.Line, "rule for (%s, %s) is shadowed by line %d", r.From, r.Read, prev.Line)
			continue
		}
		first[k] = r
	}

	reachable := Reachable(def)
	if def.Accept != "" && def.Start != "" && !reachable[def.Accept] {
		add(SeverityWarning, 0, "accept state %q is unreachable from %q", def.Accept, def.Start)
	}

	var orphans []string
	seen := make(map[string]bool)
	for _, r := range def.Rules {
		if !reachable[r.From] && !seen[r.From] && !def.IsHalting(r.From) {
			seen[r.From] = true
			orphans = append(orphans, r.From)
		}
	}
	sort.Strings(orphans)
	for _, s := range orphans {
		add(SeverityWarning, 0, "state %q is unreachable from %q", s, def.Start)
	}

	return issues
}

// Reachable crawls the rule graph from the start state.
// Halting states are reached but not expanded.
func Reachable(def *domain.Definition) map[string]bool {
	visited := make(map[string]bool)
	if def.Start == "" {
		return visited
	}

	queue := []string{def.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true
		if !canFire(def, current) {
			continue
		}

		for _, r := range def.Rules {
			if r.From == current && !visited[r.To] {
				queue = append(queue, r.To)
			}
		}
	}
	return visited
}

// canFire reports whether rules leaving state can ever match. Halting states
// never read, except a start state that doubles as the reject state: the
// reject check only follows a transition, so the first read still happens.
func canFire(def *domain.Definition, state string) bool {
	if state == def.Accept {
		return false
	}
	return state != def.Reject || state == def.Start
}

// ValidateDefinition returns an error listing every error-level issue.
// With strict set, warnings count as errors too.
func ValidateDefinition(def *domain.Definition, strict bool) error {
	var errs []string
	for _, issue := range Lint(def) {
		if issue.Severity == SeverityError || strict {
			errs = append(errs, issue.String())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
