package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/validator"
)

// Validate parses the machine and prints every lint finding.
// Errors fail the command; with strict, warnings do too.
func (a *App) Validate(ctx context.Context, ref string, strict bool) error {
	name, def, err := loadMachine(ctx, a.Config, ref)
	if err != nil {
		return err
	}

	issues := validator.Lint(def)
	failing := 0
	for _, issue := range issues {
		fmt.Fprintln(a.Out, issue.String())
		if issue.Severity == validator.SeverityError || strict {
			failing++
		}
	}
	if failing > 0 {
		return &ExitCodeError{Code: ExitError, Err: fmt.Errorf("%s: %d problem(s) found", name, failing)}
	}

	printSystemMessage(a.Out, "%s is valid: %d states, %d rules, alphabet %s",
		name, len(def.States()), len(def.Rules), validator.FormatAlphabet(def.Alphabet))
	return nil
}

// Graph prints the Mermaid state diagram of the machine.
func (a *App) Graph(ctx context.Context, ref string) error {
	_, def, err := loadMachine(ctx, a.Config, ref)
	if err != nil {
		return err
	}
	fmt.Fprint(a.Out, graph.GenerateMermaid(def, nil))
	return nil
}

// Describe prints a markdown summary, rendered through glamour on a terminal.
func (a *App) Describe(ctx context.Context, ref string, raw bool) error {
	name, def, err := loadMachine(ctx, a.Config, ref)
	if err != nil {
		return err
	}

	md := tui.DescribeMarkdown(name, def)
	if raw || !isTerminal(a.Out) || a.NoColor {
		fmt.Fprint(a.Out, md)
		return nil
	}

	render, err := tui.NewRenderer()
	if err != nil {
		a.logger().Warn("markdown renderer unavailable", "err", err)
		fmt.Fprint(a.Out, md)
		return nil
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render description: %w", err)
	}
	fmt.Fprint(a.Out, out)
	return nil
}

// Format prints the canonical text encoding of the machine. With write, a
// text-format file is rewritten in place instead.
func (a *App) Format(ctx context.Context, ref string, write bool) error {
	_, def, err := loadMachine(ctx, a.Config, ref)
	if err != nil {
		return err
	}
	out := compiler.FormatString(def)
	if !write {
		fmt.Fprint(a.Out, out)
		return nil
	}

	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml", ".json":
		return fmt.Errorf("%s: --write only rewrites text-format machines", ref)
	}
	info, err := os.Stat(ref)
	if err != nil {
		return fmt.Errorf("--write needs a file path: %w", err)
	}
	if err := os.WriteFile(ref, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", ref, err)
	}
	printSystemMessage(a.Out, "Formatted %s", ref)
	return nil
}
