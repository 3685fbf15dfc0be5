package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
)

// DescribeMarkdown summarizes a definition as markdown: labels, states,
// alphabet, the rule table and any lint findings.
func DescribeMarkdown(name string, def *domain.Definition) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "- **Start:** `%s`\n", def.Start)
	fmt.Fprintf(&b, "- **Accept:** `%s`\n", def.Accept)
	fmt.Fprintf(&b, "- **Reject:** `%s`\n", def.Reject)
	fmt.Fprintf(&b, "- **Alphabet:** `%s`\n", validator.FormatAlphabet(def.Alphabet))
	fmt.Fprintf(&b, "- **States:** %s\n\n", codeList(def.States()))

	b.WriteString("## Transitions\n\n")
	if len(def.Rules) == 0 {
		b.WriteString("_No transition rules._\n")
	} else {
		b.WriteString("| # | From | Read | Write | Move | To |\n")
		b.WriteString("|---|------|------|-------|------|----|\n")
		for i, r := range def.Rules {
			fmt.Fprintf(&b, "| %d | `%s` | `%s` | `%s` | `%s` | `%s` |\n", i+1, r.From, r.Read, r.Write, r.Move, r.To)
		}
	}

	if issues := validator.Lint(def); len(issues) > 0 {
		b.WriteString("\n## Findings\n\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- %s\n", issue.String())
		}
	}
	return b.String()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}
