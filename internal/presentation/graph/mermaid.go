// Package graph renders machine definitions as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains run data to highlight on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart for a definition.
// Shapes:
// - Start: ((Circle))
// - Accept: (((Double circle)))
// - Reject: {{Hexagon}}
// - Default: [Rectangle]
//
// Rules between the same pair of states share one edge; their labels are
// stacked in declaration order as read/write,move.
func GenerateMermaid(def *domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range def.States() {
		opener, closer := "[", "]"
		switch state {
		case def.Accept:
			opener, closer = "(((", ")))"
		case def.Reject:
			opener, closer = "{{", "}}"
		case def.Start:
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(state), opener, escape(state), closer)
	}

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for _, r := range def.Rules {
		e := edge{r.From, r.To}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", r.Read, r.Write, r.Move))
	}
	for _, e := range order {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(e.from), escape(strings.Join(labels[e], "<br/>")), nodeID(e.to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			if s == "" || seen[s] || s == overlay.CurrentState {
				continue
			}
			seen[s] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(s))
		}
		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.CurrentState))
		}
	}

	return sb.String()
}

// nodeID prefixes and sanitizes a state label so it can never collide with
// Mermaid keywords such as "end".
func nodeID(state string) string {
	var b strings.Builder
	b.WriteString("s_")
	for _, r := range state {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_%x_", r)
		}
	}
	return b.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "#quot;")
}
