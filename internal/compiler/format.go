package compiler

import (
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Format encodes a Definition in the line-oriented text format.
// Parsing the output yields the same definition (rule line numbers aside).
func Format(def *domain.Definition) []string {
	lines := make([]string, 0, headerLines+len(def.Rules))
	lines = append(lines, def.Start, def.Accept, def.Reject)

	alphabet := make([]string, len(def.Alphabet))
	for i, s := range def.Alphabet {
		alphabet[i] = string(rune(s))
	}
	lines = append(lines, strings.Join(alphabet, ","))

	for _, r := range def.Rules {
		lines = append(lines, r.String())
	}
	return lines
}

// FormatString joins Format output with newlines, ending in a newline.
func FormatString(def *domain.Definition) string {
	return strings.Join(Format(def), "\n") + "\n"
}
