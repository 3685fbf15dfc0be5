package compiler

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// ParseError reports a structurally malformed definition line.
// It wraps domain.ErrMalformedDefinition.
type ParseError struct {
	Line   int    // 1-based line number
	Text   string // offending line, trimmed
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error { return domain.ErrMalformedDefinition }
