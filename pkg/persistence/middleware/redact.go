package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Mask replaces redacted inputs and tapes.
const Mask = "***"

type redactMiddleware struct {
	next     ports.RunStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware masks the input and final tape of every record whose
// input matches one of the patterns. Verdicts and step counts are kept.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.RunStore) ports.RunStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, record *domain.RunRecord) error {
	for _, p := range m.patterns {
		if p.MatchString(record.Input) {
			// Copy so the caller's record stays intact.
			masked := *record
			masked.Input = Mask
			if masked.Tape != "" {
				masked.Tape = Mask
			}
			return m.next.Save(ctx, &masked)
		}
	}
	return m.next.Save(ctx, record)
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
