package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/muesli/termenv"
)

const (
	colorAccepted = "#22c55e"
	colorRejected = "#ef4444"
	colorFailed   = "#f59e0b"
	colorHead     = "#facc15"
	colorDim      = "#6b7280"
)

// NewOutcomeRenderer colors runner outcomes for the given profile.
// With termenv.Ascii the output equals runner.FormatOutcome.
func NewOutcomeRenderer(p termenv.Profile) runner.OutcomeRenderer {
	return func(o *runner.Outcome) string {
		plain := runner.FormatOutcome(o)
		color := colorFailed
		switch {
		case o.Err != nil || o.Result == nil:
		case o.Result.Accepted():
			color = colorAccepted
		default:
			color = colorRejected
		}
		return p.String(plain).Foreground(p.Color(color)).String()
	}
}

// TapeView renders a tape with the head cell highlighted. Blanks show as ␣.
// A head left of cell 0 is drawn as an empty highlighted cell before the tape.
func TapeView(p termenv.Profile, tape string, head int) string {
	var b strings.Builder
	cells := []rune(tape)
	if head < 0 {
		b.WriteString(p.String("[]").Foreground(p.Color(colorHead)).Bold().String())
	}
	for i, c := range cells {
		cell := domain.Symbol(c).String()
		if i == head {
			b.WriteString(p.String("[" + cell + "]").Foreground(p.Color(colorHead)).Bold().String())
			continue
		}
		b.WriteString(cell)
	}
	if head >= len(cells) {
		b.WriteString(p.String("[" + domain.Blank.String() + "]").Foreground(p.Color(colorHead)).Bold().String())
	}
	return b.String()
}

// NewTraceFormatter formats step events for observability.TraceHooks.
func NewTraceFormatter(p termenv.Profile) func(e *domain.StepEvent) string {
	return func(e *domain.StepEvent) string {
		step := p.String(fmt.Sprintf("#%-5d", e.Step)).Foreground(p.Color(colorDim)).String()
		return fmt.Sprintf("%s %-10s %s  %s", step, e.State, TapeView(p, e.Tape, e.Head), e.Rule.String())
	}
}
