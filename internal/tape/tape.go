// Package tape implements the single-tape storage medium of the machine.
package tape

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Tape is an extensible sequence of symbols plus a head index.
// It grows to the right on demand and never to the left.
// A Tape is owned by a single simulation and is not safe for concurrent use.
type Tape struct {
	cells []domain.Symbol
	head  int
}

// New creates a tape holding one cell per character of input, head at 0.
// An empty input yields an empty tape, which reads as Blank.
func New(input string) *Tape {
	return &Tape{cells: domain.SymbolsOf(input)}
}

// Read returns the symbol under the head.
func (t *Tape) Read() (domain.Symbol, error) {
	if err := t.check(); err != nil {
		return domain.Blank, err
	}
	return t.cells[t.head], nil
}

// Write replaces the symbol under the head.
func (t *Tape) Write(sym domain.Symbol) error {
	if err := t.check(); err != nil {
		return err
	}
	t.cells[t.head] = sym
	return nil
}

// MoveRight advances the head, appending a Blank when it steps past the end.
func (t *Tape) MoveRight() {
	t.head++
	if t.head == len(t.cells) {
		t.cells = append(t.cells, domain.Blank)
	}
}

// MoveLeft moves the head back one cell. Moving below 0 is not corrected here;
// the next Read or Write reports domain.ErrTapeUnderflow.
func (t *Tape) MoveLeft() {
	t.head--
}

// Move applies a direction. It reports false for codes other than L and R,
// leaving the head untouched.
func (t *Tape) Move(d domain.Direction) bool {
	switch d {
	case domain.Right:
		t.MoveRight()
	case domain.Left:
		t.MoveLeft()
	default:
		return false
	}
	return true
}

// check validates the head before an access. The only way the head can reach
// len(cells) is an empty tape, which is extended lazily.
func (t *Tape) check() error {
	if t.head < 0 {
		return fmt.Errorf("%w (head at %d)", domain.ErrTapeUnderflow, t.head)
	}
	if t.head == len(t.cells) {
		t.cells = append(t.cells, domain.Blank)
	}
	return nil
}

// Head returns the head index.
func (t *Tape) Head() int { return t.head }

// Len returns the number of materialized cells.
func (t *Tape) Len() int { return len(t.cells) }

// Cells returns a copy of the tape contents.
func (t *Tape) Cells() []domain.Symbol {
	out := make([]domain.Symbol, len(t.cells))
	copy(out, t.cells)
	return out
}

// String renders the cells as text, blanks included.
func (t *Tape) String() string {
	var sb strings.Builder
	for _, c := range t.cells {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// Window renders the cells with the head cell bracketed, e.g. "01[1]␣".
// A head left of the tape is shown as a leading "[]".
func (t *Tape) Window() string {
	var sb strings.Builder
	if t.head < 0 {
		sb.WriteString("[]")
	}
	for i, c := range t.cells {
		if i == t.head {
			sb.WriteString("[" + c.String() + "]")
			continue
		}
		sb.WriteString(c.String())
	}
	if t.head >= len(t.cells) {
		sb.WriteString("[" + domain.Blank.String() + "]")
	}
	return sb.String()
}
