package domain

import "fmt"

// Rule defines a single transition of the finite control.
type Rule struct {
	From  string    `json:"from" yaml:"from"`
	Read  Symbol    `json:"read" yaml:"read"`
	Write Symbol    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
	To    string    `json:"to" yaml:"to"`

	// Line is the 1-based source line the rule was parsed from (0 if built in code).
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// Matches reports whether the rule fires for the given configuration.
func (r Rule) Matches(state string, sym Symbol) bool {
	return r.From == state && r.Read == sym
}

// String encodes the rule in the definition text format: from(read,write,dir)to.
func (r Rule) String() string {
	return fmt.Sprintf("%s(%c,%c,%c)%s", r.From, rune(r.Read), rune(r.Write), rune(r.Move), r.To)
}
