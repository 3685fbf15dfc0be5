package domain

// Definition is the parsed, immutable representation of a Turing machine.
// It is built once (by the compiler or the DSL) and may be shared freely
// between concurrent simulations: nothing in the engine mutates it.
type Definition struct {
	Start  string `json:"start" yaml:"start"`
	Accept string `json:"accept" yaml:"accept"`
	Reject string `json:"reject" yaml:"reject"`

	// Alphabet is the declared input alphabet. The engine never consults it;
	// it exists for caller-side input validation.
	Alphabet []Symbol `json:"alphabet" yaml:"alphabet"`

	// Rules are kept in declaration order. Order is significant: the first
	// matching rule wins.
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Match returns the first rule, in declaration order, that fires for the
// given state and symbol.
func (d *Definition) Match(state string, sym Symbol) (Rule, bool) {
	for _, r := range d.Rules {
		if r.Matches(state, sym) {
			return r, true
		}
	}
	return Rule{}, false
}

// InAlphabet reports whether sym was declared in the input alphabet.
func (d *Definition) InAlphabet(sym Symbol) bool {
	for _, a := range d.Alphabet {
		if a == sym {
			return true
		}
	}
	return false
}

// States lists every state label referenced by the definition, in order of
// first appearance (start, accept, reject, then rule sources and targets).
func (d *Definition) States() []string {
	seen := make(map[string]bool)
	var states []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		states = append(states, s)
	}

	add(d.Start)
	add(d.Accept)
	add(d.Reject)
	for _, r := range d.Rules {
		add(r.From)
		add(r.To)
	}
	return states
}

// IsHalting reports whether state is the accept or reject state.
func (d *Definition) IsHalting(state string) bool {
	return state == d.Accept || state == d.Reject
}
