package domain

// Verdict is the terminal outcome of a simulation that halted.
type Verdict string

const (
	VerdictAccepted Verdict = "accepted"
	VerdictRejected Verdict = "rejected"
)

// HaltReason explains why a simulation halted.
type HaltReason string

const (
	HaltAcceptState        HaltReason = "accept_state"        // Current state is the accept state
	HaltRejectState        HaltReason = "reject_state"        // A rule moved into the reject state
	HaltNoTransition       HaltReason = "no_transition"       // No rule for (state, symbol)
	HaltMalformedDirection HaltReason = "malformed_direction" // Matching rule had a move other than L/R; its write lands, the head stays
)

// Result captures the verdict and the final configuration of a halted machine.
type Result struct {
	Verdict Verdict    `json:"verdict"`
	Halt    HaltReason `json:"halt"`

	// Steps is the number of rules applied.
	Steps int `json:"steps"`

	// FinalState is the state the machine halted in.
	FinalState string `json:"final_state"`

	// Head is the final head position. It may be -1 when the last move went
	// past the left end right into a halting state.
	Head int `json:"head"`

	// Tape is the final tape contents, blanks included.
	Tape string `json:"tape"`

	// Rule is the last applied (or, for a malformed direction, matched) rule.
	Rule *Rule `json:"rule,omitempty"`
}

// Accepted is the boolean projection of the verdict.
func (r *Result) Accepted() bool {
	return r != nil && r.Verdict == VerdictAccepted
}
