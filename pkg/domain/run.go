package domain

import "time"

// RunRecord is the persisted summary of one simulation.
type RunRecord struct {
	ID         string        `json:"id"`
	Machine    string        `json:"machine"`
	Input      string        `json:"input"`
	Verdict    Verdict       `json:"verdict,omitempty"`
	Halt       HaltReason    `json:"halt,omitempty"`
	Steps      int           `json:"steps"`
	FinalState string        `json:"final_state,omitempty"`
	Tape       string        `json:"tape,omitempty"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}

// NewRunRecord summarizes a simulation outcome. Either res or runErr is set.
func NewRunRecord(id, machine, input string, res *Result, runErr error, started time.Time, d time.Duration) *RunRecord {
	rec := &RunRecord{
		ID:        id,
		Machine:   machine,
		Input:     input,
		StartedAt: started,
		Duration:  d,
	}
	if res != nil {
		rec.Verdict = res.Verdict
		rec.Halt = res.Halt
		rec.Steps = res.Steps
		rec.FinalState = res.FinalState
		rec.Tape = res.Tape
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	return rec
}
