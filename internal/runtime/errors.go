package runtime

import "fmt"

// ExecutionError is a simulation failure that is not a verdict.
// It records the configuration the machine was in when it stopped.
type ExecutionError struct {
	Err   error
	State string
	Steps int
	Head  int
	Tape  string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("state %q after %d steps: %v", e.State, e.Steps, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
