package domain

import "errors"

// ErrMalformedDefinition is wrapped by every structural parse failure.
var ErrMalformedDefinition = errors.New("malformed machine definition")

// ErrTapeUnderflow is returned when the head moved past the left end of the tape
// and the machine tried to read there.
var ErrTapeUnderflow = errors.New("tape underflow: head moved left of cell 0")

// ErrStepLimitExceeded is returned when a caller-supplied step ceiling is reached
// before the machine halts.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// ErrDeadlineExceeded is returned when the caller's context expires before the
// machine halts.
var ErrDeadlineExceeded = errors.New("simulation deadline exceeded")

// ErrSymbolNotInAlphabet is returned when an input contains an undeclared symbol.
var ErrSymbolNotInAlphabet = errors.New("symbol not in input alphabet")

// ErrMachineNotFound is returned when a named definition cannot be found by a loader.
var ErrMachineNotFound = errors.New("machine not found")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")
