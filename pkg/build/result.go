package build

import (
	"fmt"
	"time"
)

// Outcome is the terminal state of an executed step.
type Outcome string

const (
	Success Outcome = "Success"
	Failed  Outcome = "Failed"
)

// StepResult records one executed (or rejected) step. Results are final once
// the runner appends them.
type StepResult struct {
	Name      string
	Outcome   Outcome
	StartTime time.Time
	Duration  time.Duration
	Err       *StepError
}

// ErrorKind distinguishes a name that was never registered from a step body
// that ran and failed.
type ErrorKind string

const (
	// KindInvalidStep marks a step name with no registered implementation.
	// Nothing was invoked; this is the one failure without an underlying
	// execution error.
	KindInvalidStep ErrorKind = "InvalidStep"

	// KindExecution wraps the error a step body returned.
	KindExecution ErrorKind = "StepExecutionError"
)

// StepError is the failure detail attached to a Failed StepResult.
type StepError struct {
	Step string
	Kind ErrorKind
	Err  error
}

func (e *StepError) Error() string {
	if e.Kind == KindInvalidStep {
		return fmt.Sprintf("step %q is not a registered step", e.Step)
	}
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
