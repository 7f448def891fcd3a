// Package execution handles step orchestration: planning, sequential
// execution, and run reporting.
package execution

import (
	"time"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
)

// Outcome classifies what happened to a single step during a run.
type Outcome string

const (
	// OutcomeSucceeded means the step's action ran and completed.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeSkipped means the step did not run: its state was already
	// satisfied, the operator declined it, or an earlier dependency failed.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeWarned means the step's action failed but its failure policy
	// allowed the run to continue.
	OutcomeWarned Outcome = "warned"
	// OutcomeFailed means the step's action failed and aborted the run.
	OutcomeFailed Outcome = "failed"
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	return string(o)
}

// StepResult captures the outcome of executing a single step.
type StepResult struct {
	stepID   step.StepID
	outcome  Outcome
	err      error
	duration time.Duration
	detail   string
	diff     step.Diff
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID step.StepID, outcome Outcome, err error) StepResult {
	return StepResult{
		stepID:  stepID,
		outcome: outcome,
		err:     err,
	}
}

// StepID returns the ID of the step that was executed.
func (r StepResult) StepID() step.StepID {
	return r.stepID
}

// Outcome returns the final outcome of the step.
func (r StepResult) Outcome() Outcome {
	return r.outcome
}

// Error returns any error that occurred during execution.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took to execute.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Detail returns extra context for the outcome, such as the detected
// version after a successful install or the reason a step was skipped.
func (r StepResult) Detail() string {
	return r.detail
}

// Diff returns the diff that was applied (if any).
func (r StepResult) Diff() step.Diff {
	return r.diff
}

// Success returns true if the step completed successfully.
func (r StepResult) Success() bool {
	return r.outcome == OutcomeSucceeded
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDetail returns a new StepResult with detail set.
func (r StepResult) WithDetail(detail string) StepResult {
	r.detail = detail
	return r
}

// WithDiff returns a new StepResult with diff set.
func (r StepResult) WithDiff(d step.Diff) StepResult {
	r.diff = d
	return r
}
