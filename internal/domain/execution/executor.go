package execution

import (
	"context"
	"time"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// Executor runs the steps of a Plan strictly in order, one at a time.
// A fatal step failure aborts the run immediately; nothing is rolled back.
type Executor struct {
	prompter    ports.Prompter
	interactive bool
}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithPrompter returns an Executor that asks the given prompter before
// applying steps that require confirmation. Without a prompter such steps
// apply unconditionally.
func (e *Executor) WithPrompter(p ports.Prompter) *Executor {
	return &Executor{prompter: p, interactive: true}
}

// Execute runs all plan entries in order and returns the run report.
// Execution stops at the first fatal failure; steps after it never run and
// appear in no report entry. Changes applied by earlier steps are not
// rolled back.
func (e *Executor) Execute(ctx context.Context, plan *Plan) *RunReport {
	report := NewRunReport()
	runCtx := step.NewRunContext(ctx)
	failed := make(map[string]bool)
	logger := ports.LoggerFromContext(ctx)

	for _, entry := range plan.Entries() {
		select {
		case <-ctx.Done():
			report.Abort()
			return report.Finish()
		default:
		}

		result := e.executeEntry(entry, runCtx, failed)
		report.Add(result)
		if logger != nil {
			logger.Debug(ctx, "step finished",
				ports.F("step", result.StepID().String()),
				ports.F("outcome", result.Outcome().String()),
				ports.F("duration", result.Duration().String()))
		}

		switch result.Outcome() {
		case OutcomeFailed:
			report.Abort()
			return report.Finish()
		case OutcomeWarned:
			// Later steps that depend on this one are skipped.
			failed[entry.Step().ID().String()] = true
		}
	}

	return report.Finish()
}

// executeEntry executes a single plan entry.
func (e *Executor) executeEntry(entry PlanEntry, ctx step.RunContext, failed map[string]bool) StepResult {
	s := entry.Step()
	stepID := s.ID()

	for _, depID := range s.DependsOn() {
		if failed[depID.String()] {
			return NewStepResult(stepID, OutcomeSkipped, nil).
				WithDetail("dependency " + depID.String() + " failed")
		}
	}

	// Idempotency: a satisfied step records Skipped and its action never runs.
	if entry.Status() == step.StatusSatisfied {
		return NewStepResult(stepID, OutcomeSkipped, nil).
			WithDetail("already satisfied")
	}

	if e.interactive {
		if c := step.AsConfirmable(s); c != nil {
			if question, def := c.Confirmation(); question != "" {
				proceed, err := e.prompter.Confirm(question, def)
				if err != nil || !proceed {
					return NewStepResult(stepID, OutcomeSkipped, nil).
						WithDetail("declined by operator")
				}
			}
		}
	}

	start := time.Now()
	err := s.Apply(ctx)
	duration := time.Since(start)

	if err != nil {
		if s.Policy() == step.PolicyWarn {
			return NewStepResult(stepID, OutcomeWarned, err).WithDuration(duration)
		}
		return NewStepResult(stepID, OutcomeFailed, err).WithDuration(duration)
	}

	result := NewStepResult(stepID, OutcomeSucceeded, nil).
		WithDuration(duration).
		WithDiff(entry.Diff())

	// Re-detect the installed version after a successful apply.
	if d := step.AsDetector(s); d != nil {
		if version, err := d.Detect(ctx); err == nil && version != "" {
			result = result.WithDetail(version)
		}
	}

	return result
}
