package execution

import (
	"context"
	"fmt"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
)

// Planner generates a Plan from an ordered list of steps. It checks each
// step's current status against the host and records the change it would
// make. The order of the input list is preserved; it encodes the real
// dependencies between steps.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan generates a Plan by checking each step's status.
func (p *Planner) Plan(ctx context.Context, steps []step.Step) (*Plan, error) {
	plan := NewPlan()
	runCtx := step.NewRunContext(ctx)

	for _, s := range steps {
		entry, err := p.planStep(s, runCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to plan step %q: %w", s.ID().String(), err)
		}
		plan.Add(entry)
	}

	return plan, nil
}

// planStep checks a single step and generates a PlanEntry. A failing check
// is treated as unknown state rather than an error: the step will be
// attempted and its action decides the run's fate.
func (p *Planner) planStep(s step.Step, ctx step.RunContext) (PlanEntry, error) {
	status, err := s.Check(ctx)
	if err != nil {
		status = step.StatusUnknown
	}

	var diff step.Diff
	if status.NeedsAction() {
		diff, err = s.Plan(ctx)
		if err != nil {
			return PlanEntry{}, fmt.Errorf("plan failed: %w", err)
		}
	}

	return NewPlanEntry(s, status, diff), nil
}
