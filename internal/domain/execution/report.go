package execution

import (
	"time"

	"github.com/google/uuid"
)

// RunReport is the ordered record of one sequencer invocation: which steps
// ran, in what order, and how each one ended. It is produced once per run
// and consumed for the final summary.
type RunReport struct {
	id        string
	startedAt time.Time
	duration  time.Duration
	results   []StepResult
	aborted   bool
}

// NewRunReport creates an empty report for a run starting now.
func NewRunReport() *RunReport {
	return &RunReport{
		id:        uuid.NewString(),
		startedAt: time.Now(),
		results:   make([]StepResult, 0),
	}
}

// ID returns the unique identifier of this run.
func (r *RunReport) ID() string {
	return r.id
}

// StartedAt returns when the run began.
func (r *RunReport) StartedAt() time.Time {
	return r.startedAt
}

// Duration returns the total run duration. Valid after Finish.
func (r *RunReport) Duration() time.Duration {
	return r.duration
}

// Add appends a step result in execution order.
func (r *RunReport) Add(result StepResult) {
	r.results = append(r.results, result)
}

// Results returns all step results in execution order.
func (r *RunReport) Results() []StepResult {
	return r.results
}

// Abort marks the run as terminated before all steps executed.
func (r *RunReport) Abort() {
	r.aborted = true
}

// Aborted returns true if the run stopped before completing every step.
func (r *RunReport) Aborted() bool {
	return r.aborted
}

// Failed returns true if any step failed fatally.
func (r *RunReport) Failed() bool {
	for _, result := range r.results {
		if result.Outcome() == OutcomeFailed {
			return true
		}
	}
	return false
}

// Summary counts results per outcome.
func (r *RunReport) Summary() map[Outcome]int {
	summary := make(map[Outcome]int)
	for _, result := range r.results {
		summary[result.Outcome()]++
	}
	return summary
}

// Finish records the total duration and returns the report.
func (r *RunReport) Finish() *RunReport {
	r.duration = time.Since(r.startedAt)
	return r
}
