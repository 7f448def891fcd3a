// Package step defines the idempotent unit of host configuration.
package step

// Step represents an idempotent unit of host configuration. Each step can
// check whether its desired state is already met, describe the change it
// would make, and apply it.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// DependsOn returns the IDs of steps that must complete before this one.
	DependsOn() []StepID

	// Check determines the current status of this step.
	// Returns StatusSatisfied if no action is needed, StatusNeedsApply if
	// changes are required.
	Check(ctx RunContext) (Status, error)

	// Plan returns the diff describing what changes this step will make.
	Plan(ctx RunContext) (Diff, error)

	// Apply executes the step's changes. Applying an already-satisfied step
	// must leave the host unchanged.
	Apply(ctx RunContext) error

	// Policy returns how a failure of this step is treated.
	Policy() FailurePolicy
}

// FailurePolicy determines whether a failed step aborts the run.
type FailurePolicy string

const (
	// PolicyFatal aborts the whole run on failure. No later step executes.
	PolicyFatal FailurePolicy = "fatal"
	// PolicyWarn records a warning and lets the run continue. Used only
	// for strictly optional steps.
	PolicyWarn FailurePolicy = "warn"
)

// Confirmable is implemented by steps that need operator approval before
// applying, such as optional installs or reinstalls of present software.
// A declined confirmation skips the step without failing the run.
type Confirmable interface {
	Step

	// Confirmation returns the question to ask and the default answer.
	// An empty question means no confirmation is needed for this run
	// (e.g. the runtime is not yet present, so there is nothing to
	// reinstall over).
	Confirmation() (question string, def bool)
}

// AsConfirmable attempts to cast a step to Confirmable.
// Returns nil if the step needs no confirmation.
func AsConfirmable(s Step) Confirmable {
	if c, ok := s.(Confirmable); ok {
		return c
	}
	return nil
}

// Detector is implemented by steps that can report the installed version of
// their target after a successful apply. The observed value is recorded in
// the run report.
type Detector interface {
	Step

	// Detect re-reads the relevant slice of host state and returns a
	// human-readable version string.
	Detect(ctx RunContext) (string, error)
}

// AsDetector attempts to cast a step to Detector.
// Returns nil if the step cannot report a version.
func AsDetector(s Step) Detector {
	if d, ok := s.(Detector); ok {
		return d
	}
	return nil
}
