package execution

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-sh/groundwork/internal/adapters/logging"
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// fakeStep is a scriptable step for executor tests.
type fakeStep struct {
	id       step.StepID
	deps     []step.StepID
	status   step.Status
	checkErr error
	applyErr error
	policy   step.FailurePolicy
	question string
	version  string
	applied  int
}

func newFakeStep(id string, status step.Status) *fakeStep {
	return &fakeStep{
		id:     step.MustNewStepID(id),
		status: status,
		policy: step.PolicyFatal,
	}
}

func (f *fakeStep) ID() step.StepID          { return f.id }
func (f *fakeStep) DependsOn() []step.StepID { return f.deps }
func (f *fakeStep) Check(_ step.RunContext) (step.Status, error) {
	return f.status, f.checkErr
}
func (f *fakeStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "fake", f.id.String(), ""), nil
}
func (f *fakeStep) Apply(_ step.RunContext) error {
	f.applied++
	return f.applyErr
}
func (f *fakeStep) Policy() step.FailurePolicy { return f.policy }

func (f *fakeStep) Confirmation() (string, bool) { return f.question, false }
func (f *fakeStep) Detect(_ step.RunContext) (string, error) {
	return f.version, nil
}

func planOf(t *testing.T, steps ...step.Step) *Plan {
	t.Helper()
	plan, err := NewPlanner().Plan(context.Background(), steps)
	require.NoError(t, err)
	return plan
}

func TestExecutor_SatisfiedStepIsSkippedWithoutApply(t *testing.T) {
	satisfied := newFakeStep("apt:install:nginx", step.StatusSatisfied)
	pending := newFakeStep("apt:install:ufw", step.StatusNeedsApply)

	report := NewExecutor().Execute(context.Background(), planOf(t, satisfied, pending))

	results := report.Results()
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeSkipped, results[0].Outcome())
	assert.Equal(t, "already satisfied", results[0].Detail())
	assert.Zero(t, satisfied.applied, "satisfied step must never apply")
	assert.Equal(t, OutcomeSucceeded, results[1].Outcome())
	assert.Equal(t, 1, pending.applied)
}

func TestExecutor_FatalFailureAbortsRun(t *testing.T) {
	failing := newFakeStep("apt:update", step.StatusNeedsApply)
	failing.applyErr = errors.New("mirror unreachable")
	never := newFakeStep("apt:install:nginx", step.StatusNeedsApply)

	report := NewExecutor().Execute(context.Background(), planOf(t, failing, never))

	require.Len(t, report.Results(), 1)
	assert.Equal(t, OutcomeFailed, report.Results()[0].Outcome())
	assert.True(t, report.Aborted())
	assert.True(t, report.Failed())
	assert.Zero(t, never.applied, "steps after a fatal failure must not run")
}

func TestExecutor_WarnPolicyContinuesRun(t *testing.T) {
	optional := newFakeStep("docker:install:docker.io", step.StatusNeedsApply)
	optional.applyErr = errors.New("no space left")
	optional.policy = step.PolicyWarn
	next := newFakeStep("scaffold:dir:apps", step.StatusNeedsApply)

	report := NewExecutor().Execute(context.Background(), planOf(t, optional, next))

	results := report.Results()
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeWarned, results[0].Outcome())
	assert.Equal(t, OutcomeSucceeded, results[1].Outcome())
	assert.False(t, report.Aborted())
	assert.False(t, report.Failed())
}

func TestExecutor_DependentOfWarnedStepIsSkipped(t *testing.T) {
	optional := newFakeStep("docker:install:docker.io", step.StatusNeedsApply)
	optional.applyErr = errors.New("no space left")
	optional.policy = step.PolicyWarn
	dependent := newFakeStep("docker:compose:up", step.StatusNeedsApply)
	dependent.deps = []step.StepID{optional.ID()}

	report := NewExecutor().Execute(context.Background(), planOf(t, optional, dependent))

	results := report.Results()
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeSkipped, results[1].Outcome())
	assert.Zero(t, dependent.applied)
}

func TestExecutor_UnknownStatusIsAttempted(t *testing.T) {
	unsure := newFakeStep("systemd:enable:nginx", step.StatusUnknown)
	unsure.checkErr = errors.New("systemctl not found")

	report := NewExecutor().Execute(context.Background(), planOf(t, unsure))

	require.Len(t, report.Results(), 1)
	assert.Equal(t, OutcomeSucceeded, report.Results()[0].Outcome())
	assert.Equal(t, 1, unsure.applied)
}

func TestExecutor_ConfirmationDeclinedSkipsStep(t *testing.T) {
	guarded := newFakeStep("docker:install:docker.io", step.StatusNeedsApply)
	guarded.question = "Install Docker?"
	prompter := ports.NewScriptedPrompter([]bool{false}, nil)

	report := NewExecutor().WithPrompter(prompter).
		Execute(context.Background(), planOf(t, guarded))

	require.Len(t, report.Results(), 1)
	assert.Equal(t, OutcomeSkipped, report.Results()[0].Outcome())
	assert.Equal(t, "declined by operator", report.Results()[0].Detail())
	assert.Zero(t, guarded.applied)
	assert.Equal(t, []string{"Install Docker?"}, prompter.Questions)
}

func TestExecutor_ConfirmationAcceptedApplies(t *testing.T) {
	guarded := newFakeStep("docker:install:docker.io", step.StatusNeedsApply)
	guarded.question = "Install Docker?"
	prompter := ports.NewScriptedPrompter([]bool{true}, nil)

	report := NewExecutor().WithPrompter(prompter).
		Execute(context.Background(), planOf(t, guarded))

	assert.Equal(t, OutcomeSucceeded, report.Results()[0].Outcome())
	assert.Equal(t, 1, guarded.applied)
}

func TestExecutor_EmptyConfirmationQuestionDoesNotPrompt(t *testing.T) {
	quiet := newFakeStep("node:install", step.StatusNeedsApply)
	prompter := ports.NewScriptedPrompter(nil, nil)

	report := NewExecutor().WithPrompter(prompter).
		Execute(context.Background(), planOf(t, quiet))

	assert.Equal(t, OutcomeSucceeded, report.Results()[0].Outcome())
	assert.Empty(t, prompter.Questions)
}

func TestExecutor_NonInteractiveNeverPrompts(t *testing.T) {
	guarded := newFakeStep("docker:install:docker.io", step.StatusNeedsApply)
	guarded.question = "Install Docker?"

	report := NewExecutor().Execute(context.Background(), planOf(t, guarded))

	assert.Equal(t, OutcomeSucceeded, report.Results()[0].Outcome())
	assert.Equal(t, 1, guarded.applied)
}

func TestExecutor_DetectRecordsVersionDetail(t *testing.T) {
	versioned := newFakeStep("node:install", step.StatusNeedsApply)
	versioned.version = "v22.11.0"

	report := NewExecutor().Execute(context.Background(), planOf(t, versioned))

	assert.Equal(t, "v22.11.0", report.Results()[0].Detail())
}

func TestExecutor_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pending := newFakeStep("apt:update", step.StatusNeedsApply)
	plan := planOf(t, pending)
	cancel()

	report := NewExecutor().Execute(ctx, plan)

	assert.True(t, report.Aborted())
	assert.Empty(t, report.Results())
	assert.Zero(t, pending.applied)
}

func TestExecutor_LogsStepOutcomes(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewConsoleLogger(
		logging.WithOutput(&buf),
		logging.WithLevel(ports.LevelDebug),
		logging.WithTimestamp(false),
	)
	ctx := ports.ContextWithLogger(context.Background(), logger)

	report := NewExecutor().Execute(ctx, planOf(t,
		newFakeStep("apt:install:nginx", step.StatusNeedsApply)))

	require.Len(t, report.Results(), 1)
	assert.Contains(t, buf.String(), "step=apt:install:nginx")
	assert.Contains(t, buf.String(), "outcome=succeeded")
}

func TestExecutor_Reentry(t *testing.T) {
	// A step that failed last run succeeds this run; steps completed last
	// run report satisfied and are skipped.
	done := newFakeStep("apt:update", step.StatusSatisfied)
	retried := newFakeStep("apt:install:nginx", step.StatusNeedsApply)

	report := NewExecutor().Execute(context.Background(), planOf(t, done, retried))

	results := report.Results()
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeSkipped, results[0].Outcome())
	assert.Equal(t, OutcomeSucceeded, results[1].Outcome())
	assert.False(t, report.Failed())
}
