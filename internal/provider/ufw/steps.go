// Package ufw provides firewall configuration steps.
//
// Ordering matters here: the SSH allow rule must exist before the
// firewall is enabled, or enabling it would cut off the operator's own
// session. The provider expresses that with step dependencies.
package ufw

import (
	"fmt"
	"strings"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/validation"
)

// DefaultPolicyStep sets the baseline policy: deny inbound, allow outbound.
type DefaultPolicyStep struct {
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID
}

// NewDefaultPolicyStep creates a new DefaultPolicyStep.
func NewDefaultPolicyStep(runner ports.CommandRunner, after ...step.StepID) *DefaultPolicyStep {
	return &DefaultPolicyStep{
		id:     step.MustNewStepID("ufw:defaults"),
		runner: runner,
		after:  after,
	}
}

// ID returns the step identifier.
func (s *DefaultPolicyStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *DefaultPolicyStep) DependsOn() []step.StepID {
	return s.after
}

// Check reads the configured default policies.
func (s *DefaultPolicyStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "ufw", "status", "verbose")
	if err != nil {
		return step.StatusUnknown, err
	}
	if !result.Success() {
		return step.StatusNeedsApply, nil
	}
	if strings.Contains(result.Stdout, "deny (incoming)") && strings.Contains(result.Stdout, "allow (outgoing)") {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *DefaultPolicyStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "firewall-policy", "default", "deny in, allow out"), nil
}

// Apply sets both default policies.
func (s *DefaultPolicyStep) Apply(ctx step.RunContext) error {
	for _, args := range [][]string{
		{"default", "deny", "incoming"},
		{"default", "allow", "outgoing"},
	} {
		result, err := s.runner.Run(ctx.Context(), "ufw", args...)
		if err != nil {
			return err
		}
		if !result.Success() {
			return fmt.Errorf("ufw %s failed: %s", strings.Join(args, " "), strings.TrimSpace(result.Stderr))
		}
	}
	return nil
}

// Policy returns the failure policy.
func (s *DefaultPolicyStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// RuleStep adds one TCP allow rule. spec is a ufw port spec such as "22"
// or "3000:3010".
type RuleStep struct {
	spec   string
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID
}

// NewRuleStep creates a new RuleStep. The spec is validated here, before
// it can reach a step ID or a shell.
func NewRuleStep(spec string, runner ports.CommandRunner, after ...step.StepID) (*RuleStep, error) {
	if err := validation.ValidatePortSpec(spec); err != nil {
		return nil, fmt.Errorf("invalid port spec: %w", err)
	}
	return &RuleStep{
		spec:   spec,
		id:     step.MustNewStepID("ufw:allow:" + strings.ReplaceAll(spec, ":", "-") + "/tcp"),
		runner: runner,
		after:  after,
	}, nil
}

// ID returns the step identifier.
func (s *RuleStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *RuleStep) DependsOn() []step.StepID {
	return s.after
}

// Check looks for the rule among the added rules. "ufw show added" lists
// rules even while the firewall is inactive, unlike "ufw status".
func (s *RuleStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "ufw", "show", "added")
	if err != nil {
		return step.StatusUnknown, err
	}
	if !result.Success() {
		return step.StatusNeedsApply, nil
	}
	if strings.Contains(result.Stdout, "ufw allow "+s.spec+"/tcp") {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *RuleStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "firewall-rule", s.spec+"/tcp", "allow"), nil
}

// Apply adds the allow rule. Re-adding an existing rule is harmless.
func (s *RuleStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "ufw", "allow", s.spec+"/tcp")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("ufw allow %s/tcp failed: %s", s.spec, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *RuleStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// EnableStep turns the firewall on. It must depend on every rule step and
// the default policy step.
type EnableStep struct {
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID
}

// NewEnableStep creates a new EnableStep.
func NewEnableStep(runner ports.CommandRunner, after ...step.StepID) *EnableStep {
	return &EnableStep{
		id:     step.MustNewStepID("ufw:enable"),
		runner: runner,
		after:  after,
	}
}

// ID returns the step identifier.
func (s *EnableStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *EnableStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if the firewall is already active.
func (s *EnableStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "ufw", "status")
	if err != nil {
		return step.StatusUnknown, err
	}
	if result.Success() && strings.Contains(result.Stdout, "Status: active") {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *EnableStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "firewall", "ufw", "active"), nil
}

// Apply enables the firewall. --force suppresses ufw's own interactive
// warning; the SSH rule this step depends on is already in place.
func (s *EnableStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "ufw", "--force", "enable")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("ufw enable failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *EnableStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// Ensure steps implement step.Step.
var (
	_ step.Step = (*DefaultPolicyStep)(nil)
	_ step.Step = (*RuleStep)(nil)
	_ step.Step = (*EnableStep)(nil)
)
