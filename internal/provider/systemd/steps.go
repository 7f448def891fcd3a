// Package systemd provides steps for managing systemd services.
package systemd

import (
	"fmt"
	"strings"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// EnableStep enables a service to start on boot and starts it now.
type EnableStep struct {
	service string
	id      step.StepID
	runner  ports.CommandRunner
	after   []step.StepID
}

// NewEnableStep creates a new EnableStep for the named service.
func NewEnableStep(service string, runner ports.CommandRunner, after ...step.StepID) *EnableStep {
	return &EnableStep{
		service: service,
		id:      step.MustNewStepID("systemd:enable:" + service),
		runner:  runner,
		after:   after,
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

// Check determines if the service is already enabled and running.
func (s *EnableStep) Check(ctx step.RunContext) (step.Status, error) {
	enabled, err := s.runner.Run(ctx.Context(), "systemctl", "is-enabled", "--quiet", s.service)
	if err != nil {
		return step.StatusUnknown, err
	}
	active, err := s.runner.Run(ctx.Context(), "systemctl", "is-active", "--quiet", s.service)
	if err != nil {
		return step.StatusUnknown, err
	}

	if enabled.Success() && active.Success() {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *EnableStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "service", s.service, "enabled"), nil
}

// Apply enables and starts the service.
func (s *EnableStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "systemctl", "enable", "--now", s.service)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("systemctl enable --now %s failed: %s", s.service, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *EnableStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// Ensure EnableStep implements step.Step.
var _ step.Step = (*EnableStep)(nil)
