// Package pm2 provides steps for installing the pm2 process supervisor.
package pm2

import (
	"fmt"
	"strings"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// InstallStep installs pm2 globally through npm. pm2 lives in the
// runtime's own package ecosystem, so this step depends on the Node.js
// install.
type InstallStep struct {
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(runner ports.CommandRunner, after ...step.StepID) *InstallStep {
	return &InstallStep{
		id:     step.MustNewStepID("pm2:install"),
		runner: runner,
		after:  after,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *InstallStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if pm2 is already installed.
func (s *InstallStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "pm2", "--version")
	if err != nil || !result.Success() {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *InstallStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "npm-global", "pm2", "latest"), nil
}

// Apply installs pm2 globally.
func (s *InstallStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "npm", "install", "-g", "pm2")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("npm install -g pm2 failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *InstallStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// Detect re-reads the installed pm2 version.
func (s *InstallStep) Detect(ctx step.RunContext) (string, error) {
	result, err := s.runner.Run(ctx.Context(), "pm2", "--version")
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("pm2 not runnable after install")
	}
	return strings.TrimSpace(result.Stdout), nil
}

// Ensure InstallStep implements the step interfaces.
var (
	_ step.Step     = (*InstallStep)(nil)
	_ step.Detector = (*InstallStep)(nil)
)

// StartupStep registers pm2 with systemd so supervised apps come back
// after a reboot.
type StartupStep struct {
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID
}

// NewStartupStep creates a new StartupStep.
func NewStartupStep(runner ports.CommandRunner, after ...step.StepID) *StartupStep {
	return &StartupStep{
		id:     step.MustNewStepID("pm2:startup"),
		runner: runner,
		after:  after,
	}
}

// ID returns the step identifier.
func (s *StartupStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *StartupStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if the pm2 systemd unit is already registered. pm2
// names its unit pm2-<user>; provisioning runs as root.
func (s *StartupStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "systemctl", "is-enabled", "--quiet", "pm2-root")
	if err != nil {
		return step.StatusUnknown, err
	}
	if result.Success() {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *StartupStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "service", "pm2-root", "enabled"), nil
}

// Apply installs the pm2 systemd unit for root.
func (s *StartupStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "pm2", "startup", "systemd", "-u", "root", "--hp", "/root")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("pm2 startup failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *StartupStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// Ensure StartupStep implements step.Step.
var _ step.Step = (*StartupStep)(nil)
