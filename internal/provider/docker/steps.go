// Package docker provides the optional containerization step. It is the
// only step with a warn-and-continue failure policy: a host without
// Docker is still a working web host.
package docker

import (
	"fmt"
	"strings"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// InstallStep installs the Docker engine from the Ubuntu archive.
type InstallStep struct {
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(runner ports.CommandRunner, after ...step.StepID) *InstallStep {
	return &InstallStep{
		id:     step.MustNewStepID("docker:install"),
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

// Check determines if Docker is already installed.
func (s *InstallStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "dpkg-query", "-W", "-f=${db:Status-Status}", "docker.io")
	if err != nil {
		return step.StatusUnknown, err
	}
	if result.Success() && strings.TrimSpace(result.Stdout) == "installed" {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *InstallStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "package", "docker.io", "latest"), nil
}

// Apply installs the Docker engine.
func (s *InstallStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "apt-get", "install", "-y", "docker.io")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install docker.io failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy. Docker is strictly optional, so a
// failure warns instead of aborting the run.
func (s *InstallStep) Policy() step.FailurePolicy {
	return step.PolicyWarn
}

// Confirmation asks before installing the optional component.
func (s *InstallStep) Confirmation() (string, bool) {
	return "Install Docker for containerized workloads?", false
}

// Detect re-reads the installed Docker version.
func (s *InstallStep) Detect(ctx step.RunContext) (string, error) {
	result, err := s.runner.Run(ctx.Context(), "docker", "--version")
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("docker not runnable after install")
	}
	return strings.TrimSpace(result.Stdout), nil
}

// Ensure InstallStep implements the step interfaces.
var (
	_ step.Step        = (*InstallStep)(nil)
	_ step.Confirmable = (*InstallStep)(nil)
	_ step.Detector    = (*InstallStep)(nil)
)
