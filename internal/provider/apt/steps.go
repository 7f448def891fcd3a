// Package apt provides steps for Debian/Ubuntu package management.
package apt

import (
	"fmt"
	"strings"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/validation"
)

// UpdateStep refreshes the apt package index. It has no satisfied state:
// the index is always refreshed at the start of a run.
type UpdateStep struct {
	id     step.StepID
	runner ports.CommandRunner
}

// NewUpdateStep creates a new UpdateStep.
func NewUpdateStep(runner ports.CommandRunner) *UpdateStep {
	return &UpdateStep{
		id:     step.MustNewStepID("apt:update"),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *UpdateStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *UpdateStep) DependsOn() []step.StepID {
	return nil
}

// Check always reports needs-apply: a stale index has no observable
// satisfied state.
func (s *UpdateStep) Check(_ step.RunContext) (step.Status, error) {
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *UpdateStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "index", "apt", ""), nil
}

// Apply refreshes the package index.
func (s *UpdateStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "apt-get", "update")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get update failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *UpdateStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// PackageStep installs one apt package.
type PackageStep struct {
	pkg    string
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID
}

// NewPackageStep creates a new PackageStep. The package name is
// validated here, before it can reach a step ID or a shell.
func NewPackageStep(pkg string, runner ports.CommandRunner, after ...step.StepID) (*PackageStep, error) {
	if err := validation.ValidatePackageName(pkg); err != nil {
		return nil, fmt.Errorf("invalid package name: %w", err)
	}
	id, err := step.NewStepID("apt:install:" + pkg)
	if err != nil {
		return nil, fmt.Errorf("invalid package name %q: %w", pkg, err)
	}
	return &PackageStep{
		pkg:    pkg,
		id:     id,
		runner: runner,
		after:  after,
	}, nil
}

// ID returns the step identifier.
func (s *PackageStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *PackageStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if the package is already installed.
func (s *PackageStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "dpkg-query", "-W", "-f=${db:Status-Status}", s.pkg)
	if err != nil {
		return step.StatusUnknown, err
	}

	// dpkg-query exits non-zero when the package is not known.
	if !result.Success() {
		return step.StatusNeedsApply, nil
	}

	if strings.TrimSpace(result.Stdout) == "installed" {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *PackageStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "package", s.pkg, "latest"), nil
}

// Apply installs the package.
func (s *PackageStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "apt-get", "install", "-y", s.pkg)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install %s failed: %s", s.pkg, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *PackageStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// Detect re-reads the installed package version.
func (s *PackageStep) Detect(ctx step.RunContext) (string, error) {
	result, err := s.runner.Run(ctx.Context(), "dpkg-query", "-W", "-f=${Version}", s.pkg)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("%s not installed after apply", s.pkg)
	}
	return strings.TrimSpace(result.Stdout), nil
}

// Ensure steps implement the step interfaces.
var (
	_ step.Step     = (*UpdateStep)(nil)
	_ step.Step     = (*PackageStep)(nil)
	_ step.Detector = (*PackageStep)(nil)
)
