// Package noderuntime provides steps for installing the Node.js runtime
// from NodeSource builds.
package noderuntime

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// nodesourceList is the apt source file the NodeSource setup script writes.
const nodesourceList = "/etc/apt/sources.list.d/nodesource.list"

// RepoStep registers the NodeSource apt repository for the requested
// release channel.
type RepoStep struct {
	major  string
	id     step.StepID
	runner ports.CommandRunner
	fs     ports.FileSystem
	after  []step.StepID
}

// NewRepoStep creates a new RepoStep. major is the release channel, e.g. "22".
func NewRepoStep(major string, runner ports.CommandRunner, fs ports.FileSystem, after ...step.StepID) *RepoStep {
	return &RepoStep{
		major:  major,
		id:     step.MustNewStepID("node:repo:" + major + ".x"),
		runner: runner,
		fs:     fs,
		after:  after,
	}
}

// ID returns the step identifier.
func (s *RepoStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *RepoStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if the NodeSource repository is already registered for
// this channel.
func (s *RepoStep) Check(_ step.RunContext) (step.Status, error) {
	data, err := s.fs.ReadFile(nodesourceList)
	if err != nil {
		return step.StatusNeedsApply, nil
	}
	if strings.Contains(string(data), "node_"+s.major+".x") {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *RepoStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "apt-repo", "nodesource", s.major+".x"), nil
}

// Apply runs the NodeSource setup script for the channel. The script is
// fetched and piped to bash, which is how NodeSource distributes it.
func (s *RepoStep) Apply(ctx step.RunContext) error {
	script := fmt.Sprintf("curl -fsSL https://deb.nodesource.com/setup_%s.x | bash -", s.major)
	result, err := s.runner.Run(ctx.Context(), "bash", "-c", script)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("nodesource setup failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *RepoStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// InstallStep installs the nodejs package. When an older Node.js is
// already present, the step asks before replacing it.
type InstallStep struct {
	major  string
	id     step.StepID
	runner ports.CommandRunner
	after  []step.StepID

	// set during Check: the version found on the host, if any
	present string
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(major string, runner ports.CommandRunner, after ...step.StepID) *InstallStep {
	return &InstallStep{
		major:  major,
		id:     step.MustNewStepID("node:install"),
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

// Check compares the installed Node.js version against the requested
// channel. An equal or newer major is satisfied; older or absent needs
// apply.
func (s *InstallStep) Check(ctx step.RunContext) (step.Status, error) {
	s.present = ""

	result, err := s.runner.Run(ctx.Context(), "node", "--version")
	if err != nil || !result.Success() {
		return step.StatusNeedsApply, nil
	}

	current := strings.TrimSpace(result.Stdout)
	if !semver.IsValid(current) {
		return step.StatusNeedsApply, nil
	}
	s.present = current

	min := "v" + s.major + ".0.0"
	if semver.Compare(current, min) >= 0 {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *InstallStep) Plan(_ step.RunContext) (step.Diff, error) {
	if s.present != "" {
		return step.NewDiff(step.DiffTypeModify, "runtime", "nodejs", s.major+".x"), nil
	}
	return step.NewDiff(step.DiffTypeAdd, "runtime", "nodejs", s.major+".x"), nil
}

// Apply installs the nodejs package from the NodeSource repository.
func (s *InstallStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "apt-get", "install", "-y", "nodejs")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install nodejs failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Policy returns the failure policy.
func (s *InstallStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// Confirmation asks before replacing an already-present runtime. A fresh
// host installs without a prompt.
func (s *InstallStep) Confirmation() (string, bool) {
	if s.present == "" {
		return "", false
	}
	return fmt.Sprintf("Node.js %s is already installed. Replace it with %s.x from NodeSource?", s.present, s.major), false
}

// Detect re-reads the installed Node.js version.
func (s *InstallStep) Detect(ctx step.RunContext) (string, error) {
	result, err := s.runner.Run(ctx.Context(), "node", "--version")
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("node not runnable after install")
	}
	return strings.TrimSpace(result.Stdout), nil
}

// Ensure steps implement the step interfaces.
var (
	_ step.Step        = (*RepoStep)(nil)
	_ step.Step        = (*InstallStep)(nil)
	_ step.Confirmable = (*InstallStep)(nil)
	_ step.Detector    = (*InstallStep)(nil)
)
