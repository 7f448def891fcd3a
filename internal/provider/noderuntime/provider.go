package noderuntime

import (
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// Provider builds the Node.js runtime steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new noderuntime Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "node"
}

// Steps returns the repository and install steps for the channel.
func (p *Provider) Steps(major string, after ...step.StepID) []step.Step {
	repo := NewRepoStep(major, p.runner, p.fs, after...)
	install := NewInstallStep(major, p.runner, repo.ID())
	return []step.Step{repo, install}
}

// InstallStepID returns the ID of the runtime install step, for steps in
// other providers that depend on the runtime being present.
func InstallStepID() step.StepID {
	return step.MustNewStepID("node:install")
}
