package apt

import (
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// basePackages are always installed before anything else: transport and
// build tooling the later steps rely on.
var basePackages = []string{
	"ca-certificates",
	"curl",
	"gnupg",
	"git",
	"build-essential",
	"unzip",
}

// Provider builds the base package steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new apt Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "apt"
}

// Steps returns the index refresh followed by the base packages plus any
// extras, each depending on the refresh. An invalid extra package name
// fails the whole sequence before anything runs.
func (p *Provider) Steps(extraPackages []string) ([]step.Step, error) {
	update := NewUpdateStep(p.runner)
	steps := []step.Step{update}

	for _, pkg := range append(append([]string{}, basePackages...), extraPackages...) {
		install, err := NewPackageStep(pkg, p.runner, update.ID())
		if err != nil {
			return nil, err
		}
		steps = append(steps, install)
	}

	return steps, nil
}
