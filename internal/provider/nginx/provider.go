// Package nginx provides the reverse-proxy install steps and the site
// registrar.
package nginx

import (
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/provider/apt"
	"github.com/groundwork-sh/groundwork/internal/provider/systemd"
)

// Provider builds the nginx install steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new nginx Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "nginx"
}

// Steps returns the install and service-enable steps. after names steps
// that must complete first (the apt index refresh).
func (p *Provider) Steps(after ...step.StepID) ([]step.Step, error) {
	install, err := apt.NewPackageStep("nginx", p.runner, after...)
	if err != nil {
		return nil, err
	}
	enable := systemd.NewEnableStep("nginx", p.runner, install.ID())
	return []step.Step{install, enable}, nil
}
