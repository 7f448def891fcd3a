// Package certbot provides steps for installing the certificate issuer
// and its nginx integration. Certificate issuance itself happens during
// site registration, not provisioning.
package certbot

import (
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/provider/apt"
)

// Provider builds the certbot install steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new certbot Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "certbot"
}

// Steps returns the certbot and nginx-plugin install steps.
func (p *Provider) Steps(after ...step.StepID) ([]step.Step, error) {
	certbot, err := apt.NewPackageStep("certbot", p.runner, after...)
	if err != nil {
		return nil, err
	}
	plugin, err := apt.NewPackageStep("python3-certbot-nginx", p.runner, certbot.ID())
	if err != nil {
		return nil, err
	}
	return []step.Step{certbot, plugin}, nil
}
