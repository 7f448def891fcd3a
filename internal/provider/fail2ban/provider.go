package fail2ban

import (
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/provider/apt"
	"github.com/groundwork-sh/groundwork/internal/provider/systemd"
)

// Provider builds the fail2ban steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new fail2ban Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "fail2ban"
}

// Steps returns install, jail config, and service enable, in that order.
func (p *Provider) Steps(after ...step.StepID) ([]step.Step, error) {
	install, err := apt.NewPackageStep("fail2ban", p.runner, after...)
	if err != nil {
		return nil, err
	}
	jail := NewJailStep(p.fs, install.ID())
	enable := systemd.NewEnableStep("fail2ban", p.runner, jail.ID())
	return []step.Step{install, jail, enable}, nil
}
