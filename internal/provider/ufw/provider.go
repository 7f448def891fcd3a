package ufw

import (
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/provider/apt"
)

// Provider builds the firewall steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new ufw Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "ufw"
}

// Steps returns install, default policy, one rule per port spec, and the
// enable step last, depending on all of them. An invalid port spec fails
// the whole sequence before anything runs.
func (p *Provider) Steps(allowTCP []string, after ...step.StepID) ([]step.Step, error) {
	install, err := apt.NewPackageStep("ufw", p.runner, after...)
	if err != nil {
		return nil, err
	}
	defaults := NewDefaultPolicyStep(p.runner, install.ID())

	steps := []step.Step{install, defaults}
	ruleIDs := []step.StepID{defaults.ID()}

	for _, spec := range allowTCP {
		rule, err := NewRuleStep(spec, p.runner, install.ID())
		if err != nil {
			return nil, err
		}
		steps = append(steps, rule)
		ruleIDs = append(ruleIDs, rule.ID())
	}

	steps = append(steps, NewEnableStep(p.runner, ruleIDs...))
	return steps, nil
}
