// Package app provides the main application logic for groundwork.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/groundwork-sh/groundwork/internal/adapters/command"
	"github.com/groundwork-sh/groundwork/internal/adapters/filesystem"
	"github.com/groundwork-sh/groundwork/internal/adapters/logging"
	"github.com/groundwork-sh/groundwork/internal/domain/config"
	"github.com/groundwork-sh/groundwork/internal/domain/execution"
	"github.com/groundwork-sh/groundwork/internal/domain/hoststate"
	"github.com/groundwork-sh/groundwork/internal/domain/site"
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/provider/apt"
	"github.com/groundwork-sh/groundwork/internal/provider/certbot"
	"github.com/groundwork-sh/groundwork/internal/provider/docker"
	"github.com/groundwork-sh/groundwork/internal/provider/fail2ban"
	"github.com/groundwork-sh/groundwork/internal/provider/nginx"
	"github.com/groundwork-sh/groundwork/internal/provider/noderuntime"
	"github.com/groundwork-sh/groundwork/internal/provider/pm2"
	"github.com/groundwork-sh/groundwork/internal/provider/scaffold"
	"github.com/groundwork-sh/groundwork/internal/provider/ufw"
	"github.com/groundwork-sh/groundwork/internal/templates"
	"github.com/groundwork-sh/groundwork/internal/tui"
	"github.com/groundwork-sh/groundwork/internal/validation"
)

// trackedPackages are reported in the host summary when present.
var trackedPackages = []string{"nginx", "nodejs", "ufw", "fail2ban", "certbot", "docker.io"}

// Groundwork is the main application orchestrator.
type Groundwork struct {
	runner   ports.CommandRunner
	fs       ports.FileSystem
	prober   site.Prober
	planner  *execution.Planner
	executor *execution.Executor
	logger   ports.Logger
	euid     int
	out      io.Writer
	styles   tui.Styles
}

// New creates a Groundwork application wired to the real host.
func New(out io.Writer, euid int) *Groundwork {
	return &Groundwork{
		runner:   command.NewRealRunner(),
		fs:       filesystem.NewRealFileSystem(),
		prober:   site.NewDialProber(),
		planner:  execution.NewPlanner(),
		executor: execution.NewExecutor(),
		logger:   logging.NewNopLogger(),
		euid:     euid,
		out:      out,
		styles:   tui.DefaultStyles(),
	}
}

// WithRunner swaps the command runner.
func (g *Groundwork) WithRunner(runner ports.CommandRunner) *Groundwork {
	g.runner = runner
	return g
}

// WithFileSystem swaps the filesystem.
func (g *Groundwork) WithFileSystem(fs ports.FileSystem) *Groundwork {
	g.fs = fs
	return g
}

// WithProber swaps the port prober.
func (g *Groundwork) WithProber(prober site.Prober) *Groundwork {
	g.prober = prober
	return g
}

// WithPrompter makes execution interactive: steps that require
// confirmation ask the prompter before applying.
func (g *Groundwork) WithPrompter(p ports.Prompter) *Groundwork {
	g.executor = g.executor.WithPrompter(p)
	return g
}

// WithLogger sets the logger.
func (g *Groundwork) WithLogger(logger ports.Logger) *Groundwork {
	g.logger = logger
	return g
}

// CheckHost detects the host OS and privilege level. It returns an error
// for non-Ubuntu hosts; privilege enforcement is left to the caller so
// read-only commands can run unprivileged.
func (g *Groundwork) CheckHost(ctx context.Context) (*hoststate.HostState, error) {
	state, err := hoststate.NewDetector(g.runner, g.fs, g.euid).Detect(ctx, trackedPackages)
	if err != nil {
		return nil, fmt.Errorf("failed to detect host state: %w", err)
	}
	if !state.SupportedOS() {
		return state, config.NewUsageError(
			fmt.Sprintf("unsupported operating system %q", state.OSName),
			"groundwork provisions Ubuntu hosts only",
		)
	}
	return state, nil
}

// Steps builds the full ordered provisioning sequence for the given
// configuration. Firewall rules come before the firewall enable step so
// SSH access is never cut off, and the scaffold runs last.
func (g *Groundwork) Steps(cfg *config.Config) ([]step.Step, error) {
	steps, err := apt.NewProvider(g.runner).Steps(cfg.ExtraPackages)
	if err != nil {
		return nil, err
	}
	update := steps[0].ID()

	nginxSteps, err := nginx.NewProvider(g.runner).Steps(update)
	if err != nil {
		return nil, err
	}
	steps = append(steps, nginxSteps...)
	steps = append(steps, noderuntime.NewProvider(g.runner, g.fs).Steps(cfg.Node.Major, update)...)

	pm2Install := pm2.NewInstallStep(g.runner, noderuntime.InstallStepID())
	steps = append(steps, pm2Install, pm2.NewStartupStep(g.runner, pm2Install.ID()))

	ufwSteps, err := ufw.NewProvider(g.runner).Steps(cfg.Firewall.AllowTCP, update)
	if err != nil {
		return nil, err
	}
	steps = append(steps, ufwSteps...)

	fail2banSteps, err := fail2ban.NewProvider(g.runner, g.fs).Steps(update)
	if err != nil {
		return nil, err
	}
	steps = append(steps, fail2banSteps...)

	certbotSteps, err := certbot.NewProvider(g.runner).Steps(update)
	if err != nil {
		return nil, err
	}
	steps = append(steps, certbotSteps...)
	steps = append(steps, docker.NewInstallStep(g.runner, update))

	scaffoldSteps, err := scaffold.NewProvider(g.fs).Steps(templates.ScaffoldData{
		ProjectRoot: cfg.ProjectRoot,
		AppName:     cfg.SampleApp.Name,
		Port:        cfg.SampleApp.Port,
	}, pm2Install.ID())
	if err != nil {
		return nil, err
	}
	steps = append(steps, scaffoldSteps...)

	return steps, nil
}

// Plan checks every step against the host and returns the execution plan.
func (g *Groundwork) Plan(ctx context.Context, cfg *config.Config) (*execution.Plan, error) {
	steps, err := g.Steps(cfg)
	if err != nil {
		return nil, err
	}
	plan, err := g.planner.Plan(ctx, steps)
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}
	return plan, nil
}

// Execute runs a previously computed plan.
func (g *Groundwork) Execute(ctx context.Context, plan *execution.Plan) *execution.RunReport {
	g.logger.Info(ctx, "starting provisioning run",
		ports.F("steps", plan.Len()), ports.F("pending", plan.Summary().NeedsApply))
	ctx = ports.ContextWithLogger(ctx, g.logger)
	return g.executor.Execute(ctx, plan)
}

// Provision plans and then executes the provisioning sequence.
func (g *Groundwork) Provision(ctx context.Context, cfg *config.Config) (*execution.Plan, *execution.RunReport, error) {
	plan, err := g.Plan(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return plan, g.Execute(ctx, plan), nil
}

// Registrar returns the site registrar for this host.
func (g *Groundwork) Registrar() *nginx.Registrar {
	return nginx.NewRegistrar(g.runner, g.fs, g.prober)
}

// RegisterSite validates the inputs and registers a reverse-proxy site.
// Validation failures surface before anything is written.
func (g *Groundwork) RegisterSite(ctx context.Context, domain string, port int) (*nginx.Registration, error) {
	s, err := site.New(domain, port)
	if err != nil {
		return nil, err
	}
	return g.Registrar().Register(ctx, s)
}

// IssueCertificate obtains a TLS certificate for a registered site.
func (g *Groundwork) IssueCertificate(ctx context.Context, domain string) error {
	if err := validation.ValidateDomain(domain); err != nil {
		return err
	}
	return g.Registrar().IssueCertificate(ctx, domain)
}

// ListSites enumerates registered sites.
func (g *Groundwork) ListSites() ([]nginx.SiteEntry, error) {
	return g.Registrar().List()
}
