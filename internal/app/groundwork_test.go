package app

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-sh/groundwork/internal/adapters/logging"
	"github.com/groundwork-sh/groundwork/internal/domain/config"
	"github.com/groundwork-sh/groundwork/internal/domain/execution"
	"github.com/groundwork-sh/groundwork/internal/domain/hoststate"
	"github.com/groundwork-sh/groundwork/internal/domain/site"
	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
ID=ubuntu
VERSION_ID="24.04"
`

func newTestApp(t *testing.T, runner *ports.MockCommandRunner, fs *ports.MockFileSystem) *Groundwork {
	t.Helper()
	return New(&bytes.Buffer{}, 0).
		WithRunner(runner).
		WithFileSystem(fs).
		WithProber(&site.StaticProber{})
}

func TestGroundwork_StepsOrdering(t *testing.T) {
	gw := newTestApp(t, ports.NewMockCommandRunner(), ports.NewMockFileSystem())

	steps, err := gw.Steps(config.Default())
	require.NoError(t, err)

	assert.Equal(t, "apt:update", steps[0].ID().String())

	byID := make(map[string][]string)
	for _, s := range steps {
		var deps []string
		for _, d := range s.DependsOn() {
			deps = append(deps, d.String())
		}
		byID[s.ID().String()] = deps
	}

	// Every firewall rule must be a dependency of the enable step, so
	// the SSH allow rule is in place before the firewall goes live.
	enableDeps := byID["ufw:enable"]
	require.NotNil(t, enableDeps)
	for _, rule := range []string{"ufw:allow:22/tcp", "ufw:allow:80/tcp", "ufw:allow:443/tcp", "ufw:allow:3000-3010/tcp"} {
		assert.Contains(t, enableDeps, rule)
	}

	assert.Contains(t, byID["pm2:install"], "node:install")
	assert.Contains(t, byID["pm2:startup"], "pm2:install")
	assert.Contains(t, byID["scaffold:dir:apps"], "pm2:install")
}

func TestGroundwork_StepIDsAreUnique(t *testing.T) {
	gw := newTestApp(t, ports.NewMockCommandRunner(), ports.NewMockFileSystem())

	steps, err := gw.Steps(config.Default())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, s := range steps {
		assert.False(t, seen[s.ID().String()], "duplicate step %s", s.ID())
		seen[s.ID().String()] = true
	}
}

func TestGroundwork_CheckHost(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte(ubuntuOSRelease), 0o644))

	gw := newTestApp(t, ports.NewMockCommandRunner(), fs)

	state, err := gw.CheckHost(context.Background())
	require.NoError(t, err)
	assert.True(t, state.SupportedOS())
	assert.True(t, state.RootAccess)
}

func TestGroundwork_CheckHostRejectsNonUbuntu(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte("ID=debian\nPRETTY_NAME=\"Debian 12\"\n"), 0o644))

	gw := newTestApp(t, ports.NewMockCommandRunner(), fs)

	state, err := gw.CheckHost(context.Background())
	require.Error(t, err)
	require.NotNil(t, state)

	var userErr *config.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, config.ErrCodeUsage, userErr.Code)
}

func TestGroundwork_RegisterSiteValidatesBeforeWriting(t *testing.T) {
	runner := ports.NewMockCommandRunner()
	fs := ports.NewMockFileSystem()
	gw := newTestApp(t, runner, fs)

	_, err := gw.RegisterSite(context.Background(), "bad domain!", 3000)
	require.Error(t, err)
	assert.Empty(t, runner.Calls())
}

func TestGroundwork_IssueCertificateValidatesDomain(t *testing.T) {
	runner := ports.NewMockCommandRunner()
	gw := newTestApp(t, runner, ports.NewMockFileSystem())

	err := gw.IssueCertificate(context.Background(), "$(rm -rf /)")
	require.Error(t, err)
	assert.Empty(t, runner.Calls())
}

func TestGroundwork_PrintPlanMentionsPendingSteps(t *testing.T) {
	var out bytes.Buffer
	fs := ports.NewMockFileSystem()
	gw := New(&out, 0).
		WithRunner(ports.NewMockCommandRunner()).
		WithFileSystem(fs).
		WithProber(&site.StaticProber{})

	plan, err := gw.Plan(context.Background(), config.Default())
	require.NoError(t, err)

	gw.PrintPlan(plan)
	assert.Contains(t, out.String(), "Provisioning Plan")
	assert.Contains(t, out.String(), "groundwork provision")
}

func TestGroundwork_PrintHostListsInstalledPackagesOnly(t *testing.T) {
	var out bytes.Buffer
	gw := New(&out, 0)

	gw.PrintHost(&hoststate.HostState{
		OSName:     "Ubuntu 24.04.1 LTS",
		OSVersion:  "24.04",
		RootAccess: true,
		Packages:   map[string]string{"nginx": "1.24.0-2ubuntu7"},
	})

	assert.Contains(t, out.String(), "nginx")
	assert.Contains(t, out.String(), "1.24.0-2ubuntu7")
	assert.NotContains(t, out.String(), "fail2ban")
}

func TestGroundwork_PrintReportHintsAtMissingCommand(t *testing.T) {
	var out bytes.Buffer
	gw := New(&out, 0)

	report := execution.NewRunReport()
	report.Add(execution.NewStepResult(
		step.MustNewStepID("ufw:enable"),
		execution.OutcomeFailed,
		&exec.Error{Name: "ufw", Err: exec.ErrNotFound},
	))
	gw.PrintReport(report.Finish())

	assert.Contains(t, out.String(), "ufw:enable")
	assert.Contains(t, out.String(), "not installed")
}

func TestGroundwork_ExecuteLogsRunStart(t *testing.T) {
	var logs bytes.Buffer
	gw := newTestApp(t, ports.NewMockCommandRunner(), ports.NewMockFileSystem()).
		WithLogger(logging.NewConsoleLogger(
			logging.WithOutput(&logs),
			logging.WithTimestamp(false),
		))

	plan, err := execution.NewPlanner().Plan(context.Background(), nil)
	require.NoError(t, err)
	gw.Execute(context.Background(), plan)

	assert.Contains(t, logs.String(), "starting provisioning run")
}
