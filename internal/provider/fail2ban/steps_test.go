package fail2ban

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

func runCtx() step.RunContext {
	return step.NewRunContext(context.Background())
}

func TestJailStep_ExistingConfigIsLeftAlone(t *testing.T) {
	fs := ports.NewMockFileSystem()
	tuned := []byte("[sshd]\nenabled = true\nmaxretry = 2\n")
	require.NoError(t, fs.WriteFile("/etc/fail2ban/jail.local", tuned, 0o644))

	status, err := NewJailStep(fs).Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusSatisfied, status)

	// Operator tuning survives.
	content, err := fs.ReadFile("/etc/fail2ban/jail.local")
	require.NoError(t, err)
	assert.Equal(t, tuned, content)
}

func TestJailStep_Apply(t *testing.T) {
	fs := ports.NewMockFileSystem()
	s := NewJailStep(fs)

	status, err := s.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, step.StatusNeedsApply, status)

	require.NoError(t, s.Apply(runCtx()))

	content, err := fs.ReadFile("/etc/fail2ban/jail.local")
	require.NoError(t, err)
	text := string(content)
	// fail2ban rejects keys outside a section, so the file must open
	// with the DEFAULT header rather than bare ban settings.
	assert.True(t, strings.HasPrefix(text, "[DEFAULT]"), "jail.local must start with [DEFAULT], got:\n%s", text)
	assert.Contains(t, text, "bantime")
	assert.Contains(t, text, "[sshd]")
	assert.Contains(t, text, "enabled")
}

func TestProvider_Steps(t *testing.T) {
	steps, err := NewProvider(ports.NewMockCommandRunner(), ports.NewMockFileSystem()).Steps()
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "apt:install:fail2ban", steps[0].ID().String())
	assert.Equal(t, "fail2ban:jail:sshd", steps[1].ID().String())
	assert.Equal(t, "systemd:enable:fail2ban", steps[2].ID().String())
}
